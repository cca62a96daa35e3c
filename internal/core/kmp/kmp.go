// Package kmp implements the exact-substring KMP scanner (C2): an
// in-memory scan over a rune slice and a streamed scan over a character
// reader, both using the textbook Knuth-Morris-Pratt automaton with the
// overlap-preserving reset (k = failure[m-1] after a match), so a pattern
// that self-overlaps reports every overlapping occurrence — e.g. "aa" in
// "aaa" reports {0, 1}.
//
// The in-memory scan is grounded on the pack's VLtim43-BinaryCRUD
// search/kmp.go (LPS table + main loop, same i/j/lps roles); the streamed
// scan uses the equivalent per-character automaton form so it needs no
// explicit raw buffer carried across reads — see charreader's streamReader
// doc.
package kmp

import "github.com/baditaflorin/go_substring_search/internal/core/charreader"

// Failure computes the partial-match (longest proper prefix that is also
// a suffix) table for pattern, in O(len(pattern)).
func Failure(pattern []rune) []int {
	m := len(pattern)
	lps := make([]int, m)
	if m == 0 {
		return lps
	}
	length := 0
	i := 1
	for i < m {
		if pattern[i] == pattern[length] {
			length++
			lps[i] = length
			i++
		} else if length != 0 {
			length = lps[length-1]
		} else {
			lps[i] = 0
			i++
		}
	}
	return lps
}

// ScanInMemory returns every start offset i such that
// text[i:i+len(pattern)] == pattern, in ascending order, allowing
// overlapping matches.
func ScanInMemory(text, pattern []rune) []int {
	n, m := len(text), len(pattern)
	var matches []int
	if m == 0 || n == 0 || m > n {
		return matches
	}

	lps := Failure(pattern)
	i, j := 0, 0
	for i < n {
		if pattern[j] == text[i] {
			i++
			j++
		}
		if j == m {
			matches = append(matches, i-j)
			j = lps[j-1]
		} else if i < n && pattern[j] != text[i] {
			if j != 0 {
				j = lps[j-1]
			} else {
				i++
			}
		}
	}
	return matches
}

// ScanStream returns every start offset of pattern within the code points
// read from r, in ascending order, allowing overlapping matches. It reads
// r to exhaustion.
func ScanStream(r charreader.Reader, pattern []rune) ([]int, error) {
	m := len(pattern)
	var matches []int
	if m == 0 {
		return matches, nil
	}

	lps := Failure(pattern)
	j := 0
	pos := 0
	for {
		c, ok, err := r.Next()
		if err != nil {
			return matches, err
		}
		if !ok {
			break
		}

		for j > 0 && pattern[j] != c {
			j = lps[j-1]
		}
		if pattern[j] == c {
			j++
		}
		if j == m {
			matches = append(matches, pos-m+1)
			j = lps[j-1]
		}
		pos++
	}
	return matches, nil
}
