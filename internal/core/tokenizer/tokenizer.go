// Package tokenizer implements the streaming word-record tokenizer (C1):
// it turns a character reader into a sequence of (hash, position, length)
// word records, splitting on any non-alphanumeric code point.
//
// Grounded on the teacher library's internal/adapters/stream/wordprocessor
// chunked word-boundary scan, retargeted from word counts to word records
// addressed by code-point offset.
package tokenizer

import (
	"unicode"

	"github.com/baditaflorin/go_substring_search/internal/core/charreader"
	"github.com/baditaflorin/go_substring_search/internal/core/domain"
)

// IsWordChar reports whether r is a word-character per spec: any Unicode
// alphabetic or decimal-digit code point. Everything else is a delimiter.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// HashWord computes the 32-bit word hash: acc = acc*31 + c over the word's
// code points in order, with uint32 wraparound. This must stay bit-exact
// across ingest and query time.
func HashWord(word []rune) uint32 {
	var acc uint32
	for _, c := range word {
		acc = acc*31 + uint32(c)
	}
	return acc
}

// Tokenize streams word records from r, invoking emit once per word in
// order. sourceName is stamped onto every emitted record. The position
// counter is the 0-based code-point offset of each code point read;
// word_pos is the offset of the word's first code point.
func Tokenize(sourceName string, r charreader.Reader, emit func(domain.WordRecord)) error {
	pos := 0
	inWord := false
	wordStart := 0
	var acc uint32
	length := 0

	for {
		c, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		if IsWordChar(c) {
			if !inWord {
				inWord = true
				wordStart = pos
				acc = 0
				length = 0
			}
			acc = acc*31 + uint32(c)
			length++
		} else if inWord {
			emit(domain.WordRecord{
				SourceName: sourceName,
				WordHash:   acc,
				WordPos:    wordStart,
				WordLength: length,
			})
			inWord = false
		}
		pos++
	}

	if inWord {
		emit(domain.WordRecord{
			SourceName: sourceName,
			WordHash:   acc,
			WordPos:    wordStart,
			WordLength: length,
		})
	}

	return nil
}
