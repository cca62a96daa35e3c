// Package planner implements the query planner (C5): query tokenization,
// non-indexed/hybrid mode selection, pivot-bucket candidate pruning, and
// character-for-character verification.
//
// Grounded directly on spec §4.5 (this is the spec's own algorithm); the
// overall shape — tokenize the query, gather candidate positions, verify,
// build a per-source result map — follows dangelov-shakesearch's
// Searcher.Search, though none of that engine's fuzzy-matching/clustering
// logic applies here (out of scope per spec §1).
package planner

import (
	"sort"
	"sync"

	"github.com/baditaflorin/go_substring_search/internal/core/charreader"
	"github.com/baditaflorin/go_substring_search/internal/core/domain"
	"github.com/baditaflorin/go_substring_search/internal/core/index"
	"github.com/baditaflorin/go_substring_search/internal/core/kmp"
	"github.com/baditaflorin/go_substring_search/internal/core/tokenizer"
	"github.com/baditaflorin/go_substring_search/internal/adapters/store"
)

// MinQueryChars is the length gate from spec §4.5 step 1: queries shorter
// than this are never searched.
const MinQueryChars = 3

// MinHybridWords is the word-count gate from spec §4.5 step 3: queries
// tokenizing to fewer words than this cannot rule a candidate in or out
// via the index (a short query may be a prefix/suffix of a longer word).
const MinHybridWords = 3

// Search runs the full query planner against the given store and index
// and returns the assembled result. It never returns an error: a query
// that is too short, or that cannot appear in the index, simply yields
// fewer (or zero) matches.
func Search(st *store.Store, idx *index.Index, query string) domain.SearchResult {
	if len([]rune(query)) < MinQueryChars {
		return domain.SearchResult{}
	}

	qRunes := []rune(query)
	var qWords []domain.WordRecord
	_ = tokenizer.Tokenize("search", charreader.NewRunes(qRunes), func(w domain.WordRecord) {
		qWords = append(qWords, w)
	})

	result := make(domain.SearchResult)

	if len(qWords) < MinHybridWords {
		mergeInto(result, scanSources(st, st.All(), qRunes))
		return finalize(result)
	}

	nonIndexable := make([]*domain.Source, 0)
	for _, src := range st.All() {
		if !src.Indexable {
			nonIndexable = append(nonIndexable, src)
		}
	}
	mergeInto(result, scanSources(st, nonIndexable, qRunes))

	interior := qWords[1 : len(qWords)-1]
	pivot, bucket, ok := choosePivot(idx, interior)
	if ok {
		verifyPivot(st, pivot, bucket, qRunes, result)
	}

	return finalize(result)
}

// choosePivot finds the interior query word whose index bucket is
// smallest. It returns ok=false if any interior word (after discarding
// zero-length ones, which cannot occur given the tokenizer but are
// checked defensively) has an empty bucket — per spec §4.5.b, that rules
// the query out of every indexable source outright.
func choosePivot(idx *index.Index, interior []domain.WordRecord) (domain.WordRecord, []domain.WordRecord, bool) {
	var candidates []domain.WordRecord
	for _, w := range interior {
		if w.WordLength == 0 {
			continue
		}
		candidates = append(candidates, w)
	}
	if len(candidates) == 0 {
		return domain.WordRecord{}, nil, false
	}

	buckets := make([][]domain.WordRecord, len(candidates))
	for i, w := range candidates {
		b := idx.Lookup(w.WordHash)
		if len(b) == 0 {
			return domain.WordRecord{}, nil, false
		}
		buckets[i] = b
	}

	pivotIdx := 0
	for i := 1; i < len(candidates); i++ {
		if len(buckets[i]) < len(buckets[pivotIdx]) {
			pivotIdx = i
		}
	}
	return candidates[pivotIdx], buckets[pivotIdx], true
}

// scanSources runs a full KMP scan of pattern against every source in
// sources, concurrently (spec §5: "embarrassingly parallel ... SHOULD be
// executed concurrently across sources"), and returns the per-source
// match positions.
func scanSources(st *store.Store, sources []*domain.Source, pattern []rune) map[string][]int {
	type found struct {
		name      string
		positions []int
	}

	var wg sync.WaitGroup
	resultsCh := make(chan found, len(sources))

	for _, src := range sources {
		wg.Add(1)
		go func(src *domain.Source) {
			defer wg.Done()
			positions := scanOneSource(st, src, pattern)
			if len(positions) > 0 {
				resultsCh <- found{src.Name, positions}
			}
		}(src)
	}

	wg.Wait()
	close(resultsCh)

	merged := make(map[string][]int)
	for f := range resultsCh {
		merged[f.name] = append(merged[f.name], f.positions...)
	}
	return merged
}

func scanOneSource(st *store.Store, src *domain.Source, pattern []rune) []int {
	if src.Loadable {
		full, ok := st.FullString(src.Name)
		if !ok {
			return nil
		}
		return kmp.ScanInMemory([]rune(full), pattern)
	}

	r, ok := st.Reader(src.Name)
	if !ok {
		return nil
	}
	matches, _ := kmp.ScanStream(r, pattern)
	return matches
}

func mergeInto(result domain.SearchResult, additional map[string][]int) {
	for name, positions := range additional {
		result[name] = append(result[name], positions...)
	}
}

// finalize sorts and deduplicates each source's match positions and
// drops sources with zero matches, per spec §4.5 step 5.
func finalize(result domain.SearchResult) domain.SearchResult {
	out := make(domain.SearchResult, len(result))
	for name, positions := range result {
		if len(positions) == 0 {
			continue
		}
		sort.Ints(positions)
		deduped := make([]int, 0, len(positions))
		for i, p := range positions {
			if i == 0 || p != deduped[len(deduped)-1] {
				deduped = append(deduped, p)
			}
		}
		out[name] = deduped
	}
	return out
}
