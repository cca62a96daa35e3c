package planner

import (
	"sort"

	"github.com/baditaflorin/go_substring_search/internal/adapters/store"
	"github.com/baditaflorin/go_substring_search/internal/core/domain"
	"github.com/baditaflorin/go_substring_search/internal/pool"
)

// windowBufPool recycles the streamed verifier's sliding-window buffer
// across calls and across queries. The window slides forward through its
// backing array and is reallocated by append when it runs out of room, so
// the capacity handed back to the pool is whatever the last window had
// left, not the largest capacity ever reached.
var windowBufPool = pool.NewRuneBufferPool(256)

// verifyPivot takes the pivot word's index bucket, groups it by source,
// and verifies each candidate start (word_pos - pivot.word_pos) against
// the query, writing confirmed matches into result. Per spec §4.5.c/d,
// a record whose source is not loadable in memory is verified by
// streaming instead, using a sliding window over candidates sorted by
// ascending start so the source is read forward in a single pass.
func verifyPivot(st *store.Store, pivot domain.WordRecord, bucket []domain.WordRecord, query []rune, result domain.SearchResult) {
	bySource := make(map[string][]domain.WordRecord)
	for _, w := range bucket {
		bySource[w.SourceName] = append(bySource[w.SourceName], w)
	}

	for sourceName, recs := range bySource {
		src, ok := st.Get(sourceName)
		if !ok {
			continue
		}
		if src.Loadable {
			verifyInMemory(st, sourceName, pivot, recs, query, result)
		} else {
			verifyStreamed(st, sourceName, pivot, recs, query, result)
		}
	}
}

func verifyInMemory(st *store.Store, sourceName string, pivot domain.WordRecord, recs []domain.WordRecord, query []rune, result domain.SearchResult) {
	full, ok := st.FullString(sourceName)
	if !ok {
		return
	}
	runes := []rune(full)
	qLen := len(query)

	for _, w := range recs {
		start := w.WordPos - pivot.WordPos
		if start < 0 || start+qLen > len(runes) {
			continue
		}
		match := true
		for i, qc := range query {
			if runes[start+i] != qc {
				match = false
				break
			}
		}
		if match {
			addMatch(result, sourceName, start)
		}
	}
}

// verifyStreamed verifies candidates against a source too large to load
// in full. Candidates are sorted by ascending start offset and checked in
// a single forward pass over a streamed reader, maintaining a sliding
// window of the last len(query) code points read — the simplified
// streamed-verification invariant from spec §9 (no extra position
// bookkeeping beyond the window itself).
func verifyStreamed(st *store.Store, sourceName string, pivot domain.WordRecord, recs []domain.WordRecord, query []rune, result domain.SearchResult) {
	qLen := len(query)

	starts := make([]int, 0, len(recs))
	for _, w := range recs {
		start := w.WordPos - pivot.WordPos
		if start < 0 {
			continue
		}
		starts = append(starts, start)
	}
	if len(starts) == 0 {
		return
	}
	sort.Ints(starts)

	r, ok := st.Reader(sourceName)
	if !ok {
		return
	}

	windowPtr := windowBufPool.Get()
	window := (*windowPtr)[:0]
	defer func() {
		*windowPtr = window[:0]
		windowBufPool.Put(windowPtr)
	}()

	pos := 0

	for _, start := range starts {
		end := start + qLen
		for pos < end {
			c, more, err := r.Next()
			if err != nil || !more {
				break
			}
			window = append(window, c)
			if len(window) > qLen {
				window = window[1:]
			}
			pos++
		}
		if pos < end || len(window) < qLen {
			continue
		}

		match := true
		for i := 0; i < qLen; i++ {
			if window[i] != query[i] {
				match = false
				break
			}
		}
		if match {
			addMatch(result, sourceName, start)
		}
	}
}

func addMatch(result domain.SearchResult, sourceName string, pos int) {
	result[sourceName] = append(result[sourceName], pos)
}
