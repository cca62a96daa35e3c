// Package index implements the word index (C4): a mapping from 32-bit
// word hash to the unordered collection of word records that hash to it,
// across every indexable source. Buckets are append-only; there is no
// de-duplication and no ordering within a bucket — callers must filter by
// source name and verify candidates character-by-character, since a
// bucket may hold records from multiple sources and distinct words that
// happen to collide.
//
// The Index itself holds no lock: spec §4.6/§5 ties the registry and
// index together under a single reader/writer lock, owned by the engine
// that wraps both. Mutation is always a bulk merge performed while the
// engine holds its write lock.
package index

import "github.com/baditaflorin/go_substring_search/internal/core/domain"

// Index is a plain map of word hash to word records.
type Index struct {
	buckets map[uint32][]domain.WordRecord
}

// New returns an empty Index.
func New() *Index {
	return &Index{buckets: make(map[uint32][]domain.WordRecord)}
}

// Merge appends every record in local into the matching global bucket.
// local is typically the per-source map built while tokenizing a single
// source; merging happens only after tokenization succeeds in full, so a
// failed ingest never leaves partial records behind (spec §7).
func (ix *Index) Merge(local map[uint32][]domain.WordRecord) {
	for hash, recs := range local {
		ix.buckets[hash] = append(ix.buckets[hash], recs...)
	}
}

// Lookup returns the full bucket for hash, or nil if empty. The returned
// slice must be treated as read-only by callers.
func (ix *Index) Lookup(hash uint32) []domain.WordRecord {
	return ix.buckets[hash]
}

// WordCount returns the total number of word records held across every
// bucket, for diagnostics (Stats).
func (ix *Index) WordCount() int {
	total := 0
	for _, b := range ix.buckets {
		total += len(b)
	}
	return total
}
