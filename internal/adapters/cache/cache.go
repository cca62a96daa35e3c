// Package cache implements the query-result cache half of C6: a
// mutex-guarded map from exact query string to its assembled result,
// cleared wholesale whenever a source is added (spec §4.6 — any write
// invalidates every cached answer, since a new source could change any
// query's result).
//
// Grounded on the teacher library's buffer-pool discipline of a single
// mutex around a plain map, with no LRU or TTL machinery: the spec names
// only whole-cache invalidation, which a size- or time-bounded
// third-party cache would not simplify, so a plain map is the grounded
// choice here (see DESIGN.md).
package cache

import (
	"sync"

	"github.com/baditaflorin/go_substring_search/internal/core/domain"
)

// Cache holds previously computed search results keyed by the exact
// query string. A disabled cache accepts every call as a no-op.
type Cache struct {
	mu      sync.Mutex
	enabled bool
	results map[string]domain.SearchResult
}

// New returns a cache. When enabled is false, Get always misses and Put
// is a no-op, letting callers use the same code path regardless of
// configuration.
func New(enabled bool) *Cache {
	return &Cache{enabled: enabled, results: make(map[string]domain.SearchResult)}
}

// Get returns the cached result for query, if present.
func (c *Cache) Get(query string) (domain.SearchResult, bool) {
	if !c.enabled {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[query]
	return r, ok
}

// Put stores result under query.
func (c *Cache) Put(query string, result domain.SearchResult) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	c.results[query] = result
	c.mu.Unlock()
}

// Clear drops every cached result. Called after every successful source
// registration.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.results = make(map[string]domain.SearchResult)
	c.mu.Unlock()
}

// Len reports the number of distinct cached queries, for diagnostics.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}
