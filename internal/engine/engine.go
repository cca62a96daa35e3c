// Package engine implements the concurrency and orchestration half of
// C6: a single reader/writer lock tying the source store and word index
// together, wrapping the C1 tokenizer, C3 store, C4 index, and C5
// planner into the five core operations (add_source, search, get_slice,
// get_source, list_names).
//
// Grounded on the teacher library's top-level calculator/normalizer
// orchestration (validate cheaply, log, delegate to a core algorithm,
// wrap errors with %w) for the call shape, generalized with the single
// sync.RWMutex spec §4.6/I3 requires across the registry and index.
package engine

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/baditaflorin/go_substring_search/internal/adapters/cache"
	"github.com/baditaflorin/go_substring_search/internal/core/charreader"
	"github.com/baditaflorin/go_substring_search/internal/core/domain"
	"github.com/baditaflorin/go_substring_search/internal/core/index"
	"github.com/baditaflorin/go_substring_search/internal/core/planner"
	"github.com/baditaflorin/go_substring_search/internal/core/tokenizer"
	"github.com/baditaflorin/go_substring_search/internal/adapters/store"
	"github.com/baditaflorin/go_substring_search/internal/ports"
)

// Config holds the policy limits and dependencies an Engine is built
// with. It has no functional-options surface of its own — pkg/search
// owns the public Option type and translates into this Config.
type Config struct {
	LoadToMemoryLimit int64
	BuildIndexLimit   int64
	CacheDisabled     bool
	Logger            ports.Logger
}

// Engine ties the registry and index together under a single
// reader/writer lock, per spec §4.6/I3.
type Engine struct {
	mu     sync.RWMutex
	store  *store.Store
	index  *index.Index
	cache  *cache.Cache
	logger ports.Logger
	cfg    Config
}

// New returns an empty Engine.
func New(cfg Config) *Engine {
	return &Engine{
		store:  store.New(),
		index:  index.New(),
		cache:  cache.New(!cfg.CacheDisabled),
		logger: cfg.Logger,
		cfg:    cfg,
	}
}

// Cache exposes the query-result cache for callers that need to warm it
// (internal/warmup) without granting broader engine access.
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// AddSource registers name with the given raw content, tokenizes it, and
// merges the resulting word records into the index — all while holding
// the write lock, so a failed ingest never leaves partial index state
// (spec §7). Tokenization is staged into a local map and merged only
// after it completes without error.
func (e *Engine) AddSource(name string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, err := e.store.Register(name, data, e.cfg.LoadToMemoryLimit, e.cfg.BuildIndexLimit)
	if err != nil {
		e.logger.Warn("add_source rejected", "name", name, "error", err)
		return err
	}

	if src.Indexable {
		local := make(map[uint32][]domain.WordRecord)
		r := charreader.NewString(string(data))
		tokErr := tokenizer.Tokenize(name, r, func(w domain.WordRecord) {
			local[w.WordHash] = append(local[w.WordHash], w)
		})
		if tokErr != nil {
			e.logger.Warn("add_source tokenization failed", "name", name, "error", tokErr)
			return fmt.Errorf("substringsearch: tokenizing %q: %w", name, tokErr)
		}
		e.index.Merge(local)
	}

	e.cache.Clear()
	e.logger.Info("source added", "name", name, "bytes", src.ByteLength, "indexable", src.Indexable, "loadable", src.Loadable)
	return nil
}

// Search runs the query planner for query, memoizing the result per
// distinct query string until the next successful AddSource.
func (e *Engine) Search(query string) domain.SearchResult {
	if result, ok := e.cache.Get(query); ok {
		e.logger.Debug("search cache hit", "query", query)
		return result
	}

	// Store the result while still holding the read lock, so an AddSource
	// that clears the cache cannot run between the search and the Put.
	e.mu.RLock()
	result := planner.Search(e.store, e.index, query)
	e.cache.Put(query, result)
	e.mu.RUnlock()

	e.logger.Debug("search completed", "query", query, "sources_matched", len(result))
	return result
}

// Contains reports whether query occurs anywhere in any registered
// source. It is a convenience built on Search, not a distinct scan path.
func (e *Engine) Contains(query string) bool {
	return len(e.Search(query)) > 0
}

// GetSlice returns the clamped character range [from, from+length) of
// name's content, or ok=false if name is not registered.
func (e *Engine) GetSlice(name string, from, length int) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Slice(name, from, length)
}

// GetSource returns a fresh raw byte reader over name's content, or
// ok=false if name is not registered.
func (e *Engine) GetSource(name string) (io.Reader, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r, ok := e.store.Open(name)
	if !ok {
		return nil, false
	}
	// Wrap in a buffered reader so the caller can stream the download
	// without holding the engine lock (the returned bytes.Reader is
	// already fully materialized and needs no further lock protection).
	return bufio.NewReader(r), true
}

// ListNames returns a defensive snapshot of every registered source
// name.
func (e *Engine) ListNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Names()
}

// Stats returns a diagnostic snapshot: source count, total content
// bytes, indexed word count, and cached query count.
func (e *Engine) Stats() domain.Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.Stats{
		SourceCount:   e.store.Count(),
		ContentBytes:  e.store.TotalBytes(),
		IndexedWords:  e.index.WordCount(),
		CachedQueries: e.cache.Len(),
	}
}
