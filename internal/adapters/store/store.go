// Package store implements the source store (C3): registration, policy
// computation, and content access (fresh reader / clamped slice / cached
// full string) for every registered source.
//
// Grounded on simon-lentz-yammm's Registry (defensive snapshots, cheap
// work before any lock is taken) for the registry shape, generalized with
// an explicit sync.Mutex-guarded materialization per source for
// the soft-reclaim content cache (spec §4.3/§9 — Go has no runtime soft
// references, so this approximates them with an explicit, evictable
// cache cell).
//
// Store itself holds no lock of its own: the registry and index are tied
// together under a single reader/writer lock per spec §4.6/§5, owned by
// internal/engine, which wraps every call into this package. The only
// independent synchronization here is the per-source content cache,
// which is allowed to materialize even while the caller holds only the
// engine's shared read lock.
package store

import (
	"bytes"
	"io"
	"sync"

	"github.com/baditaflorin/go_substring_search/internal/core/charreader"
	"github.com/baditaflorin/go_substring_search/internal/core/domain"
	"github.com/baditaflorin/go_substring_search/internal/pool"
)

var sliceBuilderPool = pool.NewStringBuilderPool()

type entry struct {
	meta domain.Source
	data []byte // the "stable handle to re-open the bytes"

	cacheMu sync.Mutex
	cached  *string // nil: not materialized, or reclaimed
}

// Store holds every registered source.
type Store struct {
	entries map[string]*entry
}

// New returns an empty Store.
func New() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Register adds a new source under name. It returns domain.ErrDuplicateSource
// if the name is already registered, or domain.ErrEmptySource if data has
// zero length. Policy flags are computed from the configured limits.
func (s *Store) Register(name string, data []byte, loadToMemoryLimit, buildIndexLimit int64) (*domain.Source, error) {
	if _, exists := s.entries[name]; exists {
		return nil, domain.ErrDuplicateSource
	}
	if len(data) == 0 {
		return nil, domain.ErrEmptySource
	}

	n := int64(len(data))
	meta := domain.Source{
		Name:       name,
		ByteLength: n,
		Loadable:   n <= loadToMemoryLimit,
		Indexable:  n <= buildIndexLimit,
	}
	s.entries[name] = &entry{meta: meta, data: data}

	out := meta
	return &out, nil
}

// Get returns a metadata snapshot for name.
func (s *Store) Get(name string) (*domain.Source, bool) {
	e, ok := s.entries[name]
	if !ok {
		return nil, false
	}
	out := e.meta
	return &out, true
}

// Names returns a defensive snapshot of every registered name; mutating
// the returned slice cannot corrupt the store.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	return names
}

// All returns a metadata snapshot of every registered source.
func (s *Store) All() []*domain.Source {
	out := make([]*domain.Source, 0, len(s.entries))
	for _, e := range s.entries {
		m := e.meta
		out = append(out, &m)
	}
	return out
}

// Count returns the number of registered sources.
func (s *Store) Count() int {
	return len(s.entries)
}

// TotalBytes returns the sum of every registered source's byte length.
func (s *Store) TotalBytes() int64 {
	var total int64
	for _, e := range s.entries {
		total += e.meta.ByteLength
	}
	return total
}

// Reader returns a fresh character reader over the full content of name.
func (s *Store) Reader(name string) (charreader.Reader, bool) {
	e, ok := s.entries[name]
	if !ok {
		return nil, false
	}
	return charreader.NewStream(bytes.NewReader(e.data)), true
}

// Open returns a fresh byte reader over the raw content of name, for
// callers that want the undecoded bytes (e.g. a download endpoint).
func (s *Store) Open(name string) (io.Reader, bool) {
	e, ok := s.entries[name]
	if !ok {
		return nil, false
	}
	return bytes.NewReader(e.data), true
}

// FullString returns the decoded content of a loadable source, only legal
// when its load-policy is true. The decode result is cached; concurrent
// callers race safely and perform at most one decode (the cache cell is
// checked and filled while holding the entry's own mutex, independent of
// any caller-held engine lock).
func (s *Store) FullString(name string) (string, bool) {
	e, ok := s.entries[name]
	if !ok || !e.meta.Loadable {
		return "", false
	}

	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	if e.cached == nil {
		decoded := string(e.data)
		e.cached = &decoded
	}
	return *e.cached, true
}

// Reclaim drops name's soft content cache, as if the runtime had evicted
// it under memory pressure. The next FullString call re-decodes
// transparently.
func (s *Store) Reclaim(name string) {
	e, ok := s.entries[name]
	if !ok {
		return
	}
	e.cacheMu.Lock()
	e.cached = nil
	e.cacheMu.Unlock()
}

// Slice returns the code-point range [from, from+length) of name's
// content, clamping from to >= 0 and the end to the source's character
// count. Returns ok=false only when name is not registered.
func (s *Store) Slice(name string, from, length int) (string, bool) {
	e, ok := s.entries[name]
	if !ok {
		return "", false
	}
	if from < 0 {
		from = 0
	}
	if length < 0 {
		length = 0
	}

	if e.meta.Loadable {
		full, _ := s.FullString(name)
		runes := []rune(full)
		if from > len(runes) {
			from = len(runes)
		}
		end := from + length
		if end > len(runes) {
			end = len(runes)
		}
		return string(runes[from:end]), true
	}

	r := charreader.NewStream(bytes.NewReader(e.data))
	if from > 0 {
		_ = r.Skip(from)
	}
	sb := sliceBuilderPool.Get()
	defer sliceBuilderPool.Put(sb)
	for i := 0; i < length; i++ {
		c, more, err := r.Next()
		if err != nil || !more {
			break
		}
		sb.WriteRune(c)
	}
	return sb.String(), true
}
