// Package search is the public facade over the substring search engine:
// register named sources, search for an exact substring across every
// source, and read back raw or sliced content.
//
// Grounded on the teacher library's pkg/length_similarity.go facade
// shape (functional options over a config struct, a default logger
// wired in New if none is supplied), generalized from a single stateless
// calculator to a stateful engine with its own lifecycle.
package search

import (
	"context"
	"io"

	"github.com/baditaflorin/go_substring_search/internal/adapters/logger"
	"github.com/baditaflorin/go_substring_search/internal/core/domain"
	"github.com/baditaflorin/go_substring_search/internal/engine"
	"github.com/baditaflorin/go_substring_search/internal/pool"
	"github.com/baditaflorin/go_substring_search/internal/ports"
	"github.com/baditaflorin/go_substring_search/internal/warmup"
	"github.com/baditaflorin/l"
)

// readChunkSize sizes the scratch buffer AddSource reuses across calls to
// read an arbitrary io.Reader in chunks rather than letting io.ReadAll
// grow its own one-off buffer per call.
const readChunkSize = 64 * 1024

var readBufPool = pool.NewBufferPool(readChunkSize)

// DefaultLoadToMemoryLimit is the byte threshold under which a source's
// decoded content may be cached in full (spec §4.3's load-policy).
const DefaultLoadToMemoryLimit = 10_000_000

// DefaultBuildIndexLimit is the byte threshold under which a source is
// tokenized into the word index at ingest time (spec §4.4's
// index-policy).
const DefaultBuildIndexLimit = 10_000_000

// Engine is the public substring search engine.
type Engine struct {
	e *engine.Engine
}

// Option configures an Engine at construction time.
type Option func(*config)

type config struct {
	loadToMemoryLimit int64
	buildIndexLimit   int64
	cacheDisabled     bool
	logger            ports.Logger
	warmUp            bool
	warmUpConfig      warmup.Config
}

// WithLoadToMemoryLimit overrides the default load-to-memory byte limit.
func WithLoadToMemoryLimit(limit int64) Option {
	return func(c *config) { c.loadToMemoryLimit = limit }
}

// WithBuildIndexLimit overrides the default build-index byte limit.
func WithBuildIndexLimit(limit int64) Option {
	return func(c *config) { c.buildIndexLimit = limit }
}

// WithCacheDisabled turns off the query-result cache entirely.
func WithCacheDisabled() Option {
	return func(c *config) { c.cacheDisabled = true }
}

// WithLogger supplies an existing l.Logger instead of the default one.
func WithLogger(lg l.Logger) Option {
	return func(c *config) { c.logger = logger.FromExisting(lg) }
}

// WithWarmUp runs the tokenizer/scanner/cache warmup routine during New,
// using cfg to size its concurrency and iteration counts.
func WithWarmUp(cfg warmup.Config) Option {
	return func(c *config) {
		c.warmUp = true
		c.warmUpConfig = cfg
	}
}

// New constructs an Engine, applying opts over the defaults.
func New(opts ...Option) (*Engine, error) {
	cfg := &config{
		loadToMemoryLimit: DefaultLoadToMemoryLimit,
		buildIndexLimit:   DefaultBuildIndexLimit,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		lg, err := logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
		cfg.logger = lg
	}

	eng := engine.New(engine.Config{
		LoadToMemoryLimit: cfg.loadToMemoryLimit,
		BuildIndexLimit:   cfg.buildIndexLimit,
		CacheDisabled:     cfg.cacheDisabled,
		Logger:            cfg.logger,
	})

	if cfg.warmUp {
		warmup.NewManager(cfg.logger, eng.Cache(), cfg.warmUpConfig).WarmUp(context.Background())
	}

	return &Engine{e: eng}, nil
}

// AddSource registers name with the full content read from r. It returns
// domain.ErrDuplicateSource, domain.ErrEmptySource, or an I/O error from
// reading r.
func (eng *Engine) AddSource(name string, r io.Reader) error {
	bufPtr := readBufPool.Get()
	defer readBufPool.Put(bufPtr)
	chunk := (*bufPtr)[:readChunkSize]

	var data []byte
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			data = append(data, chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return eng.e.AddSource(name, data)
}

// Search returns every occurrence of query across every registered
// source, as character offsets, keyed by source name. Sources with zero
// matches are omitted.
func (eng *Engine) Search(query string) domain.SearchResult {
	return eng.e.Search(query)
}

// Contains reports whether query occurs anywhere in any registered
// source.
func (eng *Engine) Contains(query string) bool {
	return eng.e.Contains(query)
}

// GetSlice returns the clamped character range [from, from+length) of
// name's content.
func (eng *Engine) GetSlice(name string, from, length int) (string, bool) {
	return eng.e.GetSlice(name, from, length)
}

// GetSource returns a fresh raw byte reader over name's content.
func (eng *Engine) GetSource(name string) (io.Reader, bool) {
	return eng.e.GetSource(name)
}

// ListNames returns every registered source name.
func (eng *Engine) ListNames() []string {
	return eng.e.ListNames()
}

// Stats returns a diagnostic snapshot of the engine's current state.
func (eng *Engine) Stats() domain.Stats {
	return eng.e.Stats()
}
