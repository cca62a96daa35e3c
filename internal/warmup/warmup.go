// Package warmup exercises the hot code paths — tokenizing, KMP
// scanning, and the query-result cache — before real traffic arrives, so
// the first real request doesn't pay for cold allocator/GC behavior.
//
// Grounded on the teacher library's internal/warmup.Manager (same
// concurrency/iteration-count shape, same forced-GC-at-the-end
// behavior), retargeted from calculator/normalizer/stream-processor
// warmup to tokenizer/KMP/cache warmup.
package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_substring_search/internal/adapters/cache"
	"github.com/baditaflorin/go_substring_search/internal/core/charreader"
	"github.com/baditaflorin/go_substring_search/internal/core/domain"
	"github.com/baditaflorin/go_substring_search/internal/core/kmp"
	"github.com/baditaflorin/go_substring_search/internal/core/tokenizer"
	"github.com/baditaflorin/go_substring_search/internal/ports"
)

// Config defines configuration for warming up the system.
type Config struct {
	// Concurrency is the number of concurrent warmup routines to run.
	Concurrency int
	// Iterations is the number of iterations per routine.
	Iterations int
	// SampleTextSize sizes the generated warmup text: it holds
	// SampleTextSize/5 space-separated words, so its length in characters
	// is only roughly SampleTextSize (2000 gives 2274 characters).
	SampleTextSize int
	// Duration bounds total warmup time; 0 means no limit.
	Duration time.Duration
	// ForceGC runs a GC cycle after warmup completes.
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:    runtime.NumCPU(),
		Iterations:     1000,
		SampleTextSize: 2000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager runs the warmup routines.
type Manager struct {
	logger ports.Logger
	cache  *cache.Cache
	config Config
}

// NewManager creates a warmup manager. c may be nil if there is no
// result cache to warm (e.g. it was disabled via configuration).
func NewManager(logger ports.Logger, c *cache.Cache, config Config) *Manager {
	return &Manager{logger: logger, cache: c, config: config}
}

// WarmUp exercises the tokenizer, the KMP scanner, and the result cache
// concurrently for up to config.Duration.
func (wm *Manager) WarmUp(ctx context.Context) {
	start := time.Now()
	wm.logger.Info("starting warmup",
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.warmUpTokenizer(warmupCtx)
	wm.warmUpKMP(warmupCtx)
	wm.warmUpCache(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("warmup completed", "duration", time.Since(start))
}

func (wm *Manager) warmUpTokenizer(ctx context.Context) {
	text := generateSampleText(wm.config.SampleTextSize)
	wm.logger.Debug("warming up tokenizer")

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				_ = tokenizer.Tokenize("warmup", charreader.NewString(text), func(domain.WordRecord) {})
			}
		}()
	}
	wg.Wait()
}

func (wm *Manager) warmUpKMP(ctx context.Context) {
	text := []rune(generateSampleText(wm.config.SampleTextSize))
	pattern := []rune("quick brown")
	wm.logger.Debug("warming up kmp scanner")

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				_ = kmp.ScanInMemory(text, pattern)
			}
		}()
	}
	wg.Wait()
}

func (wm *Manager) warmUpCache(ctx context.Context) {
	if wm.cache == nil {
		return
	}
	wm.logger.Debug("warming up result cache")

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func(routineID int) {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations/10; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				wm.cache.Put("warmup-query", domain.SearchResult{"warmup-source": {0}})
				_, _ = wm.cache.Get("warmup-query")
			}
		}(i)
	}
	wg.Wait()
	wm.cache.Clear()
}

func generateSampleText(size int) string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"hello", "world", "lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
	}
	var sb strings.Builder
	wordsNeeded := size / 5
	for i := 0; i < wordsNeeded; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
	}
	return sb.String()
}
