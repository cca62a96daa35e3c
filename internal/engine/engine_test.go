package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/baditaflorin/go_substring_search/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }

func newTestEngine() *Engine {
	return New(Config{
		LoadToMemoryLimit: 1000,
		BuildIndexLimit:   1000,
		Logger:            nopLogger{},
	})
}

func TestAddSourceAndSearch(t *testing.T) {
	e := newTestEngine()

	if err := e.AddSource("a", []byte("the quick brown fox")); err != nil {
		t.Fatalf("AddSource returned error: %v", err)
	}

	got := e.Search("brown")
	want := domain.SearchResult{"a": {10}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Search(brown) = %v, want %v", got, want)
	}
}

func TestAddSourceRejectsDuplicateAndEmpty(t *testing.T) {
	e := newTestEngine()

	if err := e.AddSource("a", []byte("hello")); err != nil {
		t.Fatalf("AddSource returned error: %v", err)
	}
	if err := e.AddSource("a", []byte("world")); err != domain.ErrDuplicateSource {
		t.Fatalf("AddSource of a duplicate name returned %v, want ErrDuplicateSource", err)
	}
	if err := e.AddSource("b", nil); err != domain.ErrEmptySource {
		t.Fatalf("AddSource of empty content returned %v, want ErrEmptySource", err)
	}

	names := e.ListNames()
	if len(names) != 1 || names[0] != "a" {
		t.Fatalf("ListNames() = %v, want [a] (failed registrations must not register a name)", names)
	}
}

func TestCacheInvalidatedOnAddSource(t *testing.T) {
	e := newTestEngine()

	if err := e.AddSource("a", []byte("the quick brown fox")); err != nil {
		t.Fatalf("AddSource returned error: %v", err)
	}

	first := e.Search("brown")
	if len(first) != 1 {
		t.Fatalf("Search(brown) = %v, want one match", first)
	}

	if err := e.AddSource("b", []byte("another brown bear")); err != nil {
		t.Fatalf("AddSource returned error: %v", err)
	}

	second := e.Search("brown")
	if len(second) != 2 {
		t.Fatalf("Search(brown) after adding a second source with a match = %v, want two matches (cache must invalidate)", second)
	}
}

func TestContains(t *testing.T) {
	e := newTestEngine()
	if err := e.AddSource("a", []byte("the quick brown fox")); err != nil {
		t.Fatalf("AddSource returned error: %v", err)
	}

	if !e.Contains("brown") {
		t.Fatalf("Contains(brown) = false, want true")
	}
	if e.Contains("nonexistent substring here") {
		t.Fatalf("Contains of an absent substring = true, want false")
	}
}

func TestGetSliceAndGetSource(t *testing.T) {
	e := newTestEngine()
	if err := e.AddSource("a", []byte("0123456789")); err != nil {
		t.Fatalf("AddSource returned error: %v", err)
	}

	slice, ok := e.GetSlice("a", 2, 4)
	if !ok || slice != "2345" {
		t.Fatalf("GetSlice(a, 2, 4) = %q, %v, want %q, true", slice, ok, "2345")
	}

	r, ok := e.GetSource("a")
	if !ok {
		t.Fatalf("GetSource(a) returned ok=false")
	}
	var sb strings.Builder
	buf := make([]byte, 4)
	for {
		n, err := r.Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			break
		}
	}
	if sb.String() != "0123456789" {
		t.Fatalf("GetSource(a) content = %q, want %q", sb.String(), "0123456789")
	}
}

func TestStats(t *testing.T) {
	e := newTestEngine()
	if err := e.AddSource("a", []byte("hello world")); err != nil {
		t.Fatalf("AddSource returned error: %v", err)
	}
	_ = e.Search("hello")

	stats := e.Stats()
	if stats.SourceCount != 1 {
		t.Fatalf("Stats().SourceCount = %d, want 1", stats.SourceCount)
	}
	if stats.ContentBytes != 11 {
		t.Fatalf("Stats().ContentBytes = %d, want 11", stats.ContentBytes)
	}
	if stats.CachedQueries != 1 {
		t.Fatalf("Stats().CachedQueries = %d, want 1", stats.CachedQueries)
	}
}
