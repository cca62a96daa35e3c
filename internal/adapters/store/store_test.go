package store

import (
	"io"
	"testing"

	"github.com/baditaflorin/go_substring_search/internal/core/domain"
)

func TestRegisterDuplicateAndEmpty(t *testing.T) {
	s := New()

	if _, err := s.Register("a", []byte("hello"), 1000, 1000); err != nil {
		t.Fatalf("Register returned unexpected error: %v", err)
	}

	if _, err := s.Register("a", []byte("world"), 1000, 1000); err != domain.ErrDuplicateSource {
		t.Fatalf("Register of a duplicate name returned %v, want ErrDuplicateSource", err)
	}

	if _, err := s.Register("b", nil, 1000, 1000); err != domain.ErrEmptySource {
		t.Fatalf("Register of empty content returned %v, want ErrEmptySource", err)
	}

	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 (failed registrations must not mutate the store)", s.Count())
	}
}

func TestRegisterPolicyFlags(t *testing.T) {
	s := New()
	src, err := s.Register("small", []byte("x"), 10, 5)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !src.Loadable {
		t.Fatalf("a 1-byte source under a 10-byte load limit should be Loadable")
	}
	if !src.Indexable {
		t.Fatalf("a 1-byte source under a 5-byte index limit should be Indexable")
	}

	big, err := s.Register("big", []byte("xxxxxxxxxx"), 5, 5)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if big.Loadable || big.Indexable {
		t.Fatalf("a 10-byte source over 5-byte limits should be neither Loadable nor Indexable: %+v", big)
	}
}

func TestFullStringCaching(t *testing.T) {
	s := New()
	if _, err := s.Register("a", []byte("hello world"), 1000, 1000); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	got, ok := s.FullString("a")
	if !ok || got != "hello world" {
		t.Fatalf("FullString(a) = %q, %v, want %q, true", got, ok, "hello world")
	}

	s.Reclaim("a")
	got2, ok2 := s.FullString("a")
	if !ok2 || got2 != "hello world" {
		t.Fatalf("FullString(a) after Reclaim = %q, %v, want %q, true", got2, ok2, "hello world")
	}

	if _, ok := s.FullString("missing"); ok {
		t.Fatalf("FullString of an unregistered name returned ok=true")
	}
}

func TestFullStringRejectsNonLoadable(t *testing.T) {
	s := New()
	if _, err := s.Register("big", []byte("0123456789"), 5, 1000); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, ok := s.FullString("big"); ok {
		t.Fatalf("FullString of a non-loadable source returned ok=true")
	}
}

func TestSliceClamping(t *testing.T) {
	s := New()
	content := "0123456789"
	if _, err := s.Register("a", []byte(content), 1000, 1000); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	tests := []struct {
		from, length int
		want         string
	}{
		{0, 5, "01234"},
		{5, 100, "56789"},
		{-3, 5, "01234"},
		{100, 5, ""},
		{0, 0, ""},
	}
	for _, tt := range tests {
		got, ok := s.Slice("a", tt.from, tt.length)
		if !ok {
			t.Fatalf("Slice(a, %d, %d) returned ok=false", tt.from, tt.length)
		}
		if got != tt.want {
			t.Errorf("Slice(a, %d, %d) = %q, want %q", tt.from, tt.length, got, tt.want)
		}
	}

	if _, ok := s.Slice("missing", 0, 5); ok {
		t.Fatalf("Slice of an unregistered name returned ok=true")
	}
}

func TestSliceClampingStreamed(t *testing.T) {
	s := New()
	content := "0123456789"
	if _, err := s.Register("a", []byte(content), 0, 1000); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	got, ok := s.Slice("a", 5, 100)
	if !ok || got != "56789" {
		t.Fatalf("Slice(a, 5, 100) = %q, %v, want %q, true", got, ok, "56789")
	}
}

func TestReaderAndOpenAreIndependentPerCall(t *testing.T) {
	s := New()
	if _, err := s.Register("a", []byte("hello"), 1000, 1000); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	r1, ok := s.Reader("a")
	if !ok {
		t.Fatalf("Reader(a) returned ok=false")
	}
	r2, ok := s.Reader("a")
	if !ok {
		t.Fatalf("Reader(a) returned ok=false")
	}

	c1, _, _ := r1.Next()
	c2, _, _ := r2.Next()
	if c1 != c2 {
		t.Fatalf("two fresh readers over the same source disagreed on the first code point: %q vs %q", c1, c2)
	}

	raw, ok := s.Open("a")
	if !ok {
		t.Fatalf("Open(a) returned ok=false")
	}
	data, err := io.ReadAll(raw)
	if err != nil {
		t.Fatalf("reading Open(a) returned error: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("Open(a) content = %q, want %q", data, "hello")
	}
}

func TestNamesAndAllAreDefensiveSnapshots(t *testing.T) {
	s := New()
	if _, err := s.Register("a", []byte("x"), 1000, 1000); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	names := s.Names()
	names[0] = "mutated"
	if s.Names()[0] == "mutated" {
		t.Fatalf("mutating the slice returned by Names() corrupted the store")
	}

	all := s.All()
	all[0].Name = "mutated"
	if s.All()[0].Name == "mutated" {
		t.Fatalf("mutating a source returned by All() corrupted the store")
	}
}
