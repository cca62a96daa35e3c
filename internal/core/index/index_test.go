package index

import (
	"testing"

	"github.com/baditaflorin/go_substring_search/internal/core/domain"
)

func TestMergeAndLookup(t *testing.T) {
	ix := New()

	local1 := map[uint32][]domain.WordRecord{
		42: {{SourceName: "a", WordHash: 42, WordPos: 0, WordLength: 4}},
	}
	local2 := map[uint32][]domain.WordRecord{
		42: {{SourceName: "b", WordHash: 42, WordPos: 10, WordLength: 4}},
		7:  {{SourceName: "b", WordHash: 7, WordPos: 0, WordLength: 2}},
	}

	ix.Merge(local1)
	ix.Merge(local2)

	bucket := ix.Lookup(42)
	if len(bucket) != 2 {
		t.Fatalf("Lookup(42) returned %d records, want 2: %+v", len(bucket), bucket)
	}

	if len(ix.Lookup(7)) != 1 {
		t.Fatalf("Lookup(7) returned %d records, want 1", len(ix.Lookup(7)))
	}

	if len(ix.Lookup(999)) != 0 {
		t.Fatalf("Lookup of an absent hash returned a non-empty bucket")
	}
}

func TestWordCount(t *testing.T) {
	ix := New()
	if ix.WordCount() != 0 {
		t.Fatalf("WordCount of an empty index = %d, want 0", ix.WordCount())
	}

	ix.Merge(map[uint32][]domain.WordRecord{
		1: {{WordHash: 1}, {WordHash: 1}},
		2: {{WordHash: 2}},
	})
	if got := ix.WordCount(); got != 3 {
		t.Fatalf("WordCount = %d, want 3", got)
	}
}
