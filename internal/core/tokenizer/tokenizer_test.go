package tokenizer

import (
	"testing"

	"github.com/baditaflorin/go_substring_search/internal/core/charreader"
	"github.com/baditaflorin/go_substring_search/internal/core/domain"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []domain.WordRecord
	}{
		{
			name:  "empty input yields no records",
			input: "",
			want:  nil,
		},
		{
			name:  "leading delimiter produces no initial word",
			input: "  hello",
			want: []domain.WordRecord{
				{SourceName: "t", WordHash: HashWord([]rune("hello")), WordPos: 2, WordLength: 5},
			},
		},
		{
			name:  "trailing in-progress word is emitted at EOF",
			input: "hello world",
			want: []domain.WordRecord{
				{SourceName: "t", WordHash: HashWord([]rune("hello")), WordPos: 0, WordLength: 5},
				{SourceName: "t", WordHash: HashWord([]rune("world")), WordPos: 6, WordLength: 5},
			},
		},
		{
			name:  "digits and letters are both word characters",
			input: "abc123 def",
			want: []domain.WordRecord{
				{SourceName: "t", WordHash: HashWord([]rune("abc123")), WordPos: 0, WordLength: 6},
				{SourceName: "t", WordHash: HashWord([]rune("def")), WordPos: 7, WordLength: 3},
			},
		},
		{
			name:  "punctuation-only input yields no records",
			input: "!!! ,,, ...",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []domain.WordRecord
			err := Tokenize("t", charreader.NewString(tt.input), func(w domain.WordRecord) {
				got = append(got, w)
			})
			if err != nil {
				t.Fatalf("Tokenize returned error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("record %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHashWordStability(t *testing.T) {
	a := HashWord([]rune("hello"))
	b := HashWord([]rune("hello"))
	if a != b {
		t.Fatalf("HashWord not stable across calls: %d != %d", a, b)
	}

	c := HashWord([]rune("world"))
	if a == c {
		t.Fatalf("HashWord produced the same hash for distinct words (possible but exceedingly unlikely for this pair): %d", a)
	}
}

func TestIsWordChar(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', '9'} {
		if !IsWordChar(r) {
			t.Errorf("IsWordChar(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{' ', '.', ',', '\n', '-'} {
		if IsWordChar(r) {
			t.Errorf("IsWordChar(%q) = true, want false", r)
		}
	}
}
