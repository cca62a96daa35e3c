// Package multiscan wraps a multi-pattern Aho-Corasick matcher for the
// CLI-only `scan` utility subcommand. It is deliberately not wired into
// the core query planner: the planner's correctness properties are
// specified against the single-pattern KMP automaton, and swapping in a
// multi-pattern automaton there would change which algorithm satisfies
// those properties without adding a capability the core needs.
//
// Grounded on github.com/coregx/ahocorasick as used by the pack's
// coregx-coregex engine: meta/compile.go builds an automaton via
// ahocorasick.NewBuilder().AddPattern(lit) (repeated) then .Build(), and
// meta/find.go / meta/ismatch.go consume it via Automaton.Find(haystack,
// at) (returning a *Match with Start/End fields, or nil) and
// Automaton.IsMatch(haystack). This wrapper builds one multi-pattern
// automaton for a fast combined existence check, and one single-pattern
// automaton per needle to count that needle's occurrences via repeated
// Find calls — Find never exposes which pattern matched, so per-needle
// counting needs a dedicated automaton per needle.
package multiscan

import "github.com/coregx/ahocorasick"

// Automaton scans a byte slice for any of a fixed set of needles.
type Automaton struct {
	combined  *ahocorasick.Automaton
	perNeedle map[string]*ahocorasick.Automaton
	needles   []string
}

// Build constructs an Automaton over needles. Needles are matched
// case-sensitively, byte for byte (the CLI's `scan` subcommand is a
// utility for literal multi-pattern checks, not a character-offset
// search — it has no obligation to the code-point offset convention the
// core engine uses).
func Build(needles []string) (*Automaton, error) {
	combinedBuilder := ahocorasick.NewBuilder()
	perNeedle := make(map[string]*ahocorasick.Automaton, len(needles))

	for _, n := range needles {
		combinedBuilder.AddPattern([]byte(n))

		b := ahocorasick.NewBuilder()
		b.AddPattern([]byte(n))
		auto, err := b.Build()
		if err != nil {
			return nil, err
		}
		perNeedle[n] = auto
	}

	combined, err := combinedBuilder.Build()
	if err != nil {
		return nil, err
	}

	return &Automaton{combined: combined, perNeedle: perNeedle, needles: needles}, nil
}

// AnyMatch reports whether any needle occurs anywhere in haystack, using
// the combined multi-pattern automaton in a single pass.
func (a *Automaton) AnyMatch(haystack []byte) bool {
	return a.combined.IsMatch(haystack)
}

// Scan returns, for every needle that occurs at least once in haystack,
// the number of occurrences found.
func (a *Automaton) Scan(haystack []byte) map[string]int {
	counts := make(map[string]int, len(a.needles))
	for _, n := range a.needles {
		auto := a.perNeedle[n]
		count := 0
		at := 0
		for at <= len(haystack) {
			m := auto.Find(haystack, at)
			if m == nil {
				break
			}
			count++
			if m.End <= at {
				at++
			} else {
				at = m.End
			}
		}
		if count > 0 {
			counts[n] = count
		}
	}
	return counts
}
