// Package exactmatch provides Aho-Corasick-accelerated exact substring
// matching for the semantic searcher's Exact field rule.
//
// Adapted from the teacher's pkg/dafsa RuntimeDictionary, which builds one
// Aho-Corasick automaton over a fixed vocabulary and scans arbitrary text
// against it. Here the automaton is built per query (its one pattern is
// the query's lowercased tokens joined by single spaces) and scanned
// against each candidate field,
// narrowed from dafsa's narrative entity-dictionary use down to the plain
// case-insensitive "does this field contain this exact phrase" check the
// semantic searcher's Exact matcher needs; the EntityKind/alias-generation
// machinery dafsa built around the automaton has no role here and is
// dropped.
package exactmatch

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Matcher scans text for any of a fixed set of patterns.
type Matcher struct {
	ac       ahocorasick.AhoCorasick
	patterns []string
}

// New compiles patterns into an Aho-Corasick automaton. Patterns are
// matched case-insensitively; an empty pattern list yields a Matcher that
// never matches anything.
func New(patterns []string) *Matcher {
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	return &Matcher{ac: builder.Build(patterns), patterns: patterns}
}

// Contains reports whether text contains any configured pattern.
func (m *Matcher) Contains(text string) bool {
	if len(m.patterns) == 0 {
		return false
	}
	matches := m.ac.FindAll(strings.ToLower(text))
	return len(matches) > 0
}

// MatchedPatterns returns the distinct patterns found in text, in the
// order of their first occurrence in text.
func (m *Matcher) MatchedPatterns(text string) []string {
	if len(m.patterns) == 0 {
		return nil
	}
	matches := m.ac.FindAll(strings.ToLower(text))
	seen := make(map[int]bool, len(matches))
	result := make([]string, 0, len(matches))
	for _, match := range matches {
		idx := match.Pattern()
		if seen[idx] {
			continue
		}
		seen[idx] = true
		result = append(result, m.patterns[idx])
	}
	return result
}
