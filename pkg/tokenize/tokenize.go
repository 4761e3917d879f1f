// Package tokenize splits free text into lowercase word tokens using
// Unicode word-boundary segmentation.
package tokenize

import (
	"strings"

	"github.com/blevesearch/segment"
)

// Tokenize splits text into lowercase word tokens, discarding whitespace,
// punctuation, and other non-word segments. Segmentation follows Unicode
// UAX#29 word-boundary rules, so multi-byte scripts and combining marks are
// treated as single graphemes rather than split on raw bytes.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	segmenter := segment.NewWordSegmenter(strings.NewReader(text))
	tokens := make([]string, 0, len(text)/5+1)

	for segmenter.Segment() {
		if segmenter.Type() == segment.None {
			continue
		}
		word := strings.ToLower(string(segmenter.Bytes()))
		if word != "" {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

// TermFrequencies returns a map from token to the number of times it occurs
// in text.
func TermFrequencies(text string) map[string]int {
	tokens := Tokenize(text)
	freqs := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freqs[t]++
	}
	return freqs
}
