package searchers

import (
	"sort"

	"github.com/kittclouds/searus/pkg/filter"
	"github.com/kittclouds/searus/pkg/fuzzy"
	"github.com/kittclouds/searus/pkg/searus"
	"github.com/kittclouds/searus/pkg/tokenize"
)

// DefaultFuzzyThreshold is the minimum similarity a match must clear.
const DefaultFuzzyThreshold = 0.8

// Fuzzy scores records by the best Jaro-Winkler similarity between any
// query token and any token of any configured field. Scanning a record
// stops at the first pair whose similarity exceeds fuzzy.EarlyExitThreshold.
type Fuzzy[T any] struct {
	toAttr    filter.ToAttrNode[T]
	fields    []string
	threshold float64
}

// NewFuzzy builds a Fuzzy searcher over the given field paths with the
// default threshold (0.8).
func NewFuzzy[T any](toAttr filter.ToAttrNode[T], fields []string) *Fuzzy[T] {
	return &Fuzzy[T]{toAttr: toAttr, fields: fields, threshold: DefaultFuzzyThreshold}
}

// WithThreshold returns a copy of the searcher using the given threshold.
func (f *Fuzzy[T]) WithThreshold(threshold float64) *Fuzzy[T] {
	clone := *f
	clone.threshold = threshold
	return &clone
}

func (f *Fuzzy[T]) Kind() searus.SearcherKind { return searus.KindFuzzy }

func (f *Fuzzy[T]) Search(ctx searus.SearchContext[T], query *searus.Query) []searus.SearusMatch[T] {
	if query.Text == nil {
		return nil
	}
	queryTerms := tokenize.Tokenize(*query.Text)
	if len(queryTerms) == 0 {
		return nil
	}

	items := ctx.Items()
	results := make([]searus.SearusMatch[T], 0)

	for idx, item := range items {
		attr := f.toAttr(item)
		if query.Filters != nil && !query.Filters.Evaluate(attr) {
			continue
		}

		maxSimilarity := 0.0
		var bestQuery, bestDoc string
		found := false

	fieldLoop:
		for _, fieldPath := range f.fields {
			text, ok := filter.GetString(attr, fieldPath)
			if !ok {
				continue
			}
			docTerms := tokenize.Tokenize(text)

			for _, q := range queryTerms {
				for _, d := range docTerms {
					if fuzzy.SkipByLengthRatio(q, d) {
						continue
					}
					similarity := fuzzy.Similarity(q, d)
					if similarity >= f.threshold && similarity > maxSimilarity {
						maxSimilarity = similarity
						bestQuery, bestDoc = q, d
						found = true
					}
					if similarity > fuzzy.EarlyExitThreshold {
						break fieldLoop
					}
				}
			}
		}

		if !found {
			continue
		}

		m := searus.NewMatch(idx, item, float32(maxSimilarity))
		m = m.WithDetail(searus.SearchDetail{Fuzzy: &searus.FuzzyDetail{
			MatchedTerm:  bestDoc,
			OriginalTerm: bestQuery,
			Similarity:   float32(maxSimilarity),
		}})
		results = append(results, m)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}
