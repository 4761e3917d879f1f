package searchers

import (
	"sort"

	"github.com/kittclouds/searus/pkg/filter"
	"github.com/kittclouds/searus/pkg/searus"
)

// Range scores records by whether a numeric field falls within (or
// satisfies) a comparison against the query's filter expression, emitting
// a constant score of 1.0 for every match. Supplemented as the built-in
// covering the spec's Range SearcherKind, for which the source left no
// concrete implementation; it reuses the filter package's comparison
// operators (Lt/Le/Gt/Ge) rather than re-deriving numeric range logic.
type Range[T any] struct {
	toAttr filter.ToAttrNode[T]
}

// NewRange builds a Range searcher. It matches purely on query.Filters;
// records surviving the filter are the results.
func NewRange[T any](toAttr filter.ToAttrNode[T]) *Range[T] {
	return &Range[T]{toAttr: toAttr}
}

func (s *Range[T]) Kind() searus.SearcherKind { return searus.KindRange }

func (s *Range[T]) Search(ctx searus.SearchContext[T], query *searus.Query) []searus.SearusMatch[T] {
	if query.Filters == nil {
		return nil
	}

	items := ctx.Items()
	results := make([]searus.SearusMatch[T], 0)

	for idx, item := range items {
		attr := s.toAttr(item)
		if !query.Filters.Evaluate(attr) {
			continue
		}
		results = append(results, searus.NewMatch(idx, item, 1.0))
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}
