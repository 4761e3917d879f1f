package searchers

import (
	"sort"

	"github.com/kittclouds/searus/pkg/filter"
	"github.com/kittclouds/searus/pkg/searus"
	"github.com/kittclouds/searus/pkg/vectormath"
)

// Vector scores records by cosine similarity between query.Vector and a
// per-record embedding read from a configured field. Not built by
// original_source's searchers module (which left vector search to an
// external index); supplemented here as a built-in covering the spec's
// Vector SearcherKind without requiring callers to stand up an index
// adapter just to try vector search over an in-memory slice.
type Vector[T any] struct {
	toAttr     filter.ToAttrNode[T]
	vectorPath string
	threshold  float64
}

// NewVector builds a Vector searcher reading embeddings from vectorPath
// with a minimum similarity of 0, so records whose cosine similarity to the
// query is negative are not matched.
func NewVector[T any](toAttr filter.ToAttrNode[T], vectorPath string) *Vector[T] {
	return &Vector[T]{toAttr: toAttr, vectorPath: vectorPath}
}

// WithThreshold returns a copy requiring at least the given cosine similarity.
func (s *Vector[T]) WithThreshold(threshold float64) *Vector[T] {
	clone := *s
	clone.threshold = threshold
	return &clone
}

func (s *Vector[T]) Kind() searus.SearcherKind { return searus.KindVector }

func (s *Vector[T]) Search(ctx searus.SearchContext[T], query *searus.Query) []searus.SearusMatch[T] {
	if len(query.Vector) == 0 {
		return nil
	}

	items := ctx.Items()
	results := make([]searus.SearusMatch[T], 0)

	for idx, item := range items {
		attr := s.toAttr(item)
		if query.Filters != nil && !query.Filters.Evaluate(attr) {
			continue
		}

		vecNodes, ok := filter.GetArray(attr, s.vectorPath)
		if !ok || len(vecNodes) == 0 {
			continue
		}

		vector := make([]float32, len(vecNodes))
		valid := true
		for i, node := range vecNodes {
			if node.Kind != filter.KindNumber {
				valid = false
				break
			}
			vector[i] = float32(node.Number)
		}
		if !valid {
			continue
		}

		similarity := vectormath.CosineSimilarity(query.Vector, vector)
		if similarity < s.threshold {
			continue
		}

		distance := vectormath.EuclideanDistance(query.Vector, vector)

		m := searus.NewMatch(idx, item, float32(similarity))
		m = m.WithDetail(searus.SearchDetail{Vector: &searus.VectorDetail{
			Distance:   float32(distance),
			Similarity: float32(similarity),
		}})
		results = append(results, m)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}
