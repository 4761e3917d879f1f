package searchers

import (
	"testing"

	"github.com/kittclouds/searus/pkg/searus"
)

func TestVectorCosineRanking(t *testing.T) {
	docs := []doc{
		{vector: []float32{1, 0, 0}},
		{vector: []float32{0, 1, 0}},
	}
	s := NewVector(docToAttr, "vector")
	query := searus.NewQuery().Vector([]float32{1, 0, 0}).Build()
	ctx := searus.NewSearchContext(docs)
	results := s.Search(ctx, &query)

	if len(results) != 2 {
		t.Fatalf("expected both docs to score (cosine always in range), got %d", len(results))
	}
	if results[0].ID != 0 {
		t.Fatalf("expected the identical vector to rank first, got %+v", results)
	}
}

func TestVectorThresholdExcludesLowSimilarity(t *testing.T) {
	docs := []doc{{vector: []float32{0, 1, 0}}}
	s := NewVector(docToAttr, "vector").WithThreshold(0.9)
	query := searus.NewQuery().Vector([]float32{1, 0, 0}).Build()
	ctx := searus.NewSearchContext(docs)
	results := s.Search(ctx, &query)
	if len(results) != 0 {
		t.Fatalf("expected orthogonal vector to be excluded by threshold, got %+v", results)
	}
}

func TestVectorNoQueryVectorReturnsNil(t *testing.T) {
	s := NewVector(docToAttr, "vector")
	query := searus.NewQuery().Build()
	ctx := searus.NewSearchContext([]doc{{vector: []float32{1}}})
	if results := s.Search(ctx, &query); results != nil {
		t.Fatalf("expected nil with no query vector, got %v", results)
	}
}
