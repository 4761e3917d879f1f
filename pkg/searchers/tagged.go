package searchers

import (
	"sort"
	"strings"

	"github.com/kittclouds/searus/pkg/filter"
	"github.com/kittclouds/searus/pkg/searus"
	"github.com/kittclouds/searus/pkg/trt"
)

// DefaultTagField is the record field name tags are read from when the
// searcher is constructed without an explicit override.
const DefaultTagField = "tags"

// Tagged scores records by overlap between query.Tags and a record's tag
// field, optionally expanded through a Tag Relationship Tree so that
// related tags (not just exact ones) contribute to the match.
type Tagged[T any] struct {
	toAttr   filter.ToAttrNode[T]
	tagField string
	tree     *trt.Tree
}

// NewTagged builds a Tagged searcher reading tags from the default field
// ("tags") with no TRT configured.
func NewTagged[T any](toAttr filter.ToAttrNode[T]) *Tagged[T] {
	return &Tagged[T]{toAttr: toAttr, tagField: DefaultTagField}
}

// WithField returns a copy of the searcher reading tags from fieldName.
func (s *Tagged[T]) WithField(fieldName string) *Tagged[T] {
	clone := *s
	clone.tagField = fieldName
	return &clone
}

// WithTree returns a copy of the searcher using tree for tag expansion.
func (s *Tagged[T]) WithTree(tree *trt.Tree) *Tagged[T] {
	clone := *s
	clone.tree = tree
	return &clone
}

func (s *Tagged[T]) Kind() searus.SearcherKind { return searus.KindTags }

func (s *Tagged[T]) Search(ctx searus.SearchContext[T], query *searus.Query) []searus.SearusMatch[T] {
	if len(query.Tags) == 0 {
		return nil
	}

	expansion := s.expansion(query)

	items := ctx.Items()
	results := make([]searus.SearusMatch[T], 0)

	for idx, item := range items {
		attr := s.toAttr(item)
		if query.Filters != nil && !query.Filters.Evaluate(attr) {
			continue
		}

		tagNodes, ok := filter.GetArray(attr, s.tagField)
		if !ok || len(tagNodes) == 0 {
			continue
		}

		matchedCount := 0
		totalStrength := 0.0
		matchedTags := make([]string, 0)

		for _, node := range tagNodes {
			if node.Kind != filter.KindString {
				continue
			}
			lower := strings.ToLower(node.String)
			strength, ok := expansion[lower]
			if !ok {
				continue
			}
			matchedCount++
			totalStrength += strength
			matchedTags = append(matchedTags, node.String)
		}

		if matchedCount == 0 {
			continue
		}

		base := float64(matchedCount) / float64(len(query.Tags))
		avgStrength := totalStrength / float64(matchedCount)
		score := base * avgStrength

		m := searus.NewMatch(idx, item, float32(score))
		m = m.WithDetail(searus.SearchDetail{Tag: &searus.TagDetail{
			MatchedTags: matchedTags,
			TotalTags:   len(tagNodes),
		}})
		results = append(results, m)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// expansion builds the tag -> strength lookup used for matching: the TRT
// expansion when a tree and trt_depth are configured, otherwise a flat
// seed map at strength 1.0.
func (s *Tagged[T]) expansion(query *searus.Query) map[string]float64 {
	depth := query.Options.TRTDepth
	if s.tree != nil && depth > 0 {
		return s.tree.Expand(query.Tags, depth)
	}

	seed := make(map[string]float64, len(query.Tags))
	for _, tag := range query.Tags {
		seed[strings.ToLower(tag)] = 1.0
	}
	return seed
}
