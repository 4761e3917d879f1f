// Package searchers provides the built-in Searcher implementations:
// semantic (BM25/tokenized/exact field scoring), fuzzy (Jaro-Winkler),
// tagged (TRT-aware tag intersection), vector (cosine/Euclidean), and
// range (numeric field comparisons).
//
// Grounded on original_source/src/searchers/{semantic,fuzzy,tagged}.rs,
// rebuilt against filter.AttrNode record access instead of serde_json, and
// against the core's own pkg/bm25, pkg/tokenize, pkg/fuzzy, pkg/trt,
// pkg/exactmatch, and pkg/vectormath rather than re-deriving the math.
package searchers

import (
	"sort"
	"strings"

	"github.com/kittclouds/searus/pkg/bm25"
	"github.com/kittclouds/searus/pkg/exactmatch"
	"github.com/kittclouds/searus/pkg/filter"
	"github.com/kittclouds/searus/pkg/rules"
	"github.com/kittclouds/searus/pkg/searus"
	"github.com/kittclouds/searus/pkg/tokenize"
)

// Semantic scores records by running each configured field through its
// rule's matcher (Exact / BM25 / Tokenized; Fuzzy is delegated to Fuzzy).
type Semantic[T any] struct {
	toAttr filter.ToAttrNode[T]
	rules  rules.SemanticRules
	scorer *bm25.Scorer
}

// NewSemantic builds a Semantic searcher with the default BM25 scorer.
func NewSemantic[T any](toAttr filter.ToAttrNode[T], semanticRules rules.SemanticRules) *Semantic[T] {
	return &Semantic[T]{toAttr: toAttr, rules: semanticRules, scorer: bm25.DefaultScorer()}
}

func (s *Semantic[T]) Kind() searus.SearcherKind { return searus.KindSemantic }

func (s *Semantic[T]) Search(ctx searus.SearchContext[T], query *searus.Query) []searus.SearusMatch[T] {
	if query.Text == nil {
		return nil
	}
	queryTerms := tokenize.Tokenize(*query.Text)
	if len(queryTerms) == 0 {
		return nil
	}

	items := ctx.Items()
	if len(items) == 0 {
		return nil
	}

	attrs := make([]filter.AttrNode, len(items))
	survivors := make([]int, 0, len(items))
	for i, item := range items {
		attr := s.toAttr(item)
		attrs[i] = attr
		if query.Filters != nil && !query.Filters.Evaluate(attr) {
			continue
		}
		survivors = append(survivors, i)
	}
	if len(survivors) == 0 {
		return nil
	}

	fieldRules := s.flatFieldRules()
	stats := s.corpusStats(survivors, attrs, fieldRules)
	exact := exactmatch.New([]string{strings.ToLower(strings.Join(queryTerms, " "))})

	results := make([]searus.SearusMatch[T], 0, len(survivors))
	for _, idx := range survivors {
		attr := attrs[idx]
		var total float32
		fieldScores := make(map[string]float32)
		matchedSet := make(map[string]bool)

		for fieldName, rule := range fieldRules {
			text, ok := filter.GetString(attr, fieldName)
			if !ok {
				continue
			}
			fieldScore, matched := s.scoreField(queryTerms, text, rule, stats, exact)
			if fieldScore <= 0 {
				continue
			}
			weighted := fieldScore * float32(rule.Boost) * float32(rule.Priority)
			fieldScores[fieldName] = weighted
			total += weighted
			for _, t := range matched {
				matchedSet[t] = true
			}
		}

		if total <= 0 {
			continue
		}

		m := searus.NewMatch(idx, items[idx], total)
		m.FieldScores = fieldScores
		if len(matchedSet) > 0 {
			terms := make([]string, 0, len(matchedSet))
			for t := range matchedSet {
				terms = append(terms, t)
			}
			sort.Strings(terms)
			m = m.WithDetail(searus.SearchDetail{Semantic: &searus.SemanticDetail{
				MatchedTerms: terms,
				Field:        "multiple",
				Weight:       total,
			}})
		}
		results = append(results, m)
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// flatFieldRules flattens the top-level field rules and the nested
// ObjectRule field rules into one map keyed by dot path (object rules are
// AccessDirect-only, so "objectName.fieldName" is the same path
// filter.Get already knows how to navigate). This lets Search and
// corpusStats treat top-level and nested-object fields identically instead
// of special-casing the nested walk.
func (s *Semantic[T]) flatFieldRules() map[string]rules.FieldRule {
	flat := make(map[string]rules.FieldRule, len(s.rules.Fields))
	for name, rule := range s.rules.Fields {
		flat[name] = rule
	}
	for objectName, obj := range s.rules.Objects {
		for fieldName, rule := range obj.Fields {
			flat[objectName+"."+fieldName] = rule
		}
	}
	return flat
}

// corpusStats mirrors original_source's calculate_corpus_stats: document
// frequency and average length are accumulated per configured field
// occurrence (top-level and nested-object) across filter-surviving
// records, not per record.
func (s *Semantic[T]) corpusStats(survivors []int, attrs []filter.AttrNode, fieldRules map[string]rules.FieldRule) bm25.Stats {
	docFreq := make(map[string]int)
	totalLength := 0
	docCount := 0

	for _, idx := range survivors {
		docTerms := make(map[string]bool)
		for fieldName := range fieldRules {
			text, ok := filter.GetString(attrs[idx], fieldName)
			if !ok {
				continue
			}
			tokens := tokenize.Tokenize(text)
			totalLength += len(tokens)
			docCount++
			for _, tok := range tokens {
				docTerms[tok] = true
			}
		}
		for term := range docTerms {
			docFreq[term]++
		}
	}

	avgDocLen := 0.0
	if docCount > 0 {
		avgDocLen = float64(totalLength) / float64(docCount)
	}

	return bm25.Stats{DocFreq: docFreq, TotalDocs: len(survivors), AvgDocLen: avgDocLen}
}

func (s *Semantic[T]) scoreField(
	queryTerms []string,
	text string,
	rule rules.FieldRule,
	stats bm25.Stats,
	exact *exactmatch.Matcher,
) (float32, []string) {
	switch rule.Matcher {
	case rules.MatchExact:
		if exact.Contains(text) {
			return 1.0, queryTerms
		}
		return 0, nil

	case rules.MatchBM25:
		docTerms := tokenize.TermFrequencies(text)
		docLength := len(tokenize.Tokenize(text))
		score := s.scorer.Score(queryTerms, docTerms, docLength, stats)
		matched := make([]string, 0, len(queryTerms))
		for _, term := range queryTerms {
			if _, ok := docTerms[term]; ok {
				matched = append(matched, term)
			}
		}
		return float32(score), matched

	case rules.MatchTokenized:
		docTerms := tokenize.TermFrequencies(text)
		var score float32
		matched := make([]string, 0, len(queryTerms))
		for _, term := range queryTerms {
			if freq, ok := docTerms[term]; ok {
				matched = append(matched, term)
				score += float32(freq)
			}
		}
		return score, matched

	case rules.MatchFuzzy:
		return 0, nil

	default:
		return 0, nil
	}
}
