package searus

import (
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// NormalizationMethod selects how each searcher's raw scores are rescaled
// onto a comparable range before merge.
type NormalizationMethod int

const (
	// MinMax rescales to [0, 1]; a degenerate all-equal list becomes all 1.0.
	MinMax NormalizationMethod = iota
	// InverseDistance treats the raw score as a distance: 1 / (1 + d).
	InverseDistance
)

// Engine dispatches registered searchers, normalizes and merges their
// results, and paginates. Grounded on original_source/src/engine.rs's
// SearusEngine, with the merge step's identity fixed to the record's
// positional id (the source's placeholder-hash variant is not reproduced)
// and the normalization/merge/extension pipeline expanded to the full
// thirteen-step lifecycle and eight extension hooks the source's EXT.md
// design settled on.
type Engine[T any] struct {
	searchers     []Searcher[T]
	extensions    []Extension[T]
	normalization NormalizationMethod
}

// EngineBuilder constructs an Engine via chained With/Extension calls,
// mirroring the teacher's fluent ResoRankConfig/DefaultConfig idiom.
type EngineBuilder[T any] struct {
	searchers     []Searcher[T]
	extensions    []Extension[T]
	normalization NormalizationMethod
}

// NewEngine starts a builder with the default MinMax normalization.
func NewEngine[T any]() *EngineBuilder[T] {
	return &EngineBuilder[T]{normalization: MinMax}
}

func (b *EngineBuilder[T]) With(searcher Searcher[T]) *EngineBuilder[T] {
	b.searchers = append(b.searchers, searcher)
	return b
}

func (b *EngineBuilder[T]) WithExtension(ext Extension[T]) *EngineBuilder[T] {
	b.extensions = append(b.extensions, ext)
	return b
}

func (b *EngineBuilder[T]) Normalization(method NormalizationMethod) *EngineBuilder[T] {
	b.normalization = method
	return b
}

func (b *EngineBuilder[T]) Build() *Engine[T] {
	return &Engine[T]{searchers: b.searchers, extensions: b.extensions, normalization: b.normalization}
}

// Search runs the full thirteen-step lifecycle: clone the query, run
// before_query/before_items, dispatch searchers (optionally in parallel),
// run after_searcher per searcher, run before_merge, normalize, merge by id, run
// after_merge, sort, run before_limit, paginate, run after_limit.
func (e *Engine[T]) Search(records []T, query Query) []SearusMatch[T] {
	q := query.Clone()
	for _, ext := range e.extensions {
		ext.BeforeQuery(&q)
	}

	items := records
	if len(e.extensions) > 0 {
		items = append([]T(nil), records...)
		for _, ext := range e.extensions {
			ext.BeforeItems(&q, &items)
		}
	}

	if len(e.searchers) == 0 {
		return nil
	}

	grouped := e.dispatch(items, &q)
	if len(grouped) == 0 {
		return nil
	}

	for _, ext := range e.extensions {
		ext.BeforeMerge(&q, &grouped)
	}

	for i := range grouped {
		grouped[i].Matches = normalize(grouped[i].Matches, e.normalization)
	}

	merged := mergeResults(grouped, &q)

	for _, ext := range e.extensions {
		ext.AfterMerge(&q, &merged)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return scoreLess(merged[j].Score, merged[i].Score)
	})

	for _, ext := range e.extensions {
		ext.BeforeLimit(&q, &merged)
	}

	final := paginate(merged, q.Options.Skip, q.Options.Limit)

	for _, ext := range e.extensions {
		ext.AfterLimit(&q, &final)
	}

	return final
}

// dispatch runs every searcher against items and query, running
// before_searcher sequentially once per searcher before any searcher starts
// and after_searcher hooks sequentially after each searcher returns, regardless
// of whether dispatch itself was parallel. Searchers whose result set is
// empty are dropped.
func (e *Engine[T]) dispatch(items []T, query *Query) []SearcherResults[T] {
	raw := make([][]SearusMatch[T], len(e.searchers))

	for _, s := range e.searchers {
		for _, ext := range e.extensions {
			ext.BeforeSearcher(query, s.Kind())
		}
	}

	if query.Options.Parallel {
		var g errgroup.Group
		ctx := NewSearchContext(items)
		for i, s := range e.searchers {
			i, s := i, s
			g.Go(func() error {
				raw[i] = s.Search(ctx, query)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		ctx := NewSearchContext(items)
		for i, s := range e.searchers {
			raw[i] = s.Search(ctx, query)
		}
	}

	grouped := make([]SearcherResults[T], 0, len(e.searchers))
	for i, s := range e.searchers {
		results := raw[i]
		for _, ext := range e.extensions {
			ext.AfterSearcher(query, s.Kind(), &results)
		}
		if len(results) == 0 {
			continue
		}
		grouped = append(grouped, SearcherResults[T]{Kind: s.Kind(), Matches: results})
	}
	return grouped
}

// normalize rescales one searcher's match scores in place. Empty lists
// pass through untouched; they were already filtered out of dispatch.
func normalize[T any](matches []SearusMatch[T], method NormalizationMethod) []SearusMatch[T] {
	if len(matches) == 0 {
		return matches
	}

	switch method {
	case MinMax:
		min := float32(math.Inf(1))
		max := float32(math.Inf(-1))
		for _, m := range matches {
			if m.Score < min {
				min = m.Score
			}
			if m.Score > max {
				max = m.Score
			}
		}
		rangeVal := max - min
		for i := range matches {
			if rangeVal > 0 {
				matches[i].Score = (matches[i].Score - min) / rangeVal
			} else {
				matches[i].Score = 1.0
			}
		}
	case InverseDistance:
		for i := range matches {
			matches[i].Score = 1.0 / (1.0 + matches[i].Score)
		}
	}
	return matches
}

// mergeResults accumulates per-searcher contributions into one match per
// record id, weighting each contribution by the query's per-kind weight
// (default 1.0). Field scores sum (also weighted); details concatenate.
// The canonical item value is the first one seen for a given id.
func mergeResults[T any](grouped []SearcherResults[T], query *Query) []SearusMatch[T] {
	index := make(map[int]int)
	merged := make([]SearusMatch[T], 0)

	for _, group := range grouped {
		weight := query.Options.weightFor(group.Kind)
		for _, m := range group.Matches {
			pos, ok := index[m.ID]
			if !ok {
				pos = len(merged)
				index[m.ID] = pos
				merged = append(merged, SearusMatch[T]{
					ID:          m.ID,
					Item:        m.Item,
					Score:       0,
					FieldScores: make(map[string]float32),
				})
			}

			entry := &merged[pos]
			entry.Score += m.Score * weight
			for field, score := range m.FieldScores {
				entry.FieldScores[field] += score * weight
			}
			entry.Details = append(entry.Details, m.Details...)
		}
	}

	return merged
}

// scoreLess orders scores descending with NaN treated as equal to avoid
// ever poisoning the sort comparator.
func scoreLess(a, b float32) bool {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return false
	}
	return a < b
}

func paginate[T any](matches []SearusMatch[T], skip, limit int) []SearusMatch[T] {
	if skip >= len(matches) {
		return []SearusMatch[T]{}
	}
	end := skip + limit
	if end > len(matches) || limit < 0 {
		end = len(matches)
	}
	return matches[skip:end]
}
