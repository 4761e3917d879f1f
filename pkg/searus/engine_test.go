package searus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	kind    SearcherKind
	results []SearusMatch[string]
}

func (f fakeSearcher) Kind() SearcherKind { return f.kind }

func (f fakeSearcher) Search(ctx SearchContext[string], query *Query) []SearusMatch[string] {
	return f.results
}

func match(id int, item string, score float32) SearusMatch[string] {
	return SearusMatch[string]{ID: id, Item: item, Score: score, FieldScores: map[string]float32{}}
}

func TestSearchEmptyWhenNoSearchers(t *testing.T) {
	engine := NewEngine[string]().Build()
	results := engine.Search([]string{"a", "b"}, NewQuery().Build())
	assert.Empty(t, results)
}

func TestSearchEmptyWhenAllSearchersReturnEmpty(t *testing.T) {
	engine := NewEngine[string]().
		With(fakeSearcher{kind: KindSemantic}).
		Build()
	results := engine.Search([]string{"a"}, NewQuery().Build())
	assert.Empty(t, results)
}

func TestMinMaxNormalizationAndMerge(t *testing.T) {
	engine := NewEngine[string]().
		With(fakeSearcher{kind: KindSemantic, results: []SearusMatch[string]{
			match(0, "alpha", 10),
			match(1, "beta", 5),
		}}).
		Build()

	results := engine.Search([]string{"alpha", "beta"}, NewQuery().Build())
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].ID)
	assert.Equal(t, float32(1.0), results[0].Score)
	assert.Equal(t, 1, results[1].ID)
	assert.Equal(t, float32(0.0), results[1].Score)
}

func TestMinMaxDegenerateAllEqualBecomesOne(t *testing.T) {
	engine := NewEngine[string]().
		With(fakeSearcher{kind: KindSemantic, results: []SearusMatch[string]{
			match(0, "a", 3),
			match(1, "b", 3),
		}}).
		Build()

	results := engine.Search([]string{"a", "b"}, NewQuery().Build())
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, float32(1.0), r.Score)
	}
}

func TestInverseDistanceNormalization(t *testing.T) {
	engine := NewEngine[string]().
		Normalization(InverseDistance).
		With(fakeSearcher{kind: KindVector, results: []SearusMatch[string]{match(0, "a", 1.0)}}).
		Build()

	results := engine.Search([]string{"a"}, NewQuery().Build())
	require.Len(t, results, 1)
	assert.Equal(t, float32(0.5), results[0].Score)
}

func TestMergeByIDAcrossSearchers(t *testing.T) {
	engine := NewEngine[string]().
		With(fakeSearcher{kind: KindSemantic, results: []SearusMatch[string]{match(0, "item", 1.0)}}).
		With(fakeSearcher{kind: KindFuzzy, results: []SearusMatch[string]{match(0, "item", 1.0)}}).
		Build()

	results := engine.Search([]string{"item"}, NewQuery().Build())
	require.Len(t, results, 1, "expected a single merged match for id 0")
	assert.Equal(t, float32(2.0), results[0].Score, "expected weighted sum of 1.0+1.0 post per-searcher MinMax")
}

func TestMergeAppliesPerKindWeight(t *testing.T) {
	engine := NewEngine[string]().
		With(fakeSearcher{kind: KindSemantic, results: []SearusMatch[string]{match(0, "item", 1.0)}}).
		Build()

	opts := DefaultSearchOptions().WithWeight(KindSemantic, 0.25)
	results := engine.Search([]string{"item"}, NewQuery().Options(opts).Build())
	require.Len(t, results, 1)
	assert.Equal(t, float32(0.25), results[0].Score)
}

func TestPaginationSkipAndLimit(t *testing.T) {
	engine := NewEngine[string]().
		With(fakeSearcher{kind: KindSemantic, results: []SearusMatch[string]{
			match(0, "a", 3),
			match(1, "b", 2),
			match(2, "c", 1),
		}}).
		Build()

	opts := DefaultSearchOptions().WithSkip(1).WithLimit(1)
	results := engine.Search([]string{"a", "b", "c"}, NewQuery().Options(opts).Build())
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].ID)
}

type recordingExtension struct {
	Base[string]
	calls []string
}

func (r *recordingExtension) BeforeQuery(query *Query) { r.calls = append(r.calls, "before_query") }
func (r *recordingExtension) BeforeItems(query *Query, items *[]string) {
	r.calls = append(r.calls, "before_items")
}
func (r *recordingExtension) BeforeSearcher(query *Query, kind SearcherKind) {
	r.calls = append(r.calls, "before_searcher")
}
func (r *recordingExtension) AfterSearcher(query *Query, kind SearcherKind, results *[]SearusMatch[string]) {
	r.calls = append(r.calls, "after_searcher")
}
func (r *recordingExtension) BeforeMerge(query *Query, grouped *[]SearcherResults[string]) {
	r.calls = append(r.calls, "before_merge")
}
func (r *recordingExtension) AfterMerge(query *Query, results *[]SearusMatch[string]) {
	r.calls = append(r.calls, "after_merge")
}
func (r *recordingExtension) BeforeLimit(query *Query, results *[]SearusMatch[string]) {
	r.calls = append(r.calls, "before_limit")
}
func (r *recordingExtension) AfterLimit(query *Query, results *[]SearusMatch[string]) {
	r.calls = append(r.calls, "after_limit")
}

func TestExtensionHooksFireInLifecycleOrder(t *testing.T) {
	ext := &recordingExtension{}
	engine := NewEngine[string]().
		WithExtension(ext).
		With(fakeSearcher{kind: KindSemantic, results: []SearusMatch[string]{match(0, "a", 1.0)}}).
		Build()

	engine.Search([]string{"a"}, NewQuery().Build())

	want := []string{"before_query", "before_items", "before_searcher", "after_searcher", "before_merge", "after_merge", "before_limit", "after_limit"}
	require.Equal(t, want, ext.calls)
}

func TestParallelDispatchMergesSameAsSequential(t *testing.T) {
	build := func(parallel bool) []SearusMatch[string] {
		engine := NewEngine[string]().
			With(fakeSearcher{kind: KindSemantic, results: []SearusMatch[string]{match(0, "a", 1.0), match(1, "b", 2.0)}}).
			With(fakeSearcher{kind: KindFuzzy, results: []SearusMatch[string]{match(1, "b", 5.0)}}).
			Build()
		opts := DefaultSearchOptions().WithParallel(parallel)
		return engine.Search([]string{"a", "b"}, NewQuery().Options(opts).Build())
	}

	seq := build(false)
	par := build(true)
	require.Equal(t, len(seq), len(par))
	for i := range seq {
		assert.Equal(t, seq[i].ID, par[i].ID)
		assert.Equal(t, seq[i].Score, par[i].Score)
	}
}
