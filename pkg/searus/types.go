// Package searus is the orchestrating engine: query and result types, the
// Searcher and Extension contracts, and the Engine that dispatches
// searchers, normalizes and merges their results, and paginates.
//
// Grounded on original_source/src/types.rs (Query/QueryBuilder/
// SearchOptions/SearcherKind/ImageData/SearusMatch) and
// original_source/src/engine.rs, rebuilt per the authoritative choices the
// source's own divergent variants left ambiguous: matches carry a
// positional id, filters apply inside searchers, and all eight extension
// hooks fire. Builder style follows the teacher's ResoRankConfig /
// DefaultConfig fluent pattern from pkg/resorank/types.go.
package searus

import "github.com/kittclouds/searus/pkg/filter"

// SearcherKind identifies the category of a registered searcher.
type SearcherKind int

const (
	KindSemantic SearcherKind = iota
	KindVector
	KindTags
	KindImage
	KindFuzzy
	KindRange
	KindGeospatial
	KindCustom
)

func (k SearcherKind) String() string {
	switch k {
	case KindSemantic:
		return "semantic"
	case KindVector:
		return "vector"
	case KindTags:
		return "tags"
	case KindImage:
		return "image"
	case KindFuzzy:
		return "fuzzy"
	case KindRange:
		return "range"
	case KindGeospatial:
		return "geospatial"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ImageData carries raw image bytes and optional decoded metadata for
// image-based search.
type ImageData struct {
	Bytes    []byte
	MimeType string
	Width    uint32
	Height   uint32
}

// SearchDetail is searcher-specific metadata attached to a match for
// explainability. Exactly one of the embedded pointers is non-nil.
type SearchDetail struct {
	Semantic *SemanticDetail
	Tag      *TagDetail
	Fuzzy    *FuzzyDetail
	Vector   *VectorDetail
	Image    *ImageDetail
}

type SemanticDetail struct {
	MatchedTerms []string
	Field        string
	Weight       float32
}

type TagDetail struct {
	MatchedTags []string
	TotalTags   int
}

type FuzzyDetail struct {
	MatchedTerm  string
	OriginalTerm string
	Similarity   float32
}

type VectorDetail struct {
	Distance   float32
	Similarity float32
}

type ImageDetail struct {
	Similarity float32
}

// SearusMatch is one scored result. Id equals the matched record's
// positional index in the input slice at dispatch time; it is the sole
// identity used to merge contributions from multiple searchers.
type SearusMatch[T any] struct {
	ID          int
	Item        T
	Score       float32
	FieldScores map[string]float32
	Details     []SearchDetail
}

// NewMatch constructs a match with empty field scores and details.
func NewMatch[T any](id int, item T, score float32) SearusMatch[T] {
	return SearusMatch[T]{ID: id, Item: item, Score: score, FieldScores: make(map[string]float32)}
}

// WithFieldScore sets a per-field score and returns the match, chainable.
func (m SearusMatch[T]) WithFieldScore(field string, score float32) SearusMatch[T] {
	m.FieldScores[field] = score
	return m
}

// WithDetail appends a detail and returns the match, chainable.
func (m SearusMatch[T]) WithDetail(d SearchDetail) SearusMatch[T] {
	m.Details = append(m.Details, d)
	return m
}

// SearchOptions controls pagination, per-searcher weighting, and timeouts.
type SearchOptions struct {
	Skip      int
	Limit     int
	TimeoutMs uint64
	Weights   map[SearcherKind]float32
	Parallel  bool
	TRTDepth  int
}

// DefaultSearchOptions mirrors the source's default_limit()=20 with no skip
// and no timeout.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Skip: 0, Limit: 20, TimeoutMs: 0, Weights: make(map[SearcherKind]float32)}
}

func (o SearchOptions) WithSkip(skip int) SearchOptions {
	o.Skip = skip
	return o
}

func (o SearchOptions) WithLimit(limit int) SearchOptions {
	o.Limit = limit
	return o
}

func (o SearchOptions) WithTimeoutMs(ms uint64) SearchOptions {
	o.TimeoutMs = ms
	return o
}

func (o SearchOptions) WithWeight(kind SearcherKind, weight float32) SearchOptions {
	o.Weights[kind] = weight
	return o
}

func (o SearchOptions) WithParallel(parallel bool) SearchOptions {
	o.Parallel = parallel
	return o
}

// WithTRTDepth sets the tag-relationship-tree expansion depth the Tagged
// searcher uses when a tree is configured; 0 disables expansion.
func (o SearchOptions) WithTRTDepth(depth int) SearchOptions {
	o.TRTDepth = depth
	return o
}

func (o SearchOptions) weightFor(kind SearcherKind) float32 {
	if w, ok := o.Weights[kind]; ok {
		return w
	}
	return 1.0
}

// Query carries every optional search mode: text, vector, tags, image,
// filters, and the options governing pagination and weighting.
type Query struct {
	Text    *string
	Vector  []float32
	Tags    []string
	Image   *ImageData
	Filters filter.Expr
	Options SearchOptions
}

// Clone returns a deep-enough copy of the query for extensions to mutate
// inside before_query without aliasing the caller's slices.
func (q Query) Clone() Query {
	clone := q
	if q.Vector != nil {
		clone.Vector = append([]float32(nil), q.Vector...)
	}
	if q.Tags != nil {
		clone.Tags = append([]string(nil), q.Tags...)
	}
	clone.Options.Weights = make(map[SearcherKind]float32, len(q.Options.Weights))
	for k, v := range q.Options.Weights {
		clone.Options.Weights[k] = v
	}
	return clone
}

// QueryBuilder constructs a Query via chained setters.
type QueryBuilder struct {
	query Query
}

// NewQuery starts a QueryBuilder with default options.
func NewQuery() *QueryBuilder {
	return &QueryBuilder{query: Query{Options: DefaultSearchOptions()}}
}

func (b *QueryBuilder) Text(text string) *QueryBuilder {
	b.query.Text = &text
	return b
}

func (b *QueryBuilder) Vector(vector []float32) *QueryBuilder {
	b.query.Vector = vector
	return b
}

func (b *QueryBuilder) Tags(tags []string) *QueryBuilder {
	b.query.Tags = tags
	return b
}

func (b *QueryBuilder) Image(image ImageData) *QueryBuilder {
	b.query.Image = &image
	return b
}

func (b *QueryBuilder) Filters(expr filter.Expr) *QueryBuilder {
	b.query.Filters = expr
	return b
}

func (b *QueryBuilder) Options(opts SearchOptions) *QueryBuilder {
	b.query.Options = opts
	return b
}

func (b *QueryBuilder) Build() Query {
	return b.query
}
