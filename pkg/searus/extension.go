package searus

// Extension hooks into the search lifecycle at eight points. All methods
// default to no-ops (embed Base to pick and choose which hooks to
// override). Hooks fire sequentially in registration order. before_searcher
// is advisory only: it always runs sequentially, once per searcher, before
// that searcher is dispatched, even when dispatch itself runs the searchers
// concurrently — it observes the query and the upcoming searcher's kind but
// must not assume it runs on the same goroutine that executes the search.
//
// Grounded on original_source/src/extension.rs's SearusExtension trait;
// the Rust source's long inline debate over before_merge's signature is
// resolved here the same way the source ultimately committed to: before_merge
// sees the per-searcher-kind result groups (so weighting/boosting can key
// off kind), after_merge sees the flattened, merged result set.
type Extension[T any] interface {
	BeforeQuery(query *Query)
	BeforeItems(query *Query, items *[]T)
	BeforeSearcher(query *Query, kind SearcherKind)
	AfterSearcher(query *Query, kind SearcherKind, results *[]SearusMatch[T])
	BeforeMerge(query *Query, grouped *[]SearcherResults[T])
	AfterMerge(query *Query, results *[]SearusMatch[T])
	BeforeLimit(query *Query, results *[]SearusMatch[T])
	AfterLimit(query *Query, results *[]SearusMatch[T])
}

// SearcherResults pairs a searcher's kind with the matches it produced,
// the shape before_merge observes.
type SearcherResults[T any] struct {
	Kind    SearcherKind
	Matches []SearusMatch[T]
}

// Base is embeddable by extensions that only care about a subset of hooks.
type Base[T any] struct{}

func (Base[T]) BeforeQuery(*Query)                                          {}
func (Base[T]) BeforeItems(*Query, *[]T)                                    {}
func (Base[T]) BeforeSearcher(*Query, SearcherKind)                         {}
func (Base[T]) AfterSearcher(*Query, SearcherKind, *[]SearusMatch[T])       {}
func (Base[T]) BeforeMerge(*Query, *[]SearcherResults[T])                   {}
func (Base[T]) AfterMerge(*Query, *[]SearusMatch[T])                        {}
func (Base[T]) BeforeLimit(*Query, *[]SearusMatch[T])                       {}
func (Base[T]) AfterLimit(*Query, *[]SearusMatch[T])                        {}
