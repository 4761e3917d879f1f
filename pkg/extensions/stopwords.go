// Package extensions collects optional Extension implementations callers
// can register with an Engine. None are required: the engine works with
// zero extensions registered.
package extensions

import (
	"strings"

	"github.com/orsinium-labs/stopwords"

	"github.com/kittclouds/searus/pkg/searus"
	"github.com/kittclouds/searus/pkg/tokenize"
)

// StopwordExtension strips stopwords from a query's free text at the
// before_query hook, so that downstream searchers never see them as
// query terms. Tags, vectors, and filters pass through untouched.
type StopwordExtension[T any] struct {
	searus.Base[T]
	words stopwords.StopWords
}

// NewStopwordExtension builds a StopwordExtension using the given language
// stopword set, e.g. stopwords.English.
func NewStopwordExtension[T any](words stopwords.StopWords) *StopwordExtension[T] {
	return &StopwordExtension[T]{words: words}
}

func (e *StopwordExtension[T]) BeforeQuery(query *searus.Query) {
	if query.Text == nil {
		return
	}
	terms := tokenize.Tokenize(*query.Text)
	kept := make([]string, 0, len(terms))
	for _, term := range terms {
		if e.words.Is(term) {
			continue
		}
		kept = append(kept, term)
	}
	filtered := strings.Join(kept, " ")
	query.Text = &filtered
}

var _ searus.Extension[string] = (*StopwordExtension[string])(nil)
