// Package fuzzy implements approximate matching of a query against the
// page corpus. Scoring is a pluggable capability so the ranking pipeline
// does not depend on one particular similarity algorithm.
package fuzzy

import (
	"sort"

	"github.com/ochipin/notey/internal/corpus"
)

// Scorer rates how closely a query matches a text field on a 0-1 scale,
// where 0 is an exact match and 1 is no resemblance. Implementations
// must ignore where in the field the match occurs.
type Scorer interface {
	Score(query, field string) float64
}

// Match is one scored corpus page. Lower scores are better.
type Match struct {
	Page  corpus.PageRecord
	Score float64
}

// DefaultThreshold is the score ceiling for a page to qualify.
const DefaultThreshold = 0.35

// Index scores queries against page titles and contents.
type Index struct {
	pages     []corpus.PageRecord
	scorer    Scorer
	threshold float64
}

type Option func(*Index)

// WithScorer replaces the default trigram scorer.
func WithScorer(s Scorer) Option {
	return func(ix *Index) { ix.scorer = s }
}

// WithThreshold sets the qualifying score ceiling.
func WithThreshold(t float64) Option {
	return func(ix *Index) { ix.threshold = t }
}

func NewIndex(pages []corpus.PageRecord, opts ...Option) *Index {
	ix := &Index{
		pages:     pages,
		scorer:    TrigramScorer{},
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Search returns up to limit pages whose title or content scores within
// the threshold, ordered ascending by score. Ordering between equal
// scores follows corpus order. An empty query or empty corpus yields no
// matches.
func (ix *Index) Search(query string, limit int) []Match {
	if query == "" || len(ix.pages) == 0 || limit <= 0 {
		return nil
	}

	var matches []Match
	for _, page := range ix.pages {
		score := ix.scorer.Score(query, page.Title)
		if s := ix.scorer.Score(query, page.Content); s < score {
			score = s
		}
		if score <= ix.threshold {
			matches = append(matches, Match{Page: page, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
