package search

import (
	"strings"

	"github.com/ochipin/notey/internal/fuzzy"
)

// SplitTerms returns the whitespace-separated, non-empty tokens of a raw
// query. An all-whitespace query yields no terms.
func SplitTerms(query string) []string {
	return strings.Fields(query)
}

// FilterAll keeps only matches whose combined title and content contains
// every term as a case-insensitive literal substring. The fuzzy stage
// alone is too permissive for multi-word queries; this stage restores
// "all words present somewhere in the page" semantics. Order is
// preserved, and empty terms pass everything through.
func FilterAll(matches []fuzzy.Match, terms []string) []fuzzy.Match {
	if len(terms) == 0 {
		return matches
	}
	var kept []fuzzy.Match
	for _, m := range matches {
		hay := strings.ToLower(m.Page.Title + "\n" + m.Page.Content)
		all := true
		for _, term := range terms {
			if !strings.Contains(hay, strings.ToLower(term)) {
				all = false
				break
			}
		}
		if all {
			kept = append(kept, m)
		}
	}
	return kept
}
