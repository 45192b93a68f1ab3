// Package excerpt builds bounded, highlighted context windows around a
// search hit, safe to inject into result markup.
package excerpt

import (
	"html"
	"strings"
	"unicode"
)

// DefaultRadius is the context window size in runes on each side of the
// hit. The search session passes its own (wider) radius.
const DefaultRadius = 40

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Build locates the first case-insensitive occurrence of term in text
// and returns an HTML-escaped window of radius runes of context on each
// side, the hit wrapped in <mark>, and a "..." ellipsis on each side
// that was truncated. ok is false when the term does not occur; callers
// use that as the signal to try the next term or text source.
func Build(text, term string, radius int) (_ string, ok bool) {
	if text == "" || term == "" {
		return "", false
	}
	if radius < 0 {
		radius = DefaultRadius
	}

	runes := []rune(text)
	needle := []rune(strings.ToLower(term))
	idx := indexFold(runes, needle)
	if idx < 0 {
		return "", false
	}

	start := idx - radius
	if start < 0 {
		start = 0
	}
	end := idx + len(needle) + radius
	if end > len(runes) {
		end = len(runes)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(html.EscapeString(string(runes[start:idx])))
	b.WriteString(markOpen)
	b.WriteString(html.EscapeString(string(runes[idx : idx+len(needle)])))
	b.WriteString(markClose)
	b.WriteString(html.EscapeString(string(runes[idx+len(needle) : end])))
	if end < len(runes) {
		b.WriteString("...")
	}
	return b.String(), true
}

// indexFold finds the first position where needle matches text under
// per-rune lowercase folding, or -1.
func indexFold(text, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(text) {
		return -1
	}
	for i := 0; i+len(needle) <= len(text); i++ {
		match := true
		for j, nr := range needle {
			if unicode.ToLower(text[i+j]) != nr {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
