package fuzzy

import "strings"

// TrigramScorer is the default Scorer. It combines character trigram
// overlap with a per-word edit distance, both position-independent:
// a literal substring anywhere in the field scores 0, and otherwise the
// score is the better of the trigram miss rate and the closest word's
// normalized edit distance.
type TrigramScorer struct{}

func (TrigramScorer) Score(query, field string) float64 {
	q := normalize(query)
	f := strings.ToLower(field)
	if q == "" || f == "" {
		return 1
	}
	if strings.Contains(f, q) {
		return 0
	}

	score := 1.0

	if grams := trigrams(q); len(grams) > 0 {
		have := trigramSet(f)
		hits := 0
		for _, g := range grams {
			if have[g] {
				hits++
			}
		}
		score = 1 - float64(hits)/float64(len(grams))
	}

	// A close single-word hit should qualify even when the trigram
	// profile of a long query misses, e.g. a small typo.
	if d := closestWordDistance(q, f); d < score {
		score = d
	}

	return score
}

// normalize lowercases and collapses runs of whitespace to one space so
// trigrams spanning word boundaries are stable.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func trigrams(s string) []string {
	r := []rune(s)
	if len(r) < 3 {
		return nil
	}
	grams := make([]string, 0, len(r)-2)
	for i := 0; i+3 <= len(r); i++ {
		grams = append(grams, string(r[i:i+3]))
	}
	return grams
}

func trigramSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, g := range trigrams(s) {
		set[g] = true
	}
	return set
}

// closestWordDistance returns the smallest normalized edit distance
// between the query and any whitespace-separated word of the field.
func closestWordDistance(query, field string) float64 {
	q := []rune(query)
	best := 1.0
	for _, word := range strings.Fields(field) {
		w := []rune(word)
		longest := max(len(q), len(w))
		if longest == 0 {
			continue
		}
		// The length difference alone bounds the distance from below.
		if diff := abs(len(q) - len(w)); float64(diff)/float64(longest) >= best {
			continue
		}
		d := float64(levenshtein(q, w)) / float64(longest)
		if d < best {
			best = d
		}
	}
	return best
}

// levenshtein computes the edit distance between two rune slices using a
// single-row DP table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr := make([]int, len(b)+1)
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, min(prev[j]+1, prev[j-1]+cost))
		}
		prev = curr
	}
	return prev[len(b)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
