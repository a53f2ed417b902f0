// Package similarity provides pluggable string similarity scoring.
// The scorer is a strategy so the algorithm can be swapped without
// touching callers; thresholds are named constants shared by the KB
// lookup fallback and the name canonicalizer.
package similarity

import (
	"github.com/agext/levenshtein"
)

const (
	// LookupThreshold is the minimum score for the KB fuzzy lookup fallback
	LookupThreshold = 0.5

	// CanonicalizeThreshold is the minimum score for name canonicalization.
	// Stricter than lookup since it runs before any KB key is known.
	CanonicalizeThreshold = 0.6
)

// Func scores how alike two strings are on a 0-1 scale
type Func func(a, b string) float64

// Default returns the standard scorer, a normalized Levenshtein ratio
func Default() Func {
	return func(a, b string) float64 {
		return levenshtein.Similarity(a, b, nil)
	}
}

// BestMatch returns the candidate scoring highest against target, provided
// it clears the threshold. Ties keep the earliest candidate.
func BestMatch(sim Func, target string, candidates []string, threshold float64) (string, bool) {
	best := ""
	bestScore := 0.0
	found := false
	for _, c := range candidates {
		score := sim(target, c)
		if score >= threshold && score > bestScore {
			best = c
			bestScore = score
			found = true
		}
	}
	return best, found
}
