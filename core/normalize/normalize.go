// Package normalize canonicalizes free-text component names.
// A synonym table catches known colloquialisms deterministically; fuzzy
// matching against KB candidates is the safety net for typos and spelling
// variants. A total miss returns the input verbatim so nothing is lost
// for manual review.
package normalize

import (
	"github.com/varshaad-neenopal/automotive-damage-processing/core/similarity"
	"github.com/varshaad-neenopal/automotive-damage-processing/core/types"
)

// Normalizer canonicalizes component names against a synonym table
// and a candidate component list.
type Normalizer struct {
	sim      similarity.Func
	synonyms map[string]string // normalized term -> canonical display name
}

// New creates a normalizer with the given scorer and the default synonym table
func New(sim similarity.Func) *Normalizer {
	n := &Normalizer{
		sim:      sim,
		synonyms: make(map[string]string, len(defaultSynonyms)),
	}
	for term, canonical := range defaultSynonyms {
		n.synonyms[types.NormalizeTerm(term)] = canonical
	}
	return n
}

// NewDefault creates a normalizer with the default scorer
func NewDefault() *Normalizer {
	return New(similarity.Default())
}

// AddSynonym registers an extra colloquial term for a canonical name
func (n *Normalizer) AddSynonym(term, canonical string) {
	n.synonyms[types.NormalizeTerm(term)] = canonical
}

// Canonicalize maps a raw component name to a canonical one.
// Synonym hits always win over fuzzy matches. When neither clears,
// the raw name is returned unchanged and callers must treat the
// result as unmapped.
func (n *Normalizer) Canonicalize(raw string, candidates []string) string {
	rawNorm := types.NormalizeTerm(raw)

	if canonical, ok := n.synonyms[rawNorm]; ok {
		return canonical
	}

	// Candidates are matched on normalized form; the display form of the
	// last row with a given normalized name wins, matching KB load order.
	keys := make([]string, 0, len(candidates))
	display := make(map[string]string, len(candidates))
	for _, c := range candidates {
		k := types.NormalizeTerm(c)
		if _, seen := display[k]; !seen {
			keys = append(keys, k)
		}
		display[k] = c
	}

	if match, ok := similarity.BestMatch(n.sim, rawNorm, keys, similarity.CanonicalizeThreshold); ok {
		return display[match]
	}

	return raw
}
