// Package estimate - Damage phrase flattening
package estimate

import (
	"strings"
)

// FallbackPhrase is used when no damage was detected at all
const FallbackPhrase = "general collision damage"

// labelKeys are checked in priority order on structured observations
var labelKeys = []string{"panel", "part", "area", "desc", "severity"}

// Flatten converts heterogeneous damage observations into plain phrases.
// Observations are either strings or objects carrying one of the known
// label fields; the first non-empty label wins. Anything else is dropped.
// The core pipeline only ever sees the flattened form.
func Flatten(values []interface{}) []string {
	var phrases []string
	for _, v := range values {
		switch x := v.(type) {
		case string:
			if x != "" {
				phrases = append(phrases, x)
			}
		case map[string]interface{}:
			for _, key := range labelKeys {
				if s, ok := x[key].(string); ok && s != "" {
					phrases = append(phrases, s)
					break
				}
			}
		}
	}
	return phrases
}

// PhrasesOrFallback guarantees a non-empty phrase list: the flattened
// phrases if any, else the trimmed summary, else the fallback phrase.
func PhrasesOrFallback(phrases []string, summary string) []string {
	if len(phrases) > 0 {
		return phrases
	}
	if s := strings.TrimSpace(summary); s != "" {
		return []string{s}
	}
	return []string{FallbackPhrase}
}
