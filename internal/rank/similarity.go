// Package rank provides the heuristic name-similarity scoring used to order
// registry search results.
package rank

import (
	"strings"
)

// Similarity tiers. Exact matches always outrank prefix matches, which
// always outrank substring matches, which always outrank fuzzy matches.
const (
	exactScore     = 1.0
	prefixFloor    = 0.8
	substringFloor = 0.6
	tierSpread     = 0.2
)

// Normalize canonicalizes a PyPI project name for comparison (PEP 503):
// lowercase, with runs of '-', '_' and '.' treated as a single '-'.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	return name
}

// Score returns a similarity score in [0,1] between a search query and a
// candidate package name. Both inputs are normalized before comparison.
// The score is deterministic and used only for relative ordering.
func Score(query, candidate string) float64 {
	q := Normalize(query)
	c := Normalize(candidate)

	if q == "" || c == "" {
		return 0
	}
	if q == c {
		return exactScore
	}

	// Length ratio breaks ties within a tier so closer lengths rank higher.
	ratio := lengthRatio(q, c)

	switch {
	case strings.HasPrefix(c, q), strings.HasPrefix(q, c):
		return prefixFloor + tierSpread*ratio
	case strings.Contains(c, q), strings.Contains(q, c):
		return substringFloor + tierSpread*ratio
	default:
		return substringFloor * diceCoefficient(q, c)
	}
}

func lengthRatio(a, b string) float64 {
	la, lb := len(a), len(b)
	if la > lb {
		la, lb = lb, la
	}
	return float64(la) / float64(lb)
}

// diceCoefficient computes the Sørensen–Dice coefficient over character
// bigrams, a cheap fuzzy measure that tolerates small misspellings.
func diceCoefficient(a, b string) float64 {
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	bigrams := make(map[string]int)
	for i := 0; i < len(a)-1; i++ {
		bigrams[a[i:i+2]]++
	}

	matches := 0
	for i := 0; i < len(b)-1; i++ {
		if bigrams[b[i:i+2]] > 0 {
			bigrams[b[i:i+2]]--
			matches++
		}
	}

	return 2 * float64(matches) / float64(len(a)+len(b)-2)
}
