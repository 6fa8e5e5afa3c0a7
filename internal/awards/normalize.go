// Package awards discovers award category names from harvested phrases and
// resolves them against the fixed ceremony templates.
package awards

import (
	"strings"
	"unicode"
)

// Normalize lowercases text, strips punctuation apart from intra-word
// hyphens and periods, and collapses whitespace. Every cross-component
// string comparison in the pipeline goes through this one function.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// TokenSet returns the set of normalized tokens in text.
func TokenSet(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, w := range strings.Fields(Normalize(text)) {
		tokens[w] = true
	}
	return tokens
}

// OverlapRatio computes the intersection size of the two sets divided by the
// reference set size. This asymmetric ratio is what template matching keys
// off. Returns 0 for an empty reference set.
func OverlapRatio(tokens, reference map[string]bool) float64 {
	if len(reference) == 0 {
		return 0
	}
	overlap := 0
	for t := range tokens {
		if reference[t] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(reference))
}
