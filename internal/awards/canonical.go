package awards

import (
	"fmt"
	"regexp"
	"strings"
)

// CecilAward is the one recurring category that never appears in "best X"
// form and keeps its periods after canonicalization.
const CecilAward = "cecil b. demille award"

var (
	trailingURLPattern   = regexp.MustCompile(`\s+http.*$`)
	trailingQuotePattern = regexp.MustCompile(`\s+['"(].*$`)
	trailingTailPattern  = regexp.MustCompile(`\s+(for|at|winner|wins?|won|goes?\s+to).*$`)
)

// ordered synonym rewrites. Order matters: "mini series" must be handled
// after "tv series", and dash removal must come last so that the
// dash-reinsertion step sees plain spaces.
var synonymRewrites = []struct {
	old, new string
}{
	{" award", ""},
	{" globe", ""},
	{"made for tv", "made for television"},
	{"tv series", "television series"},
	{"miniseries", "mini-series"},
	{"mini series", "mini-series"},
	{" - ", " "},
}

// Canonicalize rewrites a raw award phrase into its canonical form. The
// rewrite pipeline is a priority-ordered rule list: junk-tail stripping,
// synonym normalization, dash reinsertion for the drama/comedy-or-musical
// split, then forcing whole award families onto their full template names.
// Later rules may override earlier partial matches, so the order is part of
// the contract.
func Canonicalize(award string) string {
	award = collapseSpaces(award)

	award = trailingURLPattern.ReplaceAllString(award, "")
	award = trailingQuotePattern.ReplaceAllString(award, "")
	award = trailingTailPattern.ReplaceAllString(award, "")
	award = collapseSpaces(award)

	if strings.Contains(award, "cecil") && strings.Contains(award, "demille") {
		return CecilAward
	}

	for _, r := range synonymRewrites {
		award = strings.ReplaceAll(award, r.old, r.new)
	}

	if !strings.Contains(award, "television") {
		award = strings.ReplaceAll(award, "tv", "television")
	}
	award = collapseSpaces(award)

	award = reinsertDash(award, "motion picture")
	award = reinsertDash(award, "television series")

	if strings.Contains(award, "motion picture") {
		switch {
		case strings.Contains(award, "director"):
			award = "best director - motion picture"
		case strings.Contains(award, "screenplay"):
			award = "best screenplay - motion picture"
		case strings.Contains(award, "original score"):
			award = "best original score - motion picture"
		case strings.Contains(award, "original song"):
			award = "best original song - motion picture"
		}
	}

	award = canonicalizePerformance(award)

	return strings.TrimSpace(award)
}

// reinsertDash restores the " - drama" / " - comedy or musical" separator
// that phrase harvesting loses, but only for categories carrying the given
// base phrase.
func reinsertDash(award, base string) string {
	if !strings.Contains(award, base) {
		return award
	}
	if !strings.Contains(award, "drama") && !strings.Contains(award, "comedy") && !strings.Contains(award, "musical") {
		return award
	}

	if strings.Contains(award, " drama") && !strings.Contains(award, base+" - drama") {
		award = strings.ReplaceAll(award, " drama", " - drama")
	}
	if strings.Contains(award, " comedy") && !strings.Contains(award, base+" - comedy") {
		award = strings.ReplaceAll(award, " comedy", " - comedy or musical")
	}
	if strings.Contains(award, " musical") && !strings.Contains(award, base+" - comedy or musical") {
		award = strings.ReplaceAll(award, " musical", " - comedy or musical")
	}
	return award
}

// canonicalizePerformance forces acting categories onto their full template
// names, keyed by the supporting/television keyword combinations.
func canonicalizePerformance(award string) string {
	if !strings.Contains(award, "actress") && !strings.Contains(award, "actor") {
		return award
	}

	role := "actor"
	if strings.Contains(award, "actress") {
		role = "actress"
	}

	switch {
	case strings.Contains(award, "supporting"):
		if strings.Contains(award, "motion picture") {
			return fmt.Sprintf("best performance by an %s in a supporting role in a motion picture", role)
		}
		if strings.Contains(award, "television") || strings.Contains(award, "series") {
			return fmt.Sprintf("best performance by an %s in a supporting role in a series, mini-series or motion picture made for television", role)
		}
	case strings.Contains(award, "mini-series") || strings.Contains(award, "television"):
		if strings.Contains(award, "drama") {
			return fmt.Sprintf("best performance by an %s in a television series - drama", role)
		}
		if strings.Contains(award, "comedy") || strings.Contains(award, "musical") {
			return fmt.Sprintf("best performance by an %s in a television series - comedy or musical", role)
		}
	}

	return award
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
