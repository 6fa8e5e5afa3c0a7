// Package associate decides which template categories a message concerns,
// using harvested award-phrase mentions first and whole-text word overlap as
// a fallback.
package associate

import (
	"log/slog"

	"github.com/redcarpet-collective/gala/internal/awards"
	"github.com/redcarpet-collective/gala/internal/message"
)

// Role-dependent overlap thresholds. Winner extraction tightens the ratio
// to cut false positives; every other role uses the default.
const (
	DefaultOverlapThreshold = 0.5
	WinnerOverlapThreshold  = 0.65
)

// Associator matches messages to template categories.
type Associator struct {
	templates []awards.TemplateAward
	threshold float64
	logger    *slog.Logger
}

// NewAssociator creates an Associator over the given templates with the
// given overlap threshold.
func NewAssociator(templates []awards.TemplateAward, threshold float64, logger *slog.Logger) *Associator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Associator{
		templates: templates,
		threshold: threshold,
		logger:    logger,
	}
}

// Templates returns the template categories this associator matches against.
func (a *Associator) Templates() []awards.TemplateAward {
	return a.templates
}

// Associate returns the names of the template categories the message
// concerns. Harvested mentions are matched first: each mention picks its
// best-overlapping template, accepted when the ratio clears the threshold.
// When no mention matches, the whole normalized message text is matched
// against every template with the same threshold. An empty result means the
// message contributes nothing for this role; that is not an error.
func (a *Associator) Associate(m message.Message, mentions []string) []string {
	var matched []string
	seen := make(map[string]bool)

	for _, mention := range mentions {
		tokens := awards.TokenSet(mention)

		bestIdx := -1
		bestOverlap := 0.0
		for i := range a.templates {
			overlap := awards.OverlapRatio(tokens, a.templates[i].Tokens)
			if overlap > bestOverlap {
				bestOverlap = overlap
				bestIdx = i
			}
		}

		if bestIdx >= 0 && bestOverlap >= a.threshold {
			name := a.templates[bestIdx].Name
			if !seen[name] {
				seen[name] = true
				matched = append(matched, name)
			}
		}
	}

	if len(matched) > 0 {
		return matched
	}

	// Fallback: raw word overlap between the message text and each template.
	textTokens := awards.TokenSet(m.Text)
	for i := range a.templates {
		if awards.OverlapRatio(textTokens, a.templates[i].Tokens) >= a.threshold {
			name := a.templates[i].Name
			if !seen[name] {
				seen[name] = true
				matched = append(matched, name)
			}
		}
	}

	return matched
}
