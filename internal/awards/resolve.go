package awards

import (
	"log/slog"
)

// VariantOverlapThreshold is the token-overlap ratio at which a discovered
// award name is accepted as a variant of a template category.
const VariantOverlapThreshold = 0.7

// TemplateAward is a fixed ceremony category together with the normalized
// text variants that should be recognized as referring to it.
type TemplateAward struct {
	Name     string
	Tokens   map[string]bool
	Variants map[string]bool
}

// Matches reports whether the normalized text is a known variant of this
// category.
func (t *TemplateAward) Matches(normalized string) bool {
	return t.Variants[normalized]
}

// Resolve builds the variant set for every template category from the
// discovered award list. A template's own normalized name is always a member
// of its own variant set; discovered names join when their token overlap
// with the template clears VariantOverlapThreshold. Matching is many-to-one
// from free text onto a fixed template identity, so one mis-canonicalized
// discovery cannot corrupt an otherwise-correct category.
func Resolve(templates, discovered []string, logger *slog.Logger) []TemplateAward {
	if logger == nil {
		logger = slog.Default()
	}

	resolved := make([]TemplateAward, 0, len(templates))
	for _, name := range templates {
		t := TemplateAward{
			Name:     name,
			Tokens:   TokenSet(name),
			Variants: map[string]bool{Normalize(name): true},
		}

		for _, disc := range discovered {
			if OverlapRatio(TokenSet(disc), t.Tokens) >= VariantOverlapThreshold {
				t.Variants[Normalize(disc)] = true
			}
		}

		if len(t.Variants) > 1 {
			logger.Debug("template has discovered variants",
				"template", name,
				"variants", len(t.Variants))
		}
		resolved = append(resolved, t)
	}

	logger.Info("template resolution complete", "templates", len(resolved))
	return resolved
}
