package aggregate

import (
	"github.com/redcarpet-collective/gala/internal/awards"
	"github.com/redcarpet-collective/gala/internal/tagger"
)

// boilerplateTokens are generic award-vocabulary words. A candidate whose
// tokens all come from this set is a leftover fragment of a category name,
// not a real entity.
var boilerplateTokens = map[string]bool{
	"best": true, "worst": true, "award": true, "awards": true,
	"golden": true, "globe": true, "globes": true,
	"performance": true, "motion": true, "picture": true, "film": true,
	"television": true, "tv": true, "series": true, "mini-series": true,
	"drama": true, "comedy": true, "musical": true, "original": true,
	"supporting": true, "role": true, "feature": true, "animated": true,
	"foreign": true, "language": true, "actor": true, "actress": true,
	"director": true, "screenplay": true, "score": true, "song": true,
	"winner": true, "nominee": true, "made": true, "for": true,
	"by": true, "an": true, "in": true, "a": true, "the": true, "or": true,
	"-": true,
}

// categoryOverlapLimit drops candidates that are mostly the category name
// itself: if more than this fraction of a candidate's tokens appear in the
// category name, it is not an answer.
const categoryOverlapLimit = 0.6

// Filter removes non-answer candidates for a category: boilerplate
// fragments, candidates overlapping the category name too heavily, and
// candidates whose classified entity type contradicts the category's
// expected type. The type filter fails open: if it would eliminate every
// candidate, the unfiltered-by-type list is returned instead.
func Filter(candidates []Candidate, category string) []Candidate {
	lexical := FilterLexical(candidates, category)

	expected := tagger.ExpectedType(category)
	if expected == tagger.EntityOther {
		return lexical
	}

	typed := make([]Candidate, 0, len(lexical))
	for _, c := range lexical {
		if c.Type == expected || c.Type == tagger.EntityOther || c.Type == "" {
			typed = append(typed, c)
		}
	}
	if len(typed) == 0 {
		return lexical
	}
	return typed
}

// FilterLexical applies only the lexical checks: boilerplate fragments and
// category-name echoes. Roles whose candidates do not share the category's
// expected winner type (presenters of a picture award are people) use this
// instead of Filter.
func FilterLexical(candidates []Candidate, category string) []Candidate {
	categoryTokens := awards.TokenSet(category)

	lexical := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		tokens := awards.TokenSet(c.Name)
		if len(tokens) == 0 || allBoilerplate(tokens) {
			continue
		}
		if awards.OverlapRatio(categoryTokens, tokens) > categoryOverlapLimit {
			continue
		}
		lexical = append(lexical, c)
	}
	return lexical
}

func allBoilerplate(tokens map[string]bool) bool {
	for t := range tokens {
		if !boilerplateTokens[t] {
			return false
		}
	}
	return true
}
