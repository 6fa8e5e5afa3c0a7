package tagger

import (
	"regexp"
	"strings"
	"unicode"
)

// Entity kind labels produced by an EntityTagger.
const (
	EntityPerson       = "person"
	EntityWork         = "work"
	EntityOrganization = "organization"
	EntityOther        = "other"
)

// Entity is a typed named-entity span found in a text.
type Entity struct {
	Text string
	Type string
}

// EntityTagger extracts typed entity spans from a text. Implementations are
// not required to be deterministic across versions; the pipeline treats the
// output as advisory.
type EntityTagger interface {
	Entities(text string) ([]Entity, error)
}

var (
	quotedWorkPattern = regexp.MustCompile(`["'\x60]([A-Z][\w\s,:'&.-]{1,60})["'\x60]`)
	// Stop words that terminate a capitalized-span person candidate.
	capitalizedStop = map[string]bool{
		"Best": true, "Worst": true, "The": true, "Golden": true,
		"Globes": true, "Globe": true, "Award": true, "Awards": true,
		"RT": true, "Congrats": true, "Congratulations": true,
	}
)

// HeuristicEntityTagger is a rule-based entity tagger: runs of capitalized
// words become person candidates, quoted spans and trailing hashtags become
// work candidates. It is the default implementation behind the EntityTagger
// interface; a model-backed tagger can replace it without touching the
// pipeline.
type HeuristicEntityTagger struct{}

// NewHeuristicEntityTagger creates a HeuristicEntityTagger.
func NewHeuristicEntityTagger() *HeuristicEntityTagger {
	return &HeuristicEntityTagger{}
}

// Entities extracts person and work spans from text.
func (t *HeuristicEntityTagger) Entities(text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	var entities []Entity

	for _, match := range quotedWorkPattern.FindAllStringSubmatch(text, -1) {
		entities = append(entities, Entity{Text: strings.TrimSpace(match[1]), Type: EntityWork})
	}

	entities = append(entities, capitalizedSpans(text)...)

	return entities, nil
}

// capitalizedSpans finds runs of 2-4 consecutive capitalized words and
// emits them as person candidates. Single capitalized words are too noisy
// (sentence starts, title fragments) and are skipped.
func capitalizedSpans(text string) []Entity {
	words := strings.Fields(text)
	var entities []Entity

	var run []string
	flush := func() {
		if len(run) >= 2 && len(run) <= 4 {
			entities = append(entities, Entity{Text: strings.Join(run, " "), Type: EntityPerson})
		}
		run = nil
	}

	for _, w := range words {
		cleaned := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && r != '-' && r != '.'
		})
		if cleaned == "" || capitalizedStop[cleaned] || !startsUpper(cleaned) {
			flush()
			continue
		}
		run = append(run, cleaned)
	}
	flush()

	return entities
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
