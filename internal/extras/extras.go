// Package extras extracts the unofficial fan categories (best and worst
// dressed, best and worst speech) that run alongside the ceremony proper.
// Each goal yields a single winner plus a ranked candidate list.
package extras

import (
	"log/slog"
	"regexp"
	"sort"

	"github.com/redcarpet-collective/gala/internal/awards"
	"github.com/redcarpet-collective/gala/internal/message"
	"github.com/redcarpet-collective/gala/internal/tagger"
)

// Goal names as they appear in the output.
const (
	GoalBestDressed  = "best_dressed"
	GoalWorstDressed = "worst_dressed"
	GoalBestSpeech   = "best_speech"
	GoalWorstSpeech  = "worst_speech"
)

var goalPatterns = map[string][]*regexp.Regexp{
	GoalBestDressed: {
		regexp.MustCompile(`(?i)\bbest\s+dressed\b`),
		regexp.MustCompile(`(?i)\blooks?\s+(amazing|stunning|gorgeous|beautiful|fabulous)\b`),
		regexp.MustCompile(`(?i)\b(love|loved)\s+(her|his|their)\s+(dress|gown|outfit|look)\b`),
	},
	GoalWorstDressed: {
		regexp.MustCompile(`(?i)\bworst\s+dressed\b`),
		regexp.MustCompile(`(?i)\bterrible\s+(dress|gown|outfit|look)\b`),
		regexp.MustCompile(`(?i)\bwhat\s+was\s+(she|he)\s+wearing\b`),
		regexp.MustCompile(`(?i)\bfashion\s+(disaster|fail)\b`),
	},
	GoalBestSpeech: {
		regexp.MustCompile(`(?i)\bbest\s+speech\b`),
		regexp.MustCompile(`(?i)\b(amazing|great|incredible|moving|touching)\s+speech\b`),
		regexp.MustCompile(`(?i)\bloved\s+(her|his|their)\s+speech\b`),
	},
	GoalWorstSpeech: {
		regexp.MustCompile(`(?i)\bworst\s+speech\b`),
		regexp.MustCompile(`(?i)\b(awkward|rambling|boring)\s+speech\b`),
	},
}

// Extractor finds the fan-category winners across the whole corpus.
type Extractor struct {
	entities    tagger.EntityTagger
	minMentions int
	logger      *slog.Logger
}

// NewExtractor creates an Extractor. minMentions is the confidence floor a
// goal winner must clear.
func NewExtractor(entities tagger.EntityTagger, minMentions int, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		entities:    entities,
		minMentions: minMentions,
		logger:      logger,
	}
}

// Result holds one goal's winner and ranked candidates.
type Result struct {
	Winner     string
	Candidates []string
}

// Extract scans all messages and returns a Result per goal that produced a
// confident winner.
func (e *Extractor) Extract(messages []message.Message) map[string]Result {
	counts := make(map[string]map[string]int, len(goalPatterns))
	for goal := range goalPatterns {
		counts[goal] = make(map[string]int)
	}

	for _, m := range messages {
		var persons []string
		harvested := false

		for goal, patterns := range goalPatterns {
			if !matchesAny(m.Text, patterns) {
				continue
			}
			if !harvested {
				persons = e.personsIn(m.Text)
				harvested = true
			}
			for _, p := range persons {
				counts[goal][p]++
			}
		}
	}

	out := make(map[string]Result)
	for goal, byName := range counts {
		ranked := rank(byName)
		if len(ranked) == 0 || byName[ranked[0]] < e.minMentions {
			continue
		}
		if len(ranked) > 5 {
			ranked = ranked[:5]
		}
		out[goal] = Result{Winner: ranked[0], Candidates: ranked}
	}

	e.logger.Info("extra goals extracted", "goals", len(out))
	return out
}

func (e *Extractor) personsIn(text string) []string {
	entities, err := e.entities.Entities(text)
	if err != nil {
		return nil
	}
	var persons []string
	for _, ent := range entities {
		if ent.Type != tagger.EntityPerson {
			continue
		}
		if name := awards.Normalize(ent.Text); name != "" {
			persons = append(persons, name)
		}
	}
	return persons
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func rank(byName map[string]int) []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byName[names[i]] != byName[names[j]] {
			return byName[names[i]] > byName[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
