package associate

import (
	"testing"

	"github.com/redcarpet-collective/gala/internal/awards"
	"github.com/redcarpet-collective/gala/internal/message"
)

func resolve(t *testing.T, names ...string) []awards.TemplateAward {
	t.Helper()
	return awards.Resolve(names, nil, nil)
}

func TestAssociateViaMentions(t *testing.T) {
	templates := resolve(t,
		"best television series - drama",
		"best original song - motion picture",
	)
	a := NewAssociator(templates, DefaultOverlapThreshold, nil)

	m := message.Message{ID: 1, Text: "so glad homeland won best tv drama"}
	got := a.Associate(m, []string{"best television series drama"})

	if len(got) != 1 || got[0] != "best television series - drama" {
		t.Errorf("Associate() = %v, expected drama series template", got)
	}
}

func TestAssociateFallbackToText(t *testing.T) {
	templates := resolve(t, "best foreign language film")
	a := NewAssociator(templates, DefaultOverlapThreshold, nil)

	m := message.Message{ID: 2, Text: "Amour takes best foreign language film!"}
	got := a.Associate(m, nil)

	if len(got) != 1 || got[0] != "best foreign language film" {
		t.Errorf("Associate() fallback = %v", got)
	}
}

func TestAssociateNoMatch(t *testing.T) {
	templates := resolve(t, "best original song - motion picture")
	a := NewAssociator(templates, DefaultOverlapThreshold, nil)

	m := message.Message{ID: 3, Text: "the red carpet looks incredible"}
	if got := a.Associate(m, nil); len(got) != 0 {
		t.Errorf("Associate() = %v, expected no match", got)
	}
}

func TestAssociateMultipleCategories(t *testing.T) {
	templates := resolve(t,
		"best television series - drama",
		"best television series - comedy or musical",
	)
	a := NewAssociator(templates, DefaultOverlapThreshold, nil)

	m := message.Message{ID: 4, Text: "tough call between the tv series categories"}
	got := a.Associate(m, []string{
		"best television series drama",
		"best television series comedy or musical",
	})

	if len(got) != 2 {
		t.Fatalf("Associate() = %v, expected both templates", got)
	}
}

func TestWinnerThresholdStricter(t *testing.T) {
	templates := resolve(t, "best performance by an actor in a motion picture - drama")

	loose := NewAssociator(templates, DefaultOverlapThreshold, nil)
	strict := NewAssociator(templates, WinnerOverlapThreshold, nil)

	// Mention overlapping about half the template tokens.
	m := message.Message{ID: 5, Text: "some text"}
	mention := []string{"best actor in a motion picture"}

	if got := loose.Associate(m, mention); len(got) != 1 {
		t.Errorf("loose associator = %v, expected match", got)
	}
	if got := strict.Associate(m, mention); len(got) != 0 {
		t.Errorf("strict associator = %v, expected mention rejected", got)
	}
}
