package grouper

import (
	"errors"
	"testing"

	"github.com/redcarpet-collective/gala/internal/message"
	"github.com/redcarpet-collective/gala/internal/tagger"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Intent
	}{
		{
			name:     "win signal",
			text:     "Argo wins best drama!",
			expected: []Intent{IntentWin},
		},
		{
			name:     "host signal",
			text:     "Tina Fey and Amy Poehler are hosting tonight",
			expected: []Intent{IntentHost},
		},
		{
			name:     "presenter signal",
			text:     "Robert Downey Jr presenting the next award",
			expected: []Intent{IntentPresenter},
		},
		{
			name:     "nominee and win overlap",
			text:     "nominated for best actor and congrats on the win",
			expected: []Intent{IntentWin, IntentNominee},
		},
		{
			name:     "no signal",
			text:     "red carpet looks amazing tonight",
			expected: nil,
		},
		{
			name:     "case insensitive",
			text:     "SO HAPPY SHE WON",
			expected: []Intent{IntentWin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if len(got) != len(tt.expected) {
				t.Fatalf("Classify() = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("intent %d = %v, expected %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestProcessGroupsAndMentions(t *testing.T) {
	messages := []message.Message{
		{ID: 1, Text: "Daniel Day-Lewis wins best performance by an actor in a motion picture", RetweetCount: 100},
		{ID: 2, Text: "nominated for best actor and congrats on the win", RetweetCount: 5},
		{ID: 3, Text: "red carpet looks amazing tonight", RetweetCount: 1},
		{ID: 4, Text: "Jodie Foster receives the Cecil B. DeMille award, what a winner", RetweetCount: 50},
	}

	g := NewGrouper(tagger.NewLexiconTagger(), nil, nil, nil)
	result := g.Process(messages)

	winGroup := result.Group(IntentWin)
	if len(winGroup) != 3 {
		t.Fatalf("win group has %d messages, expected 3", len(winGroup))
	}
	if winGroup[0].ID != 1 || winGroup[1].ID != 2 || winGroup[2].ID != 4 {
		t.Errorf("win group not in insertion order: %v", winGroup)
	}

	nomineeGroup := result.Group(IntentNominee)
	if len(nomineeGroup) != 1 || nomineeGroup[0].ID != 2 {
		t.Errorf("nominee group = %v, expected message 2 only", nomineeGroup)
	}

	mentions := result.MentionsFor(1)
	if len(mentions) != 1 || mentions[0] != "best performance by an actor in a motion picture" {
		t.Errorf("mentions for message 1 = %v", mentions)
	}

	cecil := result.MentionsFor(4)
	found := false
	for _, m := range cecil {
		if m == CecilAwardName {
			found = true
		}
	}
	if !found {
		t.Errorf("expected cecil phrase for message 4, got %v", cecil)
	}

	if g.Stats().Processed() != 4 {
		t.Errorf("processed = %d, expected 4", g.Stats().Processed())
	}
}

func TestAcceptPhrase(t *testing.T) {
	tests := []struct {
		phrase   string
		expected bool
	}{
		{"best drama film", true},
		{"best of", false},
		{"greatest show on earth tonight", false},
		{"best " + string(make([]byte, 120)), false},
	}

	for _, tt := range tests {
		if got := acceptPhrase(tt.phrase); got != tt.expected {
			t.Errorf("acceptPhrase(%q) = %v, expected %v", tt.phrase, got, tt.expected)
		}
	}
}

// failingTagger always errors, to exercise the harvest skip path.
type failingTagger struct{}

func (failingTagger) Tag(string) ([]tagger.Token, error) {
	return nil, errors.New("tagger unavailable")
}

func TestProcessTaggerFailure(t *testing.T) {
	g := NewGrouper(failingTagger{}, nil, nil, nil)
	result := g.Process([]message.Message{
		{ID: 1, Text: "Argo wins best drama", RetweetCount: 1},
	})

	if len(result.Group(IntentWin)) != 1 {
		t.Error("classification should proceed despite tagger failure")
	}
	if len(result.MentionsFor(1)) != 0 {
		t.Errorf("expected no mentions, got %v", result.MentionsFor(1))
	}
	if g.Stats().TaggerFailures() != 1 {
		t.Errorf("tagger failures = %d, expected 1", g.Stats().TaggerFailures())
	}
}
