package extras

import (
	"testing"

	"github.com/redcarpet-collective/gala/internal/message"
	"github.com/redcarpet-collective/gala/internal/tagger"
)

func TestExtractBestDressed(t *testing.T) {
	var msgs []message.Message
	for i := 0; i < 6; i++ {
		msgs = append(msgs, message.Message{
			ID:   int64(i),
			Text: "Lucy Liu is the best dressed tonight",
		})
	}
	msgs = append(msgs, message.Message{ID: 100, Text: "Kate Hudson looks stunning"})

	e := NewExtractor(tagger.NewHeuristicEntityTagger(), 5, nil)
	got := e.Extract(msgs)

	res, ok := got[GoalBestDressed]
	if !ok {
		t.Fatal("expected best_dressed result")
	}
	if res.Winner != "lucy liu" {
		t.Errorf("winner = %q, expected lucy liu", res.Winner)
	}
	if len(res.Candidates) == 0 || res.Candidates[0] != "lucy liu" {
		t.Errorf("candidates = %v", res.Candidates)
	}
}

func TestExtractBelowThreshold(t *testing.T) {
	msgs := []message.Message{
		{ID: 1, Text: "Sacha Baron had the worst speech honestly"},
	}

	e := NewExtractor(tagger.NewHeuristicEntityTagger(), 5, nil)
	if got := e.Extract(msgs); len(got) != 0 {
		t.Errorf("Extract() = %v, expected nothing below mention threshold", got)
	}
}

func TestExtractNoFashionSignal(t *testing.T) {
	msgs := []message.Message{
		{ID: 1, Text: "Argo wins best drama"},
	}

	e := NewExtractor(tagger.NewHeuristicEntityTagger(), 1, nil)
	got := e.Extract(msgs)
	if _, ok := got[GoalBestDressed]; ok {
		t.Error("plain award message must not count toward best_dressed")
	}
}
