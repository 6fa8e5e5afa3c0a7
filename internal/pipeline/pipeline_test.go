package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/redcarpet-collective/gala/internal/config"
	"github.com/redcarpet-collective/gala/internal/kb"
	"github.com/redcarpet-collective/gala/internal/message"
	"github.com/redcarpet-collective/gala/internal/store"
)

const dramaPicture = "best motion picture - drama"

func testConfig() *config.Config {
	return &config.Config{
		Env:                  "test",
		Year:                 "2013",
		OutputDir:            ".",
		MinAwardMentions:     2,
		ClusterThreshold:     0.85,
		ExpectedAwardCount:   26,
		WinnerMinMentions:    3,
		NomineeMinMentions:   3,
		NomineeTopN:          5,
		PresenterMinMentions: 3,
		PresenterTopN:        2,
		HostMinMentions:      3,
		HostTopN:             2,
		Templates:            []string{dramaPicture},
	}
}

// testCorpus builds a small synthetic corpus with clear signal for every
// role in the drama picture category.
func testCorpus() []message.Message {
	var msgs []message.Message
	id := int64(0)
	add := func(text string, n int) {
		for i := 0; i < n; i++ {
			id++
			msgs = append(msgs, message.Message{ID: id, Text: text, RetweetCount: int(id)})
		}
	}

	add("Tina Fey and Amy Poehler are hosting the ceremony tonight", 4)
	add(`"Argo" wins best drama motion picture`, 6)
	add(`Rooting for "Lincoln" for best drama motion picture`, 3)
	add("Julia Roberts is presenting best drama motion picture", 2)
	add("Lucy Liu is the best dressed tonight", 2)

	return msgs
}

func TestRunEndToEnd(t *testing.T) {
	p := New(testConfig(), message.SliceSource(testCorpus()), nil)

	r, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(r.Hosts) != 2 {
		t.Fatalf("hosts = %v, expected both co-hosts", r.Hosts)
	}
	if r.Hosts[0] != "amy poehler" || r.Hosts[1] != "tina fey" {
		t.Errorf("hosts = %v", r.Hosts)
	}

	if len(r.DiscoveredAwards) == 0 {
		t.Error("expected at least one discovered award")
	}

	a, ok := r.Awards[dramaPicture]
	if !ok {
		t.Fatalf("missing category %q in results", dramaPicture)
	}
	if a.Winner != "argo" {
		t.Errorf("winner = %q, expected argo", a.Winner)
	}
	if len(a.Nominees) != 1 || a.Nominees[0] != "lincoln" {
		t.Errorf("nominees = %v, expected lincoln only", a.Nominees)
	}
	if len(a.Presenters) != 1 || a.Presenters[0] != "julia roberts" {
		t.Errorf("presenters = %v, expected julia roberts", a.Presenters)
	}
	for _, n := range a.Nominees {
		if n == a.Winner {
			t.Error("winner must not appear among nominees")
		}
	}

	if got := r.Extras["best_dressed"]; got != "lucy liu" {
		t.Errorf("best_dressed = %q, expected lucy liu", got)
	}

	if p.Stats().Messages() != int64(len(testCorpus())) {
		t.Errorf("stats messages = %d", p.Stats().Messages())
	}
	if p.Stats().WinnersFound() != 1 {
		t.Errorf("stats winners = %d, expected 1", p.Stats().WinnersFound())
	}
}

func TestRunHostsNeverWin(t *testing.T) {
	msgs := testCorpus()
	// Flood the win group with one of the hosts.
	id := int64(1000)
	for i := 0; i < 8; i++ {
		id++
		msgs = append(msgs, message.Message{
			ID:   id,
			Text: "Tina Fey wins best drama motion picture surely",
		})
	}

	p := New(testConfig(), message.SliceSource(msgs), nil)
	r, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	a := r.Awards[dramaPicture]
	if a.Winner == "tina fey" {
		t.Errorf("winner = %q, hosts must be excluded from winner pools", a.Winner)
	}
}

type rejectClient struct {
	reject string
}

func (c rejectClient) Lookup(_ context.Context, name, _ string) (bool, error) {
	return name != c.reject, nil
}

func TestRunValidatorRejectsWinner(t *testing.T) {
	v := kb.NewValidator(rejectClient{reject: "argo"}, nil)
	p := New(testConfig(), message.SliceSource(testCorpus()), nil, WithValidator(v))

	r, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if w := r.Awards[dramaPicture].Winner; w == "argo" {
		t.Errorf("winner = %q, rejected candidate must not be selected", w)
	}
}

type captureRepo struct {
	run  store.RunRecord
	rows []store.CandidateRecord
	seen bool
}

func (r *captureRepo) SaveRun(_ context.Context, run store.RunRecord, rows []store.CandidateRecord) error {
	r.run = run
	r.rows = rows
	r.seen = true
	return nil
}

func TestRunAudit(t *testing.T) {
	repo := &captureRepo{}
	p := New(testConfig(), message.SliceSource(testCorpus()), nil, WithAudit(repo))

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !repo.seen {
		t.Fatal("audit repository was never called")
	}
	if repo.run.Year != "2013" {
		t.Errorf("audit year = %q", repo.run.Year)
	}
	if repo.run.Messages != int64(len(testCorpus())) {
		t.Errorf("audit messages = %d", repo.run.Messages)
	}

	var winnerRow bool
	for _, row := range repo.rows {
		if row.Role == "winner" && row.Name == "argo" && row.Selected {
			winnerRow = true
		}
	}
	if !winnerRow {
		t.Error("expected a selected winner candidate row in the audit")
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(testConfig(), message.SliceSource(testCorpus()), nil)
	if _, err := p.Run(ctx); err == nil {
		t.Error("Run() with cancelled context must fail")
	}
}

func TestMetricsRegister(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := m.Register(reg); err == nil {
		t.Error("duplicate Register() must fail")
	}
}

func TestStrongPatterns(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Argo wins the award", true},
		{"and the award goes to Argo", true},
		{"Argo was robbed", false},
	}
	for _, tt := range tests {
		if got := winStrongPattern.MatchString(tt.text); got != tt.want {
			t.Errorf("winStrongPattern(%q) = %v, expected %v", tt.text, got, tt.want)
		}
	}

	if !strings.Contains(futureHostPattern.String(), "next year") {
		t.Error("future host pattern must reject next-year speculation")
	}
	if !futureHostPattern.MatchString("Lucy Liu should host next year") {
		t.Error("speculative host message must match")
	}
}
