package aggregate

import (
	"strings"

	"github.com/redcarpet-collective/gala/internal/awards"
	"github.com/redcarpet-collective/gala/internal/tagger"
)

// Policy carries the role-specific selection thresholds.
type Policy struct {
	WinnerMinMentions    int
	WinnerTopK           int
	NomineeMinMentions   int
	NomineeTopN          int
	PresenterMinMentions int
	PresenterTopN        int
	HostMinMentions      int
	HostTopN             int
}

// DefaultPolicy returns the ceremony defaults. Hosting claims need
// corroboration far beyond the per-category roles; the host floor of 30
// suits mid-sized corpora, and full-scale corpora warrant values near 100.
func DefaultPolicy() Policy {
	return Policy{
		WinnerMinMentions:    3,
		WinnerTopK:           3,
		NomineeMinMentions:   3,
		NomineeTopN:          5,
		PresenterMinMentions: 3,
		PresenterTopN:        2,
		HostMinMentions:      30,
		HostTopN:             2,
	}
}

// Winner scoring weights. Frequency dominates; the explicit-win fraction is
// a secondary signal applied only when the majority of supporting messages
// carry it; completeness and type match are small nudges.
const (
	strongFractionWeight = 0.5
	multiWordBonus       = 1.0
	typeMatchBonus       = 0.5
	strongFractionFloor  = 0.5
)

// SelectWinner picks the single winner for a category, or "" when no
// candidate is confident enough. Candidates named in exclude (normalized,
// e.g. the ceremony hosts) never win. The top WinnerTopK candidates by
// weighted mentions are rescored on a blended signal and the best one is
// returned if its raw mention count meets, or comes within 2 of, the
// minimum-mentions threshold.
func (p Policy) SelectWinner(candidates []Candidate, category string, exclude map[string]bool) string {
	filtered := Filter(candidates, category)

	pool := make([]Candidate, 0, len(filtered))
	for _, c := range filtered {
		if exclude[c.Name] {
			continue
		}
		pool = append(pool, c)
	}
	if len(pool) == 0 {
		return ""
	}
	if len(pool) > p.WinnerTopK {
		pool = pool[:p.WinnerTopK]
	}

	expected := tagger.ExpectedType(category)
	best := pool[0]
	bestScore := winnerScore(pool[0], expected)
	for _, c := range pool[1:] {
		if s := winnerScore(c, expected); s > bestScore {
			best, bestScore = c, s
		}
	}

	if best.Frequency >= p.WinnerMinMentions-2 {
		return best.Name
	}
	return ""
}

func winnerScore(c Candidate, expected string) float64 {
	score := float64(c.Frequency)

	if c.Frequency > 0 {
		strongFraction := float64(c.StrongMentions) / float64(c.Frequency)
		if strongFraction > strongFractionFloor {
			score += strongFraction * float64(c.Frequency) * strongFractionWeight
		}
	}
	if len(strings.Fields(c.Name)) > 1 {
		score += multiWordBonus
	}
	if expected != tagger.EntityOther && c.Type == expected {
		score += typeMatchBonus
	}
	return score
}

// SelectNominees picks up to NomineeTopN nominees for a category. The
// selected winner is always excluded, and the Cecil B. DeMille category has
// no nominees by definition. When at least three candidates clear the
// mention threshold the high-confidence list is used; otherwise selection
// degrades to the top candidates regardless of threshold so sparse
// categories are not left empty.
func (p Policy) SelectNominees(candidates []Candidate, category, winner string) []string {
	if awards.IsCecil(category) {
		return []string{}
	}

	filtered := Filter(candidates, category)
	winnerNorm := awards.Normalize(winner)

	pool := make([]Candidate, 0, len(filtered))
	for _, c := range filtered {
		if winnerNorm != "" && c.Name == winnerNorm {
			continue
		}
		pool = append(pool, c)
	}

	var high []Candidate
	for _, c := range pool {
		if c.Frequency >= p.NomineeMinMentions {
			high = append(high, c)
		}
	}

	source := pool
	if len(high) >= 3 {
		source = high
	}
	if len(source) > p.NomineeTopN {
		source = source[:p.NomineeTopN]
	}

	names := make([]string, 0, len(source))
	for _, c := range source {
		names = append(names, c.Name)
	}
	return names
}

// SelectPresenters picks up to PresenterTopN presenters for a category,
// preferring candidates above the mention threshold and degrading to
// candidates with at least two mentions when none clear it.
func (p Policy) SelectPresenters(candidates []Candidate, category string) []string {
	filtered := FilterLexical(candidates, category)

	var high []Candidate
	for _, c := range filtered {
		if c.Frequency >= p.PresenterMinMentions {
			high = append(high, c)
		}
	}

	source := high
	if len(source) == 0 {
		for _, c := range filtered {
			if c.Frequency >= 2 {
				source = append(source, c)
			}
		}
	}
	if len(source) > p.PresenterTopN {
		source = source[:p.PresenterTopN]
	}

	names := make([]string, 0, len(source))
	for _, c := range source {
		names = append(names, c.Name)
	}
	return names
}

// SelectHosts picks up to HostTopN ceremony hosts. Unlike the other roles
// there is no graceful degradation: every returned host must individually
// clear the host mention threshold.
func (p Policy) SelectHosts(candidates []Candidate) []string {
	var hosts []string
	for _, c := range candidates {
		if c.Frequency >= p.HostMinMentions {
			hosts = append(hosts, c.Name)
		}
		if len(hosts) == p.HostTopN {
			break
		}
	}
	return hosts
}
