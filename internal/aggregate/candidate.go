// Package aggregate accumulates candidate mentions per category and selects
// final winners, nominees, presenters and hosts with role-specific policies.
package aggregate

import (
	"sort"

	"github.com/redcarpet-collective/gala/internal/awards"
	"github.com/redcarpet-collective/gala/internal/message"
	"github.com/redcarpet-collective/gala/internal/tagger"
)

// Candidate is a scored answer candidate for one category and role.
// Frequency always equals the number of supporting messages, and AvgRetweets
// always equals TotalRetweets divided by Frequency.
type Candidate struct {
	Name               string
	Frequency          int
	WeightedMentions   float64
	StrongMentions     int
	TotalRetweets      int
	MaxRetweets        int
	AvgRetweets        float64
	Type               string
	SupportingMessages []int64
}

// strongWeight is the accumulation weight of a message carrying strong
// lexical signal for the role; weakly signaled messages weigh 1.
const strongWeight = 2.0

// Aggregator collects (category, entity) observations. One aggregator serves
// one role; category state is independent, so callers wanting parallelism
// can shard by category and merge.
type Aggregator struct {
	candidates map[string]map[string]*Candidate
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		candidates: make(map[string]map[string]*Candidate),
	}
}

// Add records one observation of entity for category carried by message m.
// The entity is normalized before accumulation; empty normalizations are
// dropped. strong marks messages with explicit role phrasing, which weigh
// double in the weighted mention count.
func (a *Aggregator) Add(category string, entity string, m message.Message, strong bool) {
	name := awards.Normalize(entity)
	if name == "" {
		return
	}

	byName, ok := a.candidates[category]
	if !ok {
		byName = make(map[string]*Candidate)
		a.candidates[category] = byName
	}

	c, ok := byName[name]
	if !ok {
		c = &Candidate{Name: name}
		byName[name] = c
	}

	c.Frequency++
	if strong {
		c.WeightedMentions += strongWeight
		c.StrongMentions++
	} else {
		c.WeightedMentions++
	}
	c.TotalRetweets += m.RetweetCount
	if m.RetweetCount > c.MaxRetweets {
		c.MaxRetweets = m.RetweetCount
	}
	c.AvgRetweets = float64(c.TotalRetweets) / float64(c.Frequency)
	c.SupportingMessages = append(c.SupportingMessages, m.ID)

	if c.Type == "" || c.Type == tagger.EntityOther {
		c.Type = tagger.Classify(entity, category, m.Text)
	}
}

// Candidates returns the category's candidates ranked by weighted mentions,
// breaking ties by frequency and then name for determinism.
func (a *Aggregator) Candidates(category string) []Candidate {
	byName := a.candidates[category]
	out := make([]Candidate, 0, len(byName))
	for _, c := range byName {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeightedMentions != out[j].WeightedMentions {
			return out[i].WeightedMentions > out[j].WeightedMentions
		}
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Categories returns all categories with at least one candidate.
func (a *Aggregator) Categories() []string {
	names := make([]string, 0, len(a.candidates))
	for name := range a.candidates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TopNames returns up to max candidate names for the category in rank order.
func (a *Aggregator) TopNames(category string, max int) []string {
	cands := a.Candidates(category)
	if len(cands) > max {
		cands = cands[:max]
	}
	names := make([]string, 0, len(cands))
	for _, c := range cands {
		names = append(names, c.Name)
	}
	return names
}
