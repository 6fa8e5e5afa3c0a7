package awards

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Discoverer turns harvested award phrases into a ranked list of canonical
// award names.
type Discoverer struct {
	minMentions      int
	clusterThreshold float64
	expectedCount    int
	logger           *slog.Logger
}

// DiscovererOption customizes a Discoverer.
type DiscovererOption func(*Discoverer)

// WithMinMentions sets the minimum mention count for a phrase to survive
// filtering.
func WithMinMentions(n int) DiscovererOption {
	return func(d *Discoverer) { d.minMentions = n }
}

// WithClusterThreshold sets the similarity ratio at which two phrases join
// the same cluster.
func WithClusterThreshold(t float64) DiscovererOption {
	return func(d *Discoverer) { d.clusterThreshold = t }
}

// WithExpectedCount caps the number of awards returned.
func WithExpectedCount(n int) DiscovererOption {
	return func(d *Discoverer) { d.expectedCount = n }
}

// NewDiscoverer creates a Discoverer with ceremony defaults: 5 minimum
// mentions, 0.85 cluster threshold, 26 expected categories.
func NewDiscoverer(logger *slog.Logger, opts ...DiscovererOption) *Discoverer {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Discoverer{
		minMentions:      5,
		clusterThreshold: 0.85,
		expectedCount:    26,
		logger:           logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SimilarityRatio is the symmetric edit-distance similarity of two strings
// in [0,1]: one minus the Levenshtein distance over the longer length.
func SimilarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// cluster groups near-duplicate phrases greedily, most frequent first. The
// representative of each cluster is its longest member.
type cluster struct {
	representative string
	members        []string
}

// CanonicalAward is one discovered award category: its canonical name, the
// raw phrases merged into it, and their summed mention count.
type CanonicalAward struct {
	Name     string
	Members  []string
	Mentions int
}

// Names returns just the canonical names of the discovered awards, in order.
func Names(discovered []CanonicalAward) []string {
	names := make([]string, 0, len(discovered))
	for _, a := range discovered {
		names = append(names, a.Name)
	}
	return names
}

// Discover counts, filters, clusters and canonicalizes harvested phrases
// into an ordered canonical award list. Mentions maps message id to
// harvested phrases; only its values matter here.
func (d *Discoverer) Discover(mentions map[int64][]string) []CanonicalAward {
	counts := make(map[string]int)
	for _, phrases := range mentions {
		for _, p := range phrases {
			counts[Normalize(p)]++
		}
	}
	d.logger.Info("award discovery started", "unique_phrases", len(counts))

	filtered := make(map[string]int, len(counts))
	for phrase, count := range counts {
		if count >= d.minMentions {
			filtered[phrase] = count
		}
	}
	d.logger.Debug("phrases above mention threshold",
		"phrases", len(filtered),
		"min_mentions", d.minMentions)

	clusters := d.clusterPhrases(filtered)

	// Canonicalize representatives and merge duplicates by summing mentions.
	totals := make(map[string]int)
	membersOf := make(map[string][]string)
	for _, c := range clusters {
		sum := 0
		for _, m := range c.members {
			sum += filtered[m]
		}
		canonical := Canonicalize(c.representative)
		if len(strings.Fields(canonical)) < 2 {
			continue
		}
		totals[canonical] += sum
		membersOf[canonical] = append(membersOf[canonical], c.members...)
	}

	discovered := make([]CanonicalAward, 0, len(totals))
	for name, total := range totals {
		members := membersOf[name]
		sort.Strings(members)
		discovered = append(discovered, CanonicalAward{
			Name:     name,
			Members:  members,
			Mentions: total,
		})
	}
	sort.Slice(discovered, func(i, j int) bool {
		if discovered[i].Mentions != discovered[j].Mentions {
			return discovered[i].Mentions > discovered[j].Mentions
		}
		return discovered[i].Name < discovered[j].Name
	})

	if len(discovered) > d.expectedCount {
		discovered = discovered[:d.expectedCount]
	}

	if len(discovered) < 20 || len(discovered) > 30 {
		d.logger.Warn("unusual discovered award count",
			"count", len(discovered),
			"expected", d.expectedCount)
	}
	d.logger.Info("award discovery complete", "awards", len(discovered))

	return discovered
}

// clusterPhrases greedily clusters phrases by similarity, processing from
// most to least frequent so the highest-signal phrase seeds each cluster.
func (d *Discoverer) clusterPhrases(counts map[string]int) []cluster {
	phrases := make([]string, 0, len(counts))
	for p := range counts {
		phrases = append(phrases, p)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if counts[phrases[i]] != counts[phrases[j]] {
			return counts[phrases[i]] > counts[phrases[j]]
		}
		return phrases[i] < phrases[j]
	})

	assigned := make(map[string]bool, len(phrases))
	var clusters []cluster

	for _, phrase := range phrases {
		if assigned[phrase] {
			continue
		}
		c := cluster{members: []string{phrase}}
		assigned[phrase] = true

		for _, other := range phrases {
			if assigned[other] {
				continue
			}
			if SimilarityRatio(phrase, other) >= d.clusterThreshold {
				c.members = append(c.members, other)
				assigned[other] = true
			}
		}

		// Longest member is the most complete name.
		c.representative = c.members[0]
		for _, m := range c.members {
			if len(m) > len(c.representative) {
				c.representative = m
			}
		}
		clusters = append(clusters, c)
	}

	return clusters
}
