// Package pipeline orchestrates a full extraction run: grouping, award
// discovery, template resolution, role extraction and result assembly.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/redcarpet-collective/gala/internal/aggregate"
	"github.com/redcarpet-collective/gala/internal/associate"
	"github.com/redcarpet-collective/gala/internal/awards"
	"github.com/redcarpet-collective/gala/internal/config"
	"github.com/redcarpet-collective/gala/internal/extras"
	"github.com/redcarpet-collective/gala/internal/grouper"
	"github.com/redcarpet-collective/gala/internal/kb"
	"github.com/redcarpet-collective/gala/internal/message"
	"github.com/redcarpet-collective/gala/internal/results"
	"github.com/redcarpet-collective/gala/internal/stats"
	"github.com/redcarpet-collective/gala/internal/store"
	"github.com/redcarpet-collective/gala/internal/tagger"
)

// Candidate list caps in the output, per role.
const (
	winnerCandidateCap    = 10
	nomineeCandidateCap   = 20
	presenterCandidateCap = 10
	hostCandidateCap      = 10
)

// hostCategory is the pseudo-category hosts aggregate under; hosting is
// ceremony-wide rather than per award.
const hostCategory = "hosting"

// Strong-signal patterns per role. A message matching its role pattern
// weighs double during aggregation.
var (
	winStrongPattern       = regexp.MustCompile(`(?i)\b(wins|won|winner)\b|\bgoes to\b`)
	nomineeStrongPattern   = regexp.MustCompile(`(?i)\b(nominated|nominee|nominees|nomination)\b`)
	presenterStrongPattern = regexp.MustCompile(`(?i)\b(presents|presented|presenting|presenter|presenters)\b`)
	hostStrongPattern      = regexp.MustCompile(`(?i)\b(hosting|hosted by)\b`)
)

// futureHostPattern rejects speculation about who should host next time.
var futureHostPattern = regexp.MustCompile(`(?i)\b(should|next year|next time|want(s)? to see)\b.*\bhost`)

// Pipeline runs the extraction phases in order over one corpus.
type Pipeline struct {
	cfg       *config.Config
	source    message.Source
	tagger    tagger.Tagger
	entities  tagger.EntityTagger
	validator *kb.Validator
	audit     store.RunRepository
	metrics   *Metrics
	stats     *stats.RunStats
	logger    *slog.Logger

	entityCache map[int64][]tagger.Entity
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithValidator plugs in the optional knowledge-base validator.
func WithValidator(v *kb.Validator) Option {
	return func(p *Pipeline) { p.validator = v }
}

// WithAudit plugs in the optional run audit repository. Audit failures are
// logged and never fail the run.
func WithAudit(r store.RunRepository) Option {
	return func(p *Pipeline) { p.audit = r }
}

// WithMetrics plugs in Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithTagger overrides the default lexicon tagger.
func WithTagger(t tagger.Tagger) Option {
	return func(p *Pipeline) { p.tagger = t }
}

// WithEntityTagger overrides the default heuristic entity tagger.
func WithEntityTagger(t tagger.EntityTagger) Option {
	return func(p *Pipeline) { p.entities = t }
}

// New creates a Pipeline over the given corpus source.
func New(cfg *config.Config, source message.Source, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		cfg:         cfg,
		source:      source,
		tagger:      tagger.NewLexiconTagger(),
		entities:    tagger.NewHeuristicEntityTagger(),
		stats:       stats.NewRunStats(),
		logger:      logger,
		entityCache: make(map[int64][]tagger.Entity),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stats returns the run counters.
func (p *Pipeline) Stats() *stats.RunStats {
	return p.stats
}

// Run executes the extraction phases in order and returns the assembled
// results. Phases after grouping only read the grouping output, so a failure
// can only come from corpus loading or a cancelled context.
func (p *Pipeline) Run(ctx context.Context) (*results.Results, error) {
	runID := uuid.New().String()
	startedAt := time.Now()
	p.logger.Info("extraction run starting", "run_id", runID, "year", p.cfg.Year)

	messages, err := p.source.Messages()
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	p.stats.SetMessages(int64(len(messages)))
	if p.metrics != nil {
		p.metrics.AddMessagesLoaded(len(messages))
	}

	var grouped *grouper.Result
	p.phase("group", func() {
		g := grouper.NewGrouper(p.tagger, nil, nil, p.logger)
		grouped = g.Process(messages)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := results.New(runID, p.cfg.Year)

	var hostAgg *aggregate.Aggregator
	p.phase("hosts", func() {
		hostAgg = p.extractHosts(ctx, grouped, r)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var discovered []awards.CanonicalAward
	p.phase("discover", func() {
		discovered = p.discoverAwards(grouped)
	})
	r.DiscoveredAwards = awards.Names(discovered)
	p.stats.SetAwardsFound(int64(len(discovered)))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	templates := awards.Resolve(p.cfg.Templates, r.DiscoveredAwards, p.logger)

	excludeHosts := make(map[string]bool, len(r.Hosts))
	for _, h := range r.Hosts {
		excludeHosts[awards.Normalize(h)] = true
	}

	var winnerAgg *aggregate.Aggregator
	p.phase("winners", func() {
		winnerAgg = p.extractWinners(ctx, grouped, templates, excludeHosts, r)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.phase("nominees", func() {
		p.extractNominees(grouped, templates, r)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.phase("presenters", func() {
		p.extractPresenters(grouped, templates, r)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.phase("extras", func() {
		e := extras.NewExtractor(p.entities, p.cfg.MinAwardMentions, p.logger)
		for goal, res := range e.Extract(messages) {
			r.Extras[goal] = res.Winner
			r.ExtraCandidates[goal] = res.Candidates
		}
	})

	p.stats.LogSummary(p.logger)

	if p.audit != nil {
		p.saveAudit(ctx, runID, startedAt, r, hostAgg, winnerAgg, messages)
	}

	p.logger.Info("extraction run complete",
		"run_id", runID,
		"awards", len(r.Awards),
		"hosts", len(r.Hosts),
		"duration", time.Since(startedAt).String())
	return r, nil
}

// phase runs fn and records its latency.
func (p *Pipeline) phase(name string, fn func()) {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	if p.metrics != nil {
		p.metrics.ObservePhaseLatency(name, elapsed.Seconds())
	}
	p.logger.Debug("phase complete", "phase", name, "duration", elapsed.String())
}

// entitiesFor returns the cached entity spans of a message, tagging on first
// use.
func (p *Pipeline) entitiesFor(m message.Message) []tagger.Entity {
	if ents, ok := p.entityCache[m.ID]; ok {
		return ents
	}
	ents, err := p.entities.Entities(m.Text)
	if err != nil {
		ents = nil
	}
	p.entityCache[m.ID] = ents
	return ents
}

// extractHosts aggregates person mentions from the host group and selects
// the ceremony hosts. Speculative messages about future hosts are ignored.
func (p *Pipeline) extractHosts(ctx context.Context, grouped *grouper.Result, r *results.Results) *aggregate.Aggregator {
	agg := aggregate.NewAggregator()

	for _, m := range grouped.Group(grouper.IntentHost) {
		if futureHostPattern.MatchString(m.Text) {
			continue
		}
		strong := hostStrongPattern.MatchString(m.Text)
		for _, ent := range p.entitiesFor(m) {
			if ent.Type != tagger.EntityPerson {
				continue
			}
			agg.Add(hostCategory, ent.Text, m, strong)
		}
	}

	candidates := agg.Candidates(hostCategory)
	if p.validator != nil {
		candidates = p.validateCandidates(ctx, candidates, tagger.EntityPerson)
	}

	policy := p.policy()
	r.Hosts = policy.SelectHosts(candidates)
	r.HostCandidates = agg.TopNames(hostCategory, hostCandidateCap)
	p.stats.SetHostsFound(int64(len(r.Hosts)))

	p.logger.Info("hosts selected", "hosts", r.Hosts)
	return agg
}

// discoverAwards clusters the phrases harvested from win-group messages into
// canonical award names.
func (p *Pipeline) discoverAwards(grouped *grouper.Result) []awards.CanonicalAward {
	winMentions := make(map[int64][]string)
	for _, m := range grouped.Group(grouper.IntentWin) {
		if phrases := grouped.MentionsFor(m.ID); len(phrases) > 0 {
			winMentions[m.ID] = phrases
		}
	}

	d := awards.NewDiscoverer(p.logger,
		awards.WithMinMentions(p.cfg.MinAwardMentions),
		awards.WithClusterThreshold(p.cfg.ClusterThreshold),
		awards.WithExpectedCount(p.cfg.ExpectedAwardCount))
	return d.Discover(winMentions)
}

// extractWinners aggregates entities from the win group per category and
// selects one winner per template. Hosts never win.
func (p *Pipeline) extractWinners(ctx context.Context, grouped *grouper.Result, templates []awards.TemplateAward, excludeHosts map[string]bool, r *results.Results) *aggregate.Aggregator {
	assoc := associate.NewAssociator(templates, associate.WinnerOverlapThreshold, p.logger)
	agg := aggregate.NewAggregator()

	for _, m := range grouped.Group(grouper.IntentWin) {
		categories := assoc.Associate(m, grouped.MentionsFor(m.ID))
		if len(categories) == 0 {
			continue
		}
		strong := winStrongPattern.MatchString(m.Text)
		for _, cat := range categories {
			for _, ent := range p.entitiesFor(m) {
				agg.Add(cat, ent.Text, m, strong)
			}
		}
	}

	policy := p.policy()
	for _, t := range templates {
		candidates := agg.Candidates(t.Name)
		if p.validator != nil {
			candidates = p.validateCandidates(ctx, candidates, tagger.ExpectedType(t.Name))
		}

		a := r.Award(t.Name)
		a.Winner = policy.SelectWinner(candidates, t.Name, excludeHosts)
		a.WinnerCandidates = agg.TopNames(t.Name, winnerCandidateCap)
		if a.Winner != "" {
			p.stats.RecordWinner()
			if p.metrics != nil {
				p.metrics.IncWinnersFound()
			}
		}
	}
	return agg
}

// extractNominees aggregates the nominee and win groups per category and
// selects nominees, always excluding the category winner.
func (p *Pipeline) extractNominees(grouped *grouper.Result, templates []awards.TemplateAward, r *results.Results) {
	assoc := associate.NewAssociator(templates, associate.DefaultOverlapThreshold, p.logger)
	agg := aggregate.NewAggregator()

	seen := make(map[int64]bool)
	pool := append([]message.Message{}, grouped.Group(grouper.IntentNominee)...)
	pool = append(pool, grouped.Group(grouper.IntentWin)...)

	for _, m := range pool {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true

		categories := assoc.Associate(m, grouped.MentionsFor(m.ID))
		if len(categories) == 0 {
			continue
		}
		strong := nomineeStrongPattern.MatchString(m.Text)
		for _, cat := range categories {
			for _, ent := range p.entitiesFor(m) {
				agg.Add(cat, ent.Text, m, strong)
			}
		}
	}

	policy := p.policy()
	for _, t := range templates {
		a := r.Award(t.Name)
		a.Nominees = policy.SelectNominees(agg.Candidates(t.Name), t.Name, a.Winner)
		a.NomineeCandidates = agg.TopNames(t.Name, nomineeCandidateCap)
		if len(a.Nominees) > 0 {
			p.stats.RecordNominees()
		}
	}
}

// extractPresenters aggregates person mentions from the presenter group per
// category and selects presenters.
func (p *Pipeline) extractPresenters(grouped *grouper.Result, templates []awards.TemplateAward, r *results.Results) {
	assoc := associate.NewAssociator(templates, associate.DefaultOverlapThreshold, p.logger)
	agg := aggregate.NewAggregator()

	for _, m := range grouped.Group(grouper.IntentPresenter) {
		categories := assoc.Associate(m, grouped.MentionsFor(m.ID))
		if len(categories) == 0 {
			continue
		}
		strong := presenterStrongPattern.MatchString(m.Text)
		for _, cat := range categories {
			for _, ent := range p.entitiesFor(m) {
				if ent.Type != tagger.EntityPerson {
					continue
				}
				agg.Add(cat, ent.Text, m, strong)
			}
		}
	}

	policy := p.policy()
	for _, t := range templates {
		a := r.Award(t.Name)
		a.Presenters = policy.SelectPresenters(agg.Candidates(t.Name), t.Name)
		a.PresenterCandidates = agg.TopNames(t.Name, presenterCandidateCap)
		if len(a.Presenters) > 0 {
			p.stats.RecordPresenters()
		}
	}
}

// validateCandidates drops candidates the knowledge base rejects. The
// validator fail-opens, so a degraded service never empties the pool.
func (p *Pipeline) validateCandidates(ctx context.Context, candidates []aggregate.Candidate, kind string) []aggregate.Candidate {
	kept := make([]aggregate.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if p.validator.Validate(ctx, c.Name, kind) {
			kept = append(kept, c)
		}
	}
	return kept
}

// policy builds the selection policy from configuration.
func (p *Pipeline) policy() aggregate.Policy {
	policy := aggregate.DefaultPolicy()
	policy.WinnerMinMentions = p.cfg.WinnerMinMentions
	policy.NomineeMinMentions = p.cfg.NomineeMinMentions
	policy.NomineeTopN = p.cfg.NomineeTopN
	policy.PresenterMinMentions = p.cfg.PresenterMinMentions
	policy.PresenterTopN = p.cfg.PresenterTopN
	policy.HostMinMentions = p.cfg.HostMinMentions
	policy.HostTopN = p.cfg.HostTopN
	return policy
}

// saveAudit persists the run summary best-effort.
func (p *Pipeline) saveAudit(ctx context.Context, runID string, startedAt time.Time, r *results.Results, hostAgg, winnerAgg *aggregate.Aggregator, messages []message.Message) {
	id, err := uuid.Parse(runID)
	if err != nil {
		p.logger.Warn("invalid run id, skipping audit", "error", err)
		return
	}

	run := store.RunRecord{
		RunID:      id,
		Year:       p.cfg.Year,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Messages:   int64(len(messages)),
		Awards:     int64(len(r.DiscoveredAwards)),
		Hosts:      r.Hosts,
	}

	var rows []store.CandidateRecord
	if hostAgg != nil {
		selected := make(map[string]bool, len(r.Hosts))
		for _, h := range r.Hosts {
			selected[h] = true
		}
		for _, c := range hostAgg.Candidates(hostCategory) {
			rows = append(rows, store.CandidateRecord{
				Category:      hostCategory,
				Role:          "host",
				Name:          c.Name,
				Frequency:     c.Frequency,
				TotalRetweets: c.TotalRetweets,
				MaxRetweets:   c.MaxRetweets,
				AvgRetweets:   c.AvgRetweets,
				Selected:      selected[c.Name],
			})
		}
	}
	if winnerAgg != nil {
		for name, a := range r.Awards {
			for _, c := range winnerAgg.Candidates(name) {
				rows = append(rows, store.CandidateRecord{
					Category:      name,
					Role:          "winner",
					Name:          c.Name,
					Frequency:     c.Frequency,
					TotalRetweets: c.TotalRetweets,
					MaxRetweets:   c.MaxRetweets,
					AvgRetweets:   c.AvgRetweets,
					Selected:      c.Name == a.Winner,
				})
			}
		}
	}

	if err := p.audit.SaveRun(ctx, run, rows); err != nil {
		p.logger.Warn("failed to save audit record", "error", err)
	}
}
