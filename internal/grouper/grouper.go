// Package grouper classifies corpus messages into intent groups and harvests
// raw award-phrase mentions for downstream discovery and association.
package grouper

import (
	"log/slog"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/redcarpet-collective/gala/internal/message"
	"github.com/redcarpet-collective/gala/internal/tagger"
)

// Intent is a message intent group label.
type Intent string

// Intent groups. Membership is not mutually exclusive: a message can land
// in several groups at once.
const (
	IntentWin       Intent = "win"
	IntentHost      Intent = "host"
	IntentPresenter Intent = "presenter"
	IntentNominee   Intent = "nominee"
)

// AllIntents lists the intent groups in pipeline phase order.
var AllIntents = []Intent{IntentWin, IntentHost, IntentPresenter, IntentNominee}

var intentPatterns = map[Intent]*regexp.Regexp{
	IntentWin:       regexp.MustCompile(`(?i)\b(win|wins|won|winner|winners|winning)\b`),
	IntentHost:      regexp.MustCompile(`(?i)\b(host|hosts|hosted|hosting|emcee)\b`),
	IntentPresenter: regexp.MustCompile(`(?i)\b(present|presents|presented|presenting|presenter|presenters|introduce|introduces|introduced|introducing)\b|\bhand(s|ed|ing)? out\b|\bannounce[sd]? the winner\b`),
	IntentNominee:   regexp.MustCompile(`(?i)\b(nominate|nominated|nomination|nominations|nominee|nominees|contender|contenders)\b|\bshould win\b|\bup for\b|\brooting for\b`),
}

// cecilPattern matches the one recurring ceremony award that never appears
// in "best X" form.
var cecilPattern = regexp.MustCompile(`(?i)cecil\s+b\.?\s*demille`)

// CecilAwardName is the harvested phrase recorded for Cecil B. DeMille
// mentions.
const CecilAwardName = "cecil b. demille award"

// Harvested phrase length bounds. Shorter spans are degenerate fragments,
// longer ones are runaway chunker matches.
const (
	minPhraseLen = 10
	maxPhraseLen = 100
)

// Stats tracks counts for a grouping run.
// All operations are thread-safe using atomic counters.
type Stats struct {
	processed      int64 // Total messages classified
	grouped        int64 // Messages placed in at least one group
	harvested      int64 // Award phrases harvested
	taggerFailures int64 // Messages whose phrase harvest was skipped
}

// NewStats creates a new Stats instance.
func NewStats() *Stats {
	return &Stats{}
}

// Processed returns the total number of messages classified.
func (s *Stats) Processed() int64 {
	return atomic.LoadInt64(&s.processed)
}

// Grouped returns the number of messages placed in at least one group.
func (s *Stats) Grouped() int64 {
	return atomic.LoadInt64(&s.grouped)
}

// Harvested returns the number of award phrases harvested.
func (s *Stats) Harvested() int64 {
	return atomic.LoadInt64(&s.harvested)
}

// TaggerFailures returns the number of messages whose phrase harvest was
// skipped because the tagger failed.
func (s *Stats) TaggerFailures() int64 {
	return atomic.LoadInt64(&s.taggerFailures)
}

// LogSummary logs the run counters at info level.
func (s *Stats) LogSummary(logger *slog.Logger) {
	logger.Info("grouping complete",
		"processed", s.Processed(),
		"grouped", s.Grouped(),
		"phrases_harvested", s.Harvested(),
		"tagger_failures", s.TaggerFailures())
}

// Result holds the outcome of grouping a corpus: the intent groups in
// insertion order, and the award phrases harvested per message id so later
// phases never re-run tagging.
type Result struct {
	Groups   map[Intent][]message.Message
	Mentions map[int64][]string
}

// Group returns the messages of one intent group in insertion order.
func (r *Result) Group(intent Intent) []message.Message {
	return r.Groups[intent]
}

// MentionsFor returns the award phrases harvested from the given message.
func (r *Result) MentionsFor(id int64) []string {
	return r.Mentions[id]
}

// Grouper classifies messages and harvests award phrases.
type Grouper struct {
	tagger  tagger.Tagger
	stats   *Stats
	metrics *Metrics
	logger  *slog.Logger
}

// NewGrouper creates a Grouper. The metrics argument may be nil when the
// caller does not export Prometheus metrics.
func NewGrouper(tg tagger.Tagger, stats *Stats, metrics *Metrics, logger *slog.Logger) *Grouper {
	if logger == nil {
		logger = slog.Default()
	}
	if stats == nil {
		stats = NewStats()
	}
	return &Grouper{
		tagger:  tg,
		stats:   stats,
		metrics: metrics,
		logger:  logger,
	}
}

// Stats returns the run counters.
func (g *Grouper) Stats() *Stats {
	return g.stats
}

// Classify returns the intent groups a single message belongs to.
func Classify(text string) []Intent {
	var intents []Intent
	for _, intent := range AllIntents {
		if intentPatterns[intent].MatchString(text) {
			intents = append(intents, intent)
		}
	}
	return intents
}

// Process classifies every message and harvests award phrases from it.
// Tagger failures skip the harvest for that message only; classification
// still proceeds from the patterns alone.
func (g *Grouper) Process(messages []message.Message) *Result {
	result := &Result{
		Groups:   make(map[Intent][]message.Message, len(AllIntents)),
		Mentions: make(map[int64][]string),
	}

	for _, m := range messages {
		atomic.AddInt64(&g.stats.processed, 1)
		if g.metrics != nil {
			g.metrics.IncMessagesProcessed()
		}

		intents := Classify(m.Text)
		if len(intents) > 0 {
			atomic.AddInt64(&g.stats.grouped, 1)
		}
		for _, intent := range intents {
			result.Groups[intent] = append(result.Groups[intent], m)
		}

		phrases := g.harvest(m)
		if len(phrases) > 0 {
			result.Mentions[m.ID] = phrases
			atomic.AddInt64(&g.stats.harvested, int64(len(phrases)))
			if g.metrics != nil {
				g.metrics.AddPhrasesHarvested(len(phrases))
			}
		}
	}

	g.stats.LogSummary(g.logger)
	return result
}

// harvest extracts plausible award phrases from one message.
func (g *Grouper) harvest(m message.Message) []string {
	var phrases []string

	if cecilPattern.MatchString(m.Text) {
		phrases = append(phrases, CecilAwardName)
	}

	tokens, err := g.tagger.Tag(m.Text)
	if err != nil {
		atomic.AddInt64(&g.stats.taggerFailures, 1)
		if g.metrics != nil {
			g.metrics.IncTaggerFailures()
		}
		return phrases
	}

	for _, span := range tagger.Chunk(tokens) {
		if acceptPhrase(span) {
			phrases = append(phrases, strings.ToLower(span))
		}
	}
	return phrases
}

// acceptPhrase applies the plausibility bound: the span must carry the
// "best" token and fit the length window.
func acceptPhrase(span string) bool {
	if len(span) < minPhraseLen || len(span) > maxPhraseLen {
		return false
	}
	for _, w := range strings.Fields(strings.ToLower(span)) {
		if w == "best" {
			return true
		}
	}
	return false
}
