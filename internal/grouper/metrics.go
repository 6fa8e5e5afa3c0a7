package grouper

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics names as constants for consistency.
const (
	MetricMessagesProcessed = "grouper_messages_processed_total"
	MetricPhrasesHarvested  = "grouper_phrases_harvested_total"
	MetricTaggerFailures    = "grouper_tagger_failures_total"
)

// Metrics contains Prometheus metrics for the grouper.
// All operations are thread-safe.
type Metrics struct {
	messagesProcessed prometheus.Counter
	phrasesHarvested  prometheus.Counter
	taggerFailures    prometheus.Counter
}

// NewMetrics creates and returns a new Metrics instance with all collectors
// initialized. The metrics are not registered; call Register to register
// them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		messagesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricMessagesProcessed,
			Help: "Total number of messages classified by the grouper",
		}),
		phrasesHarvested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricPhrasesHarvested,
			Help: "Total number of award phrases harvested from messages",
		}),
		taggerFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricTaggerFailures,
			Help: "Total number of messages whose phrase harvest was skipped due to tagger failure",
		}),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.messagesProcessed,
		m.phrasesHarvested,
		m.taggerFailures,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncMessagesProcessed increments the messages processed counter.
func (m *Metrics) IncMessagesProcessed() {
	m.messagesProcessed.Inc()
}

// AddPhrasesHarvested adds n to the phrases harvested counter.
func (m *Metrics) AddPhrasesHarvested(n int) {
	m.phrasesHarvested.Add(float64(n))
}

// IncTaggerFailures increments the tagger failures counter.
func (m *Metrics) IncTaggerFailures() {
	m.taggerFailures.Inc()
}
