package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics names as constants for consistency.
const (
	MetricMessagesLoaded = "pipeline_messages_loaded_total"
	MetricWinnersFound   = "pipeline_winners_found_total"
	MetricPhaseLatency   = "pipeline_phase_latency_seconds"
)

// Metrics contains Prometheus metrics for the extraction pipeline.
// All operations are thread-safe.
type Metrics struct {
	messagesLoaded prometheus.Counter
	winnersFound   prometheus.Counter
	phaseLatency   *prometheus.HistogramVec
}

// NewMetrics creates and returns a new Metrics instance with all collectors
// initialized. The metrics are not registered; call Register to register
// them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		messagesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricMessagesLoaded,
			Help: "Total number of corpus messages loaded",
		}),
		winnersFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricWinnersFound,
			Help: "Total number of categories with an extracted winner",
		}),
		phaseLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricPhaseLatency,
			Help:    "Histogram of pipeline phase latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"phase"}),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.messagesLoaded,
		m.winnersFound,
		m.phaseLatency,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// AddMessagesLoaded adds n to the messages loaded counter.
func (m *Metrics) AddMessagesLoaded(n int) {
	m.messagesLoaded.Add(float64(n))
}

// IncWinnersFound increments the winners found counter.
func (m *Metrics) IncWinnersFound() {
	m.winnersFound.Inc()
}

// ObservePhaseLatency records a phase latency sample.
func (m *Metrics) ObservePhaseLatency(phase string, seconds float64) {
	m.phaseLatency.WithLabelValues(phase).Observe(seconds)
}
