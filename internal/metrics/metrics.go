package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the resolver's Prometheus instruments. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	decisions    *prometheus.CounterVec
	matchScore   prometheus.Histogram
	modelCalls   *prometheus.CounterVec
	modelLatency *prometheus.HistogramVec
	faqEntries   prometheus.Gauge
}

// New registers the instruments on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// Labels: kind (FAQ_ANSWER, MODEL_ANSWER, ESCALATE), source (faq, model, escalation, error)
		decisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faqdesk",
			Subsystem: "resolver",
			Name:      "decisions_total",
			Help:      "Resolved queries by decision kind and provenance",
		}, []string{"kind", "source"}),
		matchScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "faqdesk",
			Subsystem: "resolver",
			Name:      "match_score",
			Help:      "Best FAQ keyword-overlap score per query",
			Buckets:   []float64{0, 0.2, 0.4, 0.6, 0.8, 1},
		}),
		// Labels: provider, outcome (success, timeout, quota, malformed, transport, upstream)
		modelCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faqdesk",
			Subsystem: "model",
			Name:      "calls_total",
			Help:      "Model completion attempts by provider and outcome",
		}, []string{"provider", "outcome"}),
		modelLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "faqdesk",
			Subsystem: "model",
			Name:      "latency_seconds",
			Help:      "Latency of a single model completion attempt",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		}, []string{"provider"}),
		faqEntries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "faqdesk",
			Subsystem: "faq",
			Name:      "entries",
			Help:      "Entries in the loaded FAQ table",
		}),
	}
}

func (m *Metrics) RecordDecision(kind, source string, score float64) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(kind, source).Inc()
	m.matchScore.Observe(score)
}

func (m *Metrics) ObserveModelCall(provider, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.modelCalls.WithLabelValues(provider, outcome).Inc()
	m.modelLatency.WithLabelValues(provider).Observe(d.Seconds())
}

func (m *Metrics) SetFAQEntries(n int) {
	if m == nil {
		return
	}
	m.faqEntries.Set(float64(n))
}
