package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDecision(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordDecision("FAQ_ANSWER", "faq", 1)
	m.RecordDecision("FAQ_ANSWER", "faq", 0.8)
	m.RecordDecision("ESCALATE", "error", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.decisions.WithLabelValues("FAQ_ANSWER", "faq")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues("ESCALATE", "error")))
}

func TestObserveModelCall(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveModelCall("openai", "success", 300*time.Millisecond)
	m.ObserveModelCall("openai", "timeout", 2*time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelCalls.WithLabelValues("openai", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelCalls.WithLabelValues("openai", "timeout")))
}

func TestFAQEntriesGauge(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.SetFAQEntries(12)
	assert.Equal(t, 12.0, testutil.ToFloat64(m.faqEntries))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordDecision("ESCALATE", "escalation", 0)
		m.ObserveModelCall("openai", "success", time.Second)
		m.SetFAQEntries(3)
	})
}
