package metrics

import (
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the admission engine counters.
type Metrics struct {
	Operations      *prometheus.CounterVec
	Decisions       *prometheus.CounterVec
	ConflictRetries *prometheus.CounterVec
	PublishFailures prometheus.Counter
}

// New creates the counters and registers them on reg when it is non-nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admission_operations_total",
			Help: "Admission operations by outcome.",
		}, []string{"operation", "outcome"}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "allocation_decisions_total",
			Help: "Committed allocation and jury decisions.",
		}, []string{"region", "decision"}),
		ConflictRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admission_conflict_retries_total",
			Help: "Transactions retried after an optimistic guard failed.",
		}, []string{"operation"}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "decision_publish_failures_total",
			Help: "Decision events that could not be handed to the notifier.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Decisions, m.ConflictRetries, m.PublishFailures)
	}
	return m
}

// Observe records one operation outcome. Nil receivers are ignored.
func (m *Metrics) Observe(operation string, err error) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, Outcome(err)).Inc()
}

func (m *Metrics) Retry(operation string) {
	if m == nil {
		return
	}
	m.ConflictRetries.WithLabelValues(operation).Inc()
}

func (m *Metrics) Decision(region, decision string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(region, decision).Inc()
}

func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.PublishFailures.Inc()
}

// Outcome is the stable label for err: "ok", an error code, or "error".
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return domainerrors.FromError(err).Code
}
