// Package metrics exposes Prometheus instrumentation for likelihood
// evaluations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "goinverse"

// Result label values.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
)

// Metrics is safe to use through a nil pointer; every method is then a
// no-op.
type Metrics struct {
	// Evaluations counts likelihood evaluations by result.
	Evaluations *prometheus.CounterVec
	// SolverFailures counts forward solves that ended in an error.
	SolverFailures prometheus.Counter
	// EvaluationSeconds tracks the wall time of a likelihood evaluation.
	EvaluationSeconds prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "likelihood_evaluations_total",
			Help:      "Likelihood evaluations by result",
		}, []string{"result"}),
		SolverFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solver_failures_total",
			Help:      "Forward solves that failed",
		}),
		EvaluationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "likelihood_evaluation_seconds",
			Help:      "Likelihood evaluation duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12), // 1us to ~4s
		}),
	}
	reg.MustRegister(m.Evaluations, m.SolverFailures, m.EvaluationSeconds)
	return m
}

// ObserveEvaluation records one evaluation that started at start.
// solverFailed marks errors raised by the forward solve.
func (m *Metrics) ObserveEvaluation(start time.Time, err error, solverFailed bool) {
	if m == nil {
		return
	}
	m.EvaluationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		m.Evaluations.WithLabelValues(ResultRejected).Inc()
		if solverFailed {
			m.SolverFailures.Inc()
		}
		return
	}
	m.Evaluations.WithLabelValues(ResultOK).Inc()
}
