package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records questionnaire outcomes and storage health.
type Metrics struct {
	aggregations    *prometheus.CounterVec
	storageFailures *prometheus.CounterVec
	answersRecorded prometheus.Counter
}

// NewMetrics registers the questionnaire metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		aggregations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careertest_aggregations_total",
				Help: "Score aggregations by outcome and winning dimension.",
			},
			[]string{"status", "winner"},
		),
		storageFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careertest_storage_failures_total",
				Help: "Answer store operations that failed and were skipped.",
			},
			[]string{"op"},
		),
		answersRecorded: f.NewCounter(
			prometheus.CounterOpts{
				Name: "careertest_answers_recorded_total",
				Help: "Choices recorded by respondents.",
			},
		),
	}
}

func (m *Metrics) observeResult(winner string) {
	if m == nil {
		return
	}
	m.aggregations.WithLabelValues("ok", winner).Inc()
}

func (m *Metrics) observeIncomplete() {
	if m == nil {
		return
	}
	m.aggregations.WithLabelValues("incomplete", "").Inc()
}

func (m *Metrics) observeStorageFailure(op string) {
	if m == nil {
		return
	}
	m.storageFailures.WithLabelValues(op).Inc()
}

func (m *Metrics) observeAnswer() {
	if m == nil {
		return
	}
	m.answersRecorded.Inc()
}
