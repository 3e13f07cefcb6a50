package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	KindQuestions = "questions"
	KindQuestion  = "question"
	KindAnalysis  = "analysis"

	OutcomeGenerated = "generated"
	OutcomeFallback  = "fallback"
	OutcomeError     = "error"
)

// Metrics counts generation outcomes per request kind. A fallback outcome
// means the generator answered but its text could not be used.
type Metrics struct {
	generations *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	generations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ai_mentorship",
			Subsystem: "assessment",
			Name:      "generations_total",
			Help:      "Generator requests by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ai_mentorship",
			Subsystem: "assessment",
			Name:      "generator_duration_seconds",
			Help:      "Time spent waiting on the text generator.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		},
		[]string{"kind"},
	)

	for _, c := range []prometheus.Collector{generations, latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &Metrics{generations: generations, latency: latency}, nil
}

func (m *Metrics) observe(kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(kind, outcome).Inc()
	if elapsed > 0 {
		m.latency.WithLabelValues(kind).Observe(elapsed.Seconds())
	}
}
