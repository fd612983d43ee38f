package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "samplesize"

// Metrics holds the Prometheus collectors for the API.
type Metrics struct {
	// CalculationsTotal counts calculator runs by design and outcome (ok, error).
	CalculationsTotal *prometheus.CounterVec

	// RequestDuration measures request latency by route pattern, method and status.
	RequestDuration *prometheus.HistogramVec

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal prometheus.Counter
}

// NewMetrics creates and registers the API collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CalculationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "calculations_total",
				Help:      "Total calculator runs by design and outcome",
			},
			[]string{"design", "outcome"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route", "method", "status"},
		),
		RateLimitedTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "rate_limited_total",
				Help:      "Total requests rejected by the rate limiter",
			},
		),
	}
}

func (m *Metrics) observeCalculation(design string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.CalculationsTotal.WithLabelValues(design, outcome).Inc()
}
