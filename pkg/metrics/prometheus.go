package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics implements AssertionMetrics with
// client_golang collectors.
type PrometheusMetrics struct {
	assertionsTotal   *prometheus.CounterVec
	assertionDuration *prometheus.HistogramVec
	usageErrorsTotal  *prometheus.CounterVec
}

// NewPrometheusMetrics registers the assertion collectors under
// namespace with reg. A nil reg uses the default registerer.
func NewPrometheusMetrics(namespace string, reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		assertionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assertions_total",
				Help:      "Total number of evaluated assertions",
			},
			[]string{"predicate", "outcome"},
		),
		assertionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "assertion_duration_seconds",
				Help:      "Assertion evaluation duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 7),
			},
			[]string{"predicate"},
		),
		usageErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assertion_usage_errors_total",
				Help:      "Total number of rejected assertion calls",
			},
			[]string{"reason"},
		),
	}
}

func (m *PrometheusMetrics) RecordAssertion(predicate string, passed bool, duration time.Duration) {
	m.assertionsTotal.WithLabelValues(predicate, outcome(passed)).Inc()
	m.assertionDuration.WithLabelValues(predicate).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordUsageError(reason string) {
	m.usageErrorsTotal.WithLabelValues(reason).Inc()
}
