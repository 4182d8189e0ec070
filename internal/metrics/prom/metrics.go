package prom

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics
type Metrics struct {
	Assessments     *prometheus.CounterVec
	Suggestions     *prometheus.CounterVec
	HashRequests    *prometheus.CounterVec
	RecorderDropped prometheus.Counter
	RequestLatency  *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers all metrics on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry, namespace string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Assessments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Password assessments by resulting strength label",
		}, []string{"strength"}),
		Suggestions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_total",
			Help:      "Suggestions emitted, by suggestion code",
		}, []string{"code"}),
		HashRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hash_requests_total",
			Help:      "Policy-gated hash requests by outcome",
		}, []string{"outcome"}),
		RecorderDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recorder_dropped_total",
			Help:      "Assessment records dropped because the recorder queue was full",
		}),
		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status class",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"route", "status"}),
		gatherer: reg,
	}
}

// ObserveAssessment counts one assessment and each of its suggestion codes.
func (m *Metrics) ObserveAssessment(label string, codes []string) {
	if m == nil {
		return
	}
	m.Assessments.WithLabelValues(label).Inc()
	for _, c := range codes {
		m.Suggestions.WithLabelValues(c).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
