// Package observability exposes the Prometheus instrumentation for the
// fieldwatch service: evaluation pass outcomes, per-condition rule matches,
// notification delivery results, and upstream fetch latency.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values for pass and notification outcomes.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Horizon label values for rule matches.
const (
	HorizonNow    = "now"
	HorizonFuture = "future"
)

// Metrics holds the service's instrument set backed by a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	EvaluationPasses *prometheus.CounterVec
	RuleMatches      *prometheus.CounterVec
	Notifications    *prometheus.CounterVec
	UpstreamSeconds  *prometheus.HistogramVec
}

// NewMetrics creates and registers the instrument set on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		EvaluationPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldwatch",
			Name:      "evaluation_passes_total",
			Help:      "Evaluation passes, by outcome.",
		}, []string{"status"}),
		RuleMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldwatch",
			Name:      "rule_matches_total",
			Help:      "Policy rule matches, by condition kind and time horizon.",
		}, []string{"condition", "horizon"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldwatch",
			Name:      "notifications_total",
			Help:      "Notification deliveries, by outcome.",
		}, []string{"status"}),
		UpstreamSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fieldwatch",
			Name:      "upstream_request_seconds",
			Help:      "Latency of upstream fetches, by source.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
	}

	registry.MustRegister(
		m.EvaluationPasses,
		m.RuleMatches,
		m.Notifications,
		m.UpstreamSeconds,
	)
	return m
}

// Handler returns the /metrics HTTP handler for this instrument set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
