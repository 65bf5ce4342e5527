package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors in a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	rosterEvents    *prometheus.CounterVec
	rosterSize      *prometheus.GaugeVec
}

// NewMetrics registers collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "team_organiser_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "team_organiser_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "team_organiser_http_errors_total",
			Help: "HTTP errors by route, method and error code.",
		}, []string{"path", "method", "code"}),
		rosterEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "team_organiser_roster_events_total",
			Help: "Applied roster mutations by event type.",
		}, []string{"type"}),
		rosterSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "team_organiser_roster_size",
			Help: "Current roster size by kind (people, teams, unassigned).",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.requestCount, m.requestDuration, m.errorCount, m.rosterEvents, m.rosterSize)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// RecordRosterEvent counts one applied mutation and refreshes size gauges.
func (m *Metrics) RecordRosterEvent(eventType string, people, teams, unassigned int) {
	if m == nil {
		return
	}
	m.rosterEvents.WithLabelValues(eventType).Inc()
	m.rosterSize.WithLabelValues("people").Set(float64(people))
	m.rosterSize.WithLabelValues("teams").Set(float64(teams))
	m.rosterSize.WithLabelValues("unassigned").Set(float64(unassigned))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry, used by tests to gather values.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
