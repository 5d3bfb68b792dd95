package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the console's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpDuration     *prometheus.HistogramVec
	upstreamDuration *prometheus.HistogramVec
	queryDuration    *prometheus.HistogramVec
	gridLoads        *prometheus.CounterVec
	emails           *prometheus.CounterVec
}

// New creates and registers all collectors.
// PRE: none
// POST: Returns Metrics whose Handler serves every collector plus Go/process stats
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "karting_http_request_duration_seconds",
			Help:    "console request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "karting_api_request_duration_seconds",
			Help:    "collaborator API latency by endpoint",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "outcome"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "karting_db_query_duration_seconds",
			Help:    "audit database query latency",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		}, []string{"op"}),
		gridLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "karting_rack_loads_total",
			Help: "weekly grid loads by outcome",
		}, []string{"outcome"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "karting_emails_total",
			Help: "emails sent by the console by kind and outcome",
		}, []string{"kind", "outcome"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpDuration,
		m.upstreamDuration,
		m.queryDuration,
		m.gridLoads,
		m.emails,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP records one console request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// ObserveUpstream records one collaborator call. outcome is "ok", "network" or "server".
func (m *Metrics) ObserveUpstream(endpoint, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(endpoint, outcome).Observe(d.Seconds())
}

// ObserveQuery records one database call.
func (m *Metrics) ObserveQuery(op string, d time.Duration) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(op).Observe(d.Seconds())
}

// CountGridLoad records a weekly grid load outcome: "ok", "superseded" or "error".
func (m *Metrics) CountGridLoad(outcome string) {
	if m == nil {
		return
	}
	m.gridLoads.WithLabelValues(outcome).Inc()
}

// CountEmail records an email attempt.
func (m *Metrics) CountEmail(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.emails.WithLabelValues(kind, outcome).Inc()
}
