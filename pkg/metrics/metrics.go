package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry with the service's HTTP and
// tenant-isolation instruments. A private registry keeps construction
// idempotent under tests and avoids fighting other libraries over the
// global one.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	tenantRejections *prometheus.CounterVec
	bypassSessions   prometheus.Counter
}

// New creates a metrics collector labeled with the given service name.
func New(service string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"service": service}

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "Duration of HTTP requests in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),
		tenantRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "tenant_context_rejections_total",
				Help:        "Requests rejected by the tenant middleware, by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		bypassSessions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "tenant_bypass_sessions_total",
				Help:        "Request-scoped sessions bound with row-level security bypassed",
				ConstLabels: constLabels,
			},
		),
	}

	registry.MustRegister(m.requests, m.duration, m.tenantRejections, m.bypassSessions)
	return m
}

// TenantRejection counts a request the tenant middleware turned away.
// Reasons mirror the middleware's rejection paths: missing_context,
// not_found, suspended, pending_deletion, lookup_failed, bind_failed.
func (m *Metrics) TenantRejection(reason string) {
	m.tenantRejections.WithLabelValues(reason).Inc()
}

// BypassSession counts a request served with row-level security bypassed.
func (m *Metrics) BypassSession() {
	m.bypassSessions.Inc()
}

// Handler exposes the registry in Prometheus text format, for mounting at
// /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry so tests can scrape counters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
