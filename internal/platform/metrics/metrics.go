package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// Metrics owns a private registry with the ledger and HTTP collectors.
type Metrics struct {
	registry          *prometheus.Registry
	movementsRecorded *prometheus.CounterVec
	movementsVoided   *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		movementsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_ledger_movements_recorded_total",
			Help: "Movements stored, by kind.",
		}, []string{"kind"}),
		movementsVoided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_ledger_movements_voided_total",
			Help: "Movements voided, by kind.",
		}, []string{"kind"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_ledger_http_requests_total",
			Help: "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shop_ledger_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.movementsRecorded,
		m.movementsVoided,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

// MovementRecorded counts a stored movement.
func (m *Metrics) MovementRecorded(kind domain.MovementKind) {
	m.movementsRecorded.WithLabelValues(string(kind)).Inc()
}

// MovementVoided counts a voided movement.
func (m *Metrics) MovementVoided(kind domain.MovementKind) {
	m.movementsVoided.WithLabelValues(string(kind)).Inc()
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(method, route string, status int, latency time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
