package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolution outcomes recorded by RateResolutionsTotal.
const (
	OutcomeCacheHit = "cache_hit"
	OutcomeFetched  = "fetched"
	OutcomeStale    = "stale"
	OutcomeFailed   = "failed"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RateResolutionsTotal  *prometheus.CounterVec
	RateStrategyWinsTotal *prometheus.CounterVec
	SourceFetchDuration   prometheus.Histogram
	CalculationsTotal     *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry, so several
// instances can coexist in tests.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		RateResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_resolutions_total",
				Help: "Rate snapshot resolutions by outcome",
			},
			[]string{"outcome"},
		),

		RateStrategyWinsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_strategy_wins_total",
				Help: "Successful extractions by strategy",
			},
			[]string{"strategy"},
		),

		SourceFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rate_source_fetch_duration_seconds",
				Help:    "Duration of rate source document fetches",
				Buckets: prometheus.DefBuckets,
			},
		),

		CalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calculations_total",
				Help: "Import cost calculations by status",
			},
			[]string{"status"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
