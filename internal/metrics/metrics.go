// Package metrics bundles the Prometheus collectors for the analyzer
// and the HTTP server. All methods are nil-safe so callers can run
// without metrics wired.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors on a dedicated registry.
type Metrics struct {
	Registry         *prometheus.Registry
	SearchesTotal    prometheus.Counter
	PartsTotal       *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	HTTPTotal        *prometheus.CounterVec
	CacheTotal       *prometheus.CounterVec
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	searches := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "carparts_searches_total",
			Help: "Total marketplace searches issued.",
		},
	)
	parts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carparts_parts_analyzed_total",
			Help: "Total parts analyzed by outcome.",
		},
		[]string{"outcome"},
	)
	analysisDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "carparts_analysis_duration_seconds",
			Help:    "Wall time of a full analysis batch.",
			Buckets: prometheus.DefBuckets,
		},
	)
	httpTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carparts_http_requests_total",
			Help: "Total HTTP requests served by route and status.",
		},
		[]string{"route", "status"},
	)
	cacheTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carparts_search_cache_total",
			Help: "Marketplace query cache lookups by result.",
		},
		[]string{"result"},
	)

	registry.MustRegister(searches, parts, analysisDuration, httpTotal, cacheTotal)

	return &Metrics{
		Registry:         registry,
		SearchesTotal:    searches,
		PartsTotal:       parts,
		AnalysisDuration: analysisDuration,
		HTTPTotal:        httpTotal,
		CacheTotal:       cacheTotal,
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// IncSearch increments the marketplace search counter.
func (m *Metrics) IncSearch() {
	if m == nil {
		return
	}
	m.SearchesTotal.Inc()
}

// IncPart increments the analyzed-parts counter for an outcome label
// ("ok" or "error").
func (m *Metrics) IncPart(outcome string) {
	if m == nil {
		return
	}
	m.PartsTotal.WithLabelValues(outcome).Inc()
}

// ObserveAnalysis records the wall time of an analysis batch.
func (m *Metrics) ObserveAnalysis(d time.Duration) {
	if m == nil {
		return
	}
	m.AnalysisDuration.Observe(d.Seconds())
}

// IncHTTP increments the served-requests counter.
func (m *Metrics) IncHTTP(route, status string) {
	if m == nil {
		return
	}
	m.HTTPTotal.WithLabelValues(route, status).Inc()
}

// IncCache increments the cache counter for a result label
// ("hit" or "miss").
func (m *Metrics) IncCache(result string) {
	if m == nil {
		return
	}
	m.CacheTotal.WithLabelValues(result).Inc()
}
