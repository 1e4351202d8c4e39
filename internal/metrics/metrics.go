// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

// Package metrics defines the Prometheus instrumentation for NextPick:
// API latency and throughput, recommendation lookups, TMDB poster lookups
// with cache and circuit breaker state, and artifact load information.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation lookup metrics
	RecommendLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_lookups_total",
			Help: "Total number of recommendation lookups",
		},
		[]string{"catalog", "result"}, // result: "ok", "not_found"
	)

	RecommendLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_lookup_duration_seconds",
			Help:    "Duration of recommendation lookups in seconds",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		},
		[]string{"catalog"},
	)

	CatalogEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_entries",
			Help: "Number of entries per loaded catalog",
		},
		[]string{"catalog"},
	)

	ArtifactVersion = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artifact_version",
			Help: "Loaded artifact version per artifact name",
		},
		[]string{"artifact"},
	)

	// TMDB poster lookup metrics
	TMDBLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_lookups_total",
			Help: "Total number of TMDB poster lookups",
		},
		[]string{"result"}, // result: "hit", "miss", "error", "rejected"
	)

	TMDBLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tmdb_lookup_duration_seconds",
			Help:    "Duration of TMDB API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	TMDBCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tmdb_cache_hits_total",
			Help: "Total number of TMDB poster cache hits",
		},
	)

	TMDBCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tmdb_cache_misses_total",
			Help: "Total number of TMDB poster cache misses",
		},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds, computed at scrape time",
		},
		func() float64 { return time.Since(processStart).Seconds() },
	)
)

// processStart anchors app_uptime_seconds to process initialization.
var processStart = time.Now()

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendLookup records a recommendation lookup and its outcome.
func RecordRecommendLookup(catalog string, duration time.Duration, found bool) {
	result := "ok"
	if !found {
		result = "not_found"
	}
	RecommendLookupsTotal.WithLabelValues(catalog, result).Inc()
	RecommendLookupDuration.WithLabelValues(catalog).Observe(duration.Seconds())
}

// RecordTMDBLookup records the outcome of a TMDB poster lookup.
func RecordTMDBLookup(result string, duration time.Duration) {
	TMDBLookupsTotal.WithLabelValues(result).Inc()
	TMDBLookupDuration.Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
