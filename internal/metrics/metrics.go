// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation and enrichment result labels.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultInvalidK = "invalid_k"
	ResultError    = "error"
)

var (
	// API Endpoint Metrics
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
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Catalog Metrics
	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Time spent decoding and validating catalog artifacts",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	ArtifactFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifact_fetch_total",
			Help: "Artifact resolutions by artifact, source and result",
		},
		[]string{"artifact", "source", "result"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by result",
		},
		[]string{"result"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent ranking one similarity row",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// Enrichment Metrics
	EnrichmentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_requests_total",
			Help: "Total number of TMDB metadata lookups by result",
		},
		[]string{"result"},
	)

	EnrichmentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrichment_fetch_duration_seconds",
			Help:    "TMDB metadata fetch duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	EnrichmentDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrichment_dropped_total",
			Help: "Movie IDs dropped from enrichment batches after a failed lookup",
		},
	)

	// Circuit Breaker Metrics
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

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogLoad records a successful catalog load.
func RecordCatalogLoad(movies int, duration time.Duration) {
	CatalogMovies.Set(float64(movies))
	CatalogLoadDuration.Observe(duration.Seconds())
}

// RecordArtifactFetch records how an artifact was resolved.
func RecordArtifactFetch(artifact, source string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	ArtifactFetches.WithLabelValues(artifact, source, result).Inc()
}

// RecordRecommendation records one ranking call.
func RecordRecommendation(result string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(result).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordEnrichment records one TMDB lookup.
func RecordEnrichment(result string, duration time.Duration) {
	EnrichmentRequests.WithLabelValues(result).Inc()
	EnrichmentFetchDuration.Observe(duration.Seconds())
}

// RecordEnrichmentDropped counts IDs left out of an enrichment batch.
func RecordEnrichmentDropped(n int) {
	if n > 0 {
		EnrichmentDropped.Add(float64(n))
	}
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}
