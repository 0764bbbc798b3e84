// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus metrics for the CineMatch server.

All collectors are registered with the default registry through promauto and
exposed by the API router at /metrics:

	curl http://localhost:8501/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Catalog Metrics:
  - catalog_movies: Movies in the loaded catalog (gauge)
  - catalog_load_duration_seconds: Time spent loading both artifacts (histogram)
  - artifact_fetch_total: Artifact resolutions (counter)
    Labels: artifact, source (local, cache, download), result

Recommendation Metrics:
  - recommendations_total: Recommendation calls (counter)
    Labels: result (success, not_found, invalid_k, error)
  - recommendation_duration_seconds: Ranking latency (histogram)

Enrichment Metrics:
  - enrichment_requests_total: TMDB lookups (counter)
    Labels: result (success, not_found, error)
  - enrichment_fetch_duration_seconds: TMDB round-trip latency (histogram)
  - enrichment_dropped_total: IDs dropped from an enrichment batch (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state, 0=closed 1=half-open 2=open (gauge)
  - circuit_breaker_requests_total: Calls by result (counter)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)

# Thread Safety

All collectors are safe for concurrent use.
*/
package metrics
