// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api exposes the movie catalog, the recommendation engine and the
optional TMDB enricher over HTTP.

Routes (all JSON):

	GET /api/v1/health/live                 liveness probe, {"status":"ok"}
	GET /api/v1/health/ready                catalog size, enrichment state
	GET /api/v1/movies?q=&limit=            titles in catalog order
	GET /api/v1/movies/{movieID}            one catalog entry
	GET /api/v1/movies/{movieID}/details    TMDB poster, cast, overview, rating
	GET /api/v1/recommendations?title=&k=&enrich=
	GET /metrics                            Prometheus exposition

Every /api/v1 response other than the liveness probe uses the
models.APIResponse envelope and carries an ETag. Errors use these codes:

	400 VALIDATION_ERROR       bad or out-of-range query parameter
	404 MOVIE_NOT_FOUND        unknown title or movie_id
	429 RATE_LIMIT_EXCEEDED    per-IP limit reached
	500 RECOMMENDATION_ERROR   ranking failed
	502 ENRICHMENT_ERROR       TMDB failed or the breaker is open
	503 ENRICHMENT_DISABLED    details requested without a TMDB key

Middleware order: request ID and logging context, real IP, access log,
panic recovery, CORS, then per-group security headers, rate limiting,
Prometheus instrumentation and gzip compression.
*/
package api
