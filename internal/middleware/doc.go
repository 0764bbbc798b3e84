// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP instrumentation shared by the API routes.

PrometheusMetrics wraps a handler and records:

  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

The endpoint label is the chi route pattern (for example
/api/v1/movies/{movieID}) rather than the raw path, keeping label
cardinality bounded by the number of routes. Requests served outside a chi
router fall back to the URL path.

Usage with chi:

	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(func(next http.Handler) http.Handler {
	        return middleware.PrometheusMetrics(next.ServeHTTP)
	    })
	    r.Get("/movies", h.ListMovies)
	})

CORS, rate limiting, request IDs and security headers live in the api
package alongside the router.
*/
package middleware
