// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package models defines the HTTP API data structures for CineMatch.

Every endpoint answers with the APIResponse envelope. Payload types:

  - HealthResponse, ReadinessResponse: liveness and readiness probes
  - MovieListResponse, MovieResponse: catalog browsing
  - RecommendationResponse: ranked candidates plus optional TMDB details

Catalog and enrichment types (catalog.Movie, enrich.MovieDetails) are
embedded directly; this package only adds the wire shapes the API owns.
*/
package models
