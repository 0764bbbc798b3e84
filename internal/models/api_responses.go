// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// API error codes.
const (
	ErrCodeMovieNotFound      = "MOVIE_NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeRecommendation     = "RECOMMENDATION_ERROR"
	ErrCodeEnrichment         = "ENRICHMENT_ERROR"
	ErrCodeEnrichmentDisabled = "ENRICHMENT_DISABLED"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
)

// APIResponse is the standard wrapper for every HTTP response.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"query": {"movie_id": 19995, "title": "Avatar"}, "movie_ids": [...]},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z", "query_time_ms": 3}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "MOVIE_NOT_FOUND", "message": "movie not found: \"Avatr\""},
//	  "metadata": {"timestamp": "2026-01-10T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error code with a human-readable message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse reports whether the server can answer recommendation
// requests and whether enrichment is available.
type ReadinessResponse struct {
	Status          string `json:"status"`
	Movies          int    `json:"movies"`
	DuplicateTitles int    `json:"duplicate_titles"`
	Enrichment      bool   `json:"enrichment"`
	CircuitBreaker  string `json:"circuit_breaker,omitempty"`
	Version         string `json:"version,omitempty"`
}

// MovieListResponse is a page of catalog movies in canonical order.
type MovieListResponse struct {
	Total  int             `json:"total"`
	Count  int             `json:"count"`
	Query  string          `json:"query,omitempty"`
	Movies []catalog.Movie `json:"movies"`
}

// MovieResponse is one catalog entry with its position.
type MovieResponse struct {
	Index int `json:"index"`
	catalog.Movie
}

// CandidateResponse is one ranked recommendation.
type CandidateResponse struct {
	Rank    int     `json:"rank"`
	MovieID int64   `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

// RecommendationResponse is the payload of GET /api/v1/recommendations.
// Details and Dropped are present only when enrichment was requested.
type RecommendationResponse struct {
	Query      catalog.Movie         `json:"query"`
	K          int                   `json:"k"`
	MovieIDs   []int64               `json:"movie_ids"`
	Candidates []CandidateResponse   `json:"candidates"`
	Details    []enrich.MovieDetails `json:"details,omitempty"`
	Dropped    []enrich.DroppedMovie `json:"dropped,omitempty"`
}

// NewRecommendationResponse converts an engine result to its wire form.
func NewRecommendationResponse(result *recommend.Result) RecommendationResponse {
	candidates := make([]CandidateResponse, len(result.Candidates))
	for i, c := range result.Candidates {
		candidates[i] = CandidateResponse{
			Rank:    c.Rank,
			MovieID: c.MovieID,
			Title:   c.Title,
			Score:   c.Score,
		}
	}

	return RecommendationResponse{
		Query:      result.Query,
		K:          result.K,
		MovieIDs:   result.MovieIDs(),
		Candidates: candidates,
	}
}
