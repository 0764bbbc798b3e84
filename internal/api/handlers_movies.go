// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
)

// ListMovies handles GET /api/v1/movies?q=&limit=
// Titles come back in catalog order. q filters by case-insensitive
// substring; limit 0 returns every match.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, apiErr := parseMovieListRequest(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	movies := h.catalog.Search(req.Query, req.Limit)
	if movies == nil {
		movies = []catalog.Movie{}
	}

	respondSuccess(w, models.MovieListResponse{
		Total:  h.catalog.Len(),
		Count:  len(movies),
		Query:  req.Query,
		Movies: movies,
	}, start)
}

// GetMovie handles GET /api/v1/movies/{movieID}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, apiErr := parseMovieID(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	movie, index, ok := h.catalog.MovieByID(id)
	if !ok {
		respondAPIError(w, http.StatusNotFound, &models.APIError{
			Code:    models.ErrCodeMovieNotFound,
			Message: msgMovieNotFound,
			Details: map[string]interface{}{"movie_id": id},
		}, nil)
		return
	}

	respondSuccess(w, models.MovieResponse{Index: index, Movie: movie}, start)
}

// GetMovieDetails handles GET /api/v1/movies/{movieID}/details
// Any TMDB movie ID is accepted, not only catalog members.
func (h *Handler) GetMovieDetails(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, apiErr := parseMovieID(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	if !h.enrichmentEnabled() {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeEnrichmentDisabled, msgEnrichmentDisabled, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.EnrichTimeout)
	defer cancel()

	details, err := h.enricher.Details(ctx, id)
	if err != nil {
		status, apiErr := enrichmentError(err)
		if status == http.StatusNotFound {
			apiErr.Details = map[string]interface{}{"movie_id": id}
			respondAPIError(w, status, apiErr, nil)
			return
		}
		logging.Ctx(r.Context()).Warn().
			Err(err).
			Str("movie_id", strconv.FormatInt(id, 10)).
			Msg("Movie details lookup failed")
		respondAPIError(w, status, apiErr, err)
		return
	}

	respondSuccess(w, details, start)
}
