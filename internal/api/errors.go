// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Client-facing messages.
const (
	msgMovieNotFound      = "Movie not found in dataset."
	msgRecommendFailed    = "Failed to generate recommendations"
	msgEnrichmentDisabled = "Movie details are unavailable: TMDB enrichment is not configured"
	msgEnrichmentFailed   = "Failed to fetch movie details from TMDB"
	msgTMDBNotFound       = "Movie not found on TMDB"
)

// recommendError maps an engine error to a status and API error.
func recommendError(err error) (int, *models.APIError) {
	var nf *catalog.NotFoundError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound, &models.APIError{
			Code:    models.ErrCodeMovieNotFound,
			Message: msgMovieNotFound,
			Details: map[string]interface{}{"title": nf.Title},
		}
	case errors.Is(err, recommend.ErrInvalidK):
		return http.StatusBadRequest, &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, &models.APIError{
			Code:    models.ErrCodeRecommendation,
			Message: msgRecommendFailed,
		}
	}
}

// recommendResult is the metrics label for an engine outcome.
func recommendResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, catalog.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, recommend.ErrInvalidK):
		return metrics.ResultInvalidK
	default:
		return metrics.ResultError
	}
}

// enrichmentError maps an enricher error to a status and API error.
func enrichmentError(err error) (int, *models.APIError) {
	if errors.Is(err, enrich.ErrMovieNotFound) {
		return http.StatusNotFound, &models.APIError{
			Code:    models.ErrCodeMovieNotFound,
			Message: msgTMDBNotFound,
		}
	}
	return http.StatusBadGateway, &models.APIError{
		Code:    models.ErrCodeEnrichment,
		Message: msgEnrichmentFailed,
	}
}
