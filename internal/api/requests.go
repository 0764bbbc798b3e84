// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/validation"
)

// maxListLimit caps a single movie listing page.
const maxListLimit = 10000

// RecommendRequest holds the query parameters of GET /api/v1/recommendations.
// The upper bound on K comes from configuration and is checked by the handler.
type RecommendRequest struct {
	Title  string `query:"title" validate:"required,max=500,nocontrol"`
	K      int    `query:"k" validate:"min=1"`
	Enrich bool   `query:"enrich"`
}

// MovieListRequest holds the query parameters of GET /api/v1/movies.
// A zero Limit returns every match.
type MovieListRequest struct {
	Query string `query:"q" validate:"max=500,nocontrol"`
	Limit int    `query:"limit" validate:"min=0,max=10000"`
}

// parseRecommendRequest reads the recommendation query. Missing k and enrich
// take the supplied defaults; malformed values are validation errors.
func parseRecommendRequest(r *http.Request, defaultK int, defaultEnrich bool) (*RecommendRequest, *models.APIError) {
	q := r.URL.Query()

	k, apiErr := intParam(q.Get("k"), "k", defaultK)
	if apiErr != nil {
		return nil, apiErr
	}
	enrich, apiErr := boolParam(q.Get("enrich"), "enrich", defaultEnrich)
	if apiErr != nil {
		return nil, apiErr
	}

	return &RecommendRequest{
		Title:  q.Get("title"),
		K:      k,
		Enrich: enrich,
	}, nil
}

func parseMovieListRequest(r *http.Request) (*MovieListRequest, *models.APIError) {
	q := r.URL.Query()

	limit, apiErr := intParam(q.Get("limit"), "limit", 0)
	if apiErr != nil {
		return nil, apiErr
	}
	return &MovieListRequest{Query: q.Get("q"), Limit: limit}, nil
}

// parseMovieID reads the {movieID} path parameter.
func parseMovieID(r *http.Request) (int64, *models.APIError) {
	raw := chi.URLParam(r, "movieID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, paramError("movieID", raw, "movieID must be a positive integer")
	}
	return id, nil
}

func intParam(raw, name string, defaultValue int) (int, *models.APIError) {
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, paramError(name, raw, name+" must be an integer")
	}
	return v, nil
}

func boolParam(raw, name string, defaultValue bool) (bool, *models.APIError) {
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, paramError(name, raw, name+" must be a boolean")
	}
	return v, nil
}

func paramError(field, value, message string) *models.APIError {
	return &models.APIError{
		Code:    models.ErrCodeValidation,
		Message: message,
		Details: map[string]interface{}{
			"field": field,
			"value": value,
		},
	}
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// checkMaxK enforces the configured ceiling on k.
func checkMaxK(k, maxK int) *models.APIError {
	if k <= maxK {
		return nil
	}
	apiErr := paramError("k", strconv.Itoa(k), fmt.Sprintf("k must be at most %d", maxK))
	apiErr.Details["max"] = maxK
	return apiErr
}
