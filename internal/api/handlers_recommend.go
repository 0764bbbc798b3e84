// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// GetRecommendations handles GET /api/v1/recommendations?title=&k=&enrich=
//
// k defaults to the configured default and must lie in [1, max_k]. enrich
// defaults to true when TMDB is configured. When enriching, movies TMDB
// cannot describe, or that are still pending when EnrichTimeout passes, are
// listed under "dropped" instead of failing the request.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, apiErr := parseRecommendRequest(r, h.opts.DefaultK, h.enrichmentEnabled())
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := checkMaxK(req.K, h.opts.MaxK); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if req.Enrich && !h.enrichmentEnabled() {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeEnrichmentDisabled, msgEnrichmentDisabled, nil)
		return
	}

	rankStart := time.Now()
	result, err := h.engine.RecommendScored(req.Title, req.K)
	metrics.RecordRecommendation(recommendResult(err), time.Since(rankStart))
	if err != nil {
		status, apiErr := recommendError(err)
		if status >= http.StatusInternalServerError {
			respondAPIError(w, status, apiErr, err)
			return
		}
		logging.Ctx(r.Context()).Info().
			Str("title", sanitizeLogValue(req.Title)).
			Msg("Recommendation request for unknown title")
		respondAPIError(w, status, apiErr, nil)
		return
	}

	resp := models.NewRecommendationResponse(result)

	if req.Enrich && len(resp.MovieIDs) > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), h.opts.EnrichTimeout)
		defer cancel()

		enriched, err := h.enricher.Enrich(ctx, resp.MovieIDs)
		if err != nil {
			status, apiErr := enrichmentError(err)
			respondAPIError(w, status, apiErr, err)
			return
		}
		resp.Details = enriched.Movies
		resp.Dropped = enriched.Dropped
	}

	respondSuccess(w, resp, start)
}
