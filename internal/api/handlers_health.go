// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

// HealthLive handles liveness probe requests. It returns 200 with
// {"status":"ok"} whenever the process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}

// HealthReady handles readiness probe requests. The catalog is loaded before
// the server starts, so readiness only fails if it is somehow empty.
// Enrichment being disabled or its breaker being open does not fail the
// probe: recommendations are still served.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()

	resp := models.ReadinessResponse{
		Status:          "ready",
		Movies:          h.catalog.Len(),
		DuplicateTitles: h.duplicateTitles,
		Enrichment:      h.enrichmentEnabled(),
		Version:         h.opts.Version,
	}
	if h.breaker != nil {
		resp.CircuitBreaker = h.breaker.State()
	}

	if resp.Movies == 0 {
		resp.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   models.StatusError,
			Data:     resp,
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		})
		return
	}

	respondSuccess(w, resp, start)
}
