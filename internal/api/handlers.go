// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// defaultEnrichTimeout bounds one enrichment batch when none is configured.
const defaultEnrichTimeout = 30 * time.Second

// MovieCatalog is the read-only catalog view the handlers need.
// *catalog.Store satisfies it.
type MovieCatalog interface {
	Len() int
	Search(query string, limit int) []catalog.Movie
	MovieByID(id int64) (catalog.Movie, int, bool)
	DuplicateTitles() map[string][]int
}

// Recommender ranks similar movies. *recommend.Engine satisfies it.
type Recommender interface {
	RecommendScored(title string, k int) (*recommend.Result, error)
}

// DetailsEnricher turns movie IDs into display details.
// *enrich.Enricher satisfies it.
type DetailsEnricher interface {
	Details(ctx context.Context, movieID int64) (*enrich.MovieDetails, error)
	Enrich(ctx context.Context, movieIDs []int64) (*enrich.Result, error)
}

// BreakerStater reports a circuit breaker state for readiness output.
type BreakerStater interface {
	State() string
}

// HandlerOptions configures request defaults and limits.
type HandlerOptions struct {
	DefaultK      int
	MaxK          int
	Version       string
	EnrichTimeout time.Duration
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness probes
//   - handlers_movies.go: catalog listing, lookup and TMDB details
//   - handlers_recommend.go: ranked recommendations
type Handler struct {
	catalog  MovieCatalog
	engine   Recommender
	enricher DetailsEnricher
	breaker  BreakerStater
	opts     HandlerOptions

	duplicateTitles int
	startTime       time.Time
}

// NewHandler creates a handler over a loaded catalog and engine.
// Enrichment stays disabled until SetEnricher is called.
func NewHandler(store MovieCatalog, engine Recommender, opts HandlerOptions) *Handler {
	defaults := recommend.DefaultConfig()
	if opts.DefaultK < 1 {
		opts.DefaultK = defaults.DefaultK
	}
	if opts.MaxK < opts.DefaultK {
		opts.MaxK = max(defaults.MaxK, opts.DefaultK)
	}
	if opts.EnrichTimeout <= 0 {
		opts.EnrichTimeout = defaultEnrichTimeout
	}

	return &Handler{
		catalog:         store,
		engine:          engine,
		opts:            opts,
		duplicateTitles: len(store.DuplicateTitles()),
		startTime:       time.Now(),
	}
}

// SetEnricher enables the details endpoint and enriched recommendations.
// breaker may be nil.
func (h *Handler) SetEnricher(e DetailsEnricher, breaker BreakerStater) {
	h.enricher = e
	h.breaker = breaker
}

func (h *Handler) enrichmentEnabled() bool {
	return h.enricher != nil
}
