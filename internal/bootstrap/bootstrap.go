// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package bootstrap builds the runtime components shared by the server and
// the command-line client from a loaded configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinematch/internal/artifact"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// LoadCatalog resolves both artifacts, downloading them when no local copy
// exists, and loads the validated catalog.
func LoadCatalog(ctx context.Context, cfg config.CatalogConfig, logger zerolog.Logger) (*catalog.Store, error) {
	fetcher := artifact.NewFetcher(cfg.FetcherConfig(), logger)

	var moviesPath, similarityPath string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		moviesPath, err = fetcher.Resolve(gctx, cfg.MoviesSource())
		return err
	})
	g.Go(func() error {
		var err error
		similarityPath, err = fetcher.Resolve(gctx, cfg.SimilaritySource())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve artifacts: %w", err)
	}

	start := time.Now()
	store, err := catalog.LoadFiles(ctx, moviesPath, similarityPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	elapsed := time.Since(start)
	metrics.RecordCatalogLoad(store.Len(), elapsed)

	logger.Info().
		Int("movies", store.Len()).
		Str("movies_path", moviesPath).
		Str("similarity_path", similarityPath).
		Dur("duration", elapsed).
		Msg("catalog loaded")

	if dups := store.DuplicateTitles(); len(dups) > 0 {
		logger.Warn().
			Int("duplicate_titles", len(dups)).
			Msg("catalog has duplicate titles; lookups resolve to the first occurrence")
	}

	return store, nil
}

// NewEngine builds the recommendation engine over store.
func NewEngine(store *catalog.Store, cfg config.RecommendConfig, logger zerolog.Logger) (*recommend.Engine, error) {
	engine, err := recommend.NewEngine(store, cfg.EngineConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	return engine, nil
}

// Enrichment bundles the enricher with the breaker that guards its client.
type Enrichment struct {
	Enricher *enrich.Enricher
	Breaker  *enrich.CircuitBreakerClient
}

// NewEnrichment wires the TMDB client, circuit breaker, and enricher. It
// returns enrich.ErrMissingAPIKey when no key is configured.
func NewEnrichment(cfg config.TMDBConfig, logger zerolog.Logger) (*Enrichment, error) {
	enrichCfg := cfg.EnrichConfig()
	if err := enrichCfg.Validate(); err != nil {
		return nil, fmt.Errorf("tmdb config: %w", err)
	}

	breaker := enrich.NewCircuitBreakerClient(enrich.NewTMDBClient(enrichCfg))
	enricher, err := enrich.NewEnricher(breaker, enrichCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create enricher: %w", err)
	}

	logger.Info().
		Str("base_url", enrichCfg.BaseURL).
		Int("concurrency", enrichCfg.Concurrency).
		Msg("tmdb enrichment enabled")

	return &Enrichment{Enricher: enricher, Breaker: breaker}, nil
}
