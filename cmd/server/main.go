// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/bootstrap"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// idleTimeout bounds keep-alive connections.
const idleTimeout = 60 * time.Second

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.LoggerConfig())
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Bool("tmdb_enabled", cfg.TMDB.Enabled).
		Msg("Starting CineMatch")

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS to restrict browser access")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.LoadCatalog(ctx, cfg.Catalog, logging.WithComponent("catalog"))
	if err != nil {
		if errors.Is(err, catalog.ErrDataIntegrity) {
			logging.Fatal().Err(err).Msg("Catalog artifacts are inconsistent")
		}
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	engine, err := bootstrap.NewEngine(store, cfg.Recommend, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler, err := newHandler(cfg, store, engine)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize enrichment")
	}
	server := newHTTPServer(cfg, handler)

	// Create supervisor tree with the zerolog-backed slog adapter
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddCoreService(services.NewStatsReporterService(engine, 0, logging.WithComponent("supervisor")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// newHandler builds the API handler and attaches TMDB enrichment when it is
// enabled.
func newHandler(cfg *config.Config, store *catalog.Store, engine *recommend.Engine) (*api.Handler, error) {
	handler := api.NewHandler(store, engine, api.HandlerOptions{
		DefaultK:      cfg.Recommend.DefaultK,
		MaxK:          cfg.Recommend.MaxK,
		Version:       version,
		EnrichTimeout: cfg.Server.Timeout * 9 / 10,
	})

	if !cfg.TMDB.Enabled {
		logging.Info().Msg("TMDB enrichment disabled (TMDB_ENABLED=false)")
		return handler, nil
	}

	enrichment, err := bootstrap.NewEnrichment(cfg.TMDB, logging.WithComponent("enrich"))
	if err != nil {
		return nil, err
	}
	handler.SetEnricher(enrichment.Enricher, enrichment.Breaker)
	return handler, nil
}

// newHTTPServer creates the HTTP server with the chi router and the
// configured timeouts.
func newHTTPServer(cfg *config.Config, handler *api.Handler) *http.Server {
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security))

	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       idleTimeout,
	}
}
