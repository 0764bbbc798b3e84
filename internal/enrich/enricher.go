// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package enrich

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinematch/internal/metrics"
)

// DroppedMovie records a movie ID whose enrichment failed.
type DroppedMovie struct {
	MovieID int64  `json:"movie_id"`
	Reason  string `json:"reason"`
}

// Result is the outcome of one Enrich call. Movies keeps the order of the
// requested IDs minus the dropped ones.
type Result struct {
	Movies  []MovieDetails `json:"movies"`
	Dropped []DroppedMovie `json:"dropped,omitempty"`
}

// Enricher resolves catalog movie IDs to display records.
type Enricher struct {
	fetcher MetadataFetcher
	config  *Config
	logger  zerolog.Logger
}

// NewEnricher creates an Enricher. cfg supplies display defaults and the
// concurrency bound; a nil cfg uses DefaultConfig. A Concurrency below 1
// takes the default bound.
func NewEnricher(fetcher MetadataFetcher, cfg *Config, logger zerolog.Logger) (*Enricher, error) {
	if fetcher == nil {
		return nil, errors.New("metadata fetcher is required")
	}
	defaults := DefaultConfig()
	if cfg == nil {
		cfg = defaults
	}
	c := *cfg
	if c.Concurrency < 1 {
		c.Concurrency = defaults.Concurrency
	}
	return &Enricher{
		fetcher: fetcher,
		config:  &c,
		logger:  logger,
	}, nil
}

// Details fetches the display record for a single movie ID.
func (e *Enricher) Details(ctx context.Context, movieID int64) (*MovieDetails, error) {
	start := time.Now()
	m, err := e.fetcher.GetMovie(ctx, movieID)
	if err != nil {
		metrics.RecordEnrichment(enrichmentResult(err), time.Since(start))
		return nil, err
	}
	metrics.RecordEnrichment(metrics.ResultSuccess, time.Since(start))

	d := e.config.ToDetails(movieID, m)
	return &d, nil
}

// Enrich fetches display records for ids with at most Config.Concurrency
// lookups in flight. Failed lookups are dropped, never fatal.
//
// A deadline on ctx bounds the whole batch: lookups still unfinished when it
// passes are dropped as timeouts and the finished ones are kept. Enrich
// returns an error only when ctx is canceled.
func (e *Enricher) Enrich(ctx context.Context, ids []int64) (*Result, error) {
	details := make([]*MovieDetails, len(ids))
	reasons := make([]error, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Concurrency)

	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				reasons[i] = err
				return nil
			}
			d, err := e.Details(gctx, id)
			if err != nil {
				reasons[i] = err
				return nil
			}
			details[i] = d
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	if err := ctx.Err(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	result := &Result{Movies: make([]MovieDetails, 0, len(ids))}
	for i, id := range ids {
		if details[i] != nil {
			result.Movies = append(result.Movies, *details[i])
			continue
		}
		e.logger.Warn().Err(reasons[i]).Int64("movie_id", id).Msg("dropping movie from enriched results")
		result.Dropped = append(result.Dropped, DroppedMovie{MovieID: id, Reason: dropReason(reasons[i])})
	}
	metrics.RecordEnrichmentDropped(len(result.Dropped))

	return result, nil
}

// enrichmentResult maps a lookup error to a metrics result label.
func enrichmentResult(err error) string {
	if errors.Is(err, ErrMovieNotFound) {
		return metrics.ResultNotFound
	}
	return metrics.ResultError
}

// dropReason is a short, key-free description for API clients.
func dropReason(err error) string {
	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrMovieNotFound):
		return "not found"
	case errors.As(err, &statusErr):
		return "upstream status " + strconv.Itoa(statusErr.StatusCode)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "upstream error"
	}
}
