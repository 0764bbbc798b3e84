// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Engine produces top-K recommendations from a Catalog.
// It is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	catalog Catalog

	requestCount  atomic.Int64
	notFoundCount atomic.Int64
	invalidKCount atomic.Int64
	errorCount    atomic.Int64
}

// NewEngine creates a recommendation engine over store. A nil cfg uses
// DefaultConfig. logger is used as given; the server passes
// logging.WithComponent("recommend").
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store Catalog, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if store == nil {
		return nil, errors.New("catalog is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:  cfg,
		logger:  logger,
		catalog: store,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Recommend returns the movie_ids of the k movies most similar to title.
//
// The result never contains the query movie. When k exceeds N-1 all N-1
// other movies are returned. An unknown title yields a *catalog.NotFoundError
// and k < 1 yields ErrInvalidK; in both cases the slice is nil.
func (e *Engine) Recommend(title string, k int) ([]int64, error) {
	res, err := e.RecommendScored(title, k)
	if err != nil {
		return nil, err
	}
	return res.MovieIDs(), nil
}

// RecommendDefault is Recommend with the configured DefaultK.
func (e *Engine) RecommendDefault(title string) ([]int64, error) {
	return e.Recommend(title, e.config.DefaultK)
}

// RecommendScored runs the same ranking as Recommend and keeps each
// candidate's title and score.
func (e *Engine) RecommendScored(title string, k int) (*Result, error) {
	e.requestCount.Add(1)
	start := time.Now()

	if k < 1 {
		e.invalidKCount.Add(1)
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	queryIndex, err := e.catalog.IndexOf(title)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			e.notFoundCount.Add(1)
		} else {
			e.errorCount.Add(1)
		}
		return nil, err
	}

	query, err := e.catalog.Movie(queryIndex)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("resolve query movie: %w", err)
	}

	row, err := e.catalog.RowOf(queryIndex)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("read similarity row %d: %w", queryIndex, err)
	}

	ranked := selectTopK(row, queryIndex, k)

	candidates := make([]Candidate, len(ranked))
	for i, sc := range ranked {
		m, err := e.catalog.Movie(sc.Index)
		if err != nil {
			e.errorCount.Add(1)
			return nil, fmt.Errorf("resolve candidate %d: %w", sc.Index, err)
		}
		candidates[i] = Candidate{
			Rank:    i + 1,
			Index:   sc.Index,
			MovieID: m.ID,
			Title:   m.Title,
			Score:   sc.Value,
		}
	}

	e.logger.Debug().
		Str("title", title).
		Int("query_index", queryIndex).
		Int("k", k).
		Int("returned", len(candidates)).
		Dur("duration", time.Since(start)).
		Msg("recommendations ranked")

	return &Result{
		Query:      query,
		QueryIndex: queryIndex,
		K:          k,
		Candidates: candidates,
	}, nil
}

// rankRow orders a similarity row by score descending, breaking exact ties
// by ascending index, and removes the query's own entry.
func rankRow(row []catalog.Score, queryIndex int) []catalog.Score {
	ranked := make([]catalog.Score, 0, len(row))
	for _, sc := range row {
		if sc.Index == queryIndex {
			continue
		}
		ranked = append(ranked, sc)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Index < ranked[j].Index
	})
	return ranked
}

// Stats returns request counters since the engine was created.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests: e.requestCount.Load(),
		NotFound: e.notFoundCount.Load(),
		InvalidK: e.invalidKCount.Load(),
		Errors:   e.errorCount.Load(),
	}
}
