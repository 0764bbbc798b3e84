// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/recommend"
)

// defaultStatsInterval applies when a non-positive interval is given.
const defaultStatsInterval = 5 * time.Minute

// StatsSource exposes engine request counters. *recommend.Engine satisfies it.
type StatsSource interface {
	Stats() recommend.Stats
}

// StatsReporterService periodically logs recommendation counters and the
// change since the previous report. A final report is logged on shutdown.
type StatsReporterService struct {
	source   StatsSource
	interval time.Duration
	logger   zerolog.Logger
	name     string

	last recommend.Stats
}

// NewStatsReporterService creates a stats reporter.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStatsReporterService(source StatsSource, interval time.Duration, logger zerolog.Logger) *StatsReporterService {
	if interval <= 0 {
		interval = defaultStatsInterval
	}
	return &StatsReporterService{
		source:   source,
		interval: interval,
		logger:   logger.With().Str("service", "stats-reporter").Logger(),
		name:     "stats-reporter",
	}
}

// Serve implements suture.Service.
func (s *StatsReporterService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("stats reporter running")

	for {
		select {
		case <-ctx.Done():
			s.report("final")
			return ctx.Err()
		case <-ticker.C:
			s.report("periodic")
		}
	}
}

// report logs the current counters. Serve is the only caller, so last needs
// no locking.
func (s *StatsReporterService) report(kind string) recommend.Stats {
	cur := s.source.Stats()
	delta := recommend.Stats{
		Requests: cur.Requests - s.last.Requests,
		NotFound: cur.NotFound - s.last.NotFound,
		InvalidK: cur.InvalidK - s.last.InvalidK,
		Errors:   cur.Errors - s.last.Errors,
	}
	s.last = cur

	s.logger.Info().
		Str("report", kind).
		Int64("requests_total", cur.Requests).
		Int64("requests", delta.Requests).
		Int64("not_found", delta.NotFound).
		Int64("invalid_k", delta.InvalidK).
		Int64("errors", delta.Errors).
		Msg("recommendation stats")
	return delta
}

// String implements fmt.Stringer. Suture uses it in log messages.
func (s *StatsReporterService) String() string {
	return s.name
}
