// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package enrich turns catalog movie IDs into display records using the
// TMDB v3 HTTP API.
//
// Lookups are independent: a failure for one ID never aborts the others.
// The Enricher drops failed IDs from its result, logs them and counts them
// in the enrichment metrics. TMDBClient owns transport concerns (timeout,
// outbound rate limit, backoff on 429 and 5xx) and CircuitBreakerClient
// stops calling TMDB while it is failing.
package enrich

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config contains TMDB client and enrichment settings.
type Config struct {
	// BaseURL is the TMDB API root, without trailing slash.
	BaseURL string

	// APIKey is sent as the api_key query parameter. It has no default.
	APIKey string

	// Language is passed to TMDB for localized fields.
	Language string

	// ImageBaseURL is joined with poster_path to build poster URLs.
	ImageBaseURL string

	// PlaceholderPosterURL is used when TMDB has no poster.
	PlaceholderPosterURL string

	// Timeout bounds one HTTP round trip.
	Timeout time.Duration

	// MaxRetries is the number of retries after a 429 or 5xx response.
	MaxRetries int

	// RetryBaseDelay is the first backoff delay; each retry doubles it.
	RetryBaseDelay time.Duration

	// RequestsPerSecond limits outbound calls. Zero or less disables the limit.
	RequestsPerSecond float64

	// Burst is the rate limiter bucket size.
	Burst int

	// Concurrency bounds parallel lookups in one Enrich call.
	Concurrency int

	// CastLimit is the number of cast names in a display record.
	CastLimit int
}

// DefaultConfig returns settings matching the public TMDB API.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:              "https://api.themoviedb.org/3",
		Language:             "en-US",
		ImageBaseURL:         "https://image.tmdb.org/t/p/w500",
		PlaceholderPosterURL: "https://placehold.co/500x750",
		Timeout:              10 * time.Second,
		MaxRetries:           3,
		RetryBaseDelay:       500 * time.Millisecond,
		RequestsPerSecond:    20,
		Burst:                20,
		Concurrency:          5,
		CastLimit:            5,
	}
}

// Validate checks the configuration. A missing API key is reported as
// ErrMissingAPIKey.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("base_url is invalid: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative, got %d", c.MaxRetries)
	}
	if c.RetryBaseDelay < 0 {
		return fmt.Errorf("retry_base_delay must be non-negative, got %v", c.RetryBaseDelay)
	}
	if c.RequestsPerSecond > 0 && c.Burst < 1 {
		return fmt.Errorf("burst must be positive when rate limiting is on, got %d", c.Burst)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.CastLimit < 1 {
		return fmt.Errorf("cast_limit must be positive, got %d", c.CastLimit)
	}
	return nil
}

var (
	// ErrMissingAPIKey is returned when no TMDB API key is configured.
	ErrMissingAPIKey = errors.New("tmdb api key is not configured")

	// ErrMovieNotFound is returned when TMDB answers 404 for a movie ID.
	ErrMovieNotFound = errors.New("movie not found on tmdb")
)

// StatusError is returned for non-success TMDB responses other than 404.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb request failed with status %d: %s", e.StatusCode, e.Body)
}
