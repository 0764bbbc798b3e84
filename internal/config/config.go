// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/cinematch/internal/artifact"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig locates the movie table and similarity matrix.
type CatalogConfig struct {
	MoviesPath      string        `koanf:"movies_path"`
	SimilarityPath  string        `koanf:"similarity_path"`
	MoviesURLs      []string      `koanf:"movies_urls"`
	SimilarityURLs  []string      `koanf:"similarity_urls"`
	CacheDir        string        `koanf:"cache_dir"`
	DownloadTimeout time.Duration `koanf:"download_timeout"`
	DownloadRetries int           `koanf:"download_retries"`
}

// RecommendConfig holds recommendation limits.
type RecommendConfig struct {
	DefaultK int `koanf:"default_k"`
	MaxK     int `koanf:"max_k"`
}

// TMDBConfig holds metadata enrichment settings.
type TMDBConfig struct {
	Enabled              bool          `koanf:"enabled"`
	BaseURL              string        `koanf:"base_url"`
	APIKey               string        `koanf:"api_key"`
	Language             string        `koanf:"language"`
	ImageBaseURL         string        `koanf:"image_base_url"`
	PlaceholderPosterURL string        `koanf:"placeholder_poster_url"`
	Timeout              time.Duration `koanf:"timeout"`
	MaxRetries           int           `koanf:"max_retries"`
	RetryBaseDelay       time.Duration `koanf:"retry_base_delay"`
	RequestsPerSecond    float64       `koanf:"requests_per_second"`
	Burst                int           `koanf:"burst"`
	Concurrency          int           `koanf:"concurrency"`
	CastLimit            int           `koanf:"cast_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds inbound protection settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to log entries.
	Caller bool `koanf:"caller"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// MoviesSource describes the movie table artifact.
func (c CatalogConfig) MoviesSource() artifact.Source {
	return artifact.Source{Name: catalog.ArtifactMovies, Path: c.MoviesPath, URLs: c.MoviesURLs}
}

// SimilaritySource describes the similarity matrix artifact.
func (c CatalogConfig) SimilaritySource() artifact.Source {
	return artifact.Source{Name: catalog.ArtifactSimilarity, Path: c.SimilarityPath, URLs: c.SimilarityURLs}
}

// FetcherConfig converts the catalog section for artifact.NewFetcher.
func (c CatalogConfig) FetcherConfig() artifact.Config {
	return artifact.Config{
		CacheDir:   c.CacheDir,
		Timeout:    c.DownloadTimeout,
		MaxRetries: c.DownloadRetries,
		RetryDelay: time.Second,
	}
}

// EngineConfig converts the recommend section for recommend.NewEngine.
func (c RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{DefaultK: c.DefaultK, MaxK: c.MaxK}
}

// EnrichConfig converts the tmdb section for the enrich package.
func (c TMDBConfig) EnrichConfig() *enrich.Config {
	return &enrich.Config{
		BaseURL:              c.BaseURL,
		APIKey:               c.APIKey,
		Language:             c.Language,
		ImageBaseURL:         c.ImageBaseURL,
		PlaceholderPosterURL: c.PlaceholderPosterURL,
		Timeout:              c.Timeout,
		MaxRetries:           c.MaxRetries,
		RetryBaseDelay:       c.RetryBaseDelay,
		RequestsPerSecond:    c.RequestsPerSecond,
		Burst:                c.Burst,
		Concurrency:          c.Concurrency,
		CastLimit:            c.CastLimit,
	}
}

// LoggerConfig converts the logging section for logging.Init.
func (c LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	if c.Format != "" {
		cfg.Format = c.Format
	}
	cfg.Caller = c.Caller
	return cfg
}
