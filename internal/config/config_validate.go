// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateTMDB(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateCatalog validates artifact locations
func (c *Config) validateCatalog() error {
	if err := validateArtifact("MOVIES", c.Catalog.MoviesPath, c.Catalog.MoviesURLs); err != nil {
		return err
	}
	if err := validateArtifact("SIMILARITY", c.Catalog.SimilarityPath, c.Catalog.SimilarityURLs); err != nil {
		return err
	}
	if c.Catalog.CacheDir == "" {
		return errors.New("ARTIFACT_CACHE_DIR is required")
	}
	if c.Catalog.DownloadTimeout <= 0 {
		return fmt.Errorf("DOWNLOAD_TIMEOUT must be positive, got %v", c.Catalog.DownloadTimeout)
	}
	if c.Catalog.DownloadRetries < 0 || c.Catalog.DownloadRetries > 10 {
		return fmt.Errorf("DOWNLOAD_RETRIES must be between 0 and 10, got %d", c.Catalog.DownloadRetries)
	}
	return nil
}

// validateArtifact requires a path or URL, and a decodable file extension.
func validateArtifact(prefix, path string, urls []string) error {
	if path == "" && len(urls) == 0 {
		return fmt.Errorf("%s_PATH or %s_URLS is required", prefix, prefix)
	}
	if path != "" {
		if _, err := catalog.FormatFromPath(path); err != nil {
			return fmt.Errorf("%s_PATH %q: %w", prefix, filepath.Base(path), err)
		}
	}
	for _, u := range urls {
		if err := validateHTTPURL(u, prefix+"_URLS"); err != nil {
			return err
		}
	}
	return nil
}

// validateRecommend validates recommendation limits
func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultK < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be at least 1, got %d", c.Recommend.DefaultK)
	}
	if c.Recommend.MaxK < c.Recommend.DefaultK {
		return fmt.Errorf("RECOMMEND_MAX_K (%d) must be >= RECOMMEND_DEFAULT_K (%d)", c.Recommend.MaxK, c.Recommend.DefaultK)
	}
	return nil
}

// validateTMDB validates TMDB configuration (only if enabled)
func (c *Config) validateTMDB() error {
	if !c.TMDB.Enabled {
		return nil
	}
	if c.TMDB.APIKey == "" {
		return errors.New("TMDB_API_KEY is required when TMDB_ENABLED=true")
	}
	if err := validateBaseURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if err := c.TMDB.EnrichConfig().Validate(); err != nil {
		return fmt.Errorf("tmdb: %w", err)
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	return c.validateRateLimits()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validLogFormats defines the allowed log output formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return errors.New("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return errors.New("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
