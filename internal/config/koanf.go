// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinematch/config.yaml",
	"/etc/cinematch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			MoviesPath:      "data/movies.json",
			SimilarityPath:  "data/similarity.json",
			MoviesURLs:      []string{},
			SimilarityURLs:  []string{},
			CacheDir:        "data/cache",
			DownloadTimeout: 10 * time.Minute,
			DownloadRetries: 3,
		},
		Recommend: RecommendConfig{
			DefaultK: 5,
			MaxK:     100,
		},
		TMDB: TMDBConfig{
			Enabled:              false, // needs an API key
			BaseURL:              "https://api.themoviedb.org/3",
			APIKey:               "",
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
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8501,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Default returns the built-in configuration without reading a file or the
// environment.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults: built-in defaults
//  2. Config File: optional YAML config file
//  3. Environment Variables: override any mapped setting
//
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// TMDB_API_KEY -> tmdb.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" when none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"catalog.movies_urls",
	"catalog.similarity_urls",
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while YAML lists arrive as slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		trimmed := []string{}
		for _, p := range strings.Split(strVal, ",") {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Catalog mappings
	"movies_path":        "catalog.movies_path",
	"similarity_path":    "catalog.similarity_path",
	"movies_urls":        "catalog.movies_urls",
	"similarity_urls":    "catalog.similarity_urls",
	"artifact_cache_dir": "catalog.cache_dir",
	"download_timeout":   "catalog.download_timeout",
	"download_retries":   "catalog.download_retries",

	// Recommendation mappings
	"recommend_default_k": "recommend.default_k",
	"recommend_max_k":     "recommend.max_k",

	// TMDB mappings
	"tmdb_enabled":                "tmdb.enabled",
	"tmdb_base_url":               "tmdb.base_url",
	"tmdb_api_key":                "tmdb.api_key",
	"tmdb_language":               "tmdb.language",
	"tmdb_image_base_url":         "tmdb.image_base_url",
	"tmdb_placeholder_poster_url": "tmdb.placeholder_poster_url",
	"tmdb_timeout":                "tmdb.timeout",
	"tmdb_max_retries":            "tmdb.max_retries",
	"tmdb_retry_base_delay":       "tmdb.retry_base_delay",
	"tmdb_requests_per_second":    "tmdb.requests_per_second",
	"tmdb_burst":                  "tmdb.burst",
	"tmdb_concurrency":            "tmdb.concurrency",
	"tmdb_cast_limit":             "tmdb.cast_limit",

	// Server mappings
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - MOVIES_URLS -> catalog.movies_urls
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
