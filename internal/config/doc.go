// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config provides centralized configuration management for CineMatch.

Configuration is layered with Koanf v2. Later layers win:
  - Struct defaults (defaultConfig)
  - Optional YAML file: CONFIG_PATH, config.yaml, config.yml, /etc/cinematch/config.yaml
  - Environment variables mapped through an explicit table

# Configuration Structure

  - CatalogConfig: artifact paths, download URLs and cache directory
  - RecommendConfig: default and maximum number of recommendations
  - TMDBConfig: metadata enrichment through the TMDB API
  - ServerConfig: HTTP listener and shutdown settings
  - SecurityConfig: inbound rate limiting and CORS
  - LoggingConfig: zerolog level, format and caller

# Environment Variables

Catalog:
  - MOVIES_PATH, SIMILARITY_PATH: local artifact files (.json, .csv, .parquet)
  - MOVIES_URLS, SIMILARITY_URLS: comma-separated download URLs
  - ARTIFACT_CACHE_DIR: where downloaded artifacts are kept
  - DOWNLOAD_TIMEOUT, DOWNLOAD_RETRIES

Recommendations:
  - RECOMMEND_DEFAULT_K (default: 5)
  - RECOMMEND_MAX_K (default: 100)

TMDB:
  - TMDB_ENABLED, TMDB_API_KEY (required when enabled)
  - TMDB_BASE_URL, TMDB_LANGUAGE, TMDB_IMAGE_BASE_URL, TMDB_PLACEHOLDER_POSTER_URL
  - TMDB_TIMEOUT, TMDB_MAX_RETRIES, TMDB_RETRY_BASE_DELAY
  - TMDB_REQUESTS_PER_SECOND, TMDB_BURST, TMDB_CONCURRENCY, TMDB_CAST_LIMIT

Server:
  - HTTP_HOST (default: 0.0.0.0), HTTP_PORT (default: 8501)
  - HTTP_TIMEOUT, SHUTDOWN_TIMEOUT

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated origins (default: *)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}

Unknown environment variables are ignored.
*/
package config
