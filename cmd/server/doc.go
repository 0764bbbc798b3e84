// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package main is the entry point for the CineMatch API server.

CineMatch recommends movies by content similarity. The server loads a movie
table and a precomputed similarity matrix, then answers ranked
recommendation queries over HTTP. Results can optionally be enriched with
TMDB posters, cast, ratings and trailers.

# Startup Sequence

 1. Configuration: defaults, config.yaml, then environment (Koanf v2)
 2. Logging: zerolog with the configured level and format
 3. Artifacts: local files, the download cache, or the configured URLs
 4. Catalog: load and validate; any data integrity error is fatal
 5. Engine: the recommendation engine over the catalog
 6. Enrichment (optional): TMDB client behind a circuit breaker
 7. Router: chi with CORS, rate limiting, security headers and metrics
 8. Supervisor: Suture v4 tree running the HTTP server

# Supervisor Tree

	RootSupervisor ("cinematch")
	├── CoreSupervisor ("core-layer")
	│   └── StatsReporterService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Configuration

Common environment variables:

	MOVIES_PATH          movie table (json, csv or parquet)
	SIMILARITY_PATH      similarity matrix (json, csv or parquet)
	MOVIES_URLS          comma-separated download URLs for the movie table
	SIMILARITY_URLS      comma-separated download URLs for the matrix
	HTTP_PORT            listen port (default 8501)
	TMDB_ENABLED         enable metadata enrichment (default false)
	TMDB_API_KEY         TMDB v3 API key, required when enabled
	LOG_LEVEL            trace, debug, info, warn or error
	CORS_ORIGINS         comma-separated allowed origins

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests within server.shutdown_timeout,
after which any service that failed to stop is reported.

# Example Usage

	export MOVIES_PATH=data/movies.json
	export SIMILARITY_PATH=data/similarity.json
	export TMDB_ENABLED=true
	export TMDB_API_KEY=your-tmdb-key
	./cinematch-server

	curl 'http://localhost:8501/api/v1/recommendations?title=Avatar&k=5'
*/
package main
