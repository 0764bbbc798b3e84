// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolateEnv clears every mapped variable and moves into an empty directory
// so no stray config.yaml is picked up.
func isolateEnv(t *testing.T) {
	t.Helper()

	t.Setenv(ConfigPathEnvVar, "")
	for key := range envMappings {
		t.Setenv(strings.ToUpper(key), "")
		os.Unsetenv(strings.ToUpper(key)) //nolint:errcheck // restored by t.Setenv cleanup
	}
	os.Unsetenv(ConfigPathEnvVar) //nolint:errcheck // restored by t.Setenv cleanup

	t.Chdir(t.TempDir())
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultK != 5 || cfg.Recommend.MaxK != 100 {
		t.Errorf("Recommend = %+v, want {5 100}", cfg.Recommend)
	}
	if cfg.TMDB.Enabled {
		t.Error("TMDB should be disabled by default")
	}
	if cfg.TMDB.APIKey != "" {
		t.Error("TMDB.APIKey must have no default")
	}
	if cfg.TMDB.PlaceholderPosterURL != "https://placehold.co/500x750" {
		t.Errorf("TMDB.PlaceholderPosterURL = %q", cfg.TMDB.PlaceholderPosterURL)
	}
	if cfg.TMDB.CastLimit != 5 {
		t.Errorf("TMDB.CastLimit = %d, want 5", cfg.TMDB.CastLimit)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("Security.RateLimitWindow = %v, want 1m", cfg.Security.RateLimitWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"MOVIES_URLS", "catalog.movies_urls"},
		{"ARTIFACT_CACHE_DIR", "catalog.cache_dir"},
		{"HTTP_PORT", "server.port"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"RECOMMEND_MAX_K", "recommend.max_k"},
		{"log_level", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	isolateEnv(t)

	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty", got)
	}

	if err := os.WriteFile("config.yml", []byte("logging:\n  level: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFile(); got != "config.yml" {
		t.Errorf("findConfigFile() = %q, want config.yml", got)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(custom, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, custom)
	if got := findConfigFile(); got != custom {
		t.Errorf("findConfigFile() = %q, want %q", got, custom)
	}

	t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
	if got := findConfigFile(); got != "config.yml" {
		t.Errorf("missing CONFIG_PATH should fall back, got %q", got)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateEnv(t)

	t.Setenv("TMDB_ENABLED", "true")
	t.Setenv("TMDB_API_KEY", "env-key")
	t.Setenv("TMDB_TIMEOUT", "3s")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_DEFAULT_K", "8")
	t.Setenv("MOVIES_URLS", "https://a.example/movies.json, https://b.example/movies.json")
	t.Setenv("CORS_ORIGINS", "https://cinematch.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if !cfg.TMDB.Enabled || cfg.TMDB.APIKey != "env-key" || cfg.TMDB.Timeout != 3*time.Second {
		t.Errorf("TMDB = %+v", cfg.TMDB)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Recommend.DefaultK != 8 {
		t.Errorf("Recommend.DefaultK = %d, want 8", cfg.Recommend.DefaultK)
	}
	wantURLs := []string{"https://a.example/movies.json", "https://b.example/movies.json"}
	if !reflect.DeepEqual(cfg.Catalog.MoviesURLs, wantURLs) {
		t.Errorf("Catalog.MoviesURLs = %v, want %v", cfg.Catalog.MoviesURLs, wantURLs)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://cinematch.example"}) {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	isolateEnv(t)

	configPath := filepath.Join(t.TempDir(), "cinematch.yaml")
	content := `
catalog:
  movies_path: /srv/movies.parquet
  similarity_path: /srv/similarity.parquet
  similarity_urls:
    - https://mirror.example/similarity.parquet
recommend:
  default_k: 10
  max_k: 50
server:
  port: 8080
logging:
  format: console
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Catalog.MoviesPath != "/srv/movies.parquet" {
		t.Errorf("Catalog.MoviesPath = %q", cfg.Catalog.MoviesPath)
	}
	if len(cfg.Catalog.SimilarityURLs) != 1 {
		t.Errorf("Catalog.SimilarityURLs = %v", cfg.Catalog.SimilarityURLs)
	}
	if cfg.Recommend.DefaultK != 10 || cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Server.Port != 8080 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	isolateEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 8080\nlogging:\n  level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("env should override file: port = %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("file should override defaults: level = %q", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"tmdb enabled without key", map[string]string{"TMDB_ENABLED": "true"}, "TMDB_API_KEY"},
		{"invalid port", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"max below default", map[string]string{"RECOMMEND_MAX_K": "2"}, "RECOMMEND_MAX_K"},
		{"unsupported artifact", map[string]string{"MOVIES_PATH": "movie_dict.pkl"}, "MOVIES_PATH"},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
