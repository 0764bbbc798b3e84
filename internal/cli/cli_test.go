// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/models"
)

const (
	testMovies = `{"movie_id":{"0":19995,"1":285,"2":206647,"3":49026},` +
		`"title":{"0":"Avatar","1":"Pirates of the Caribbean: At World's End","2":"Spectre","3":"The Dark Knight Rises"}}`
	testMatrix = `[[1.0,0.9,0.9,0.1],[0.9,1.0,0.3,0.2],[0.9,0.3,1.0,0.5],[0.1,0.2,0.5,1.0]]`
)

// writeArtifacts writes the test catalog and returns its paths.
func writeArtifacts(t *testing.T) (moviesPath, similarityPath string) {
	t.Helper()
	dir := t.TempDir()
	moviesPath = filepath.Join(dir, "movies.json")
	similarityPath = filepath.Join(dir, "similarity.json")
	require.NoError(t, os.WriteFile(moviesPath, []byte(testMovies), 0o600))
	require.NoError(t, os.WriteFile(similarityPath, []byte(testMatrix), 0o600))
	return moviesPath, similarityPath
}

// testOptions returns Options whose config points at the test catalog.
// A non-empty tmdbURL enables enrichment against that server.
func testOptions(t *testing.T, tmdbURL string) Options {
	t.Helper()
	moviesPath, similarityPath := writeArtifacts(t)
	cacheDir := filepath.Join(t.TempDir(), "cache")

	return Options{
		Version: "1.2.3",
		LoadConfig: func() (*config.Config, error) {
			cfg := config.Default()
			cfg.Catalog.MoviesPath = moviesPath
			cfg.Catalog.SimilarityPath = similarityPath
			cfg.Catalog.CacheDir = cacheDir
			if tmdbURL != "" {
				cfg.TMDB.Enabled = true
				cfg.TMDB.APIKey = "test-key"
				cfg.TMDB.BaseURL = tmdbURL
				cfg.TMDB.RequestsPerSecond = 0
				cfg.TMDB.RetryBaseDelay = time.Millisecond
			}
			return cfg, nil
		},
	}
}

// newTMDBServer answers /movie/{id} for the known ids and 404 otherwise.
func newTMDBServer(t *testing.T, known map[int64]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id int64
		if _, err := fmt.Sscanf(r.URL.Path, "/movie/%d", &id); err != nil {
			http.NotFound(w, r)
			return
		}
		title, ok := known[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%d,"title":%q,"overview":"An overview.","poster_path":"/p%d.jpg",`+
			`"release_date":"2012-07-16","vote_average":7.7,"vote_count":100,`+
			`"credits":{"cast":[{"name":"Christian Bale"}]},`+
			`"videos":{"results":[{"key":"k%d","site":"YouTube","type":"Trailer"}]}}`, id, title, id, id)
	}))
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, opts Options, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	rootCmd := NewRootCmd(opts)
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	code = Execute(context.Background(), rootCmd)
	return outBuf.String(), errBuf.String(), code
}

func TestRootCmd_Subcommands(t *testing.T) {
	rootCmd := NewRootCmd(Options{})

	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"titles", "recommend", "details", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"movies", "similarity", "log-level"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing persistent flag %s", flag)
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, code := execute(t, Options{Version: "1.2.3"}, "version")

	assert.Equal(t, 0, code)
	assert.Equal(t, "cinematch version 1.2.3\n", stdout)
}

func TestVersionCmd_DefaultVersion(t *testing.T) {
	stdout, _, code := execute(t, Options{}, "version")

	assert.Equal(t, 0, code)
	assert.Equal(t, "cinematch version dev\n", stdout)
}

func TestTitlesCmd(t *testing.T) {
	opts := testOptions(t, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "all titles in catalog order",
			args: []string{"titles"},
			want: "19995\tAvatar\n285\tPirates of the Caribbean: At World's End\n206647\tSpectre\n49026\tThe Dark Knight Rises\n",
		},
		{
			name: "search ignores case",
			args: []string{"titles", "--search", "DARK"},
			want: "49026\tThe Dark Knight Rises\n",
		},
		{
			name: "limit",
			args: []string{"titles", "-n", "2"},
			want: "19995\tAvatar\n285\tPirates of the Caribbean: At World's End\n",
		},
		{
			name: "no match",
			args: []string{"titles", "-s", "zzz"},
			want: "No movies found.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, code := execute(t, opts, tt.args...)
			assert.Equal(t, 0, code)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestTitlesCmd_JSON(t *testing.T) {
	stdout, _, code := execute(t, testOptions(t, ""), "titles", "--search", "zzz", "--json")
	require.Equal(t, 0, code)
	assert.Equal(t, "[]\n", stdout)

	stdout, _, code = execute(t, testOptions(t, ""), "titles", "--json")
	require.Equal(t, 0, code)

	var movies []catalog.Movie
	require.NoError(t, json.Unmarshal([]byte(stdout), &movies))
	require.Len(t, movies, 4)
	assert.Equal(t, catalog.Movie{ID: 206647, Title: "Spectre"}, movies[2])
}

func TestTitlesCmd_NegativeLimit(t *testing.T) {
	_, stderr, code := execute(t, testOptions(t, ""), "titles", "--limit", "-1")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--limit must not be negative")
}

func TestRecommendCmd_Text(t *testing.T) {
	stdout, stderr, code := execute(t, testOptions(t, ""), "recommend", "Avatar")

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `Movies similar to "Avatar":`)

	pirates := strings.Index(stdout, "1. Pirates of the Caribbean: At World's End (movie_id 285, score 0.9000)")
	spectre := strings.Index(stdout, "2. Spectre (movie_id 206647, score 0.9000)")
	tdkr := strings.Index(stdout, "3. The Dark Knight Rises (movie_id 49026, score 0.1000)")
	require.True(t, pirates >= 0 && spectre >= 0 && tdkr >= 0, stdout)
	assert.Less(t, pirates, spectre)
	assert.Less(t, spectre, tdkr)
	assert.NotContains(t, stdout, "Avatar (movie_id")
}

func TestRecommendCmd_JSON(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []int64
	}{
		{"default k capped at catalog size", []string{"recommend", "Avatar", "--json"}, []int64{285, 206647, 49026}},
		{"explicit k", []string{"recommend", "Avatar", "-k", "2", "--json"}, []int64{285, 206647}},
		{"long k flag", []string{"recommend", "The Dark Knight Rises", "--k", "1", "--json"}, []int64{206647}},
	}

	opts := testOptions(t, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := execute(t, opts, tt.args...)
			require.Equal(t, 0, code, stderr)

			var resp models.RecommendationResponse
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
			assert.Equal(t, tt.want, resp.MovieIDs)
			assert.Len(t, resp.Candidates, len(tt.want))
			assert.Empty(t, resp.Details)
		})
	}
}

func TestRecommendCmd_UnknownTitle(t *testing.T) {
	stdout, stderr, code := execute(t, testOptions(t, ""), "recommend", "avatar")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Movie not found in dataset.")
	assert.NotContains(t, stderr, "Error:")
}

func TestRecommendCmd_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing title", []string{"recommend"}, "accepts 1 arg(s)"},
		{"k zero", []string{"recommend", "Avatar", "-k", "0"}, "k must be at least 1"},
		{"k above max", []string{"recommend", "Avatar", "-k", "101"}, "k must be at most 100"},
		{"empty title", []string{"recommend", ""}, "title is required"},
		{"control characters", []string{"recommend", "Ava\x00tar"}, "title must not contain control characters"},
		{"enrichment disabled", []string{"recommend", "Avatar", "--enrich"}, "tmdb enrichment is disabled"},
	}

	opts := testOptions(t, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := execute(t, opts, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestRecommendCmd_Enrich(t *testing.T) {
	server := newTMDBServer(t, map[int64]string{
		285:   "Pirates of the Caribbean: At World's End",
		49026: "The Dark Knight Rises",
	})
	opts := testOptions(t, server.URL)

	stdout, stderr, code := execute(t, opts, "recommend", "Avatar", "--enrich", "--json")
	require.Equal(t, 0, code, stderr)

	var resp models.RecommendationResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, []int64{285, 206647, 49026}, resp.MovieIDs)

	require.Len(t, resp.Details, 2)
	assert.Equal(t, int64(285), resp.Details[0].MovieID)
	assert.Equal(t, int64(49026), resp.Details[1].MovieID)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p285.jpg", resp.Details[0].PosterURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=k49026", resp.Details[1].TrailerURL)

	require.Len(t, resp.Dropped, 1)
	assert.Equal(t, enrich.DroppedMovie{MovieID: 206647, Reason: "not found"}, resp.Dropped[0])

	stdout, stderr, code = execute(t, opts, "recommend", "Avatar", "--enrich")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "1. Pirates of the Caribbean: At World's End (movie_id 285)")
	assert.Contains(t, stdout, "Cast:     Christian Bale")
	assert.Contains(t, stdout, "Skipped 1 movie(s) without TMDB metadata:")
	assert.Contains(t, stdout, "movie_id 206647: not found")
}

func TestDetailsCmd(t *testing.T) {
	server := newTMDBServer(t, map[int64]string{49026: "The Dark Knight Rises"})
	opts := testOptions(t, server.URL)

	stdout, stderr, code := execute(t, opts, "details", "49026")
	require.Equal(t, 0, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "The Dark Knight Rises (movie_id 49026)\n"), stdout)
	assert.Contains(t, stdout, "Rating:   7.7/10 (100 votes)")
	assert.Contains(t, stdout, "Released: 2012-07-16")

	stdout, stderr, code = execute(t, opts, "details", "49026", "--json")
	require.Equal(t, 0, code, stderr)
	var details enrich.MovieDetails
	require.NoError(t, json.Unmarshal([]byte(stdout), &details))
	assert.Equal(t, "The Dark Knight Rises", details.Title)
	assert.Equal(t, 100, details.VoteCount)
}

func TestDetailsCmd_Errors(t *testing.T) {
	server := newTMDBServer(t, nil)

	tests := []struct {
		name    string
		opts    Options
		args    []string
		wantErr string
	}{
		{"not on tmdb", testOptions(t, server.URL), []string{"details", "285"}, "No TMDB entry for movie_id 285."},
		{"non-numeric id", testOptions(t, server.URL), []string{"details", "abc"}, "movie id must be a positive integer"},
		{"zero id", testOptions(t, server.URL), []string{"details", "0"}, "movie id must be a positive integer"},
		{"enrichment disabled", testOptions(t, ""), []string{"details", "285"}, "tmdb enrichment is disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := execute(t, tt.opts, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestArtifactFlagsOverrideConfig(t *testing.T) {
	moviesPath, similarityPath := writeArtifacts(t)
	missing := filepath.Join(t.TempDir(), "missing.json")
	cacheDir := filepath.Join(t.TempDir(), "cache")

	opts := Options{
		LoadConfig: func() (*config.Config, error) {
			cfg := config.Default()
			cfg.Catalog.MoviesPath = missing
			cfg.Catalog.SimilarityPath = missing
			cfg.Catalog.CacheDir = cacheDir
			return cfg, nil
		},
	}

	_, stderr, code := execute(t, opts, "titles")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "resolve artifacts")

	stdout, stderr, code := execute(t, opts, "--movies", moviesPath, "--similarity", similarityPath, "titles", "-s", "spectre")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "206647\tSpectre\n", stdout)
}

func TestCorruptCatalog(t *testing.T) {
	dir := t.TempDir()
	moviesPath := filepath.Join(dir, "movies.json")
	similarityPath := filepath.Join(dir, "similarity.json")
	require.NoError(t, os.WriteFile(moviesPath, []byte(`{"movie_id":[1,2,3],"title":["A","B","C"]}`), 0o600))
	require.NoError(t, os.WriteFile(similarityPath, []byte(`[[1,0,0,0],[0,1,0,0],[0,0,1,0]]`), 0o600))

	_, stderr, code := execute(t, testOptions(t, ""), "--movies", moviesPath, "--similarity", similarityPath, "recommend", "A")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "data integrity")
}

func TestConfigErrors(t *testing.T) {
	opts := Options{
		LoadConfig: func() (*config.Config, error) {
			return nil, errors.New("server.port must be positive")
		},
	}

	_, stderr, code := execute(t, opts, "titles")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "load config: server.port must be positive")

	_, stderr, code = execute(t, testOptions(t, ""), "--log-level", "loud", "titles")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `invalid --log-level "loud"`)
}
