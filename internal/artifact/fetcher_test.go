// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package artifact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestFetcher(t *testing.T, retries int) *Fetcher {
	t.Helper()
	return NewFetcher(Config{
		CacheDir:   t.TempDir(),
		Timeout:    5 * time.Second,
		MaxRetries: retries,
		RetryDelay: time.Millisecond,
	}, zerolog.Nop())
}

func TestResolve_LocalFile(t *testing.T) {
	t.Parallel()

	local := filepath.Join(t.TempDir(), "movies.json")
	if err := os.WriteFile(local, []byte("[]"), 0o600); err != nil {
		t.Fatal(err)
	}

	f := newTestFetcher(t, 0)
	got, err := f.Resolve(context.Background(), Source{Name: "movies", Path: local, URLs: []string{"http://127.0.0.1:1/never"}})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != local {
		t.Errorf("Resolve() = %q, want %q", got, local)
	}
}

func TestResolve_DownloadsThenUsesCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[[1]]`))
	}))
	defer server.Close()

	f := newTestFetcher(t, 0)
	src := Source{
		Name: "similarity",
		Path: filepath.Join(t.TempDir(), "missing", "similarity.json"),
		URLs: []string{server.URL + "/similarity.json?dl=1"},
	}

	got, err := f.Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if filepath.Base(got) != "similarity.json" {
		t.Errorf("cache file = %q, want similarity.json", got)
	}
	data, err := os.ReadFile(got)
	if err != nil || string(data) != `[[1]]` {
		t.Errorf("cached contents = %q, %v", data, err)
	}

	again, err := f.Resolve(context.Background(), src)
	if err != nil || again != got {
		t.Errorf("second Resolve() = %q, %v", again, err)
	}
	if calls.Load() != 1 {
		t.Errorf("server calls = %d, want 1", calls.Load())
	}

	entries, _ := os.ReadDir(filepath.Dir(got))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestResolve_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("movie_id,title\n1,A\n"))
	}))
	defer server.Close()

	f := newTestFetcher(t, 3)
	got, err := f.Resolve(context.Background(), Source{Name: "movies", URLs: []string{server.URL + "/movies.csv"}})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if filepath.Ext(got) != ".csv" {
		t.Errorf("cache file = %q, want .csv extension", got)
	}
	if calls.Load() != 3 {
		t.Errorf("server calls = %d, want 3", calls.Load())
	}
}

func TestResolve_FallsBackToNextURL(t *testing.T) {
	t.Parallel()

	var badCalls atomic.Int32
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		badCalls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer good.Close()

	f := newTestFetcher(t, 3)
	_, err := f.Resolve(context.Background(), Source{Name: "movies", URLs: []string{bad.URL + "/m.json", good.URL + "/m.json"}})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if badCalls.Load() != 1 {
		t.Errorf("403 must not be retried, got %d calls", badCalls.Load())
	}
}

func TestResolve_AllStrategiesFail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFetcher(t, 1)
	_, err := f.Resolve(context.Background(), Source{Name: "movies", URLs: []string{server.URL + "/a.json", server.URL + "/b.json"}})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "/a.json") || !strings.Contains(msg, "/b.json") {
		t.Errorf("error should name every failed URL: %v", err)
	}
	var se *statusError
	if !errors.As(err, &se) || se.code != http.StatusNotFound {
		t.Errorf("expected statusError 404 in chain, got %v", err)
	}
}

func TestResolve_NoSource(t *testing.T) {
	t.Parallel()

	f := newTestFetcher(t, 0)
	_, err := f.Resolve(context.Background(), Source{Name: "movies", Path: "/nonexistent/movies.json"})
	if !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestResolve_TooLarge(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	f := NewFetcher(Config{CacheDir: t.TempDir(), MaxRetries: 3, RetryDelay: time.Millisecond, MaxSize: 16}, zerolog.Nop())
	_, err := f.Resolve(context.Background(), Source{Name: "movies", URLs: []string{server.URL + "/m.json"}})
	if !errors.Is(err, errTooLarge) {
		t.Fatalf("expected errTooLarge, got %v", err)
	}
}

func TestResolve_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := NewFetcher(Config{CacheDir: t.TempDir(), MaxRetries: 5, RetryDelay: time.Hour}, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.Resolve(ctx, Source{Name: "movies", URLs: []string{server.URL + "/m.json"}})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"503", &retryAfterError{statusError: statusError{code: 503}}, true},
		{"404", &statusError{code: 404}, false},
		{"network", errors.New("connection reset"), true},
		{"cancelled", context.Canceled, false},
		{"too large", errTooLarge, false},
	}

	for _, tt := range tests {
		if got := retryable(tt.err); got != tt.want {
			t.Errorf("retryable(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
