// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package artifact makes the precomputed catalog artifacts available on
// local disk before the catalog is loaded.
//
// Resolution order for a Source:
//  1. Path, when the file exists
//  2. A cached copy under CacheDir from an earlier download
//  3. Each URL in turn, with bounded retries and exponential backoff
//
// Downloads are written to a temp file in CacheDir and renamed into place,
// so a partial download is never mistaken for a cached artifact.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/metrics"
)

// Fetch sources reported to metrics.
const (
	SourceLocal    = "local"
	SourceCache    = "cache"
	SourceDownload = "download"
)

// DefaultMaxSize bounds a single download (4GB).
const DefaultMaxSize int64 = 4 << 30

// ErrNoSource is returned when a Source has neither an existing path nor URLs.
var ErrNoSource = errors.New("artifact has no local file and no download URLs")

// Source describes one artifact and where it may be found.
type Source struct {
	// Name identifies the artifact in logs and metrics, e.g. "movies".
	Name string

	// Path is the preferred local file.
	Path string

	// URLs are tried in order when Path does not exist.
	URLs []string
}

// Config configures a Fetcher.
type Config struct {
	CacheDir   string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	MaxSize    int64
}

// Fetcher resolves artifact Sources to local file paths.
type Fetcher struct {
	cfg    Config
	client *http.Client
	logger zerolog.Logger
}

// NewFetcher creates a Fetcher. Zero values in cfg fall back to defaults.
func NewFetcher(cfg Config, logger zerolog.Logger) *Fetcher {
	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(os.TempDir(), "cinematch")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Resolve returns a local path for src. When every strategy fails, the
// returned error joins each strategy's failure.
func (f *Fetcher) Resolve(ctx context.Context, src Source) (string, error) {
	log := f.logger.With().Str("artifact", src.Name).Logger()

	if src.Path != "" && fileExists(src.Path) {
		log.Debug().Str("path", src.Path).Msg("using local artifact")
		metrics.RecordArtifactFetch(src.Name, SourceLocal, nil)
		return src.Path, nil
	}

	cachePath := f.cachePath(src)
	if fileExists(cachePath) {
		log.Info().Str("path", cachePath).Msg("using cached artifact")
		metrics.RecordArtifactFetch(src.Name, SourceCache, nil)
		return cachePath, nil
	}

	if len(src.URLs) == 0 {
		err := fmt.Errorf("%s: %w", src.Name, ErrNoSource)
		metrics.RecordArtifactFetch(src.Name, SourceLocal, err)
		return "", err
	}

	var errs []error
	for _, u := range src.URLs {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		start := time.Now()
		n, err := f.downloadWithRetry(ctx, u, cachePath)
		metrics.RecordArtifactFetch(src.Name, SourceDownload, err)
		if err != nil {
			log.Warn().Err(err).Str("url", u).Msg("artifact download failed")
			errs = append(errs, fmt.Errorf("%s: %w", u, err))
			continue
		}

		log.Info().
			Str("url", u).
			Str("path", cachePath).
			Int64("bytes", n).
			Dur("duration", time.Since(start)).
			Msg("artifact downloaded")
		return cachePath, nil
	}

	return "", fmt.Errorf("resolve artifact %s: %w", src.Name, errors.Join(errs...))
}

// cachePath names the cached copy after the artifact, keeping the extension
// of the local path or first URL so the catalog can pick a decoder.
func (f *Fetcher) cachePath(src Source) string {
	ext := filepath.Ext(src.Path)
	if ext == "" && len(src.URLs) > 0 {
		ext = path.Ext(stripQuery(src.URLs[0]))
	}
	return filepath.Join(f.cfg.CacheDir, src.Name+ext)
}

func (f *Fetcher) downloadWithRetry(ctx context.Context, url, dest string) (int64, error) {
	var lastErr error

	for attempt := 0; attempt <= f.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := f.cfg.RetryDelay * time.Duration(1<<(attempt-1))
			var retryAfter *retryAfterError
			if errors.As(lastErr, &retryAfter) && retryAfter.delay > 0 {
				delay = retryAfter.delay
			}
			f.logger.Debug().Int("attempt", attempt).Dur("delay", delay).Str("url", url).Msg("retrying artifact download")
			if err := sleepContext(ctx, delay); err != nil {
				return 0, err
			}
		}

		n, err := f.download(ctx, url, dest)
		if err == nil {
			return n, nil
		}
		lastErr = err
		if !retryable(err) {
			return 0, err
		}
	}

	return 0, fmt.Errorf("giving up after %d retries: %w", f.cfg.MaxRetries, lastErr)
}

// statusError is a non-200 download response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("download failed: HTTP %d", e.code)
}

// retryAfterError carries the server's Retry-After hint with a retryable status.
type retryAfterError struct {
	statusError
	delay time.Duration
}

// errTooLarge is returned when a download exceeds Config.MaxSize.
var errTooLarge = errors.New("download exceeds maximum size")

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, errTooLarge) {
		return false
	}
	var ra *retryAfterError
	if errors.As(err, &ra) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return false
	}
	// Remaining errors are network or local I/O failures.
	return true
}

// download fetches url into dest with an atomic rename.
func (f *Fetcher) download(ctx context.Context, url, dest string) (int64, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return 0, fmt.Errorf("creating cache directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("creating download request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("downloading: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // body drained below or discarded

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return 0, &retryAfterError{
			statusError: statusError{code: resp.StatusCode},
			delay:       parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	default:
		return 0, &statusError{code: resp.StatusCode}
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(dest)+"-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()    //nolint:errcheck,gosec // already closed on success
		os.Remove(tmpPath) //nolint:errcheck,gosec // no-op after a successful rename
	}()

	n, err := io.Copy(tmpFile, io.LimitReader(resp.Body, f.cfg.MaxSize+1))
	if err != nil {
		return 0, fmt.Errorf("writing download: %w", err)
	}
	if n > f.cfg.MaxSize {
		return 0, fmt.Errorf("%w (%d bytes)", errTooLarge, f.cfg.MaxSize)
	}
	if err := tmpFile.Close(); err != nil {
		return 0, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return 0, fmt.Errorf("moving download to cache: %w", err)
	}
	return n, nil
}

func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func stripQuery(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		return u[:i]
	}
	return u
}
