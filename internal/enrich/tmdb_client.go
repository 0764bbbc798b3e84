// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
tmdb_client.go - TMDB HTTP client

TMDBClient fetches /movie/{id} with credits and videos appended.

Resilience:
  - Outbound rate limit via golang.org/x/time/rate, waited before every attempt
  - Exponential backoff (base, 2x base, 4x base ...) on HTTP 429 and 5xx
  - Retry-After honored when TMDB sends it, capped at maxRetryDelay
  - No retry is slept on when the delay would outlast the context deadline
  - Transport errors fail fast; the circuit breaker decides when to stop calling
  - The api_key query parameter never appears in returned errors
*/

//nolint:staticcheck // File documentation, not package doc
package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const (
	// maxErrorBodySize limits how much of an error response is kept.
	maxErrorBodySize = 64 * 1024 // 64KB

	// maxRetryDelay caps the wait between attempts, whatever Retry-After says.
	maxRetryDelay = 30 * time.Second
)

// readBodyForError reads at most maxErrorBodySize bytes of r for diagnostics.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// TMDBClient talks to the TMDB v3 API.
type TMDBClient struct {
	baseURL        string
	apiKey         string
	language       string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewTMDBClient creates a client from cfg. The config must already be valid.
func NewTMDBClient(cfg *Config) *TMDBClient {
	limit, burst := rate.Inf, 1
	if cfg.RequestsPerSecond > 0 {
		limit, burst = rate.Limit(cfg.RequestsPerSecond), cfg.Burst
	}

	return &TMDBClient{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		language:       cfg.Language,
		client:         &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(limit, burst),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
}

// GetMovie fetches details, credits and videos for one TMDB movie ID.
func (c *TMDBClient) GetMovie(ctx context.Context, id int64) (*TMDBMovie, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("append_to_response", "credits,videos")
	endpoint := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, id, params.Encode())

	resp, err := c.doRequestWithRetry(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	defer resp.Body.Close() //nolint:errcheck // body fully consumed by decoder

	var movie TMDBMovie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, fmt.Errorf("get movie %d: decode response: %w", id, err)
	}
	return &movie, nil
}

// doRequestWithRetry performs a GET and retries on 429 and 5xx with
// exponential backoff. A 200 response is returned with its body open.
func (c *TMDBClient) doRequestWithRetry(ctx context.Context, endpoint string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", sanitizeURLError(err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", sanitizeURLError(err))
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return resp, nil
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close() //nolint:errcheck,gosec // nothing to read
			return nil, ErrMovieNotFound
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			lastErr = &StatusError{StatusCode: resp.StatusCode, Body: string(readBodyForError(resp.Body))}
			retryAfter := resp.Header.Get("Retry-After")
			resp.Body.Close() //nolint:errcheck,gosec // retrying

			if attempt == c.maxRetries {
				break
			}
			delay := c.backoff(attempt, retryAfter)
			if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < delay {
				return nil, fmt.Errorf("retry delay %s exceeds deadline: %w", delay, lastErr)
			}
			if err := sleepContext(ctx, delay); err != nil {
				return nil, err
			}
		default:
			body := readBodyForError(resp.Body)
			resp.Body.Close() //nolint:errcheck,gosec // error path
			return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		}
	}

	return nil, fmt.Errorf("giving up after %d retries: %w", c.maxRetries, lastErr)
}

// backoff returns the delay before the next attempt. A numeric Retry-After
// header overrides the exponential schedule. The result never exceeds
// maxRetryDelay.
func (c *TMDBClient) backoff(attempt int, retryAfter string) time.Duration {
	if retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
			if secs >= int(maxRetryDelay/time.Second) {
				return maxRetryDelay
			}
			return time.Duration(secs) * time.Second
		}
	}
	return min(c.retryBaseDelay*time.Duration(1<<attempt), maxRetryDelay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sanitizeURLError drops the request URL from a *url.Error so the API key
// is not logged.
func sanitizeURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
