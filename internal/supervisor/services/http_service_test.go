// CineMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*HTTPServerService)(nil)

// fakeHTTPServer is a test double for HTTPServer.
type fakeHTTPServer struct {
	listenErr   error
	shutdownErr error
	block       bool

	listenCalls   atomic.Int32
	shutdownCalls atomic.Int32
	started       chan struct{}
	stop          chan struct{}
}

func newFakeHTTPServer(block bool) *fakeHTTPServer {
	return &fakeHTTPServer{
		block:   block,
		started: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	f.listenCalls.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}

	if f.listenErr != nil {
		return f.listenErr
	}
	if f.block {
		<-f.stop
		return http.ErrServerClosed
	}
	return nil
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	if f.shutdownCalls.Add(1) == 1 {
		close(f.stop)
	}
	return f.shutdownErr
}

func (f *fakeHTTPServer) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
}

func TestNewHTTPServerService_Timeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want time.Duration
	}{
		{30 * time.Second, 30 * time.Second},
		{0, defaultShutdownTimeout},
		{-5 * time.Second, defaultShutdownTimeout},
	}
	for _, tt := range tests {
		svc := NewHTTPServerService(newFakeHTTPServer(false), tt.in)
		if svc.shutdownTimeout != tt.want {
			t.Errorf("NewHTTPServerService(%v).shutdownTimeout = %v, want %v", tt.in, svc.shutdownTimeout, tt.want)
		}
	}
	if got := NewHTTPServerService(newFakeHTTPServer(false), 0).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("graceful shutdown on cancellation", func(t *testing.T) {
		t.Parallel()
		server := newFakeHTTPServer(true)
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		server.waitStarted(t)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after cancellation")
		}
		if server.listenCalls.Load() != 1 || server.shutdownCalls.Load() != 1 {
			t.Errorf("listen=%d shutdown=%d, want 1/1", server.listenCalls.Load(), server.shutdownCalls.Load())
		}
	})

	t.Run("listener failure is returned", func(t *testing.T) {
		t.Parallel()
		bindErr := errors.New("listen tcp :8501: bind: address already in use")
		server := newFakeHTTPServer(false)
		server.listenErr = bindErr

		err := NewHTTPServerService(server, time.Second).Serve(context.Background())
		if !errors.Is(err, bindErr) {
			t.Errorf("Serve() = %v, want wrapped bind error", err)
		}
	})

	t.Run("shutdown failure is returned", func(t *testing.T) {
		t.Parallel()
		shutdownErr := errors.New("context deadline exceeded while draining")
		server := newFakeHTTPServer(true)
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		server.waitStarted(t)
		cancel()

		if err := <-errCh; !errors.Is(err, shutdownErr) {
			t.Errorf("Serve() = %v, want shutdown error", err)
		}
	})

	t.Run("server closed externally", func(t *testing.T) {
		t.Parallel()
		server := newFakeHTTPServer(false)
		if err := NewHTTPServerService(server, time.Second).Serve(context.Background()); err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	})
}

func TestHTTPServerService_RealServer(t *testing.T) {
	t.Parallel()

	server := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
}

func TestHTTPServerService_WithSupervisor(t *testing.T) {
	t.Parallel()

	server := newFakeHTTPServer(true)
	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	server.waitStarted(t)
	cancel()
	<-errCh

	if server.shutdownCalls.Load() < 1 {
		t.Error("server Shutdown was not called")
	}
}
