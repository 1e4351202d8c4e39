// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

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

type stubServer struct {
	serveErr      error
	shutdownErr   error
	block         bool
	serveCalls    atomic.Int32
	shutdownCalls atomic.Int32
	stopCh        chan struct{}
}

func newStubServer() *stubServer {
	return &stubServer{stopCh: make(chan struct{})}
}

func (s *stubServer) ListenAndServe() error {
	s.serveCalls.Add(1)
	if s.serveErr != nil {
		return s.serveErr
	}
	if s.block {
		<-s.stopCh
		return http.ErrServerClosed
	}
	return nil
}

func (s *stubServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls.Add(1)
	close(s.stopCh)
	return s.shutdownErr
}

func TestHTTPServerService_ImplementsSutureService(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)
}

func TestNewHTTPServerService_DefaultTimeout(t *testing.T) {
	t.Parallel()

	for _, timeout := range []time.Duration{0, -5 * time.Second} {
		svc := NewHTTPServerService(newStubServer(), timeout)
		if svc.shutdownTimeout != 10*time.Second {
			t.Errorf("timeout %v: shutdownTimeout = %v, want 10s", timeout, svc.shutdownTimeout)
		}
	}
}

func TestHTTPServerService_GracefulShutdown(t *testing.T) {
	t.Parallel()

	server := newStubServer()
	server.block = true
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	// Let ListenAndServe start before canceling.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if server.shutdownCalls.Load() != 1 {
		t.Errorf("shutdown calls = %d, want 1", server.shutdownCalls.Load())
	}
}

func TestHTTPServerService_ServerError(t *testing.T) {
	t.Parallel()

	server := newStubServer()
	server.serveErr = errors.New("bind: address already in use")
	svc := NewHTTPServerService(server, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, server.serveErr) {
		t.Errorf("Serve = %v, want wrapped bind error", err)
	}
}

func TestHTTPServerService_ShutdownError(t *testing.T) {
	t.Parallel()

	server := newStubServer()
	server.block = true
	server.shutdownErr = errors.New("shutdown stalled")
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil || !errors.Is(err, server.shutdownErr) {
			t.Errorf("Serve = %v, want wrapped shutdown error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestHTTPServerService_String(t *testing.T) {
	t.Parallel()

	svc := NewHTTPServerService(newStubServer(), time.Second)
	if got := svc.String(); got != "http-server" {
		t.Errorf("String() = %q, want http-server", got)
	}
}
