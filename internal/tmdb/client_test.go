// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nextpick/nextpick/internal/config"
)

func testConfig(serverURL string) *config.TMDBConfig {
	return &config.TMDBConfig{
		Enabled:       true,
		APIKey:        "test-key",
		BaseURL:       serverURL,
		ImageBaseURL:  "https://image.tmdb.org/t/p/w500",
		Timeout:       2 * time.Second,
		CacheSize:     64,
		CacheTTL:      time.Hour,
		RatePerSecond: 100,
		Burst:         100,
	}
}

func TestPosterURL_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("Expected api_key test-key, got %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "Avatar" {
			t.Errorf("Expected query Avatar, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":19995,"title":"Avatar","poster_path":"/kyeqWdyUXW608qlYkRqosgbbJyK.jpg"}]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	got, err := client.PosterURL(context.Background(), "Avatar")
	if err != nil {
		t.Fatalf("PosterURL returned error: %v", err)
	}

	want := "https://image.tmdb.org/t/p/w500/kyeqWdyUXW608qlYkRqosgbbJyK.jpg"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestPosterURL_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	got, err := client.PosterURL(context.Background(), "Nonexistent Movie")
	if err != nil {
		t.Fatalf("PosterURL returned error: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty poster URL, got %s", got)
	}
}

func TestPosterURL_SkipsEmptyPosterPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":1,"title":"A","poster_path":""},{"id":2,"title":"B","poster_path":"/b.jpg"}]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	got, err := client.PosterURL(context.Background(), "A")
	if err != nil {
		t.Fatalf("PosterURL returned error: %v", err)
	}
	if want := "https://image.tmdb.org/t/p/w500/b.jpg"; got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestPosterURL_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	if _, err := client.PosterURL(context.Background(), "Avatar"); err == nil {
		t.Fatal("Expected error for 500 response")
	}
}

func TestPosterURL_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	if _, err := client.PosterURL(context.Background(), "Avatar"); err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
}

func TestPosterURL_CachesResults(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":1,"title":"Inception","poster_path":"/inc.jpg"}]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	for i := 0; i < 5; i++ {
		got, err := client.PosterURL(context.Background(), "Inception")
		if err != nil {
			t.Fatalf("PosterURL returned error: %v", err)
		}
		if want := "https://image.tmdb.org/t/p/w500/inc.jpg"; got != want {
			t.Errorf("Expected %s, got %s", want, got)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("Expected 1 upstream call, got %d", got)
	}
}

func TestPosterURL_CachesNegativeResults(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	for i := 0; i < 3; i++ {
		got, err := client.PosterURL(context.Background(), "Ghost Title")
		if err != nil {
			t.Fatalf("PosterURL returned error: %v", err)
		}
		if got != "" {
			t.Errorf("Expected empty poster URL, got %s", got)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("Expected 1 upstream call, got %d", got)
	}
}

func TestPosterURL_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.PosterURL(ctx, "Avatar"); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	// Distinct titles bypass the cache; the breaker trips at >=60%
	// failure over at least 10 requests.
	var sawRejection bool
	for i := 0; i < 20; i++ {
		_, err := client.PosterURL(context.Background(), "Title "+string(rune('A'+i)))
		if err == nil {
			t.Fatal("Expected error while upstream is failing")
		}
		if errors.Is(err, errBreakerRejected) {
			sawRejection = true
		}
	}

	if !sawRejection {
		t.Error("Expected circuit breaker to reject requests after repeated failures")
	}
}

func TestNoopProvider(t *testing.T) {
	got, err := NoopProvider{}.PosterURL(context.Background(), "Anything")
	if err != nil {
		t.Fatalf("NoopProvider returned error: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty poster URL, got %s", got)
	}
}
