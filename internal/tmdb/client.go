// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

// Package tmdb looks up movie poster URLs from The Movie Database API.
//
// Poster enrichment is best-effort: lookups are cached, rate limited and
// guarded by a circuit breaker, and any failure degrades to an empty URL
// rather than failing the recommendation response.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/nextpick/nextpick/internal/cache"
	"github.com/nextpick/nextpick/internal/config"
	"github.com/nextpick/nextpick/internal/metrics"
)

// maxErrorBodySize limits how much of an error response body is read
// for diagnostics.
const maxErrorBodySize = 16 * 1024 // 16KB

// PosterProvider resolves a movie title to a poster image URL.
// An empty URL with a nil error means no poster is known for the title.
type PosterProvider interface {
	PosterURL(ctx context.Context, title string) (string, error)
}

// Client queries the TMDB search API for movie posters.
//
// Thread Safety: safe for concurrent use. The cache, limiter and breaker
// are all internally synchronized.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	client       *http.Client
	limiter      *rate.Limiter
	breaker      *requestBreaker
	cache        *cache.LRU[string]
}

// searchResponse mirrors the subset of the TMDB /search/movie payload
// that poster lookup needs.
type searchResponse struct {
	Results []struct {
		ID         int    `json:"id"`
		Title      string `json:"title"`
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

// NewClient creates a TMDB client from configuration.
func NewClient(cfg *config.TMDBConfig) *Client {
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		breaker: newRequestBreaker("tmdb-api"),
		cache:   cache.NewLRU[string](cfg.CacheSize, cfg.CacheTTL),
	}
}

// PosterURL resolves a movie title to a full poster image URL.
// Returns an empty string when TMDB has no poster for the title.
func (c *Client) PosterURL(ctx context.Context, title string) (string, error) {
	if cached, ok := c.cache.Get(title); ok {
		metrics.TMDBCacheHits.Inc()
		metrics.RecordTMDBLookup("hit", 0)
		return cached, nil
	}
	metrics.TMDBCacheMisses.Inc()

	start := time.Now()
	posterURL, err := c.lookup(ctx, title)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, errBreakerRejected) {
			metrics.RecordTMDBLookup("rejected", duration)
		} else {
			metrics.RecordTMDBLookup("error", duration)
		}
		return "", err
	}

	if posterURL == "" {
		metrics.RecordTMDBLookup("miss", duration)
	} else {
		metrics.RecordTMDBLookup("hit", duration)
	}

	// Negative results are cached too, so repeated lookups for titles
	// without posters do not hammer the API.
	c.cache.Add(title, posterURL)
	return posterURL, nil
}

// lookup performs the rate-limited, breaker-guarded search call.
func (c *Client) lookup(ctx context.Context, title string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("tmdb rate limiter: %w", err)
	}

	result, err := c.breaker.execute(func() (interface{}, error) {
		return c.search(ctx, title)
	})
	if err != nil {
		return "", err
	}

	resp, ok := result.(*searchResponse)
	if !ok {
		return "", fmt.Errorf("tmdb: unexpected result type %T", result)
	}

	for _, r := range resp.Results {
		if r.PosterPath != "" {
			return c.imageBaseURL + r.PosterPath, nil
		}
	}
	return "", nil
}

// search calls the TMDB /search/movie endpoint.
func (c *Client) search(ctx context.Context, title string) (*searchResponse, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", title)

	reqURL := fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("tmdb search failed with status %d: %s", resp.StatusCode, string(body))
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to decode tmdb response: %w", err)
	}

	return &search, nil
}

// CacheStats reports poster cache hit/miss counters and current size.
func (c *Client) CacheStats() (hits, misses int64, size int) {
	return c.cache.Stats()
}

// readBodyForError reads a bounded amount of the response body for
// error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}

// NoopProvider always reports no poster. Used when TMDB enrichment
// is disabled.
type NoopProvider struct{}

func (NoopProvider) PosterURL(context.Context, string) (string, error) {
	return "", nil
}

var _ PosterProvider = (*Client)(nil)
var _ PosterProvider = NoopProvider{}
