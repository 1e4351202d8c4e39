// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package api

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/nextpick/nextpick/internal/config"
	"github.com/nextpick/nextpick/internal/logging"
	"github.com/nextpick/nextpick/internal/metrics"
)

// ChiMiddleware builds CORS and rate limiting middleware from configuration.
type ChiMiddleware struct {
	cors      config.CORSConfig
	rateLimit config.RateLimitConfig
}

// NewChiMiddleware creates middleware factories for the given configuration.
func NewChiMiddleware(cfg *config.Config) *ChiMiddleware {
	return &ChiMiddleware{
		cors:      cfg.CORS,
		rateLimit: cfg.RateLimit,
	}
}

// CORS returns a CORS middleware permitting the configured browser origins.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   m.cors.Origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: m.cors.AllowCredentials,
		MaxAge:           86400,
	})
}

// RateLimit returns a per-IP rate limiting middleware. When rate limiting is
// disabled it returns a pass-through.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.rateLimit.Disabled {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		m.rateLimit.Requests,
		m.rateLimit.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			logging.Ctx(r.Context()).Warn().
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Msg("Rate limit exceeded")
			respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests,
				"Rate limit exceeded, retry later")
		}),
	)
}

// SecurityHeaders sets conservative response headers on every request.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
