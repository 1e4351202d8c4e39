// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nextpick/nextpick/internal/config"
	"github.com/nextpick/nextpick/internal/middleware"
)

// NewRouter assembles the full HTTP routing tree.
//
// Middleware ordering matters: request IDs are assigned before anything that
// logs, CORS runs before rate limiting so preflight requests are never
// counted, and metrics wrap only the API routes so /metrics scrapes do not
// instrument themselves.
func NewRouter(cfg *config.Config, h *Handler) http.Handler {
	mw := NewChiMiddleware(cfg)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(SecurityHeaders)
	r.Use(mw.CORS())

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Root)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Health endpoints skip rate limiting so orchestrator probes are
		// never throttled.
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())
			r.Use(middleware.PrometheusMetrics)
			r.Use(middleware.Compression)

			r.Get("/movies", h.ListMovies)
			r.Post("/recommend", h.RecommendMovies)

			r.Get("/books", h.ListBooks)
			r.Get("/books/popular", h.PopularBooks)
			r.Post("/books/recommend", h.RecommendBooks)
		})
	})

	return r
}
