// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package api

import (
	"net/http"
	"time"

	"github.com/nextpick/nextpick/internal/artifact"
	"github.com/nextpick/nextpick/internal/config"
	"github.com/nextpick/nextpick/internal/recommend"
	"github.com/nextpick/nextpick/internal/tmdb"
)

// Handler serves the recommendation API. All catalog data is loaded at
// startup and immutable afterwards, so handlers need no locking.
type Handler struct {
	cfg     *config.Config
	version string

	movies  *recommend.Recommender
	books   *recommend.Recommender
	popular []artifact.PopularBook
	posters tmdb.PosterProvider

	startTime time.Time
}

// NewHandler creates the API handler. posters may be tmdb.NoopProvider when
// poster lookup is disabled.
func NewHandler(cfg *config.Config, version string, movies, books *recommend.Recommender, popular []artifact.PopularBook, posters tmdb.PosterProvider) *Handler {
	return &Handler{
		cfg:       cfg,
		version:   version,
		movies:    movies,
		books:     books,
		popular:   popular,
		posters:   posters,
		startTime: time.Now(),
	}
}

// Root handles GET / with service information.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"service": "nextpick",
		"version": h.version,
		"endpoints": []string{
			"GET /api/movies",
			"POST /api/recommend",
			"GET /api/books",
			"GET /api/books/popular",
			"POST /api/books/recommend",
			"GET /api/health/live",
			"GET /api/health/ready",
			"GET /metrics",
		},
	})
}

// MethodNotAllowed handles requests with a known path but wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
		"Method not allowed for this endpoint")
}

// NotFound handles requests for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Endpoint not found")
}
