// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package api

import (
	"net/http"
	"time"

	"github.com/nextpick/nextpick/internal/recommend"
)

// HealthLive handles GET /api/health/live. It succeeds whenever the process
// is up and serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  "alive",
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HealthReady handles GET /api/health/ready. Readiness requires both catalogs
// and the popular books table to be loaded; since artifacts are loaded before
// the server starts, an unready response indicates a wiring bug rather than a
// transient condition.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.movies != nil && h.books != nil && len(h.popular) > 0

	body := map[string]interface{}{
		"success":        ready,
		"status":         "ready",
		"ready_to_serve": ready,
		"uptime":         time.Since(h.startTime).Round(time.Second).String(),
		"catalogs": map[string]int{
			"movies":        catalogSize(h.movies),
			"books":         catalogSize(h.books),
			"popular_books": len(h.popular),
		},
	}

	status := http.StatusOK
	if !ready {
		body["status"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, body)
}

func catalogSize(r *recommend.Recommender) int {
	if r == nil {
		return 0
	}
	return r.Catalog().Size()
}
