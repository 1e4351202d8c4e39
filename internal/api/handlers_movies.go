// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/nextpick/nextpick/internal/logging"
	"github.com/nextpick/nextpick/internal/metrics"
	"github.com/nextpick/nextpick/internal/recommend"
)

// MovieListResponse is the body of GET /api/movies.
type MovieListResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Movies  []string `json:"movies"`
}

// MovieRecommendation is a single recommended movie. PosterURL is null when
// no poster is known or poster lookup is unavailable.
type MovieRecommendation struct {
	Title     string  `json:"title"`
	PosterURL *string `json:"poster_url"`
	TMDBID    int     `json:"tmdb_id"`
}

// MovieRecommendResponse is the body of POST /api/recommend.
type MovieRecommendResponse struct {
	Success         bool                  `json:"success"`
	Movie           string                `json:"movie"`
	Recommendations []MovieRecommendation `json:"recommendations"`
}

// ListMovies handles GET /api/movies with every title in the movie catalog.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	titles := h.movies.Catalog().Titles()
	respondJSON(w, http.StatusOK, &MovieListResponse{
		Success: true,
		Count:   len(titles),
		Movies:  titles,
	})
}

// RecommendMovies handles POST /api/recommend.
func (h *Handler) RecommendMovies(w http.ResponseWriter, r *http.Request) {
	var req MovieRecommendRequest
	if err := decodeRequest(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	count, err := resolveCount(req.Count, h.cfg.API.DefaultCount, h.cfg.API.MaxCount)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}

	start := time.Now()
	scored, err := h.movies.TopN(req.Movie, count)
	metrics.RecordRecommendLookup("movies", time.Since(start), err == nil)
	if err != nil {
		if errors.Is(err, recommend.ErrTitleNotFound) {
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound,
				"Movie not found in catalog: "+req.Movie)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("movie", req.Movie).
			Msg("Movie recommendation lookup failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"Failed to compute recommendations")
		return
	}

	recs := make([]MovieRecommendation, len(scored))
	for i, s := range scored {
		recs[i] = MovieRecommendation{
			Title:     s.Entry.Title,
			PosterURL: h.posterFor(r, s.Entry.Title),
			TMDBID:    s.Entry.TMDBID,
		}
	}

	respondJSON(w, http.StatusOK, &MovieRecommendResponse{
		Success:         true,
		Movie:           req.Movie,
		Recommendations: recs,
	})
}

// posterFor resolves a poster URL, degrading to nil on any failure. Poster
// enrichment is best-effort and never fails a recommendation response.
func (h *Handler) posterFor(r *http.Request, title string) *string {
	url, err := h.posters.PosterURL(r.Context(), title)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Str("title", title).
			Msg("Poster lookup failed")
		return nil
	}
	if url == "" {
		return nil
	}
	return &url
}
