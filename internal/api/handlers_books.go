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

// BookListResponse is the body of GET /api/books.
type BookListResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Books   []string `json:"books"`
}

// BookItem is a single book with its rating aggregates.
type BookItem struct {
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	ImageURL   string  `json:"image_url"`
	AvgRating  float64 `json:"avg_rating"`
	NumRatings int     `json:"num_ratings"`
}

// PopularBooksResponse is the body of GET /api/books/popular.
type PopularBooksResponse struct {
	Success bool       `json:"success"`
	Count   int        `json:"count"`
	Books   []BookItem `json:"books"`
}

// BookRecommendResponse is the body of POST /api/books/recommend.
type BookRecommendResponse struct {
	Success         bool       `json:"success"`
	Book            string     `json:"book"`
	Recommendations []BookItem `json:"recommendations"`
}

// ListBooks handles GET /api/books with every title in the book catalog.
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	titles := h.books.Catalog().Titles()
	respondJSON(w, http.StatusOK, &BookListResponse{
		Success: true,
		Count:   len(titles),
		Books:   titles,
	})
}

// PopularBooks handles GET /api/books/popular with the precomputed
// top-rated books table, ordered by average rating descending.
func (h *Handler) PopularBooks(w http.ResponseWriter, r *http.Request) {
	books := make([]BookItem, len(h.popular))
	for i, b := range h.popular {
		books[i] = BookItem{
			Title:      b.Title,
			Author:     b.Author,
			ImageURL:   b.ImageURL,
			AvgRating:  b.AvgRating,
			NumRatings: b.NumRatings,
		}
	}
	respondJSON(w, http.StatusOK, &PopularBooksResponse{
		Success: true,
		Count:   len(books),
		Books:   books,
	})
}

// RecommendBooks handles POST /api/books/recommend.
func (h *Handler) RecommendBooks(w http.ResponseWriter, r *http.Request) {
	var req BookRecommendRequest
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
	scored, err := h.books.TopN(req.Book, count)
	metrics.RecordRecommendLookup("books", time.Since(start), err == nil)
	if err != nil {
		if errors.Is(err, recommend.ErrTitleNotFound) {
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound,
				"Book not found in catalog: "+req.Book)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("book", req.Book).
			Msg("Book recommendation lookup failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
			"Failed to compute recommendations")
		return
	}

	recs := make([]BookItem, len(scored))
	for i, s := range scored {
		recs[i] = BookItem{
			Title:      s.Entry.Title,
			Author:     s.Entry.Author,
			ImageURL:   s.Entry.ImageURL,
			AvgRating:  s.Entry.AvgRating,
			NumRatings: s.Entry.NumRatings,
		}
	}

	respondJSON(w, http.StatusOK, &BookRecommendResponse{
		Success:         true,
		Book:            req.Book,
		Recommendations: recs,
	})
}
