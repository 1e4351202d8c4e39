// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

// Package recommend implements top-N similarity lookup over precomputed
// catalogs.
//
// A Catalog pairs an ordered list of entries with a dense similarity matrix
// whose row and column indices are entry IDs. Both are produced offline and
// loaded once at startup; everything in this package is read-only after
// construction and safe for unbounded concurrent use.
package recommend

import "errors"

// ErrTitleNotFound is returned when a requested title is not in the catalog.
var ErrTitleNotFound = errors.New("title not found in catalog")

// Entry is a single catalog item. ID is the entry's row index in the
// similarity matrix. Title is unique within a catalog. The remaining fields
// are optional metadata carried through to API responses.
type Entry struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	TMDBID     int     `json:"tmdb_id,omitempty"`
	Author     string  `json:"author,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`
	AvgRating  float64 `json:"avg_rating,omitempty"`
	NumRatings int     `json:"num_ratings,omitempty"`
}

// Scored pairs a catalog entry with its similarity to the query entry.
type Scored struct {
	Entry Entry   `json:"entry"`
	Score float64 `json:"score"`
}
