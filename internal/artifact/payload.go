// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package artifact

import (
	"encoding/gob"
	"fmt"

	"github.com/nextpick/nextpick/internal/recommend"
)

// Artifact names used by the builder and the server.
const (
	MovieIndexName   = "movie_index"
	BookIndexName    = "book_index"
	PopularBooksName = "popular_books"
)

// MovieIndex is the persisted movie catalog: titles with their TMDB IDs and
// a row-major cosine similarity matrix over TF-IDF tag vectors.
type MovieIndex struct {
	Titles     []string
	TMDBIDs    []int
	Similarity []float64
}

// Catalog converts the index into a validated recommendation catalog.
// Fails if the TMDB ID list or similarity matrix does not match the title
// count.
func (mi *MovieIndex) Catalog() (*recommend.Catalog, error) {
	if len(mi.TMDBIDs) != len(mi.Titles) {
		return nil, fmt.Errorf("movie index has %d tmdb ids for %d titles",
			len(mi.TMDBIDs), len(mi.Titles))
	}

	entries := make([]recommend.Entry, len(mi.Titles))
	for i, title := range mi.Titles {
		entries[i] = recommend.Entry{
			ID:     i,
			Title:  title,
			TMDBID: mi.TMDBIDs[i],
		}
	}

	matrix, err := recommend.NewMatrix(len(mi.Titles), mi.Similarity)
	if err != nil {
		return nil, fmt.Errorf("movie index similarity matrix: %w", err)
	}

	return recommend.NewCatalog(entries, matrix)
}

// BookMeta carries per-book metadata alongside the title.
type BookMeta struct {
	Author     string
	ImageURL   string
	AvgRating  float64
	NumRatings int
}

// BookIndex is the persisted book catalog: titles with metadata and a
// row-major cosine similarity matrix over user rating vectors.
type BookIndex struct {
	Titles     []string
	Meta       []BookMeta
	Similarity []float64
}

// Catalog converts the index into a validated recommendation catalog.
func (bi *BookIndex) Catalog() (*recommend.Catalog, error) {
	if len(bi.Meta) != len(bi.Titles) {
		return nil, fmt.Errorf("book index has %d metadata rows for %d titles",
			len(bi.Meta), len(bi.Titles))
	}

	entries := make([]recommend.Entry, len(bi.Titles))
	for i, title := range bi.Titles {
		m := bi.Meta[i]
		entries[i] = recommend.Entry{
			ID:         i,
			Title:      title,
			Author:     m.Author,
			ImageURL:   m.ImageURL,
			AvgRating:  m.AvgRating,
			NumRatings: m.NumRatings,
		}
	}

	matrix, err := recommend.NewMatrix(len(bi.Titles), bi.Similarity)
	if err != nil {
		return nil, fmt.Errorf("book index similarity matrix: %w", err)
	}

	return recommend.NewCatalog(entries, matrix)
}

// PopularBook is one row of the precomputed popular books table.
type PopularBook struct {
	Title      string
	Author     string
	ImageURL   string
	AvgRating  float64
	NumRatings int
}

// PopularBooks is the persisted top-rated books table, ordered by average
// rating descending.
type PopularBooks struct {
	Books []PopularBook
}

// Validate rejects an empty or malformed popular books table.
func (pb *PopularBooks) Validate() error {
	if len(pb.Books) == 0 {
		return fmt.Errorf("popular books table is empty")
	}
	for i, b := range pb.Books {
		if b.Title == "" {
			return fmt.Errorf("popular book %d has an empty title", i)
		}
	}
	return nil
}

// Register payload types for gob serialization.
//
//nolint:gochecknoinits // gob.Register must run before encode/decode
func init() {
	gob.Register(MovieIndex{})
	gob.Register(BookIndex{})
	gob.Register(PopularBooks{})
	gob.Register(Metadata{})
	gob.Register(storedFile{})
}
