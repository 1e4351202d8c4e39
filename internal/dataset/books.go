// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nextpick/nextpick/internal/artifact"
)

// Rating is one row of the ratings dataset.
type Rating struct {
	UserID int
	Title  string
	Score  float64
}

// BookRecord is one row of the books dataset.
type BookRecord struct {
	Title    string
	Author   string
	ImageURL string
}

// BookPipelineConfig tunes the collaborative filtering pipeline. The
// thresholds exist because thin users and rarely rated titles produce rating
// vectors too sparse to yield meaningful cosine similarity.
type BookPipelineConfig struct {
	// MinUserRatings keeps only users who rated at least this many books.
	MinUserRatings int

	// MinBookRatings keeps only books rated by at least this many of the
	// surviving users.
	MinBookRatings int

	// PopularMinRatings is the rating-count floor for the popular table.
	PopularMinRatings int

	// PopularLimit caps the popular table size.
	PopularLimit int
}

// DefaultBookPipelineConfig returns the thresholds the production artifacts
// are built with.
func DefaultBookPipelineConfig() BookPipelineConfig {
	return BookPipelineConfig{
		MinUserRatings:    200,
		MinBookRatings:    50,
		PopularMinRatings: 250,
		PopularLimit:      100,
	}
}

// ReadRatings parses the ratings CSV with header user_id,title,rating.
func ReadRatings(r io.Reader) ([]Rating, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read ratings header: %w", err)
	}
	cols, err := columnIndex(header, "user_id", "title", "rating")
	if err != nil {
		return nil, fmt.Errorf("ratings csv: %w", err)
	}

	var ratings []Rating
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ratings row %d: %w", line, err)
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("ratings row %d has %d columns, want %d", line, len(row), len(header))
		}

		userID, err := strconv.Atoi(strings.TrimSpace(row[cols["user_id"]]))
		if err != nil {
			return nil, fmt.Errorf("ratings row %d has invalid user_id: %w", line, err)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(row[cols["rating"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("ratings row %d has invalid rating: %w", line, err)
		}
		title := strings.TrimSpace(row[cols["title"]])
		if title == "" {
			return nil, fmt.Errorf("ratings row %d has an empty title", line)
		}

		ratings = append(ratings, Rating{UserID: userID, Title: title, Score: score})
	}

	if len(ratings) == 0 {
		return nil, fmt.Errorf("ratings csv contains no data rows")
	}
	return ratings, nil
}

// ReadBooks parses the books CSV with header title,author,image_url.
// Duplicate titles keep the first row seen.
func ReadBooks(r io.Reader) (map[string]BookRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read books header: %w", err)
	}
	cols, err := columnIndex(header, "title", "author", "image_url")
	if err != nil {
		return nil, fmt.Errorf("books csv: %w", err)
	}

	books := make(map[string]BookRecord)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read books row %d: %w", line, err)
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("books row %d has %d columns, want %d", line, len(row), len(header))
		}

		title := strings.TrimSpace(row[cols["title"]])
		if title == "" {
			return nil, fmt.Errorf("books row %d has an empty title", line)
		}
		if _, ok := books[title]; ok {
			continue
		}
		books[title] = BookRecord{
			Title:    title,
			Author:   strings.TrimSpace(row[cols["author"]]),
			ImageURL: strings.TrimSpace(row[cols["image_url"]]),
		}
	}

	if len(books) == 0 {
		return nil, fmt.Errorf("books csv contains no data rows")
	}
	return books, nil
}

// bookStats aggregates ratings per title.
type bookStats struct {
	count int
	sum   float64
}

// BuildBookIndex pivots ratings into per-title rating vectors over the
// active-user population and computes cosine similarity between titles.
// Titles survive only if they pass both filter thresholds and appear in the
// books metadata.
func BuildBookIndex(ratings []Rating, books map[string]BookRecord, cfg BookPipelineConfig) (*artifact.BookIndex, error) {
	perUser := make(map[int]int)
	for _, r := range ratings {
		perUser[r.UserID]++
	}
	activeUsers := make(map[int]int) // user id -> column
	for userID, n := range perUser {
		if n >= cfg.MinUserRatings {
			activeUsers[userID] = -1
		}
	}
	if len(activeUsers) == 0 {
		return nil, fmt.Errorf("no users with at least %d ratings", cfg.MinUserRatings)
	}

	// Deterministic column order.
	userIDs := make([]int, 0, len(activeUsers))
	for id := range activeUsers {
		userIDs = append(userIDs, id)
	}
	sort.Ints(userIDs)
	for col, id := range userIDs {
		activeUsers[id] = col
	}

	// Count ratings per title among active users only.
	perTitle := make(map[string]*bookStats)
	for _, r := range ratings {
		if _, ok := activeUsers[r.UserID]; !ok {
			continue
		}
		st := perTitle[r.Title]
		if st == nil {
			st = &bookStats{}
			perTitle[r.Title] = st
		}
		st.count++
		st.sum += r.Score
	}

	var titles []string
	for title, st := range perTitle {
		if st.count < cfg.MinBookRatings {
			continue
		}
		if _, ok := books[title]; !ok {
			continue
		}
		titles = append(titles, title)
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("no books with at least %d active-user ratings", cfg.MinBookRatings)
	}
	sort.Strings(titles)

	titleIndex := make(map[string]int, len(titles))
	for i, t := range titles {
		titleIndex[t] = i
	}

	vectors := make([][]float64, len(titles))
	for i := range vectors {
		vectors[i] = make([]float64, len(userIDs))
	}
	for _, r := range ratings {
		col, userOK := activeUsers[r.UserID]
		row, titleOK := titleIndex[r.Title]
		if userOK && titleOK {
			vectors[row][col] = r.Score
		}
	}

	meta := make([]artifact.BookMeta, len(titles))
	for i, title := range titles {
		rec := books[title]
		st := perTitle[title]
		meta[i] = artifact.BookMeta{
			Author:     rec.Author,
			ImageURL:   rec.ImageURL,
			AvgRating:  st.sum / float64(st.count),
			NumRatings: st.count,
		}
	}

	return &artifact.BookIndex{
		Titles:     titles,
		Meta:       meta,
		Similarity: cosineMatrix(vectors),
	}, nil
}

// BuildPopularBooks ranks books by average rating among those with enough
// ratings overall, capped at cfg.PopularLimit entries.
func BuildPopularBooks(ratings []Rating, books map[string]BookRecord, cfg BookPipelineConfig) (*artifact.PopularBooks, error) {
	perTitle := make(map[string]*bookStats)
	for _, r := range ratings {
		st := perTitle[r.Title]
		if st == nil {
			st = &bookStats{}
			perTitle[r.Title] = st
		}
		st.count++
		st.sum += r.Score
	}

	var popular []artifact.PopularBook
	for title, st := range perTitle {
		if st.count < cfg.PopularMinRatings {
			continue
		}
		rec, ok := books[title]
		if !ok {
			continue
		}
		popular = append(popular, artifact.PopularBook{
			Title:      title,
			Author:     rec.Author,
			ImageURL:   rec.ImageURL,
			AvgRating:  st.sum / float64(st.count),
			NumRatings: st.count,
		})
	}
	if len(popular) == 0 {
		return nil, fmt.Errorf("no books with at least %d ratings", cfg.PopularMinRatings)
	}

	// Order by average rating, breaking ties by rating count then title so
	// the table is deterministic.
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].AvgRating != popular[j].AvgRating {
			return popular[i].AvgRating > popular[j].AvgRating
		}
		if popular[i].NumRatings != popular[j].NumRatings {
			return popular[i].NumRatings > popular[j].NumRatings
		}
		return popular[i].Title < popular[j].Title
	})

	if cfg.PopularLimit > 0 && len(popular) > cfg.PopularLimit {
		popular = popular[:cfg.PopularLimit]
	}
	return &artifact.PopularBooks{Books: popular}, nil
}
