// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nextpick/nextpick/internal/artifact"
)

// MovieRecord is one row of the movies dataset.
type MovieRecord struct {
	Title  string
	TMDBID int
	Tags   string
}

// ReadMovies parses the movies CSV. The expected header is
// title,tmdb_id,tags; column order is taken from the header, extra columns
// are ignored. Rows with an empty title or duplicate titles are rejected.
func ReadMovies(r io.Reader) ([]MovieRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read movies header: %w", err)
	}
	cols, err := columnIndex(header, "title", "tmdb_id", "tags")
	if err != nil {
		return nil, fmt.Errorf("movies csv: %w", err)
	}

	var records []MovieRecord
	seen := make(map[string]bool)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read movies row %d: %w", line, err)
		}
		if len(row) < len(header) {
			return nil, fmt.Errorf("movies row %d has %d columns, want %d", line, len(row), len(header))
		}

		title := strings.TrimSpace(row[cols["title"]])
		if title == "" {
			return nil, fmt.Errorf("movies row %d has an empty title", line)
		}
		if seen[title] {
			return nil, fmt.Errorf("movies row %d repeats title %q", line, title)
		}
		seen[title] = true

		tmdbID, err := strconv.Atoi(strings.TrimSpace(row[cols["tmdb_id"]]))
		if err != nil {
			return nil, fmt.Errorf("movies row %d has invalid tmdb_id: %w", line, err)
		}

		records = append(records, MovieRecord{
			Title:  title,
			TMDBID: tmdbID,
			Tags:   row[cols["tags"]],
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("movies csv contains no data rows")
	}
	return records, nil
}

// BuildMovieIndex vectorizes movie tags with TF-IDF and computes the cosine
// similarity matrix.
func BuildMovieIndex(records []MovieRecord) (*artifact.MovieIndex, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no movie records")
	}

	docs := make([]string, len(records))
	titles := make([]string, len(records))
	tmdbIDs := make([]int, len(records))
	for i, rec := range records {
		docs[i] = rec.Tags
		titles[i] = rec.Title
		tmdbIDs[i] = rec.TMDBID
	}

	return &artifact.MovieIndex{
		Titles:     titles,
		TMDBIDs:    tmdbIDs,
		Similarity: cosineMatrix(tfidfVectors(docs)),
	}, nil
}

// columnIndex maps required column names to their positions in the header.
// Header matching is case-insensitive.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}
