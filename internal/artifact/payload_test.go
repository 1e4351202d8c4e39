// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package artifact

import (
	"strings"
	"testing"
)

func TestMovieIndexCatalog(t *testing.T) {
	t.Parallel()

	idx := MovieIndex{
		Titles:  []string{"A", "B", "C"},
		TMDBIDs: []int{10, 20, 30},
		Similarity: []float64{
			1.0, 0.9, 0.2,
			0.9, 1.0, 0.4,
			0.2, 0.4, 1.0,
		},
	}

	catalog, err := idx.Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}

	if catalog.Size() != 3 {
		t.Errorf("Size = %d, want 3", catalog.Size())
	}
	if e := catalog.Entry(1); e.Title != "B" || e.TMDBID != 20 {
		t.Errorf("Entry(1) = %+v, want title B tmdb 20", e)
	}
}

func TestMovieIndexCatalog_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		idx     MovieIndex
		wantErr string
	}{
		{
			name: "tmdb id count mismatch",
			idx: MovieIndex{
				Titles:     []string{"A", "B"},
				TMDBIDs:    []int{1},
				Similarity: []float64{1, 0, 0, 1},
			},
			wantErr: "tmdb ids",
		},
		{
			name: "matrix dimension mismatch",
			idx: MovieIndex{
				Titles:     []string{"A", "B"},
				TMDBIDs:    []int{1, 2},
				Similarity: []float64{1, 0, 0},
			},
			wantErr: "similarity matrix",
		},
		{
			name: "duplicate titles",
			idx: MovieIndex{
				Titles:     []string{"A", "A"},
				TMDBIDs:    []int{1, 2},
				Similarity: []float64{1, 0, 0, 1},
			},
			wantErr: "duplicate title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.idx.Catalog()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestBookIndexCatalog(t *testing.T) {
	t.Parallel()

	idx := BookIndex{
		Titles: []string{"Dune", "Emma"},
		Meta: []BookMeta{
			{Author: "Frank Herbert", ImageURL: "http://img/dune", AvgRating: 4.2, NumRatings: 900},
			{Author: "Jane Austen", ImageURL: "http://img/emma", AvgRating: 4.0, NumRatings: 700},
		},
		Similarity: []float64{1.0, 0.3, 0.3, 1.0},
	}

	catalog, err := idx.Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}

	e := catalog.Entry(0)
	if e.Author != "Frank Herbert" || e.AvgRating != 4.2 || e.NumRatings != 900 {
		t.Errorf("Entry(0) metadata not carried through: %+v", e)
	}
}

func TestBookIndexCatalog_MetaMismatch(t *testing.T) {
	t.Parallel()

	idx := BookIndex{
		Titles:     []string{"Dune", "Emma"},
		Meta:       []BookMeta{{Author: "Frank Herbert"}},
		Similarity: []float64{1, 0, 0, 1},
	}

	if _, err := idx.Catalog(); err == nil || !strings.Contains(err.Error(), "metadata rows") {
		t.Errorf("expected metadata rows error, got: %v", err)
	}
}

func TestPopularBooksValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pb      PopularBooks
		wantErr string
	}{
		{
			name:    "valid",
			pb:      PopularBooks{Books: []PopularBook{{Title: "Dune", Author: "Frank Herbert"}}},
			wantErr: "",
		},
		{
			name:    "empty table",
			pb:      PopularBooks{},
			wantErr: "empty",
		},
		{
			name:    "missing title",
			pb:      PopularBooks{Books: []PopularBook{{Author: "Nobody"}}},
			wantErr: "empty title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.pb.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid, got: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
