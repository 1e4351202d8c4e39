// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package recommend

import (
	"fmt"
	"sort"
)

// Recommender answers top-N similarity queries against a single catalog.
type Recommender struct {
	catalog *Catalog
}

// NewRecommender wraps a validated catalog.
func NewRecommender(catalog *Catalog) *Recommender {
	return &Recommender{catalog: catalog}
}

// Catalog returns the underlying catalog.
func (r *Recommender) Catalog() *Catalog {
	return r.catalog
}

// TopN returns the n entries most similar to the given title, highest score
// first. The query entry itself is never included. Ties keep ascending
// catalog-index order. n <= 0 yields an empty slice; n larger than the rest
// of the catalog yields everything else. An unknown title returns
// ErrTitleNotFound.
func (r *Recommender) TopN(title string, n int) ([]Scored, error) {
	self, ok := r.catalog.Lookup(title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTitleNotFound, title)
	}

	if n <= 0 {
		return []Scored{}, nil
	}

	row := r.catalog.matrix.Row(self)

	candidates := make([]int, 0, r.catalog.Size()-1)
	for i := range r.catalog.entries {
		if i != self {
			candidates = append(candidates, i)
		}
	}

	// Stable sort keeps ascending index order for equal scores.
	sort.SliceStable(candidates, func(a, b int) bool {
		return row[candidates[a]] > row[candidates[b]]
	})

	if n > len(candidates) {
		n = len(candidates)
	}

	results := make([]Scored, n)
	for i := 0; i < n; i++ {
		idx := candidates[i]
		results[i] = Scored{Entry: r.catalog.entries[idx], Score: row[idx]}
	}
	return results, nil
}
