// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package recommend

import "fmt"

// Catalog pairs an ordered entry list with its similarity matrix and an
// exact-match title index. Construct once with NewCatalog; read-only after.
type Catalog struct {
	entries []Entry
	byTitle map[string]int
	matrix  *Matrix
}

// NewCatalog validates entries against the matrix and builds the title index.
// Entry IDs must equal their position, titles must be unique and non-empty,
// and the matrix dimension must equal the entry count. Any violation is a
// construction error; callers treat it as fatal.
func NewCatalog(entries []Entry, matrix *Matrix) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one entry")
	}
	if matrix == nil {
		return nil, fmt.Errorf("catalog requires a similarity matrix")
	}
	if matrix.N != len(entries) {
		return nil, fmt.Errorf("matrix dimension %d does not match %d catalog entries",
			matrix.N, len(entries))
	}

	byTitle := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.ID != i {
			return nil, fmt.Errorf("entry %q has id %d, expected %d", e.Title, e.ID, i)
		}
		if e.Title == "" {
			return nil, fmt.Errorf("entry %d has an empty title", i)
		}
		if prev, dup := byTitle[e.Title]; dup {
			return nil, fmt.Errorf("duplicate title %q at entries %d and %d", e.Title, prev, i)
		}
		byTitle[e.Title] = i
	}

	return &Catalog{entries: entries, byTitle: byTitle, matrix: matrix}, nil
}

// Size returns the number of entries in the catalog.
func (c *Catalog) Size() int {
	return len(c.entries)
}

// Titles returns all titles in catalog order.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.entries))
	for i, e := range c.entries {
		titles[i] = e.Title
	}
	return titles
}

// Entry returns the entry at index i.
func (c *Catalog) Entry(i int) Entry {
	return c.entries[i]
}

// Lookup resolves a title to its entry index. Titles match exactly,
// including case.
func (c *Catalog) Lookup(title string) (int, bool) {
	i, ok := c.byTitle[title]
	return i, ok
}
