// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

// Package dataset builds the precomputed recommendation artifacts from raw
// CSV datasets. The movie pipeline vectorizes tag text with TF-IDF and
// computes a cosine similarity matrix; the book pipeline pivots user ratings
// into per-title rating vectors, filters thin users and titles, and computes
// cosine similarity over the vectors. Everything here runs offline in
// cmd/buildindex; the server only ever loads the finished artifacts.
package dataset
