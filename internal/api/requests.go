// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// validate is the shared validator instance for request structs.
var validate = validator.New()

// maxRequestBodySize caps recommendation request bodies. Real requests are a
// title and a count; anything bigger is garbage.
const maxRequestBodySize = 64 * 1024

// MovieRecommendRequest is the body of POST /api/recommend.
type MovieRecommendRequest struct {
	// Movie is the exact catalog title to recommend from.
	Movie string `json:"movie" validate:"required,min=1,max=512"`

	// Count is the number of recommendations to return. Nil means the
	// configured default; an explicit value outside the configured range is
	// rejected.
	Count *int `json:"count"`
}

// BookRecommendRequest is the body of POST /api/books/recommend.
type BookRecommendRequest struct {
	// Book is the exact catalog title to recommend from.
	Book string `json:"book" validate:"required,min=1,max=512"`

	Count *int `json:"count"`
}

// decodeRequest parses and validates a JSON request body into dst.
func decodeRequest(r *http.Request, dst interface{}) error {
	body := io.LimitReader(r.Body, maxRequestBodySize)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// resolveCount applies the default for an omitted count and bounds-checks an
// explicit one against [1, max].
func resolveCount(count *int, def, max int) (int, error) {
	if count == nil {
		return def, nil
	}
	if *count < 1 || *count > max {
		return 0, fmt.Errorf("count must be between 1 and %d, got %d", max, *count)
	}
	return *count, nil
}
