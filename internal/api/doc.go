// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

// Package api implements the HTTP surface of the recommendation service:
// catalog listings, top-N recommendation lookups for movies and books, the
// popular books table, and health endpoints. Routing is built on chi with
// CORS, per-IP rate limiting, Prometheus instrumentation, and gzip
// compression applied per route group.
//
// Responses follow a fixed envelope: successes carry `"success": true` with
// endpoint-specific fields, failures carry `{"success": false, "error":
// {"code", "message", "request_id"}}`.
package api
