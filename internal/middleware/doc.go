// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

/*
Package middleware provides HTTP middleware for the recommendation API.

Components:

  - RequestID: UUID-based request tracking, propagated into the logging
    context so every log line for a request carries its request_id.
  - PrometheusMetrics: request count, latency and active-request
    instrumentation, plus slow-request warnings.
  - Compression: gzip compression for clients that accept it.

All middleware uses the standard func(http.Handler) http.Handler shape
and composes with chi's Use chain.
*/
package middleware
