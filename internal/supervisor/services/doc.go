// NextPick - Movie and Book Recommendation API
// Copyright 2026 NextPick Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nextpick/nextpick

// Package services adapts application components to the suture v4 supervision
// model. Each wrapper implements suture.Service, translating the component's
// native lifecycle into suture's context-aware Serve pattern and propagating
// errors so the supervisor can make restart decisions.
package services
