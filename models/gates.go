// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Setting is a feature gate: a boolean plus the message shown while the gate
// is closed. Two keys exist: voting_active and show_results.
type Setting struct {
	Key       string    `json:"key"`
	Status    bool      `json:"status"`
	Message   string    `json:"message"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Votable reports whether votes may currently be cast in the category.
// The global gate and the per-category flag must both be open. Every call
// site goes through this predicate; the booleans are never re-derived inline.
func (s Setting) Votable(c Category) bool {
	return s.Status && c.IsActive
}

// ResultsVisible reports whether non-admin callers may see tallies.
// Receiver must be the show_results setting.
func (s Setting) ResultsVisible() bool {
	return s.Status
}
