// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/middleware"
	"github.com/campusvote/campusvote/models"
)

// boundedCtx derives a context for store calls capped at cfg.DBTimeout.
// Authentication and vote submission gate on the store, so no call may
// hang past the configured bound.
func boundedCtx(r *http.Request, cfg cliparse.Config) (context.Context, context.CancelFunc) {
	timeout := cfg.DBTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}

// storeError maps a store failure to the right rejection: timeouts become
// 503 UPSTREAM_UNAVAILABLE (the one class where a client retry is
// appropriate), everything else a generic 500. A canceled context means
// the client went away mid-request; the handler still unwinds through the
// 503 path but the log records a cancellation, not a slow store.
func storeError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		slog.Error(what, "error", err, "timeout", true)
		middleware.RejectResponse(w, http.StatusServiceUnavailable,
			models.CodeUpstreamUnavailable, "Store unavailable, please retry")
	case errors.Is(err, context.Canceled):
		slog.Warn(what, "error", err, "canceled", true)
		middleware.RejectResponse(w, http.StatusServiceUnavailable,
			models.CodeUpstreamUnavailable, "Request canceled")
	default:
		slog.Error(what, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// getSetting loads one feature gate. A missing row reads as a closed gate
// rather than an error, so a half-seeded database fails safe.
func getSetting(ctx context.Context, db *sql.DB, key string) (models.Setting, error) {
	var s models.Setting
	err := db.QueryRowContext(ctx, `
		SELECT key, status, message, updated_at FROM setting WHERE key = $1
	`, key).Scan(&s.Key, &s.Status, &s.Message, &s.UpdatedAt)

	if err == sql.ErrNoRows {
		return models.Setting{Key: key}, nil
	}
	if err != nil {
		return models.Setting{}, err
	}
	return s, nil
}

// countRows runs a COUNT(*) query with a single int result
func countRows(ctx context.Context, db *sql.DB, query string, args ...interface{}) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}
