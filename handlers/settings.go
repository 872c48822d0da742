// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/middleware"
	"github.com/campusvote/campusvote/models"
)

type SettingsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSettingsHandler(db *sql.DB, cfg cliparse.Config) *SettingsHandler {
	return &SettingsHandler{db: db, cfg: cfg}
}

// Get handles GET /settings: both gates, read on every page load
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	settings := make(map[string]models.Setting, 2)
	for _, key := range []string{models.KeyVotingActive, models.KeyShowResults} {
		s, err := getSetting(ctx, h.db, key)
		if err != nil {
			storeError(w, err, "failed to query setting")
			return
		}
		settings[key] = s
	}

	middleware.JSONResponse(w, http.StatusOK, settings)
}

// Update handles PUT /admin/settings/{key}. Only the two known gates can
// be toggled; an unknown key is a validation error, not an upsert.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key != models.KeyVotingActive && key != models.KeyShowResults {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"unknown setting key")
		return
	}

	var req models.UpdateSettingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	res, err := h.db.ExecContext(ctx, `
		UPDATE setting SET status = $1, message = $2, updated_at = $3 WHERE key = $4
	`, req.Status, req.Message, time.Now(), key)
	if err != nil {
		storeError(w, err, "failed to update setting")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Gate row missing (fresh DB without seeding); create it
		_, err = h.db.ExecContext(ctx, `
			INSERT INTO setting (key, status, message, updated_at)
			VALUES ($1, $2, $3, $4)
		`, key, req.Status, req.Message, time.Now())
		if err != nil {
			storeError(w, err, "failed to insert setting")
			return
		}
	}

	slog.Info("setting updated", "key", key, "status", req.Status)

	middleware.JSONResponse(w, http.StatusOK, models.Setting{
		Key:       key,
		Status:    req.Status,
		Message:   req.Message,
		UpdatedAt: time.Now(),
	})
}
