// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/campusvote/campusvote/auth"
	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/middleware"
	"github.com/campusvote/campusvote/models"
)

type CandidateHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCandidateHandler(db *sql.DB, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{db: db, cfg: cfg}
}

// ListByCategory handles GET /categories/{id}/candidates (voter view)
func (h *CandidateHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category id is required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	var exists bool
	err := h.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM category WHERE id = $1)`, categoryID).Scan(&exists)
	if err != nil {
		storeError(w, err, "failed to query category")
		return
	}
	if !exists {
		middleware.RejectResponse(w, http.StatusNotFound, models.CodeNotFound, "Category not found")
		return
	}

	candidates, err := h.queryCandidates(ctx, `
		SELECT id, category_id, name, bio, image_url, is_active, created_at
		FROM candidate WHERE category_id = $1 AND is_active = TRUE
		ORDER BY created_at, id
	`, categoryID)
	if err != nil {
		storeError(w, err, "failed to query candidates")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// ListAdmin handles GET /admin/candidates with optional ?category_id=
func (h *CandidateHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	var candidates []models.Candidate
	var err error

	if categoryID := r.URL.Query().Get("category_id"); categoryID != "" {
		candidates, err = h.queryCandidates(ctx, `
			SELECT id, category_id, name, bio, image_url, is_active, created_at
			FROM candidate WHERE category_id = $1 ORDER BY created_at, id
		`, categoryID)
	} else {
		candidates, err = h.queryCandidates(ctx, `
			SELECT id, category_id, name, bio, image_url, is_active, created_at
			FROM candidate ORDER BY created_at, id
		`)
	}
	if err != nil {
		storeError(w, err, "failed to query candidates")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Create handles POST /admin/candidates
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CategoryID == "" || req.Name == "" {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"category_id and name are required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	// The owning category must exist before a candidate can join it
	var exists bool
	err := h.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM category WHERE id = $1)`, req.CategoryID).Scan(&exists)
	if err != nil {
		storeError(w, err, "failed to query category")
		return
	}
	if !exists {
		middleware.RejectResponse(w, http.StatusNotFound, models.CodeNotFound, "Category not found")
		return
	}

	candidateID := auth.NewID()
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO candidate (id, category_id, name, bio, image_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, candidateID, req.CategoryID, req.Name, nullable(req.Bio), nullable(req.ImageURL),
		req.IsActive, time.Now())

	if err != nil {
		storeError(w, err, "failed to insert candidate")
		return
	}

	slog.Info("candidate created", "candidate_id", candidateID, "category_id", req.CategoryID)

	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"candidate_id": candidateID})
}

// Update handles PUT /admin/candidates/{id}
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id is required")
		return
	}

	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CategoryID == "" || req.Name == "" {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"category_id and name are required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	var exists bool
	err := h.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM category WHERE id = $1)`, req.CategoryID).Scan(&exists)
	if err != nil {
		storeError(w, err, "failed to query category")
		return
	}
	if !exists {
		middleware.RejectResponse(w, http.StatusNotFound, models.CodeNotFound, "Category not found")
		return
	}

	res, err := h.db.ExecContext(ctx, `
		UPDATE candidate SET category_id = $1, name = $2, bio = $3, image_url = $4, is_active = $5
		WHERE id = $6
	`, req.CategoryID, req.Name, nullable(req.Bio), nullable(req.ImageURL), req.IsActive, candidateID)

	if err != nil {
		storeError(w, err, "failed to update candidate")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.RejectResponse(w, http.StatusNotFound, models.CodeNotFound, "Candidate not found")
		return
	}

	slog.Info("candidate updated", "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"candidate_id": candidateID})
}

// Delete handles DELETE /admin/candidates/{id}.
// Refused while votes reference the candidate; historical tallies stay
// accurate and the admin sees the dependent count.
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id is required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	votes, err := countRows(ctx, h.db, `SELECT COUNT(*) FROM vote WHERE candidate_id = $1`, candidateID)
	if err != nil {
		storeError(w, err, "failed to count votes")
		return
	}
	if votes > 0 {
		middleware.RejectResponse(w, http.StatusConflict, models.CodeConflict,
			"Candidate has "+pluralize(votes, "vote")+"; deactivate instead of deleting")
		return
	}

	res, err := h.db.ExecContext(ctx, `DELETE FROM candidate WHERE id = $1`, candidateID)
	if err != nil {
		storeError(w, err, "failed to delete candidate")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.RejectResponse(w, http.StatusNotFound, models.CodeNotFound, "Candidate not found")
		return
	}

	slog.Info("candidate deleted", "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"candidate_id": candidateID})
}

func (h *CandidateHandler) queryCandidates(ctx context.Context, query string, args ...interface{}) ([]models.Candidate, error) {
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.CategoryID, &c.Name, &c.Bio, &c.ImageURL, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
