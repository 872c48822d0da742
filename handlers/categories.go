// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/campusvote/campusvote/auth"
	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/middleware"
	"github.com/campusvote/campusvote/models"
)

type CategoryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCategoryHandler(db *sql.DB, cfg cliparse.Config) *CategoryHandler {
	return &CategoryHandler{db: db, cfg: cfg}
}

// Deterministic enumeration: display_order, then creation order, then id
const categoryOrder = "ORDER BY display_order, created_at, id"

// List handles GET /categories (voter view: active only, with votable flag)
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	gate, err := getSetting(ctx, h.db, models.KeyVotingActive)
	if err != nil {
		storeError(w, err, "failed to query voting gate")
		return
	}

	categories, err := h.queryCategories(ctx, `
		SELECT id, name, description, is_active, display_order, created_at
		FROM category WHERE is_active = TRUE `+categoryOrder)
	if err != nil {
		storeError(w, err, "failed to query categories")
		return
	}

	for i := range categories {
		categories[i].Votable = gate.Votable(categories[i])
	}

	middleware.JSONResponse(w, http.StatusOK, categories)
}

// ListAdmin handles GET /admin/categories (all categories, any state)
func (h *CategoryHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	gate, err := getSetting(ctx, h.db, models.KeyVotingActive)
	if err != nil {
		storeError(w, err, "failed to query voting gate")
		return
	}

	categories, err := h.queryCategories(ctx, `
		SELECT id, name, description, is_active, display_order, created_at
		FROM category `+categoryOrder)
	if err != nil {
		storeError(w, err, "failed to query categories")
		return
	}

	for i := range categories {
		categories[i].Votable = gate.Votable(categories[i])
	}

	middleware.JSONResponse(w, http.StatusOK, categories)
}

// Create handles POST /admin/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError, "name is required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	} else {
		// Default to the end of the current ordering
		var maxOrder sql.NullInt64
		if err := h.db.QueryRowContext(ctx,
			`SELECT MAX(display_order) FROM category`).Scan(&maxOrder); err != nil {
			storeError(w, err, "failed to query display order")
			return
		}
		if maxOrder.Valid {
			displayOrder = int(maxOrder.Int64) + 1
		} else {
			displayOrder = 1
		}
	}

	categoryID := auth.NewID()
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO category (id, name, description, is_active, display_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, categoryID, req.Name, nullable(req.Description), req.IsActive, displayOrder, time.Now())

	if err != nil {
		storeError(w, err, "failed to insert category")
		return
	}

	slog.Info("category created", "category_id", categoryID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"category_id": categoryID})
}

// Update handles PUT /admin/categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category id is required")
		return
	}

	var req models.CategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError, "name is required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	query := `UPDATE category SET name = $1, description = $2, is_active = $3 WHERE id = $4`
	args := []interface{}{req.Name, nullable(req.Description), req.IsActive, categoryID}
	if req.DisplayOrder != nil {
		query = `UPDATE category SET name = $1, description = $2, is_active = $3, display_order = $4 WHERE id = $5`
		args = []interface{}{req.Name, nullable(req.Description), req.IsActive, *req.DisplayOrder, categoryID}
	}

	res, err := h.db.ExecContext(ctx, query, args...)
	if err != nil {
		storeError(w, err, "failed to update category")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.RejectResponse(w, http.StatusNotFound, models.CodeNotFound, "Category not found")
		return
	}

	slog.Info("category updated", "category_id", categoryID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"category_id": categoryID})
}

// Delete handles DELETE /admin/categories/{id}.
// Deletion is refused while candidates or votes still reference the
// category; the dependent count is reported so the admin can act on it.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category id is required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	candidates, err := countRows(ctx, h.db, `SELECT COUNT(*) FROM candidate WHERE category_id = $1`, categoryID)
	if err != nil {
		storeError(w, err, "failed to count candidates")
		return
	}
	votes, err := countRows(ctx, h.db, `SELECT COUNT(*) FROM vote WHERE category_id = $1`, categoryID)
	if err != nil {
		storeError(w, err, "failed to count votes")
		return
	}
	if candidates > 0 || votes > 0 {
		middleware.RejectResponse(w, http.StatusConflict, models.CodeConflict,
			"Category still has "+pluralize(candidates, "candidate")+" and "+pluralize(votes, "vote")+"; remove them first")
		return
	}

	res, err := h.db.ExecContext(ctx, `DELETE FROM category WHERE id = $1`, categoryID)
	if err != nil {
		storeError(w, err, "failed to delete category")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.RejectResponse(w, http.StatusNotFound, models.CodeNotFound, "Category not found")
		return
	}

	slog.Info("category deleted", "category_id", categoryID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"category_id": categoryID})
}

func (h *CategoryHandler) queryCategories(ctx context.Context, query string) ([]models.Category, error) {
	rows, err := h.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.DisplayOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
