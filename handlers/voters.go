// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/campusvote/campusvote/auth"
	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/db"
	"github.com/campusvote/campusvote/middleware"
	"github.com/campusvote/campusvote/models"
)

type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg}
}

// List handles GET /admin/voters
func (h *VoterHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	rows, err := h.db.QueryContext(ctx, `
		SELECT v.id, v.matric_number, v.name, v.email, v.department, v.level,
		       v.is_active, v.created_at,
		       EXISTS(SELECT 1 FROM vote WHERE voter_id = v.id) AS has_voted
		FROM voter v
		ORDER BY v.created_at, v.id
	`)
	if err != nil {
		storeError(w, err, "failed to query voters")
		return
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		if err := rows.Scan(&v.ID, &v.MatricNumber, &v.Name, &v.Email, &v.Department,
			&v.Level, &v.IsActive, &v.CreatedAt, &v.HasVoted); err != nil {
			storeError(w, err, "failed to scan voter")
			return
		}
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		storeError(w, err, "failed to read voters")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// Create handles POST /admin/voters: admin-side registration
func (h *VoterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.MatricNumber == "" || req.Name == "" || req.Password == "" {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"matric_number, name, and password are required")
		return
	}
	if !matricNumberRe.MatchString(req.MatricNumber) {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"matric_number format is invalid")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create voter")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	voterID := auth.NewID()
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO voter (id, matric_number, name, email, department, level, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)
	`, voterID, req.MatricNumber, req.Name, nullable(req.Email), nullable(req.Department),
		nullable(req.Level), hash, time.Now())

	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.RejectResponse(w, http.StatusConflict, models.CodeConflict,
				"A voter with this matric number already exists")
			return
		}
		storeError(w, err, "failed to insert voter")
		return
	}

	slog.Info("voter created by admin", "voter_id", voterID, "matric_number", req.MatricNumber)

	middleware.JSONResponse(w, http.StatusCreated, map[string]string{"voter_id": voterID})
}

// Activate handles POST /admin/voters/{id}/activate
func (h *VoterHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate handles POST /admin/voters/{id}/deactivate.
// Deactivation is the supported way to retire a voter who has voted.
func (h *VoterHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *VoterHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter id is required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	res, err := h.db.ExecContext(ctx, `UPDATE voter SET is_active = $1 WHERE id = $2`, active, voterID)
	if err != nil {
		storeError(w, err, "failed to update voter")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.RejectResponse(w, http.StatusNotFound, models.CodeNotFound, "Voter not found")
		return
	}

	slog.Info("voter activation changed", "voter_id", voterID, "is_active", active)

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"voter_id":  voterID,
		"is_active": active,
	})
}

// Delete handles DELETE /admin/voters/{id}.
// Refused while the voter's votes exist; deleting the voter would orphan
// ledger rows and skew participation stats.
func (h *VoterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter id is required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	votes, err := countRows(ctx, h.db, `SELECT COUNT(*) FROM vote WHERE voter_id = $1`, voterID)
	if err != nil {
		storeError(w, err, "failed to count votes")
		return
	}
	if votes > 0 {
		middleware.RejectResponse(w, http.StatusConflict, models.CodeConflict,
			"Voter has cast "+pluralize(votes, "vote")+"; deactivate instead of deleting")
		return
	}

	res, err := h.db.ExecContext(ctx, `DELETE FROM voter WHERE id = $1`, voterID)
	if err != nil {
		storeError(w, err, "failed to delete voter")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.RejectResponse(w, http.StatusNotFound, models.CodeNotFound, "Voter not found")
		return
	}

	slog.Info("voter deleted", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"voter_id": voterID})
}

// Import handles POST /admin/voters/import: a CSV body with columns
// matric_number,name,email,department,level,password. Parsing goes through
// encoding/csv, so quoted fields and embedded commas are handled; naive
// split-by-comma is exactly the failure mode this avoids.
//
// Rows are processed independently: bad rows and duplicate matric numbers
// are skipped and reported, good rows are imported.
func (h *VoterHandler) Import(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	reader := csv.NewReader(r.Body)
	reader.FieldsPerRecord = 6

	header, err := reader.Read()
	if err == io.EOF {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError, "empty CSV body")
		return
	}
	if err != nil {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"malformed CSV header: "+err.Error())
		return
	}
	if !strings.EqualFold(header[0], "matric_number") {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"first column must be matric_number")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	resp := models.ImportVotersResponse{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			resp.Skipped++
			resp.Errors = append(resp.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		matric, name := strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		email, department := strings.TrimSpace(record[2]), strings.TrimSpace(record[3])
		level, password := strings.TrimSpace(record[4]), record[5]

		if matric == "" || name == "" || password == "" {
			resp.Skipped++
			resp.Errors = append(resp.Errors, fmt.Sprintf("line %d: matric_number, name, and password are required", line))
			continue
		}
		if !matricNumberRe.MatchString(matric) {
			resp.Skipped++
			resp.Errors = append(resp.Errors, fmt.Sprintf("line %d: invalid matric_number %q", line, matric))
			continue
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			resp.Skipped++
			resp.Errors = append(resp.Errors, fmt.Sprintf("line %d: failed to hash password", line))
			continue
		}

		_, err = h.db.ExecContext(ctx, `
			INSERT INTO voter (id, matric_number, name, email, department, level, password_hash, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8)
		`, auth.NewID(), matric, name, nullable(email), nullable(department),
			nullable(level), hash, time.Now())

		if err != nil {
			if db.IsUniqueViolation(err) {
				resp.Skipped++
				resp.Errors = append(resp.Errors, fmt.Sprintf("line %d: matric_number %s already registered", line, matric))
				continue
			}
			storeError(w, err, "failed to insert imported voter")
			return
		}
		resp.Imported++
	}

	slog.Info("voters imported", "imported", resp.Imported, "skipped", resp.Skipped)

	middleware.JSONResponse(w, http.StatusOK, resp)
}
