// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/campusvote/campusvote/auth"
	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/db"
	"github.com/campusvote/campusvote/middleware"
	"github.com/campusvote/campusvote/models"
)

// Registration numbers like CSC/2022/041 or ENG-2023-117
var matricNumberRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/_-]{3,29}$`)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
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
	if len(req.Password) < 6 {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	// Insert; the UNIQUE constraint on matric_number decides duplicates
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

	token, err := auth.NewToken(h.cfg.SessionSecret, voterID, auth.RoleVoter, h.cfg.SessionTTL)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("voter registered", "voter_id", voterID, "matric_number", req.MatricNumber)

	middleware.JSONResponse(w, http.StatusCreated, models.SessionResponse{
		Token: token,
		Name:  req.Name,
		Role:  auth.RoleVoter,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.MatricNumber == "" || req.Password == "" {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"matric_number and password are required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	var voterID, name, hash string
	var isActive bool
	err := h.db.QueryRowContext(ctx, `
		SELECT id, name, password_hash, is_active FROM voter WHERE matric_number = $1
	`, req.MatricNumber).Scan(&voterID, &name, &hash, &isActive)

	if err == sql.ErrNoRows {
		// Same rejection as a bad password; do not leak which part failed
		middleware.RejectResponse(w, http.StatusUnauthorized, models.CodeNotAuthenticated, "Invalid credentials")
		return
	}
	if err != nil {
		storeError(w, err, "failed to query voter")
		return
	}

	if err := auth.CheckPassword(hash, req.Password); err != nil {
		middleware.RejectResponse(w, http.StatusUnauthorized, models.CodeNotAuthenticated, "Invalid credentials")
		return
	}

	if !isActive {
		middleware.RejectResponse(w, http.StatusForbidden, models.CodeNotAuthenticated,
			"This account has been deactivated")
		return
	}

	token, err := auth.NewToken(h.cfg.SessionSecret, voterID, auth.RoleVoter, h.cfg.SessionTTL)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("voter logged in", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Token: token,
		Name:  name,
		Role:  auth.RoleVoter,
	})
}

// AdminLogin handles POST /auth/admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"username and password are required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	var adminID, name, hash string
	err := h.db.QueryRowContext(ctx, `
		SELECT id, name, password_hash FROM admin WHERE username = $1
	`, req.Username).Scan(&adminID, &name, &hash)

	if err == sql.ErrNoRows {
		middleware.RejectResponse(w, http.StatusUnauthorized, models.CodeNotAuthenticated, "Invalid credentials")
		return
	}
	if err != nil {
		storeError(w, err, "failed to query admin")
		return
	}

	if err := auth.CheckPassword(hash, req.Password); err != nil {
		middleware.RejectResponse(w, http.StatusUnauthorized, models.CodeNotAuthenticated, "Invalid credentials")
		return
	}

	token, err := auth.NewToken(h.cfg.SessionSecret, adminID, auth.RoleAdmin, h.cfg.SessionTTL)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("admin logged in", "admin_id", adminID)

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Token: token,
		Name:  name,
		Role:  auth.RoleAdmin,
	})
}

// Me handles GET /auth/me for both voter and admin sessions.
// The token's subject is the canonical internal id; this resolves it to the
// current row once, with no fallback chain.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principalID := middleware.PrincipalID(r)
	role := middleware.PrincipalRole(r)

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	switch role {
	case auth.RoleAdmin:
		var a models.Admin
		err := h.db.QueryRowContext(ctx, `
			SELECT id, username, name, email, role, created_at FROM admin WHERE id = $1
		`, principalID).Scan(&a.ID, &a.Username, &a.Name, &a.Email, &a.Role, &a.CreatedAt)
		if err == sql.ErrNoRows {
			middleware.RejectResponse(w, http.StatusUnauthorized, models.CodeNotAuthenticated, "Unknown session")
			return
		}
		if err != nil {
			storeError(w, err, "failed to query admin")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, a)

	default:
		var v models.Voter
		err := h.db.QueryRowContext(ctx, `
			SELECT id, matric_number, name, email, department, level, is_active, created_at
			FROM voter WHERE id = $1
		`, principalID).Scan(&v.ID, &v.MatricNumber, &v.Name, &v.Email, &v.Department,
			&v.Level, &v.IsActive, &v.CreatedAt)
		if err == sql.ErrNoRows {
			middleware.RejectResponse(w, http.StatusUnauthorized, models.CodeNotAuthenticated, "Unknown session")
			return
		}
		if err != nil {
			storeError(w, err, "failed to query voter")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, v)
	}
}

// Logout handles POST /auth/logout. Sessions are stateless tokens, so this
// just acknowledges; the client discards the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// nullable maps "" to NULL for optional text columns
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
