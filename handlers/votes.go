// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/campusvote/campusvote/auth"
	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/db"
	"github.com/campusvote/campusvote/middleware"
	"github.com/campusvote/campusvote/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// Submit handles POST /votes. Preconditions are checked in a fixed order,
// each with its own rejection code:
//
//  1. global voting gate open        → else VOTING_CLOSED
//  2. category active                → else CATEGORY_CLOSED
//  3. candidate belongs to category  → else INVALID_CANDIDATE
//  4. no prior vote for (voter, category)
//
// Step 4 is NOT a pre-read: the insert itself hits the UNIQUE constraint,
// so concurrent duplicates from the same voter are serialized by the store
// and the loser gets ALREADY_VOTED. Retrying an already-accepted vote is
// safe for the same reason.
func (h *VoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	voterID := middleware.PrincipalID(r)

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CategoryID == "" || req.CandidateID == "" {
		middleware.RejectResponse(w, http.StatusBadRequest, models.CodeValidationError,
			"category_id and candidate_id are required")
		return
	}

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	// 1. Global gate
	gate, err := getSetting(ctx, h.db, models.KeyVotingActive)
	if err != nil {
		storeError(w, err, "failed to query voting gate")
		return
	}

	if !gate.Status {
		msg := gate.Message
		if msg == "" {
			msg = "Voting is currently closed"
		}
		middleware.RejectResponse(w, http.StatusForbidden, models.CodeVotingClosed, msg)
		return
	}

	// 2. Category gate
	var category models.Category
	err = h.db.QueryRowContext(ctx, `
		SELECT id, name, is_active FROM category WHERE id = $1
	`, req.CategoryID).Scan(&category.ID, &category.Name, &category.IsActive)

	if err == sql.ErrNoRows {
		middleware.RejectResponse(w, http.StatusNotFound, models.CodeNotFound, "Category not found")
		return
	}
	if err != nil {
		storeError(w, err, "failed to query category")
		return
	}

	if !gate.Votable(category) {
		middleware.RejectResponse(w, http.StatusForbidden, models.CodeCategoryClosed,
			"Voting for "+category.Name+" is closed")
		return
	}

	// 3. Candidate must belong to this category and be standing.
	// Guards against cross-category vote injection.
	var candidateCategory string
	var candidateActive bool
	err = h.db.QueryRowContext(ctx, `
		SELECT category_id, is_active FROM candidate WHERE id = $1
	`, req.CandidateID).Scan(&candidateCategory, &candidateActive)

	if err == sql.ErrNoRows {
		middleware.RejectResponse(w, http.StatusUnprocessableEntity, models.CodeInvalidCandidate,
			"Candidate does not exist")
		return
	}
	if err != nil {
		storeError(w, err, "failed to query candidate")
		return
	}
	if candidateCategory != req.CategoryID || !candidateActive {
		middleware.RejectResponse(w, http.StatusUnprocessableEntity, models.CodeInvalidCandidate,
			"Candidate is not standing in this category")
		return
	}

	// 4. Insert; the UNIQUE (voter_id, category_id) constraint is the
	// enforcement of one vote per category
	voteID := auth.NewID()
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO vote (id, voter_id, category_id, candidate_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, voterID, req.CategoryID, req.CandidateID, time.Now())

	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.RejectResponse(w, http.StatusConflict, models.CodeAlreadyVoted,
				"You have already voted in this category")
			return
		}
		storeError(w, err, "failed to insert vote")
		return
	}

	slog.Info("vote recorded", "vote_id", voteID, "voter_id", voterID, "category_id", req.CategoryID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		VoteID:  voteID,
		Message: "Your vote has been recorded",
	})
}

// Mine handles GET /votes/mine: the session voter's own votes
func (h *VoteHandler) Mine(w http.ResponseWriter, r *http.Request) {
	voterID := middleware.PrincipalID(r)

	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, voter_id, category_id, candidate_id, created_at
		FROM vote WHERE voter_id = $1 ORDER BY created_at, id
	`, voterID)
	if err != nil {
		storeError(w, err, "failed to query votes")
		return
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.VoterID, &v.CategoryID, &v.CandidateID, &v.CreatedAt); err != nil {
			storeError(w, err, "failed to scan vote")
			return
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		storeError(w, err, "failed to read votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}
