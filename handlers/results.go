// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/middleware"
	"github.com/campusvote/campusvote/models"
	"github.com/campusvote/campusvote/tally"
)

// ResultsHandler serves tallies through a refresh cache: each refresh fully
// recomputes from current store state (no incremental deltas), and entries
// live for cfg.ResultsRefresh. Vote submission never waits on, or
// invalidates, this cache.
type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config

	mu        sync.RWMutex
	cached    *models.TallyResult
	fetchedAt time.Time
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// Get handles GET /results: tallies for voters, gated by show_results
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	gate, err := getSetting(ctx, h.db, models.KeyShowResults)
	if err != nil {
		storeError(w, err, "failed to query results gate")
		return
	}
	if !gate.ResultsVisible() {
		msg := gate.Message
		if msg == "" {
			msg = "Results are not yet available"
		}
		middleware.RejectResponse(w, http.StatusForbidden, models.CodeResultsHidden, msg)
		return
	}

	result, err := h.tallies(ctx)
	if err != nil {
		storeError(w, err, "failed to compute tallies")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// GetAdmin handles GET /admin/results: tallies regardless of the gate
func (h *ResultsHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	result, err := h.tallies(ctx)
	if err != nil {
		storeError(w, err, "failed to compute tallies")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// Dashboard handles GET /admin/dashboard: headline counts
func (h *ResultsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := boundedCtx(r, h.cfg)
	defer cancel()

	voters, err := countRows(ctx, h.db, `SELECT COUNT(*) FROM voter`)
	if err != nil {
		storeError(w, err, "failed to count voters")
		return
	}
	categories, err := countRows(ctx, h.db, `SELECT COUNT(*) FROM category`)
	if err != nil {
		storeError(w, err, "failed to count categories")
		return
	}
	candidates, err := countRows(ctx, h.db, `SELECT COUNT(*) FROM candidate`)
	if err != nil {
		storeError(w, err, "failed to count candidates")
		return
	}
	votes, err := countRows(ctx, h.db, `SELECT COUNT(*) FROM vote`)
	if err != nil {
		storeError(w, err, "failed to count votes")
		return
	}
	voted, err := countRows(ctx, h.db, `SELECT COUNT(DISTINCT voter_id) FROM vote`)
	if err != nil {
		storeError(w, err, "failed to count distinct voters")
		return
	}

	participation := tally.Percent(voted, voters)
	summary := fmt.Sprintf("%s of %s registered voters have voted (%d%%), %s votes across %s categories",
		humanize.Comma(int64(voted)), humanize.Comma(int64(voters)), participation,
		humanize.Comma(int64(votes)), humanize.Comma(int64(categories)))

	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		TotalVoters:     voters,
		TotalCategories: categories,
		TotalCandidates: candidates,
		TotalVotes:      votes,
		Participation:   participation,
		Summary:         summary,
	})
}

// tallies returns the cached result while fresh, recomputing otherwise
func (h *ResultsHandler) tallies(ctx context.Context) (models.TallyResult, error) {
	h.mu.RLock()
	if h.cached != nil && time.Since(h.fetchedAt) < h.cfg.ResultsRefresh {
		result := *h.cached
		h.mu.RUnlock()
		return result, nil
	}
	h.mu.RUnlock()

	result, err := h.compute(ctx)
	if err != nil {
		return models.TallyResult{}, err
	}

	h.mu.Lock()
	h.cached = &result
	h.fetchedAt = time.Now()
	h.mu.Unlock()

	return result, nil
}

// compute loads reference data and the full ledger, then delegates to the
// pure aggregation in the tally package
func (h *ResultsHandler) compute(ctx context.Context) (models.TallyResult, error) {
	categories, err := h.loadCategories(ctx)
	if err != nil {
		return models.TallyResult{}, fmt.Errorf("failed to load categories: %w", err)
	}

	candidates, err := h.loadCandidates(ctx)
	if err != nil {
		return models.TallyResult{}, fmt.Errorf("failed to load candidates: %w", err)
	}

	votes, err := h.loadVotes(ctx)
	if err != nil {
		return models.TallyResult{}, fmt.Errorf("failed to load votes: %w", err)
	}

	registered, err := countRows(ctx, h.db, `SELECT COUNT(*) FROM voter`)
	if err != nil {
		return models.TallyResult{}, fmt.Errorf("failed to count voters: %w", err)
	}

	return tally.Compute(categories, candidates, votes, registered), nil
}

func (h *ResultsHandler) loadCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, name, description, is_active, display_order, created_at
		FROM category `+categoryOrder)
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

func (h *ResultsHandler) loadCandidates(ctx context.Context) ([]models.Candidate, error) {
	// created_at, id ordering gives the stable tie-break order for tallies
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, category_id, name, bio, image_url, is_active, created_at
		FROM candidate ORDER BY created_at, id`)
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

func (h *ResultsHandler) loadVotes(ctx context.Context) ([]models.Vote, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, voter_id, category_id, candidate_id, created_at FROM vote`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.VoterID, &v.CategoryID, &v.CandidateID, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
