// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/campusvote/campusvote/auth"
	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/db"
)

// SetupTestDB opens a fresh sqlite database in a per-test temp directory
// with the full schema and seeded gates (both closed). A file-backed
// database is used rather than :memory: so pooled connections all see
// the same data.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "campusvote_test.db")
	conn, err := db.Open("sqlite", url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := db.SeedSettings(conn); err != nil {
		t.Fatalf("Failed to seed settings: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           4117,
		DatabaseType:   "sqlite",
		SessionSecret:  "test-session-secret",
		SessionTTL:     time.Hour,
		ResultsRefresh: 30 * time.Second,
		DBTimeout:      5 * time.Second,
	}
}

// SetGate flips a feature gate (voting_active or show_results)
func SetGate(t *testing.T, conn *sql.DB, key string, open bool) {
	t.Helper()

	_, err := conn.Exec(`UPDATE setting SET status = $1, updated_at = $2 WHERE key = $3`,
		open, time.Now(), key)
	if err != nil {
		t.Fatalf("Failed to set gate %s: %v", key, err)
	}
}

// CreateTestVoter inserts an active voter and returns its ID
func CreateTestVoter(t *testing.T, conn *sql.DB, matricNumber, name, password string) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	voterID := auth.NewID()
	_, err = conn.Exec(`
		INSERT INTO voter (id, matric_number, name, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)
	`, voterID, matricNumber, name, hash, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterID
}

// CreateTestAdmin inserts an admin account and returns its ID
func CreateTestAdmin(t *testing.T, conn *sql.DB, username, password string) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	adminID := auth.NewID()
	_, err = conn.Exec(`
		INSERT INTO admin (id, username, name, role, password_hash, created_at)
		VALUES ($1, $2, $3, 'admin', $4, $5)
	`, adminID, username, username, hash, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}

	return adminID
}

// CreateTestCategory inserts a category and returns its ID
func CreateTestCategory(t *testing.T, conn *sql.DB, name string, active bool) string {
	t.Helper()

	categoryID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO category (id, name, is_active, display_order, created_at)
		VALUES ($1, $2, $3, 0, $4)
	`, categoryID, name, active, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return categoryID
}

// CreateTestCandidate inserts an active candidate and returns its ID
func CreateTestCandidate(t *testing.T, conn *sql.DB, categoryID, name string) string {
	t.Helper()

	candidateID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, category_id, name, is_active, created_at)
		VALUES ($1, $2, $3, TRUE, $4)
	`, candidateID, categoryID, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CastTestVote inserts a vote row directly, bypassing the handler
func CastTestVote(t *testing.T, conn *sql.DB, voterID, categoryID, candidateID string) string {
	t.Helper()

	voteID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO vote (id, voter_id, category_id, candidate_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, voterID, categoryID, candidateID, time.Now())
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}

	return voteID
}

// VoterToken mints a session token for a voter
func VoterToken(t *testing.T, cfg cliparse.Config, voterID string) string {
	t.Helper()

	token, err := auth.NewToken(cfg.SessionSecret, voterID, auth.RoleVoter, cfg.SessionTTL)
	if err != nil {
		t.Fatalf("Failed to mint voter token: %v", err)
	}
	return token
}

// AdminToken mints a session token for an admin
func AdminToken(t *testing.T, cfg cliparse.Config, adminID string) string {
	t.Helper()

	token, err := auth.NewToken(cfg.SessionSecret, adminID, auth.RoleAdmin, cfg.SessionTTL)
	if err != nil {
		t.Fatalf("Failed to mint admin token: %v", err)
	}
	return token
}
