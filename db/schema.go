// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is kept portable across postgres and sqlite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SeedSettings inserts the two feature-gate rows if they are missing.
// Both gates start closed so a fresh deployment never accepts votes or
// exposes results before an admin opts in.
func SeedSettings(db *sql.DB) error {
	seeds := []struct {
		key     string
		message string
	}{
		{"voting_active", "Voting is not yet open"},
		{"show_results", "Results are not yet available"},
	}

	for _, s := range seeds {
		var exists bool
		err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM setting WHERE key = $1)`, s.key).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check setting %s: %w", s.key, err)
		}
		if exists {
			continue
		}
		_, err = db.Exec(`
			INSERT INTO setting (key, status, message)
			VALUES ($1, FALSE, $2)
		`, s.key, s.message)
		if err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", s.key, err)
		}
	}

	return nil
}

const schema = `
-- Voters (students)
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    matric_number TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    email TEXT,
    department TEXT,
    level TEXT,
    password_hash TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_voter_matric_number ON voter(matric_number);

-- Admins
CREATE TABLE IF NOT EXISTS admin (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    email TEXT,
    role TEXT NOT NULL DEFAULT 'admin',
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Categories (contested positions)
CREATE TABLE IF NOT EXISTS category (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    display_order INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_category_display_order ON category(display_order);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    category_id TEXT NOT NULL REFERENCES category(id),
    name TEXT NOT NULL,
    bio TEXT,
    image_url TEXT,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_candidate_category_id ON candidate(category_id);

-- Votes: append-only; UNIQUE (voter_id, category_id) is the one-vote rule
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id),
    category_id TEXT NOT NULL REFERENCES category(id),
    candidate_id TEXT NOT NULL REFERENCES candidate(id),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (voter_id, category_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_category_id ON vote(category_id);
CREATE INDEX IF NOT EXISTS idx_vote_candidate_id ON vote(candidate_id);
CREATE INDEX IF NOT EXISTS idx_vote_voter_id ON vote(voter_id);

-- Settings (feature gates)
CREATE TABLE IF NOT EXISTS setting (
    key TEXT PRIMARY KEY,
    status BOOLEAN NOT NULL DEFAULT FALSE,
    message TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
