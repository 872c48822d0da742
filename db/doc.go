// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "postgres" (lib/pq) and "sqlite" (modernc.org/sqlite,
pure Go). The schema is written to run unmodified on both.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
SeedSettings then inserts the two feature-gate rows (voting_active,
show_results), both closed, if they do not already exist.

# Tables

The schema includes:

  - voter: Registered students
  - admin: Administrator accounts
  - category: Contested positions
  - candidate: Options within a category
  - vote: One immutable row per (voter, category)
  - setting: Feature gates (voting_active, show_results)

# Relationships

	category 1──* candidate
	category 1──* vote
	candidate 1──* vote
	voter 1──* vote

Foreign keys deliberately do NOT cascade: deleting reference data that votes
point at is refused at the API layer (with a dependent count) to keep
historical tallies accurate.

# The One-Vote Constraint

vote carries UNIQUE (voter_id, category_id). This is the enforcement point
for the one-vote-per-category rule; concurrent duplicate submissions are
serialized by the database, and IsUniqueViolation translates the resulting
error into an expected application outcome.
*/
package db
