// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded (via godotenv) before the
environment is consulted.

# Config Fields

  - Port: Server listen port (default: 4117)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - SessionSecret: Secret for session token signing (required)
  - SessionTTL: Session token lifetime (one week)
  - ResultsRefresh: Results cache refresh interval (default: 30s)
  - DBTimeout: Upper bound on any single store operation (default: 5s)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-refresh         Results cache refresh interval (seconds)
	-db-timeout      Database operation timeout (seconds)
	-session-secret  Session signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	RESULTS_REFRESH → -refresh
	DB_TIMEOUT      → -db-timeout
	SESSION_SECRET  → -session-secret

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - SESSION_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
