// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Campus Vote API server.

Campus Vote runs student union elections: voters authenticate with their
matric number and cast one vote per category, administrators manage the
ballot (categories, candidates, the voter roll), toggle the voting and
results gates, and export the final tallies.

# Starting the Server

The server reads configuration from a .env file, environment variables,
or CLI flags:

	DATABASE_URL=postgres://... DATABASE_TYPE=postgres go run main.go

Or with flags:

	go run main.go -p 4117 -t sqlite -d file:campusvote.db

# Configuration

Required settings:

  - SESSION_SECRET (-session-secret): Secret for session token signing
  - DATABASE_URL (-d): Connection string or sqlite file path

Optional settings:

  - PORT (-p): Server port (default: 4117)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - RESULTS_REFRESH (-refresh): Results cache window in seconds (default: 30)
  - DB_TIMEOUT (-db-timeout): Store call deadline in seconds (default: 5)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, ballot, voting, results, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Sessions, CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Password hashing and session tokens
  - tally: Pure vote aggregation and export formatting
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
