// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Campus Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Authentication:

	POST /auth/register    - Voter self-registration
	POST /auth/login       - Voter login
	POST /auth/admin/login - Admin login
	GET  /auth/me          - Current session's account (any session)
	POST /auth/logout      - Acknowledge logout

Public reads:

	GET /categories                  - Active categories with votable flag
	GET /categories/{id}/candidates  - Standing candidates in a category
	GET /results                     - Tallies (gated by show_results)
	GET /settings                    - Both feature gates

Voting (voter session, Authorization: Bearer):

	POST /votes      - Cast a vote
	GET  /votes/mine - The session voter's votes

Administration (admin session):

	GET    /admin/dashboard          - Headline counts
	GET    /admin/results            - Tallies regardless of the gate
	GET    /admin/export             - Results file, ?format=csv|json
	PUT    /admin/settings/{key}     - Toggle a feature gate

	GET    /admin/categories         - All categories
	POST   /admin/categories         - Create category
	PUT    /admin/categories/{id}    - Update category
	DELETE /admin/categories/{id}    - Delete category (refused with dependents)

	GET    /admin/candidates         - All candidates, ?category_id= filter
	POST   /admin/candidates         - Create candidate
	PUT    /admin/candidates/{id}    - Update candidate
	DELETE /admin/candidates/{id}    - Delete candidate (refused with votes)

	GET    /admin/voters                  - Voter roll with has_voted flag
	POST   /admin/voters                  - Add a voter
	POST   /admin/voters/import           - Bulk CSV import
	POST   /admin/voters/{id}/activate    - Reinstate
	POST   /admin/voters/{id}/deactivate  - Retire
	DELETE /admin/voters/{id}             - Delete voter (refused with votes)

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	exportHandler := handlers.NewExportHandler(db, cfg, resultsHandler)

All handlers receive the database connection and configuration. Session
checks are applied per route with middleware.RequireVoter and
middleware.RequireAdmin.
*/
package router
