// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/campusvote/campusvote/cliparse"
	"github.com/campusvote/campusvote/handlers"
	"github.com/campusvote/campusvote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()
	secret := cfg.SessionSecret

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	candidateHandler := handlers.NewCandidateHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	settingsHandler := handlers.NewSettingsHandler(db, cfg)
	exportHandler := handlers.NewExportHandler(db, cfg, resultsHandler)
	voterHandler := handlers.NewVoterHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/admin/login", middleware.WithLogging(authHandler.AdminLogin))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(middleware.RequireSession(secret, authHandler.Me)))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))

	// Public reads (ballot page, results page)
	mux.HandleFunc("GET /categories", middleware.WithLogging(categoryHandler.List))
	mux.HandleFunc("GET /categories/{id}/candidates", middleware.WithLogging(candidateHandler.ListByCategory))
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.Get))
	mux.HandleFunc("GET /settings", middleware.WithLogging(settingsHandler.Get))

	// Voting (voter session required)
	mux.HandleFunc("POST /votes", middleware.WithLogging(middleware.RequireVoter(secret, voteHandler.Submit)))
	mux.HandleFunc("GET /votes/mine", middleware.WithLogging(middleware.RequireVoter(secret, voteHandler.Mine)))

	// Election administration (admin session required)
	mux.HandleFunc("GET /admin/dashboard", middleware.WithLogging(middleware.RequireAdmin(secret, resultsHandler.Dashboard)))
	mux.HandleFunc("GET /admin/results", middleware.WithLogging(middleware.RequireAdmin(secret, resultsHandler.GetAdmin)))
	mux.HandleFunc("GET /admin/export", middleware.WithLogging(middleware.RequireAdmin(secret, exportHandler.Export)))
	mux.HandleFunc("PUT /admin/settings/{key}", middleware.WithLogging(middleware.RequireAdmin(secret, settingsHandler.Update)))

	mux.HandleFunc("GET /admin/categories", middleware.WithLogging(middleware.RequireAdmin(secret, categoryHandler.ListAdmin)))
	mux.HandleFunc("POST /admin/categories", middleware.WithLogging(middleware.RequireAdmin(secret, categoryHandler.Create)))
	mux.HandleFunc("PUT /admin/categories/{id}", middleware.WithLogging(middleware.RequireAdmin(secret, categoryHandler.Update)))
	mux.HandleFunc("DELETE /admin/categories/{id}", middleware.WithLogging(middleware.RequireAdmin(secret, categoryHandler.Delete)))

	mux.HandleFunc("GET /admin/candidates", middleware.WithLogging(middleware.RequireAdmin(secret, candidateHandler.ListAdmin)))
	mux.HandleFunc("POST /admin/candidates", middleware.WithLogging(middleware.RequireAdmin(secret, candidateHandler.Create)))
	mux.HandleFunc("PUT /admin/candidates/{id}", middleware.WithLogging(middleware.RequireAdmin(secret, candidateHandler.Update)))
	mux.HandleFunc("DELETE /admin/candidates/{id}", middleware.WithLogging(middleware.RequireAdmin(secret, candidateHandler.Delete)))

	mux.HandleFunc("GET /admin/voters", middleware.WithLogging(middleware.RequireAdmin(secret, voterHandler.List)))
	mux.HandleFunc("POST /admin/voters", middleware.WithLogging(middleware.RequireAdmin(secret, voterHandler.Create)))
	mux.HandleFunc("POST /admin/voters/import", middleware.WithLogging(middleware.RequireAdmin(secret, voterHandler.Import)))
	mux.HandleFunc("POST /admin/voters/{id}/activate", middleware.WithLogging(middleware.RequireAdmin(secret, voterHandler.Activate)))
	mux.HandleFunc("POST /admin/voters/{id}/deactivate", middleware.WithLogging(middleware.RequireAdmin(secret, voterHandler.Deactivate)))
	mux.HandleFunc("DELETE /admin/voters/{id}", middleware.WithLogging(middleware.RequireAdmin(secret, voterHandler.Delete)))

	// Root endpoint; {$} keeps this from swallowing unmatched GET paths
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("campusvote API v1"))
	})

	return mux
}
