// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Sessions

RequireVoter and RequireAdmin verify the Bearer token in the Authorization
header and inject the principal into the request context:

	mux.HandleFunc("POST /votes",
		middleware.WithLogging(middleware.RequireVoter(cfg.SessionSecret, h.SubmitVote)))

Inside a protected handler:

	voterID := middleware.PrincipalID(r)

Requests without a valid token get 401 with code NOT_AUTHENTICATED; a valid
token with the wrong role gets 403.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.RejectResponse(w, http.StatusConflict, models.CodeAlreadyVoted, "message")

Parse JSON request bodies:

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil { ... }

# Client IP

GetClientIP checks X-Forwarded-For, X-Real-IP, then RemoteAddr.
*/
package middleware
