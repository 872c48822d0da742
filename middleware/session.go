// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/campusvote/campusvote/auth"
	"github.com/campusvote/campusvote/models"
)

type contextKey int

const (
	principalIDKey contextKey = iota
	principalRoleKey
)

// RequireVoter rejects requests without a valid voter session token and
// injects the voter's canonical id into the request context.
func RequireVoter(secret string, next http.HandlerFunc) http.HandlerFunc {
	return requireRole(secret, auth.RoleVoter, next)
}

// RequireAdmin rejects requests without a valid admin session token.
func RequireAdmin(secret string, next http.HandlerFunc) http.HandlerFunc {
	return requireRole(secret, auth.RoleAdmin, next)
}

// RequireSession accepts any valid session token, voter or admin.
func RequireSession(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := sessionClaims(secret, r)
		if err != nil {
			RejectResponse(w, http.StatusUnauthorized, models.CodeNotAuthenticated, "Authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), principalIDKey, claims.Subject)
		ctx = context.WithValue(ctx, principalRoleKey, claims.Role)
		next(w, r.WithContext(ctx))
	}
}

func requireRole(secret, role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := sessionClaims(secret, r)
		if err != nil {
			message := "Authentication required"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Session expired, log in again"
			}
			RejectResponse(w, http.StatusUnauthorized, models.CodeNotAuthenticated, message)
			return
		}
		if claims.Role != role {
			RejectResponse(w, http.StatusForbidden, models.CodeNotAuthenticated, "Insufficient privileges")
			return
		}

		ctx := context.WithValue(r.Context(), principalIDKey, claims.Subject)
		ctx = context.WithValue(ctx, principalRoleKey, claims.Role)
		next(w, r.WithContext(ctx))
	}
}

func sessionClaims(secret string, r *http.Request) (auth.Claims, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.ParseToken(secret, token)
}

// PrincipalID returns the authenticated principal's id, or "" when the
// request did not pass through RequireVoter/RequireAdmin.
func PrincipalID(r *http.Request) string {
	id, _ := r.Context().Value(principalIDKey).(string)
	return id
}

// PrincipalRole returns the authenticated principal's role, or ""
func PrincipalRole(r *http.Request) string {
	role, _ := r.Context().Value(principalRoleKey).(string)
	return role
}
