// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusvote/campusvote/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "campusvote API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

// TestRootMatchesOnlyRoot verifies the root route is an exact match: a GET
// to a POST-only path must reach the mux's 405 handling, and an unknown
// path must 404, neither falling through to the root handler.
func TestRootMatchesOnlyRoot(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		path           string
		expectedStatus int
	}{
		{"/auth/register", http.StatusMethodNotAllowed},
		{"/votes", http.StatusMethodNotAllowed},
		{"/no/such/path", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run("GET "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for GET %s, got %d", tc.expectedStatus, tc.path, w.Code)
			}
			if w.Body.String() == "campusvote API v1" {
				t.Errorf("GET %s was served by the root handler", tc.path)
			}
		})
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Handlers may return 400/401/404 for missing data or sessions;
	// only 405 means the route itself was not registered
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/auth/register"},
		{"POST", "/auth/login"},
		{"POST", "/auth/admin/login"},
		{"GET", "/auth/me"},
		{"POST", "/auth/logout"},

		{"GET", "/categories"},
		{"GET", "/categories/test-id/candidates"},
		{"GET", "/results"},
		{"GET", "/settings"},

		{"POST", "/votes"},
		{"GET", "/votes/mine"},

		{"GET", "/admin/dashboard"},
		{"GET", "/admin/results"},
		{"GET", "/admin/export"},
		{"PUT", "/admin/settings/voting_active"},
		{"GET", "/admin/categories"},
		{"POST", "/admin/categories"},
		{"DELETE", "/admin/categories/test-id"},
		{"GET", "/admin/candidates"},
		{"POST", "/admin/candidates"},
		{"DELETE", "/admin/candidates/test-id"},
		{"GET", "/admin/voters"},
		{"POST", "/admin/voters"},
		{"POST", "/admin/voters/import"},
		{"POST", "/admin/voters/test-id/activate"},
		{"POST", "/admin/voters/test-id/deactivate"},
		{"DELETE", "/admin/voters/test-id"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},       // Only GET is defined
		{"DELETE", "/results"},    // Only GET is defined
		{"GET", "/auth/register"}, // Only POST is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

// TestAdminRoutesRequireSession verifies admin routes reject anonymous
// and voter-session requests before any handler logic runs
func TestAdminRoutesRequireSession(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	voterID := testutil.CreateTestVoter(t, db, "CSC/2023/150", "Router Voter", "hunter22")
	voterToken := testutil.VoterToken(t, cfg, voterID)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/admin/dashboard"},
		{"GET", "/admin/voters"},
		{"POST", "/admin/categories"},
		{"GET", "/admin/export"},
	}

	for _, tc := range paths {
		t.Run("anonymous "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 without a session, got %d", w.Code)
			}
		})

		t.Run("voter session "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Authorization", "Bearer "+voterToken)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusForbidden {
				t.Errorf("Expected 403 with a voter session, got %d", w.Code)
			}
		})
	}
}

func TestAdminSessionEndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	adminID := testutil.CreateTestAdmin(t, db, "officer", "s3cretpass")
	adminToken := testutil.AdminToken(t, cfg, adminID)

	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with an admin session, got %d: %s", w.Code, w.Body.String())
	}
}
