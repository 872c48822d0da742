// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusvote/campusvote/models"
	"github.com/campusvote/campusvote/testutil"
)

func TestStoreErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "deadline exceeded",
			err:            fmt.Errorf("query gate: %w", context.DeadlineExceeded),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   models.CodeUpstreamUnavailable,
		},
		{
			name:           "canceled",
			err:            context.Canceled,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   models.CodeUpstreamUnavailable,
		},
		{
			name:           "generic store failure",
			err:            errors.New("disk I/O error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			storeError(w, tt.err, "failed to query")

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to parse error response: %v", err)
			}
			if resp.Code != tt.expectedCode {
				t.Errorf("Expected code %q, got %q", tt.expectedCode, resp.Code)
			}
		})
	}
}

// TestStoreTimeoutSurfacesAsUnavailable drives a real handler with a
// deadline that has already lapsed when the first store call runs: the
// client must see 503 UPSTREAM_UNAVAILABLE, never a generic 500.
func TestStoreTimeoutSurfacesAsUnavailable(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.DBTimeout = time.Nanosecond

	handler := NewCategoryHandler(conn, cfg)

	req := httptest.NewRequest("GET", "/categories", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if resp.Code != models.CodeUpstreamUnavailable {
		t.Errorf("Expected code UPSTREAM_UNAVAILABLE, got %s", resp.Code)
	}
}
