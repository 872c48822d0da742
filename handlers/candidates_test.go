// Copyright (c) 2026 Campus Vote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusvote/campusvote/models"
	"github.com/campusvote/campusvote/testutil"
)

func TestListCandidatesByCategory(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(conn, cfg)

	categoryID := testutil.CreateTestCategory(t, conn, "President", true)
	testutil.CreateTestCandidate(t, conn, categoryID, "Alice")
	withdrawnID := testutil.CreateTestCandidate(t, conn, categoryID, "Withdrawn")
	if _, err := conn.Exec(`UPDATE candidate SET is_active = FALSE WHERE id = $1`, withdrawnID); err != nil {
		t.Fatalf("Failed to deactivate candidate: %v", err)
	}

	t.Run("voter view lists only standing candidates", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/categories/"+categoryID+"/candidates", nil)
		req.SetPathValue("id", categoryID)
		w := httptest.NewRecorder()

		handler.ListByCategory(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var candidates []models.Candidate
		if err := json.Unmarshal(w.Body.Bytes(), &candidates); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if len(candidates) != 1 || candidates[0].Name != "Alice" {
			t.Errorf("Expected only the standing candidate, got %+v", candidates)
		}
	})

	t.Run("unknown category is 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/categories/no-such/candidates", nil)
		req.SetPathValue("id", "no-such")
		w := httptest.NewRecorder()

		handler.ListByCategory(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("admin view includes withdrawn candidates", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/candidates?category_id="+categoryID, nil)
		w := httptest.NewRecorder()

		handler.ListAdmin(w, req)

		var candidates []models.Candidate
		if err := json.Unmarshal(w.Body.Bytes(), &candidates); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if len(candidates) != 2 {
			t.Errorf("Expected 2 candidates in admin list, got %d", len(candidates))
		}
	})
}

func TestCreateCandidate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(conn, cfg)

	categoryID := testutil.CreateTestCategory(t, conn, "President", true)

	tests := []struct {
		name           string
		request        models.CandidateRequest
		expectedStatus int
	}{
		{
			name: "valid candidate",
			request: models.CandidateRequest{
				CategoryID: categoryID,
				Name:       "Alice",
				Bio:        "Third year, debate club",
				IsActive:   true,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			request:        models.CandidateRequest{CategoryID: categoryID},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown category",
			request:        models.CandidateRequest{CategoryID: "no-such", Name: "Orphan"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			req := httptest.NewRequest("POST", "/admin/candidates", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateCandidate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(conn, cfg)

	categoryID := testutil.CreateTestCategory(t, conn, "President", true)
	otherCatID := testutil.CreateTestCategory(t, conn, "Treasurer", true)
	candidateID := testutil.CreateTestCandidate(t, conn, categoryID, "Alice")

	body, _ := json.Marshal(models.CandidateRequest{
		CategoryID: otherCatID,
		Name:       "Alice A.",
		IsActive:   false,
	})
	req := httptest.NewRequest("PUT", "/admin/candidates/"+candidateID, bytes.NewReader(body))
	req.SetPathValue("id", candidateID)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var gotCategory, gotName string
	var gotActive bool
	err := conn.QueryRow(`SELECT category_id, name, is_active FROM candidate WHERE id = $1`,
		candidateID).Scan(&gotCategory, &gotName, &gotActive)
	if err != nil {
		t.Fatalf("Failed to query candidate: %v", err)
	}
	if gotCategory != otherCatID || gotName != "Alice A." || gotActive {
		t.Errorf("Update not applied: category=%s name=%s active=%v", gotCategory, gotName, gotActive)
	}
}

func TestDeleteCandidate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(conn, cfg)

	categoryID := testutil.CreateTestCategory(t, conn, "President", true)
	freshID := testutil.CreateTestCandidate(t, conn, categoryID, "Unvoted")
	votedID := testutil.CreateTestCandidate(t, conn, categoryID, "Voted")
	voterID := testutil.CreateTestVoter(t, conn, "CSC/2023/050", "Voter", "hunter22")
	testutil.CastTestVote(t, conn, voterID, categoryID, votedID)

	del := func(t *testing.T, id string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest("DELETE", "/admin/candidates/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Delete(w, req)
		return w
	}

	t.Run("refused while votes exist", func(t *testing.T) {
		w := del(t, votedID)
		if w.Code != http.StatusConflict {
			t.Fatalf("Expected status 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unvoted candidate deletes cleanly", func(t *testing.T) {
		w := del(t, freshID)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown candidate", func(t *testing.T) {
		w := del(t, "no-such-id")
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
