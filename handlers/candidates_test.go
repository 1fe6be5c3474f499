// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaradiallo/drtally/events"
	"github.com/amaradiallo/drtally/models"
	"github.com/amaradiallo/drtally/testutil"
)

func TestCreateCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(db, cfg, events.NewHub())

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{"valid", models.CreateCandidateRequest{Name: "Grace Okonkwo", Party: "PA"}, http.StatusCreated},
		{"no party is fine", models.CreateCandidateRequest{Name: "Samuel Banda"}, http.StatusCreated},
		{"duplicate name", models.CreateCandidateRequest{Name: "Grace Okonkwo", Party: "Other"}, http.StatusConflict},
		{"missing name", models.CreateCandidateRequest{Party: "PA"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/candidates", tt.body, nil)
			w := httptest.NewRecorder()

			handler.CreateCandidate(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestListCandidates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(db, cfg, events.NewHub())

	testutil.CreateTestCandidate(t, db, "Zainab Oteng", "DF")
	testutil.CreateTestCandidate(t, db, "Amos Kuria", "NC")

	req := testutil.MakeRequest("GET", "/candidates", nil, nil)
	w := httptest.NewRecorder()

	handler.ListCandidates(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var candidates []models.Candidate
	testutil.AssertJSON(t, w, &candidates)

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	// Ordered by name
	if candidates[0].Name != "Amos Kuria" || candidates[1].Name != "Zainab Oteng" {
		t.Errorf("candidates not ordered by name: %q, %q", candidates[0].Name, candidates[1].Name)
	}
}

func TestDeleteCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewCandidateHandler(db, cfg, events.NewHub())

	stationID := testutil.CreateTestStation(t, db, "Alpha School", "Central")
	freshCandidate := testutil.CreateTestCandidate(t, db, "Fresh Face", "")
	reportedCandidate := testutil.CreateTestCandidate(t, db, "Reported On", "")
	testutil.CreateTestUpload(t, db, stationID, map[string]int{reportedCandidate: 44}, 30, 20, 1)

	tests := []struct {
		name        string
		candidateID string
		wantStatus  int
	}{
		{"candidate with results is protected", reportedCandidate, http.StatusConflict},
		{"unreferenced candidate deletes", freshCandidate, http.StatusNoContent},
		{"unknown candidate", "nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("DELETE", "/candidates/"+tt.candidateID, nil, nil)
			req.SetPathValue("id", tt.candidateID)
			w := httptest.NewRecorder()

			handler.DeleteCandidate(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}
