// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amaradiallo/drtally/events"
	"github.com/amaradiallo/drtally/extract"
	"github.com/amaradiallo/drtally/models"
	"github.com/amaradiallo/drtally/testutil"
)

func TestReset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	hub := events.NewHub()
	handler := NewDataHandler(db, cfg, hub)

	stationID := testutil.CreateTestStation(t, db, "Alpha School", "Central")
	candidateID := testutil.CreateTestCandidate(t, db, "John Mensah", "UP")
	testutil.CreateTestUpload(t, db, stationID, map[string]int{candidateID: 50}, 30, 25, 1)
	testutil.CreateTestUpload(t, db, stationID, map[string]int{candidateID: 40}, 22, 20, 0)

	sub := hub.Subscribe(nil)
	defer hub.Unsubscribe(sub)

	req := testutil.MakeRequest("DELETE", "/data", nil, nil)
	w := httptest.NewRecorder()

	handler.Reset(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResetResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.UploadsDeleted != 2 {
		t.Errorf("uploads_deleted = %d, want 2", resp.UploadsDeleted)
	}

	for _, table := range []string{"upload", "result", "voter_stats"} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Errorf("%s rows = %d, want 0 after reset", table, count)
		}
	}

	// Stations and candidates survive
	var stations, candidates int
	if err := db.QueryRow("SELECT COUNT(*) FROM polling_station").Scan(&stations); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM candidate").Scan(&candidates); err != nil {
		t.Fatal(err)
	}
	if stations != 1 || candidates != 1 {
		t.Errorf("stations = %d, candidates = %d, both should survive reset", stations, candidates)
	}

	// One reset event per cleared table
	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		select {
		case e := <-sub.Events():
			if e.Action != events.ActionReset {
				t.Errorf("event action = %q, want reset", e.Action)
			}
			seen[e.Table] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for reset events")
		}
	}
	for _, table := range []string{"upload", "result", "voter_stats"} {
		if !seen[table] {
			t.Errorf("missing reset event for %s", table)
		}
	}
}

func TestExtractPreview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	ocr := fakeOCR(t, `John Mensah ...... 88
Female Voters: 70
Male Voters: 64`)
	defer ocr.Close()

	cfg := testutil.GetTestConfig()
	cfg.ExtractorURL = ocr.URL
	handler := NewDataHandler(db, cfg, events.NewHub())

	testutil.CreateTestCandidate(t, db, "John Mensah", "UP")

	req := testutil.MakeRequest("POST", "/extract", models.ExtractRequest{
		ImageURL: "https://cdn.example.com/preview.jpg",
	}, nil)
	w := httptest.NewRecorder()

	handler.ExtractPreview(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var out extract.Output
	testutil.AssertJSON(t, w, &out)

	if !out.Success {
		t.Fatalf("preview failed: %s", out.Error)
	}
	if len(out.Results) != 1 || out.Results[0].Votes != 88 || !out.Results[0].Matched {
		t.Errorf("results = %+v", out.Results)
	}
	if out.Stats.Male != 64 || out.Stats.Female != 70 {
		t.Errorf("stats = %+v", out.Stats)
	}

	// Dry run stores nothing
	var uploads int
	if err := db.QueryRow("SELECT COUNT(*) FROM upload").Scan(&uploads); err != nil {
		t.Fatal(err)
	}
	if uploads != 0 {
		t.Errorf("preview persisted %d uploads", uploads)
	}
}

func TestExtractPreview_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDataHandler(db, cfg, events.NewHub())

	req := testutil.MakeRequest("POST", "/extract", models.ExtractRequest{}, nil)
	w := httptest.NewRecorder()

	handler.ExtractPreview(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
