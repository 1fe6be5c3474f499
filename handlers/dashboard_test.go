// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaradiallo/drtally/models"
	"github.com/amaradiallo/drtally/testutil"
)

func TestGetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDashboardHandler(db, cfg)

	stationA := testutil.CreateTestStation(t, db, "Alpha School", "Central")
	stationB := testutil.CreateTestStation(t, db, "Beta Hall", "North")
	testutil.CreateTestStation(t, db, "Gamma Church", "North") // never reports

	mensah := testutil.CreateTestCandidate(t, db, "John Mensah", "UP")
	okonkwo := testutil.CreateTestCandidate(t, db, "Grace Okonkwo", "PA")

	testutil.CreateTestUpload(t, db, stationA, map[string]int{mensah: 100, okonkwo: 60}, 90, 80, 5)
	testutil.CreateTestUpload(t, db, stationB, map[string]int{mensah: 20, okonkwo: 70}, 50, 45, 2)

	req := testutil.MakeRequest("GET", "/dashboard/summary", nil, nil)
	w := httptest.NewRecorder()

	handler.GetSummary(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var summary models.DashboardSummary
	testutil.AssertJSON(t, w, &summary)

	if summary.TotalVotes != 250 {
		t.Errorf("total votes = %d, want 250", summary.TotalVotes)
	}
	if summary.UploadCount != 2 || summary.StationsReporting != 2 || summary.StationsTotal != 3 {
		t.Errorf("reporting = %d/%d uploads=%d",
			summary.StationsReporting, summary.StationsTotal, summary.UploadCount)
	}
	if summary.Turnout.Male != 140 || summary.Turnout.Female != 125 ||
		summary.Turnout.Wasted != 7 || summary.Turnout.Total != 265 {
		t.Errorf("turnout = %+v", summary.Turnout)
	}

	if len(summary.CandidateTotals) != 2 {
		t.Fatalf("expected 2 candidate totals, got %d", len(summary.CandidateTotals))
	}
	lead := summary.CandidateTotals[0]
	if lead.Name != "Grace Okonkwo" || lead.Votes != 130 || lead.Rank != 1 {
		t.Errorf("leader = %+v", lead)
	}
	if share := lead.Share; share < 0.519 || share > 0.521 {
		t.Errorf("leader share = %f, want 130/250", share)
	}
	if summary.CandidateTotals[1].Rank != 2 {
		t.Errorf("runner-up rank = %d", summary.CandidateTotals[1].Rank)
	}
}

func TestGetSummary_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDashboardHandler(db, cfg)

	testutil.CreateTestCandidate(t, db, "John Mensah", "UP")

	req := testutil.MakeRequest("GET", "/dashboard/summary", nil, nil)
	w := httptest.NewRecorder()

	handler.GetSummary(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var summary models.DashboardSummary
	testutil.AssertJSON(t, w, &summary)

	// Zero-vote candidates stay visible with zero share
	if len(summary.CandidateTotals) != 1 {
		t.Fatalf("expected 1 candidate total, got %d", len(summary.CandidateTotals))
	}
	if summary.CandidateTotals[0].Votes != 0 || summary.CandidateTotals[0].Share != 0 {
		t.Errorf("empty election total = %+v", summary.CandidateTotals[0])
	}
	if summary.TotalVotes != 0 || summary.Turnout.Total != 0 {
		t.Errorf("empty election summary = %+v", summary)
	}
}

func TestGetStationBreakdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDashboardHandler(db, cfg)

	stationA := testutil.CreateTestStation(t, db, "Alpha School", "Central")
	stationB := testutil.CreateTestStation(t, db, "Beta Hall", "North")

	mensah := testutil.CreateTestCandidate(t, db, "John Mensah", "UP")

	testutil.CreateTestUpload(t, db, stationA, map[string]int{mensah: 40}, 25, 20, 1)
	testutil.CreateTestUpload(t, db, stationA, map[string]int{mensah: 35}, 20, 18, 0)

	req := testutil.MakeRequest("GET", "/dashboard/stations", nil, nil)
	w := httptest.NewRecorder()

	handler.GetStationBreakdown(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var breakdowns []models.StationBreakdown
	testutil.AssertJSON(t, w, &breakdowns)

	if len(breakdowns) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(breakdowns))
	}

	byID := make(map[string]models.StationBreakdown)
	for _, b := range breakdowns {
		byID[b.StationID] = b
	}

	alpha := byID[stationA]
	if alpha.UploadCount != 2 || alpha.Turnout.Male != 45 || alpha.Turnout.Total != 83 {
		t.Errorf("alpha breakdown = %+v", alpha)
	}
	if len(alpha.CandidateTotals) != 1 || alpha.CandidateTotals[0].Votes != 75 {
		t.Errorf("alpha candidate totals = %+v", alpha.CandidateTotals)
	}

	// Station with no uploads reports zeros, not an error
	beta := byID[stationB]
	if beta.UploadCount != 0 || beta.Turnout.Total != 0 {
		t.Errorf("beta breakdown = %+v", beta)
	}
	if len(beta.CandidateTotals) != 1 || beta.CandidateTotals[0].Votes != 0 {
		t.Errorf("beta candidate totals = %+v", beta.CandidateTotals)
	}
}

func TestGetChartData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewDashboardHandler(db, cfg)

	stationID := testutil.CreateTestStation(t, db, "Alpha School", "Central")
	mensah := testutil.CreateTestCandidate(t, db, "John Mensah", "UP")

	testutil.CreateTestUpload(t, db, stationID, map[string]int{mensah: 10}, 6, 5, 0)
	testutil.CreateTestUpload(t, db, stationID, map[string]int{mensah: 15}, 9, 7, 1)

	req := testutil.MakeRequest("GET", "/dashboard/chart", nil, nil)
	w := httptest.NewRecorder()

	handler.GetChartData(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var chart models.ChartData
	testutil.AssertJSON(t, w, &chart)

	if len(chart.Candidates) != 1 || chart.Candidates[0].Votes != 25 {
		t.Errorf("chart candidates = %+v", chart.Candidates)
	}

	// Both uploads land on today's bucket
	if len(chart.UploadsPerDay) != 1 || chart.UploadsPerDay[0].Count != 2 {
		t.Errorf("uploads per day = %+v", chart.UploadsPerDay)
	}
}
