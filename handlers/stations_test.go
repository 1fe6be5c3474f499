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

func TestCreateStation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewStationHandler(db, cfg, events.NewHub())

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{"valid", models.CreateStationRequest{Name: "Kasangati Primary", District: "Wakiso"}, http.StatusCreated},
		{"missing name", models.CreateStationRequest{District: "Wakiso"}, http.StatusBadRequest},
		{"missing district", models.CreateStationRequest{Name: "Kasangati Primary"}, http.StatusBadRequest},
		{"invalid json", "not json", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/stations", tt.body, nil)
			w := httptest.NewRecorder()

			handler.CreateStation(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusCreated {
				var resp models.CreateStationResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.StationID == "" {
					t.Error("expected a station_id in the response")
				}
			}
		})
	}
}

func TestListStations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewStationHandler(db, cfg, events.NewHub())

	stationA := testutil.CreateTestStation(t, db, "Alpha School", "Central")
	testutil.CreateTestStation(t, db, "Beta Hall", "North")
	candidateID := testutil.CreateTestCandidate(t, db, "John Mensah", "UP")
	testutil.CreateTestUpload(t, db, stationA, map[string]int{candidateID: 100}, 60, 50, 2)

	req := testutil.MakeRequest("GET", "/stations", nil, nil)
	w := httptest.NewRecorder()

	handler.ListStations(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var stations []models.PollingStation
	testutil.AssertJSON(t, w, &stations)

	if len(stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(stations))
	}
	for _, s := range stations {
		switch s.ID {
		case stationA:
			if s.UploadCount != 1 {
				t.Errorf("station A upload_count = %d, want 1", s.UploadCount)
			}
		default:
			if s.UploadCount != 0 {
				t.Errorf("station %s upload_count = %d, want 0", s.Name, s.UploadCount)
			}
		}
	}
}

func TestDeleteStation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewStationHandler(db, cfg, events.NewHub())

	emptyStation := testutil.CreateTestStation(t, db, "Empty Station", "Central")
	busyStation := testutil.CreateTestStation(t, db, "Busy Station", "Central")
	candidateID := testutil.CreateTestCandidate(t, db, "John Mensah", "UP")
	testutil.CreateTestUpload(t, db, busyStation, map[string]int{candidateID: 10}, 6, 5, 0)

	tests := []struct {
		name       string
		stationID  string
		wantStatus int
	}{
		{"station with uploads is protected", busyStation, http.StatusConflict},
		{"empty station deletes", emptyStation, http.StatusNoContent},
		{"unknown station", "nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("DELETE", "/stations/"+tt.stationID, nil, nil)
			req.SetPathValue("id", tt.stationID)
			w := httptest.NewRecorder()

			handler.DeleteStation(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}

	// The empty station is gone, the busy one survives
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM polling_station").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("remaining stations = %d, want 1", count)
	}
}

func TestStationEventsPublished(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	hub := events.NewHub()
	handler := NewStationHandler(db, cfg, hub)

	sub := hub.Subscribe([]string{"polling_station"})
	defer hub.Unsubscribe(sub)

	req := testutil.MakeRequest("POST", "/stations",
		models.CreateStationRequest{Name: "Gamma Church", District: "East"}, nil)
	w := httptest.NewRecorder()
	handler.CreateStation(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	select {
	case e := <-sub.Events():
		if e.Table != "polling_station" || e.Action != events.ActionInsert {
			t.Errorf("unexpected event: %+v", e)
		}
	default:
		t.Error("expected a change event after station creation")
	}
}
