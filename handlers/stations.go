// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/amaradiallo/drtally/cliparse"
	"github.com/amaradiallo/drtally/events"
	"github.com/amaradiallo/drtally/middleware"
	"github.com/amaradiallo/drtally/models"
)

type StationHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *events.Hub
}

func NewStationHandler(db *sql.DB, cfg cliparse.Config, hub *events.Hub) *StationHandler {
	return &StationHandler{db: db, cfg: cfg, hub: hub}
}

// ListStations handles GET /stations
// Returns every station with its upload count, for the agent form and
// the station management page
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT s.id, s.name, s.district, s.created_at, COUNT(u.id)
		FROM polling_station s
		LEFT JOIN upload u ON u.station_id = s.id
		GROUP BY s.id, s.name, s.district, s.created_at
		ORDER BY s.district, s.name
	`)
	if err != nil {
		slog.Error("failed to query stations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	stations := []models.PollingStation{}
	for rows.Next() {
		var s models.PollingStation
		if err := rows.Scan(&s.ID, &s.Name, &s.District, &s.CreatedAt, &s.UploadCount); err != nil {
			slog.Error("failed to scan station", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		stations = append(stations, s)
	}

	middleware.JSONResponse(w, http.StatusOK, stations)
}

// CreateStation handles POST /stations
func (h *StationHandler) CreateStation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.District == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "district is required")
		return
	}

	stationID := uuid.NewString()

	_, err := h.db.Exec(`
		INSERT INTO polling_station (id, name, district, created_at)
		VALUES ($1, $2, $3, $4)
	`, stationID, req.Name, req.District, time.Now())

	if err != nil {
		slog.Error("failed to insert station", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create station")
		return
	}

	slog.Info("station created", "station_id", stationID, "name", req.Name, "district", req.District)

	h.hub.Publish(events.Event{Table: "polling_station", Action: events.ActionInsert, ID: stationID})

	middleware.JSONResponse(w, http.StatusCreated, models.CreateStationResponse{
		StationID: stationID,
	})
}

// DeleteStation handles DELETE /stations/{id}
// A station with existing uploads cannot be deleted
func (h *StationHandler) DeleteStation(w http.ResponseWriter, r *http.Request) {
	stationID := r.PathValue("id")
	if stationID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "station_id is required")
		return
	}

	// Check station exists
	var exists int
	err := h.db.QueryRow("SELECT COUNT(*) FROM polling_station WHERE id = $1", stationID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query station", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Station not found")
		return
	}

	// Guard: uploads reference this station
	var uploadCount int
	err = h.db.QueryRow("SELECT COUNT(*) FROM upload WHERE station_id = $1", stationID).Scan(&uploadCount)
	if err != nil {
		slog.Error("failed to count station uploads", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if uploadCount > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot delete a station with existing uploads")
		return
	}

	_, err = h.db.Exec("DELETE FROM polling_station WHERE id = $1", stationID)
	if err != nil {
		slog.Error("failed to delete station", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete station")
		return
	}

	slog.Info("station deleted", "station_id", stationID)

	h.hub.Publish(events.Event{Table: "polling_station", Action: events.ActionDelete, ID: stationID})

	w.WriteHeader(http.StatusNoContent)
}
