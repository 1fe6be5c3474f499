// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/amaradiallo/drtally/auth"
	"github.com/amaradiallo/drtally/cliparse"
	"github.com/amaradiallo/drtally/events"
	"github.com/amaradiallo/drtally/extract"
	"github.com/amaradiallo/drtally/middleware"
	"github.com/amaradiallo/drtally/models"
)

type UploadHandler struct {
	db        *sql.DB
	cfg       cliparse.Config
	hub       *events.Hub
	extractor *extract.Extractor
}

func NewUploadHandler(db *sql.DB, cfg cliparse.Config, hub *events.Hub) *UploadHandler {
	return &UploadHandler{
		db:        db,
		cfg:       cfg,
		hub:       hub,
		extractor: extract.New(cfg.ExtractorURL),
	}
}

// SubmitUpload handles POST /uploads
// Runs extraction on the photographed form, then stores the upload, its
// per-candidate results, and its voter statistics in one transaction.
// Extraction failure does not fail the submission: placeholder numbers
// are stored and the upload is flagged as such.
func (h *UploadHandler) SubmitUpload(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitUploadRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ImageURL == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "image_url is required")
		return
	}
	if req.StationID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "station_id is required")
		return
	}

	// Validate the station
	var stationName string
	err := h.db.QueryRow("SELECT name FROM polling_station WHERE id = $1", req.StationID).Scan(&stationName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Station not found")
		return
	}
	if err != nil {
		slog.Error("failed to query station", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	candidates, err := loadCandidates(h.db)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(candidates) == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "No candidates registered")
		return
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}

	out := h.extractor.Extract(r.Context(), req.ImageURL, names)
	source := models.SourceExtracted
	if !out.Success {
		source = models.SourcePlaceholder
		slog.Warn("extraction fell back to placeholder data",
			"image_url", req.ImageURL, "reason", out.Error)
	}

	uploadID := uuid.NewString()
	createdAt := time.Now()
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSalt)
	userAgent := r.UserAgent()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO upload (id, station_id, image_url, agent_name, source, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uploadID, req.StationID, req.ImageURL, req.AgentName, source, ipHash, userAgent, createdAt)
	if err != nil {
		slog.Error("failed to insert upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	resultLines := make([]models.ResultLine, len(candidates))
	for i, c := range candidates {
		votes := out.Results[i].Votes
		if votes < 0 {
			votes = 0
		}
		_, err = tx.Exec(`
			INSERT INTO result (upload_id, candidate_id, votes)
			VALUES ($1, $2, $3)
		`, uploadID, c.ID, votes)
		if err != nil {
			slog.Error("failed to insert result", "error", err, "candidate_id", c.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
			return
		}
		resultLines[i] = models.ResultLine{
			CandidateID:   c.ID,
			CandidateName: c.Name,
			Votes:         votes,
		}
	}

	stats := models.VoterStats{
		UploadID:  uploadID,
		StationID: req.StationID,
		Male:      out.Stats.Male,
		Female:    out.Stats.Female,
		Wasted:    out.Stats.Wasted,
		Total:     out.Stats.Total,
	}
	_, err = tx.Exec(`
		INSERT INTO voter_stats (upload_id, station_id, male, female, wasted, total)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uploadID, req.StationID, stats.Male, stats.Female, stats.Wasted, stats.Total)
	if err != nil {
		slog.Error("failed to insert voter stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save voter statistics")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	slog.Info("upload submitted",
		"upload_id", uploadID, "station", stationName, "source", source)

	h.hub.Publish(events.Event{Table: "upload", Action: events.ActionInsert, ID: uploadID})
	h.hub.Publish(events.Event{Table: "result", Action: events.ActionInsert, ID: uploadID})
	h.hub.Publish(events.Event{Table: "voter_stats", Action: events.ActionInsert, ID: uploadID})

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitUploadResponse{
		UploadID: uploadID,
		Source:   source,
		Results:  resultLines,
		Stats:    stats,
	})
}

// ListUploads handles GET /uploads
// Gallery view, newest first; optional ?station_id= filter
func (h *UploadHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT u.id, u.station_id, s.name, u.image_url,
		       COALESCE(u.agent_name, ''), u.source, u.created_at
		FROM upload u
		JOIN polling_station s ON s.id = u.station_id
	`
	args := []interface{}{}
	if stationID := r.URL.Query().Get("station_id"); stationID != "" {
		query += " WHERE u.station_id = $1"
		args = append(args, stationID)
	}
	query += " ORDER BY u.created_at DESC"

	rows, err := h.db.Query(query, args...)
	if err != nil {
		slog.Error("failed to query uploads", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	uploads := []models.Upload{}
	for rows.Next() {
		var u models.Upload
		if err := rows.Scan(&u.ID, &u.StationID, &u.StationName, &u.ImageURL,
			&u.AgentName, &u.Source, &u.CreatedAt); err != nil {
			slog.Error("failed to scan upload", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		u.SubmittedAgo = humanize.Time(u.CreatedAt)
		uploads = append(uploads, u)
	}

	middleware.JSONResponse(w, http.StatusOK, uploads)
}

// GetUpload handles GET /uploads/{id}
// One upload with its results and voter statistics
func (h *UploadHandler) GetUpload(w http.ResponseWriter, r *http.Request) {
	uploadID := r.PathValue("id")
	if uploadID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "upload_id is required")
		return
	}

	var u models.Upload
	err := h.db.QueryRow(`
		SELECT u.id, u.station_id, s.name, u.image_url,
		       COALESCE(u.agent_name, ''), u.source, u.created_at
		FROM upload u
		JOIN polling_station s ON s.id = u.station_id
		WHERE u.id = $1
	`, uploadID).Scan(&u.ID, &u.StationID, &u.StationName, &u.ImageURL,
		&u.AgentName, &u.Source, &u.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Upload not found")
		return
	}
	if err != nil {
		slog.Error("failed to query upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	u.SubmittedAgo = humanize.Time(u.CreatedAt)

	rows, err := h.db.Query(`
		SELECT r.candidate_id, c.name, r.votes
		FROM result r
		JOIN candidate c ON c.id = r.candidate_id
		WHERE r.upload_id = $1
		ORDER BY c.name
	`, uploadID)
	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	results := []models.ResultLine{}
	for rows.Next() {
		var line models.ResultLine
		if err := rows.Scan(&line.CandidateID, &line.CandidateName, &line.Votes); err != nil {
			slog.Error("failed to scan result", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		results = append(results, line)
	}

	var stats models.VoterStats
	err = h.db.QueryRow(`
		SELECT upload_id, station_id, male, female, wasted, total
		FROM voter_stats
		WHERE upload_id = $1
	`, uploadID).Scan(&stats.UploadID, &stats.StationID,
		&stats.Male, &stats.Female, &stats.Wasted, &stats.Total)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query voter stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UploadDetail{
		Upload:  u,
		Results: results,
		Stats:   stats,
	})
}

// DeleteUpload handles DELETE /uploads/{id}
// Removes the upload together with its results and statistics
func (h *UploadHandler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	uploadID := r.PathValue("id")
	if uploadID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "upload_id is required")
		return
	}

	var exists int
	err := h.db.QueryRow("SELECT COUNT(*) FROM upload WHERE id = $1", uploadID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Upload not found")
		return
	}

	// Child rows are removed explicitly so the delete behaves the same
	// on both drivers regardless of foreign key enforcement
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM result WHERE upload_id = $1",
		"DELETE FROM voter_stats WHERE upload_id = $1",
		"DELETE FROM upload WHERE id = $1",
	} {
		if _, err := tx.Exec(stmt, uploadID); err != nil {
			slog.Error("failed to delete upload", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete upload")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete upload")
		return
	}

	slog.Info("upload deleted", "upload_id", uploadID)

	h.hub.Publish(events.Event{Table: "upload", Action: events.ActionDelete, ID: uploadID})
	h.hub.Publish(events.Event{Table: "result", Action: events.ActionDelete, ID: uploadID})
	h.hub.Publish(events.Event{Table: "voter_stats", Action: events.ActionDelete, ID: uploadID})

	w.WriteHeader(http.StatusNoContent)
}
