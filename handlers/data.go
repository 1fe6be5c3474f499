// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/amaradiallo/drtally/cliparse"
	"github.com/amaradiallo/drtally/events"
	"github.com/amaradiallo/drtally/extract"
	"github.com/amaradiallo/drtally/middleware"
	"github.com/amaradiallo/drtally/models"
)

type DataHandler struct {
	db        *sql.DB
	cfg       cliparse.Config
	hub       *events.Hub
	extractor *extract.Extractor
}

func NewDataHandler(db *sql.DB, cfg cliparse.Config, hub *events.Hub) *DataHandler {
	return &DataHandler{
		db:        db,
		cfg:       cfg,
		hub:       hub,
		extractor: extract.New(cfg.ExtractorURL),
	}
}

// Reset handles DELETE /data
// Clears all uploads, results, and voter statistics in one transaction.
// Stations and candidates survive a reset.
func (h *DataHandler) Reset(w http.ResponseWriter, r *http.Request) {
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM result"); err != nil {
		slog.Error("failed to clear results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset data")
		return
	}
	if _, err := tx.Exec("DELETE FROM voter_stats"); err != nil {
		slog.Error("failed to clear voter stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset data")
		return
	}

	res, err := tx.Exec("DELETE FROM upload")
	if err != nil {
		slog.Error("failed to clear uploads", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset data")
		return
	}
	deleted, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset data")
		return
	}

	slog.Info("data reset", "uploads_deleted", deleted)

	h.hub.Publish(events.Event{Table: "upload", Action: events.ActionReset})
	h.hub.Publish(events.Event{Table: "result", Action: events.ActionReset})
	h.hub.Publish(events.Event{Table: "voter_stats", Action: events.ActionReset})

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		UploadsDeleted: deleted,
	})
}

// ExtractPreview handles POST /extract
// Dry-run extraction: runs the pipeline against the registered candidate
// list and returns the output without storing anything
func (h *DataHandler) ExtractPreview(w http.ResponseWriter, r *http.Request) {
	var req models.ExtractRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ImageURL == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "image_url is required")
		return
	}

	candidates, err := loadCandidates(h.db)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}

	out := h.extractor.Extract(r.Context(), req.ImageURL, names)

	middleware.JSONResponse(w, http.StatusOK, out)
}
