// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amaradiallo/drtally/cliparse"
	"github.com/amaradiallo/drtally/events"
	"github.com/amaradiallo/drtally/middleware"
	"github.com/amaradiallo/drtally/models"
)

type CandidateHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *events.Hub
}

func NewCandidateHandler(db *sql.DB, cfg cliparse.Config, hub *events.Hub) *CandidateHandler {
	return &CandidateHandler{db: db, cfg: cfg, hub: hub}
}

// ListCandidates handles GET /candidates
func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := loadCandidates(h.db)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// CreateCandidate handles POST /candidates
func (h *CandidateHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	candidateID := uuid.NewString()

	_, err := h.db.Exec(`
		INSERT INTO candidate (id, name, party, created_at)
		VALUES ($1, $2, $3, $4)
	`, candidateID, req.Name, req.Party, time.Now())

	if err != nil {
		// Check if it's a uniqueness violation (message differs per driver)
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key value") {
			middleware.ErrorResponse(w, http.StatusConflict, "Candidate name already exists")
			return
		}
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate created", "candidate_id", candidateID, "name", req.Name)

	h.hub.Publish(events.Event{Table: "candidate", Action: events.ActionInsert, ID: candidateID})

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCandidateResponse{
		CandidateID: candidateID,
	})
}

// DeleteCandidate handles DELETE /candidates/{id}
// A candidate referenced by results cannot be deleted
func (h *CandidateHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("id")
	if candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	var exists int
	err := h.db.QueryRow("SELECT COUNT(*) FROM candidate WHERE id = $1", candidateID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	var resultCount int
	err = h.db.QueryRow("SELECT COUNT(*) FROM result WHERE candidate_id = $1", candidateID).Scan(&resultCount)
	if err != nil {
		slog.Error("failed to count candidate results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if resultCount > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot delete a candidate with reported results")
		return
	}

	_, err = h.db.Exec("DELETE FROM candidate WHERE id = $1", candidateID)
	if err != nil {
		slog.Error("failed to delete candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}

	slog.Info("candidate deleted", "candidate_id", candidateID)

	h.hub.Publish(events.Event{Table: "candidate", Action: events.ActionDelete, ID: candidateID})

	w.WriteHeader(http.StatusNoContent)
}

// loadCandidates returns the full candidate list ordered by name
func loadCandidates(db *sql.DB) ([]models.Candidate, error) {
	rows, err := db.Query(`
		SELECT id, name, COALESCE(party, ''), created_at
		FROM candidate
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.CreatedAt); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}
