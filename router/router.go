// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/amaradiallo/drtally/cliparse"
	"github.com/amaradiallo/drtally/events"
	"github.com/amaradiallo/drtally/handlers"
	"github.com/amaradiallo/drtally/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, hub *events.Hub) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	stationHandler := handlers.NewStationHandler(db, cfg, hub)
	candidateHandler := handlers.NewCandidateHandler(db, cfg, hub)
	uploadHandler := handlers.NewUploadHandler(db, cfg, hub)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)
	dataHandler := handlers.NewDataHandler(db, cfg, hub)
	eventsHandler := handlers.NewEventsHandler(db, cfg, hub)

	// admin shortens the auth wrapping below
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(cfg, next))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session
	mux.HandleFunc("POST /login", middleware.WithLogging(sessionHandler.Login))

	// Polling stations (reads public for the agent form)
	mux.HandleFunc("GET /stations", middleware.WithLogging(stationHandler.ListStations))
	mux.HandleFunc("POST /stations", admin(stationHandler.CreateStation))
	mux.HandleFunc("DELETE /stations/{id}", admin(stationHandler.DeleteStation))

	// Candidates
	mux.HandleFunc("GET /candidates", middleware.WithLogging(candidateHandler.ListCandidates))
	mux.HandleFunc("POST /candidates", admin(candidateHandler.CreateCandidate))
	mux.HandleFunc("DELETE /candidates/{id}", admin(candidateHandler.DeleteCandidate))

	// Uploads (submission is public for field agents)
	mux.HandleFunc("POST /uploads", middleware.WithLogging(uploadHandler.SubmitUpload))
	mux.HandleFunc("GET /uploads", middleware.WithLogging(uploadHandler.ListUploads))
	mux.HandleFunc("GET /uploads/{id}", middleware.WithLogging(uploadHandler.GetUpload))
	mux.HandleFunc("DELETE /uploads/{id}", admin(uploadHandler.DeleteUpload))

	// Dashboard aggregates
	mux.HandleFunc("GET /dashboard/summary", middleware.WithLogging(dashboardHandler.GetSummary))
	mux.HandleFunc("GET /dashboard/stations", middleware.WithLogging(dashboardHandler.GetStationBreakdown))
	mux.HandleFunc("GET /dashboard/chart", middleware.WithLogging(dashboardHandler.GetChartData))

	// Data management
	mux.HandleFunc("DELETE /data", admin(dataHandler.Reset))
	mux.HandleFunc("POST /extract", admin(dataHandler.ExtractPreview))

	// Realtime change feed (no logging wrapper: long-lived connection)
	mux.HandleFunc("GET /events", eventsHandler.Stream)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("drtally API v1"))
	})

	return mux
}
