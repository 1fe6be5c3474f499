// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/amaradiallo/drtally/auth"
	"github.com/amaradiallo/drtally/cliparse"
	"github.com/amaradiallo/drtally/middleware"
	"github.com/amaradiallo/drtally/models"
)

type SessionHandler struct {
	db           *sql.DB
	cfg          cliparse.Config
	passwordHash []byte
}

// NewSessionHandler hashes the configured admin password once so the
// plaintext is not carried around after startup
func NewSessionHandler(db *sql.DB, cfg cliparse.Config) *SessionHandler {
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		// bcrypt only fails on absurd input lengths; treat as fatal misconfig
		slog.Error("failed to hash admin password", "error", err)
		panic(err)
	}
	return &SessionHandler{db: db, cfg: cfg, passwordHash: hash}
}

// Login handles POST /login
// Checks the single admin account and returns a session token
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	if err := auth.CheckLogin(req.Username, req.Password, h.cfg.AdminUsername, h.passwordHash); err != nil {
		slog.Warn("login rejected",
			"username", req.Username, "ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token := auth.GenerateSessionToken(h.cfg.AdminUsername, h.cfg.SessionSalt)

	slog.Info("admin logged in", "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Token: token})
}
