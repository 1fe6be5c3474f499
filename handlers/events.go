// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amaradiallo/drtally/cliparse"
	"github.com/amaradiallo/drtally/events"
	"github.com/amaradiallo/drtally/middleware"
)

// heartbeatInterval keeps idle SSE connections alive through proxies
const heartbeatInterval = 15 * time.Second

type EventsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *events.Hub
}

func NewEventsHandler(db *sql.DB, cfg cliparse.Config, hub *events.Hub) *EventsHandler {
	return &EventsHandler{db: db, cfg: cfg, hub: hub}
}

// Stream handles GET /events
// Server-Sent Events feed of change notifications, addressed by table
// name via ?tables=upload,result. No tables parameter subscribes to all
// changes. The subscription is dropped when the client disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	var tables []string
	if raw := r.URL.Query().Get("tables"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			tables = append(tables, strings.TrimSpace(t))
		}
	}

	sub := h.hub.Subscribe(tables)
	defer h.hub.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Tell the client it is connected before any change happens
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	slog.Info("event stream opened", "tables", tables, "remote", r.RemoteAddr)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("event stream closed", "remote", r.RemoteAddr)
			return

		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()

		case e, open := <-sub.Events():
			if !open {
				return
			}
			payload, err := json.Marshal(e)
			if err != nil {
				slog.Error("failed to encode event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
