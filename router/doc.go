// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the drtally API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, hub)

# Endpoints

Health:

	GET /health

Session:

	POST /login - Admin login, returns session token

Polling stations (writes require X-Auth-Token):

	GET    /stations      - List with upload counts
	POST   /stations      - Register station
	DELETE /stations/{id} - Remove station (409 if it has uploads)

Candidates (writes require X-Auth-Token):

	GET    /candidates      - List slate
	POST   /candidates      - Register candidate
	DELETE /candidates/{id} - Remove candidate (409 if it has results)

Uploads (submission and reads are public for field agents):

	POST   /uploads      - Submit DR form, runs extraction
	GET    /uploads      - Gallery, optional ?station_id= filter
	GET    /uploads/{id} - Detail with results and voter stats
	DELETE /uploads/{id} - Remove upload and its data (admin)

Dashboard (public):

	GET /dashboard/summary  - Ranked totals, turnout, reporting counts
	GET /dashboard/stations - Per-station breakdown
	GET /dashboard/chart    - Chart series

Data management (admin):

	DELETE /data    - Clear all uploads, results, and stats
	POST   /extract - Dry-run extraction preview

Realtime:

	GET /events - SSE change feed, optional ?tables= filter

# Handler Initialization

The router creates handler instances with dependency injection; all
handlers receive the database connection and configuration, and the
mutating ones also receive the event hub.
*/
package router
