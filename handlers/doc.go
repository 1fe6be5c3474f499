// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the drtally API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SessionHandler: Admin login
  - StationHandler: Polling station registry
  - CandidateHandler: Candidate slate
  - UploadHandler: DR form submission, gallery, and detail
  - DashboardHandler: Aggregated tallies for the dashboard
  - DataHandler: Bulk reset and extraction preview
  - EventsHandler: SSE change feed

Handlers are created via constructor functions that accept *sql.DB,
Config, and where relevant the event hub:

	uploadHandler := handlers.NewUploadHandler(db, cfg, hub)

# Submission Flow

Field agents submit a photographed DR form by URL:

	POST /uploads → SubmitUpload

The handler verifies the station, runs the extraction pipeline against
the registered candidate slate, and stores the upload, per-candidate
result rows, and voter statistics in one transaction. Extraction
failures never fail the submission: placeholder data is stored instead
and the upload is marked with source "placeholder".

# Dashboard Aggregates

	GET /dashboard/summary  → GetSummary
	GET /dashboard/stations → GetStationBreakdown
	GET /dashboard/chart    → GetChartData

Candidate totals are ranked by votes with vote share computed against
the grand total. Candidates with no reported results appear with zero
votes rather than being dropped.

# Deletion Guards

Stations with uploads and candidates with results refuse deletion with
409 Conflict. Upload deletion removes its result and voter_stats rows
in the same transaction. DELETE /data clears all reported data but
keeps stations and candidates.

# Change Events

Mutating handlers publish change events to the hub so connected
dashboards refresh without polling. See the events package.
*/
package handlers
