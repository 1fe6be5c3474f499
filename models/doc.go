// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: username, password
  - CreateStationRequest: name, district
  - CreateCandidateRequest: name, party
  - SubmitUploadRequest: image_url, station_id, agent_name
  - ExtractRequest: image_url

# Response Types

Types for JSON responses:

  - LoginResponse: token
  - CreateStationResponse: station_id
  - CreateCandidateResponse: candidate_id
  - SubmitUploadResponse: upload_id, source, results, voter_stats
  - ResetResponse: uploads_deleted
  - ErrorResponse: error, message

# Domain Types

  - PollingStation: station with district and upload count
  - Candidate: candidate with optional party
  - Upload: one submitted DR form (ip_hash and user_agent never serialize)
  - ResultLine: one candidate's votes on one form
  - VoterStats: male, female, wasted, total per form
  - UploadDetail: upload with its results and stats

# Dashboard Types

  - CandidateTotal: summed votes with share and 1-indexed rank
  - TurnoutTotals: summed voter statistics
  - DashboardSummary: totals, turnout, reporting counts
  - StationBreakdown: per-station aggregates
  - ChartData / DailyCount: chart series

# Constants

Upload sources:

	SourceExtracted   = "extracted"
	SourcePlaceholder = "placeholder"
*/
package models
