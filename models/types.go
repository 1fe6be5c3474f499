// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Upload source constants
const (
	SourceExtracted   = "extracted"
	SourcePlaceholder = "placeholder"
)

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateStationRequest struct {
	Name     string `json:"name"`
	District string `json:"district"`
}

type CreateCandidateRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

type SubmitUploadRequest struct {
	ImageURL  string `json:"image_url"`
	StationID string `json:"station_id"`
	AgentName string `json:"agent_name"`
}

type ExtractRequest struct {
	ImageURL string `json:"image_url"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
}

type CreateStationResponse struct {
	StationID string `json:"station_id"`
}

type CreateCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type SubmitUploadResponse struct {
	UploadID string       `json:"upload_id"`
	Source   string       `json:"source"`
	Results  []ResultLine `json:"results"`
	Stats    VoterStats   `json:"voter_stats"`
}

type ResetResponse struct {
	UploadsDeleted int64 `json:"uploads_deleted"`
}

// Domain types

type PollingStation struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	District    string    `json:"district"`
	UploadCount int       `json:"upload_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Party     string    `json:"party,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Upload struct {
	ID           string    `json:"id"`
	StationID    string    `json:"station_id"`
	StationName  string    `json:"station_name,omitempty"`
	ImageURL     string    `json:"image_url"`
	AgentName    string    `json:"agent_name,omitempty"`
	Source       string    `json:"source"`
	SubmittedAgo string    `json:"submitted_ago,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	IPHash       *string   `json:"-"` // Never expose in JSON
	UserAgent    *string   `json:"-"` // Never expose in JSON
}

// ResultLine is one candidate's vote count on one DR form
type ResultLine struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name,omitempty"`
	Votes         int    `json:"votes"`
}

type VoterStats struct {
	UploadID  string `json:"upload_id,omitempty"`
	StationID string `json:"station_id,omitempty"`
	Male      int    `json:"male"`
	Female    int    `json:"female"`
	Wasted    int    `json:"wasted"`
	Total     int    `json:"total"`
}

type UploadDetail struct {
	Upload  Upload       `json:"upload"`
	Results []ResultLine `json:"results"`
	Stats   VoterStats   `json:"voter_stats"`
}

// Dashboard types

type CandidateTotal struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Party       string  `json:"party,omitempty"`
	Votes       int     `json:"votes"`
	Share       float64 `json:"share"` // fraction of all votes, 0 when nothing reported
	Rank        int     `json:"rank"`  // 1-indexed ranking
}

type TurnoutTotals struct {
	Male   int `json:"male"`
	Female int `json:"female"`
	Wasted int `json:"wasted"`
	Total  int `json:"total"`
}

type DashboardSummary struct {
	CandidateTotals   []CandidateTotal `json:"candidate_totals"`
	Turnout           TurnoutTotals    `json:"turnout"`
	TotalVotes        int              `json:"total_votes"`
	TotalVotesHuman   string           `json:"total_votes_human"`
	UploadCount       int              `json:"upload_count"`
	StationsReporting int              `json:"stations_reporting"`
	StationsTotal     int              `json:"stations_total"`
}

type StationBreakdown struct {
	StationID       string           `json:"station_id"`
	Name            string           `json:"name"`
	District        string           `json:"district"`
	UploadCount     int              `json:"upload_count"`
	Turnout         TurnoutTotals    `json:"turnout"`
	CandidateTotals []CandidateTotal `json:"candidate_totals"`
}

// DailyCount is one day's upload volume for the dashboard chart
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type ChartData struct {
	Candidates    []CandidateTotal `json:"candidates"`
	UploadsPerDay []DailyCount     `json:"uploads_per_day"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
