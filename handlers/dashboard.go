// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/amaradiallo/drtally/cliparse"
	"github.com/amaradiallo/drtally/middleware"
	"github.com/amaradiallo/drtally/models"
)

type DashboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDashboardHandler(db *sql.DB, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{db: db, cfg: cfg}
}

// GetSummary handles GET /dashboard/summary
// Ranked per-candidate totals plus turnout and reporting aggregates
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	totals, err := computeCandidateTotals(h.db, "")
	if err != nil {
		slog.Error("failed to compute candidate totals", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var turnout models.TurnoutTotals
	err = h.db.QueryRow(`
		SELECT COALESCE(SUM(male), 0), COALESCE(SUM(female), 0),
		       COALESCE(SUM(wasted), 0), COALESCE(SUM(total), 0)
		FROM voter_stats
	`).Scan(&turnout.Male, &turnout.Female, &turnout.Wasted, &turnout.Total)
	if err != nil {
		slog.Error("failed to sum voter stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var uploadCount, stationsReporting, stationsTotal int
	err = h.db.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT station_id) FROM upload
	`).Scan(&uploadCount, &stationsReporting)
	if err != nil {
		slog.Error("failed to count uploads", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	err = h.db.QueryRow("SELECT COUNT(*) FROM polling_station").Scan(&stationsTotal)
	if err != nil {
		slog.Error("failed to count stations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	totalVotes := 0
	for _, t := range totals {
		totalVotes += t.Votes
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardSummary{
		CandidateTotals:   totals,
		Turnout:           turnout,
		TotalVotes:        totalVotes,
		TotalVotesHuman:   humanize.Comma(int64(totalVotes)),
		UploadCount:       uploadCount,
		StationsReporting: stationsReporting,
		StationsTotal:     stationsTotal,
	})
}

// GetStationBreakdown handles GET /dashboard/stations
// Per-station upload counts, turnout sums, and candidate totals
func (h *DashboardHandler) GetStationBreakdown(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT s.id, s.name, s.district,
		       COUNT(u.id),
		       COALESCE(SUM(v.male), 0), COALESCE(SUM(v.female), 0),
		       COALESCE(SUM(v.wasted), 0), COALESCE(SUM(v.total), 0)
		FROM polling_station s
		LEFT JOIN upload u ON u.station_id = s.id
		LEFT JOIN voter_stats v ON v.upload_id = u.id
		GROUP BY s.id, s.name, s.district
		ORDER BY s.district, s.name
	`)
	if err != nil {
		slog.Error("failed to query station breakdown", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	breakdowns := []models.StationBreakdown{}
	for rows.Next() {
		var b models.StationBreakdown
		if err := rows.Scan(&b.StationID, &b.Name, &b.District, &b.UploadCount,
			&b.Turnout.Male, &b.Turnout.Female, &b.Turnout.Wasted, &b.Turnout.Total); err != nil {
			slog.Error("failed to scan station breakdown", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		breakdowns = append(breakdowns, b)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read station breakdown", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range breakdowns {
		totals, err := computeCandidateTotals(h.db, breakdowns[i].StationID)
		if err != nil {
			slog.Error("failed to compute station candidate totals",
				"error", err, "station_id", breakdowns[i].StationID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		breakdowns[i].CandidateTotals = totals
	}

	middleware.JSONResponse(w, http.StatusOK, breakdowns)
}

// GetChartData handles GET /dashboard/chart
// Series for the dashboard charts: ranked candidate totals and
// uploads-per-day volume
func (h *DashboardHandler) GetChartData(w http.ResponseWriter, r *http.Request) {
	totals, err := computeCandidateTotals(h.db, "")
	if err != nil {
		slog.Error("failed to compute candidate totals", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	perDay, err := computeUploadsPerDay(h.db)
	if err != nil {
		slog.Error("failed to compute uploads per day", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChartData{
		Candidates:    totals,
		UploadsPerDay: perDay,
	})
}

// computeCandidateTotals sums votes per candidate, optionally scoped to
// one station. Candidates with no reported results appear with zero
// votes rather than being dropped.
func computeCandidateTotals(db *sql.DB, stationID string) ([]models.CandidateTotal, error) {
	query := `
		SELECT c.id, c.name, COALESCE(c.party, ''), COALESCE(SUM(r.votes), 0)
		FROM candidate c
		LEFT JOIN result r ON r.candidate_id = c.id
		GROUP BY c.id, c.name, c.party
	`
	args := []interface{}{}
	if stationID != "" {
		query = `
			SELECT c.id, c.name, COALESCE(c.party, ''),
			       COALESCE(SUM(CASE WHEN u.station_id = $1 THEN r.votes ELSE 0 END), 0)
			FROM candidate c
			LEFT JOIN result r ON r.candidate_id = c.id
			LEFT JOIN upload u ON u.id = r.upload_id
			GROUP BY c.id, c.name, c.party
		`
		args = append(args, stationID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []models.CandidateTotal{}
	for rows.Next() {
		var t models.CandidateTotal
		if err := rows.Scan(&t.CandidateID, &t.Name, &t.Party, &t.Votes); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rank by votes descending, name as stable tiebreaker
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Votes != totals[j].Votes {
			return totals[i].Votes > totals[j].Votes
		}
		return totals[i].Name < totals[j].Name
	})

	grandTotal := 0
	for _, t := range totals {
		grandTotal += t.Votes
	}
	for i := range totals {
		totals[i].Rank = i + 1
		if grandTotal > 0 {
			totals[i].Share = float64(totals[i].Votes) / float64(grandTotal)
		}
	}

	return totals, nil
}

// computeUploadsPerDay buckets upload timestamps by calendar day in Go,
// which keeps the query identical across both drivers
func computeUploadsPerDay(db *sql.DB) ([]models.DailyCount, error) {
	rows, err := db.Query("SELECT created_at FROM upload ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	var days []string
	for rows.Next() {
		var createdAt sql.NullTime
		if err := rows.Scan(&createdAt); err != nil {
			return nil, err
		}
		if !createdAt.Valid {
			continue
		}
		day := createdAt.Time.Format("2006-01-02")
		if _, seen := counts[day]; !seen {
			days = append(days, day)
		}
		counts[day]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	perDay := []models.DailyCount{}
	for _, day := range days {
		perDay = append(perDay, models.DailyCount{Date: day, Count: counts[day]})
	}

	return perDay, nil
}
