// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is kept portable across the postgres and sqlite drivers:
// TEXT ids, CURRENT_TIMESTAMP defaults, no dialect-specific types.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polling Stations
CREATE TABLE IF NOT EXISTS polling_station (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    district TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_polling_station_district ON polling_station(district);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    party TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Uploads (one photographed DR form)
CREATE TABLE IF NOT EXISTS upload (
    id TEXT PRIMARY KEY,
    station_id TEXT NOT NULL REFERENCES polling_station(id),
    image_url TEXT NOT NULL,
    agent_name TEXT,
    source TEXT NOT NULL DEFAULT 'extracted' CHECK (source IN ('extracted', 'placeholder')),
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_upload_station_id ON upload(station_id);

-- Results (per-candidate counts on one form)
CREATE TABLE IF NOT EXISTS result (
    upload_id TEXT NOT NULL REFERENCES upload(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL REFERENCES candidate(id),
    votes INTEGER NOT NULL CHECK (votes >= 0),
    PRIMARY KEY (upload_id, candidate_id)
);

CREATE INDEX IF NOT EXISTS idx_result_candidate_id ON result(candidate_id);

-- Voter Statistics (turnout section of one form)
CREATE TABLE IF NOT EXISTS voter_stats (
    upload_id TEXT PRIMARY KEY REFERENCES upload(id) ON DELETE CASCADE,
    station_id TEXT NOT NULL REFERENCES polling_station(id),
    male INTEGER NOT NULL CHECK (male >= 0),
    female INTEGER NOT NULL CHECK (female >= 0),
    wasted INTEGER NOT NULL CHECK (wasted >= 0),
    total INTEGER NOT NULL CHECK (total >= 0)
);

CREATE INDEX IF NOT EXISTS idx_voter_stats_station_id ON voter_stats(station_id);
`

// DefaultCandidates is the slate seeded into an empty database.
// Mirrors the fixed candidate list the dashboard shipped with.
var DefaultCandidates = []struct {
	Name  string
	Party string
}{
	{"John Mensah", "Unity Party"},
	{"Grace Okonkwo", "Progressive Alliance"},
	{"Samuel Banda", "National Congress"},
	{"Amina Diallo", "Democratic Front"},
}

// SeedCandidates inserts the default candidate slate when the
// candidate table is empty. Existing rows are left alone.
func SeedCandidates(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM candidate").Scan(&count); err != nil {
		return fmt.Errorf("failed to count candidates: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, c := range DefaultCandidates {
		_, err := db.Exec(`
			INSERT INTO candidate (id, name, party, created_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), c.Name, c.Party, time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed candidate %q: %w", c.Name, err)
		}
	}

	return nil
}
