// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/amaradiallo/drtally/auth"
	"github.com/amaradiallo/drtally/cliparse"
	"github.com/amaradiallo/drtally/db"
)

// SetupTestDB creates a fresh sqlite database with the full schema.
// Each test gets its own file under t.TempDir, so tests are isolated and
// need no external database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "drtally_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          4270,
		DatabaseURL:   "file:test.db",
		DatabaseType:  "sqlite",
		AdminUsername: "admin",
		AdminPassword: "admin",
		SessionSalt:   "test-session-salt",
	}
}

// AdminToken returns the session token the test config's admin would get
func AdminToken(cfg cliparse.Config) string {
	return auth.GenerateSessionToken(cfg.AdminUsername, cfg.SessionSalt)
}

// CreateTestStation creates a polling station and returns its ID
func CreateTestStation(t *testing.T, conn *sql.DB, name, district string) string {
	t.Helper()

	stationID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO polling_station (id, name, district, created_at)
		VALUES ($1, $2, $3, $4)
	`, stationID, name, district, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test station: %v", err)
	}

	return stationID
}

// CreateTestCandidate creates a candidate and returns its ID
func CreateTestCandidate(t *testing.T, conn *sql.DB, name, party string) string {
	t.Helper()

	candidateID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, name, party, created_at)
		VALUES ($1, $2, $3, $4)
	`, candidateID, name, party, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CreateTestUpload inserts an upload with the given per-candidate votes
// and voter statistics, and returns the upload ID
func CreateTestUpload(t *testing.T, conn *sql.DB, stationID string, votes map[string]int, male, female, wasted int) string {
	t.Helper()

	uploadID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO upload (id, station_id, image_url, agent_name, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uploadID, stationID, "https://example.com/forms/"+uploadID+".jpg", "Test Agent", "extracted", time.Now())
	if err != nil {
		t.Fatalf("Failed to create test upload: %v", err)
	}

	for candidateID, v := range votes {
		_, err := conn.Exec(`
			INSERT INTO result (upload_id, candidate_id, votes)
			VALUES ($1, $2, $3)
		`, uploadID, candidateID, v)
		if err != nil {
			t.Fatalf("Failed to create test result: %v", err)
		}
	}

	_, err = conn.Exec(`
		INSERT INTO voter_stats (upload_id, station_id, male, female, wasted, total)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uploadID, stationID, male, female, wasted, male+female)
	if err != nil {
		t.Fatalf("Failed to create test voter stats: %v", err)
	}

	return uploadID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
