// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The DDL stays portable across the postgres and sqlite drivers.

# Tables

The schema includes:

  - polling_station: Registered polling stations with district
  - candidate: Candidate slate
  - upload: One photographed DR form per row
  - result: Per-candidate vote counts on one form
  - voter_stats: Turnout statistics on one form

# Relationships

	polling_station 1──* upload
	upload 1──* result
	upload 1──1 voter_stats
	candidate 1──* result

result and voter_stats cascade on upload deletion. Stations and
candidates are never cascaded; handlers refuse to delete a station
with uploads or a candidate with results.

# Seeding

SeedCandidates inserts the default four-candidate slate into an empty
candidate table and leaves existing rows alone.

# Indexes

Performance indexes on:

  - polling_station.district
  - candidate.name (unique)
  - upload.station_id
  - result.candidate_id
  - voter_stats.station_id
*/
package db
