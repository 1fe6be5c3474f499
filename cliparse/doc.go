// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4270)
  - DatabaseURL: Postgres URL or SQLite file path (required)
  - DatabaseType: "postgres" or "sqlite" (default: sqlite)
  - AdminUsername / AdminPassword: Dashboard admin account (default: admin/admin)
  - SessionSalt: Secret for session token HMAC (required)
  - ExtractorURL: Remote OCR endpoint (optional)
  - PublicBaseURL: Public base URL for the dashboard frontend

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-extractor    Remote OCR endpoint
	-base-url     Public base URL
	-admin-user   Admin username
	-admin-pass   Admin password
	-session-salt Session token salt

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	EXTRACTOR_URL   → -extractor
	PUBLIC_BASE_URL → -base-url
	ADMIN_USERNAME  → -admin-user
	ADMIN_PASSWORD  → -admin-pass
	SESSION_SALT    → -session-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - SESSION_SALT must be provided
  - DATABASE_TYPE must be sqlite or postgres when set

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("sqlite", cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg, hub)
*/
package cliparse
