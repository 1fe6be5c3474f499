// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the drtally API server.

drtally collects photographed Declaration of Results (DR) forms from
polling stations, extracts vote counts from them, and serves live
aggregated tallies to an election dashboard.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=drtally.db SESSION_SALT=secret go run .

Or with flags:

	go run . -p 4270 -d "postgres://..." -t postgres -session-salt secret

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string (Postgres URL or SQLite file path)
  - SESSION_SALT (-session-salt): Secret for session token HMAC

Optional settings:

  - PORT (-p): Server port (default: 4270)
  - DATABASE_TYPE (-t): "postgres" or "sqlite" (default: sqlite)
  - EXTRACTOR_URL (-extractor): Remote OCR endpoint; placeholder data when unset
  - ADMIN_USERNAME / ADMIN_PASSWORD: Dashboard admin account (default: admin/admin)
  - PUBLIC_BASE_URL (-base-url): Base URL used in share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (stations, candidates, uploads, dashboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, auth, JSON helpers
  - models: Request/response types
  - auth: Session tokens and password hashing
  - db: Schema creation and candidate seeding
  - extract: DR form text extraction pipeline
  - events: In-process change feed behind the SSE endpoint
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
