// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the shadow-poll API server.

shadow-poll is an anonymous "would you rather" polling service: polls
with two to four options, one vote per anonymous identity, and live
result updates pushed to watchers over Server-Sent Events.

# Starting the Server

The server requires a database URL, via environment or CLI flag:

	DATABASE_URL=polls.db go run .

Or with flags:

	go run . -p 3000 -t postgres -d "postgres://..."

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite DSN or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - CORS_ORIGIN (-cors): Allowed frontend origins, comma-separated

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, streaming)
  - registry: in-memory fan-out of poll updates to live subscribers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types and vote-path errors
  - ident: ID, slug, and voter-identifier utilities
  - db: Schema creation and seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
