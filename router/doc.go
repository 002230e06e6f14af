// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the shadow-poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db)

It also creates the process-wide subscription registry and wires it
into the vote and stream handlers, so a vote cast through this mux
reaches every stream opened through it.

# Endpoints

Health:

	GET /health

Polls:

	GET  /polls        - List all polls
	POST /polls        - Create a poll
	GET  /polls/{slug} - Poll snapshot by slug

Voting:

	POST /polls/{id}/vote - Cast a vote (one per voter identity)

Live updates:

	GET /polls/{id}/stream - SSE stream of poll snapshots

All routes use Go 1.22+ method+pattern routing; unsupported methods on
defined paths return 405.
*/
package router
