// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/shadow-poll/handlers"
	"github.com/danielhkuo/shadow-poll/middleware"
	"github.com/danielhkuo/shadow-poll/registry"
)

func NewRouter(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	// One registry per process; vote and stream handlers share it
	reg := registry.New()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db)
	voteHandler := handlers.NewVoteHandler(db, reg)
	streamHandler := handlers.NewStreamHandler(db, reg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Polls (public)
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{slug}", middleware.WithLogging(pollHandler.GetPoll))

	// Voting
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(voteHandler.CastVote))

	// Live updates (no WithLogging: the handler blocks for the lifetime
	// of the connection, which would make duration_ms meaningless)
	mux.HandleFunc("GET /polls/{id}/stream", streamHandler.Stream)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("shadow-poll API v1"))
	})

	return mux
}
