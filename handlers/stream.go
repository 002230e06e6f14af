// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/shadow-poll/middleware"
	"github.com/danielhkuo/shadow-poll/models"
	"github.com/danielhkuo/shadow-poll/registry"
)

type StreamHandler struct {
	db  *sql.DB
	reg *registry.Registry
}

func NewStreamHandler(db *sql.DB, reg *registry.Registry) *StreamHandler {
	return &StreamHandler{db: db, reg: reg}
}

// Stream handles GET /polls/:id/stream
//
// Opens a Server-Sent Events channel: one snapshot event immediately
// (so late subscribers see current state without waiting for a vote),
// then one event per subsequent vote until the client disconnects.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	poll, err := scanPoll(h.db.QueryRow(`
		SELECT `+pollColumns+`
		FROM polls
		WHERE id = $1
	`, pollID))
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll for stream", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Initial state, before registering: a client that connects between
	// two votes still sees where the poll stands right now
	if err := writeEvent(w, poll); err != nil {
		return
	}
	flusher.Flush()

	sub := h.reg.Subscribe(pollID)
	defer h.reg.Unsubscribe(sub)

	for {
		select {
		case <-r.Context().Done():
			// Client closed the connection
			return
		case snapshot, ok := <-sub.Updates():
			if !ok {
				// Registry dropped us (buffer overrun)
				return
			}
			if err := writeEvent(w, snapshot); err != nil {
				// Client gone mid-write: a disconnect, not an error
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent writes one SSE frame. The blank line terminates the frame,
// which is what makes the boundary unambiguous to the consumer.
func writeEvent(w io.Writer, poll models.Poll) error {
	payload, err := json.Marshal(poll)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
