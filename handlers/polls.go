// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	dbpkg "github.com/danielhkuo/shadow-poll/db"
	"github.com/danielhkuo/shadow-poll/ident"
	"github.com/danielhkuo/shadow-poll/middleware"
	"github.com/danielhkuo/shadow-poll/models"
)

// pollColumns is the canonical column list for poll snapshot queries;
// keep in sync with scanPoll.
const pollColumns = `id, slug, question,
       option_a_text, option_b_text, option_c_text, option_d_text,
       option_a_votes, option_b_votes, option_c_votes, option_d_votes,
       created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPoll(row rowScanner) (models.Poll, error) {
	var p models.Poll
	err := row.Scan(
		&p.ID, &p.Slug, &p.Question,
		&p.OptionAText, &p.OptionBText, &p.OptionCText, &p.OptionDText,
		&p.OptionAVotes, &p.OptionBVotes, &p.OptionCVotes, &p.OptionDVotes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

type PollHandler struct {
	db *sql.DB
}

func NewPollHandler(db *sql.DB) *PollHandler {
	return &PollHandler{db: db}
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT ` + pollColumns + `
		FROM polls
		ORDER BY created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			slog.Error("failed to scan poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /polls/:slug
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	poll, err := scanPoll(h.db.QueryRow(`
		SELECT `+pollColumns+`
		FROM polls
		WHERE slug = $1
	`, slug))

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err, "slug", slug)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input: a poll needs a question and at least two options
	if req.Question == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.OptionAText == "" || req.OptionBText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "optionA_text and optionB_text are required")
		return
	}
	// Option D without C would leave a hole in the slot ordering
	if req.OptionDText != "" && req.OptionCText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "optionD_text requires optionC_text")
		return
	}

	pollID, err := ident.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate poll ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug, err = ident.NewSlug(req.Question)
		if err != nil {
			slog.Error("failed to generate slug", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
			return
		}
	}

	var optionC, optionD *string
	if req.OptionCText != "" {
		optionC = &req.OptionCText
	}
	if req.OptionDText != "" {
		optionD = &req.OptionDText
	}

	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO polls (id, slug, question, option_a_text, option_b_text, option_c_text, option_d_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, pollID, slug, req.Question, req.OptionAText, req.OptionBText, optionC, optionD, now, now)

	if err != nil {
		if dbpkg.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "A poll with this slug already exists")
			return
		}
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "slug", slug)

	poll, err := scanPoll(h.db.QueryRow(`
		SELECT `+pollColumns+`
		FROM polls
		WHERE id = $1
	`, pollID))
	if err != nil {
		slog.Error("failed to read back poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, poll)
}
