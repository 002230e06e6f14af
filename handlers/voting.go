// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	dbpkg "github.com/danielhkuo/shadow-poll/db"
	"github.com/danielhkuo/shadow-poll/ident"
	"github.com/danielhkuo/shadow-poll/middleware"
	"github.com/danielhkuo/shadow-poll/models"
	"github.com/danielhkuo/shadow-poll/registry"
)

// voteColumn maps an option slot to the counter column it increments.
// Never interpolate user input into SQL outside this table.
var voteColumn = map[string]string{
	models.OptionA: "option_a_votes",
	models.OptionB: "option_b_votes",
	models.OptionC: "option_c_votes",
	models.OptionD: "option_d_votes",
}

type VoteHandler struct {
	db  *sql.DB
	reg *registry.Registry
}

func NewVoteHandler(db *sql.DB, reg *registry.Registry) *VoteHandler {
	return &VoteHandler{db: db, reg: reg}
}

// CastVote handles POST /polls/:id/vote
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := castVote(r.Context(), h.db, pollID, req.VoterIdentifier, req.Option)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, `Invalid vote option. Must name a populated option slot ("A"-"D").`)
		return
	case errors.Is(err, models.ErrInvalidVoter):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing or invalid voterIdentifier. A UUID is required.")
		return
	case errors.Is(err, models.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusForbidden, "You have already voted on this poll.")
		return
	case errors.Is(err, models.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	case errors.Is(err, models.ErrConsistency):
		// Fatal class: a vote row references a poll that is gone. Needs
		// manual reconciliation, never auto-corrected here.
		slog.Error("CONSISTENCY VIOLATION: vote recorded for missing poll",
			"poll_id", pollID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to process vote")
		return
	default:
		slog.Error("failed to process vote", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to process vote")
		return
	}

	slog.Info("vote cast",
		"poll_id", pollID,
		"option", req.Option,
		"total_votes", poll.TotalVotes(),
		"client_ip", middleware.GetClientIP(r),
	)

	// Fan the new snapshot out to live subscribers, then answer the voter
	h.reg.Broadcast(pollID, *poll)

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// castVote validates a vote, appends it to the ledger, bumps the chosen
// counter, and returns the post-vote snapshot. The ledger insert and the
// counter increment run in one transaction, so a vote is either fully
// applied or not at all - there is no window where a vote row exists
// without its increment.
//
// Double-vote protection comes from the ledger's (poll_id,
// voter_identifier) primary key alone. Two concurrent requests for the
// same identity both reach the INSERT; the storage engine commits
// exactly one and the other surfaces ErrDuplicateVote.
func castVote(ctx context.Context, sqlDB *sql.DB, pollID, voterIdentifier, option string) (*models.Poll, error) {
	column, ok := voteColumn[option]
	if !ok {
		return nil, models.ErrInvalidOption
	}
	if !ident.ValidVoterIdentifier(voterIdentifier) {
		return nil, models.ErrInvalidVoter
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback()

	poll, err := scanPoll(tx.QueryRowContext(ctx, `
		SELECT `+pollColumns+`
		FROM polls
		WHERE id = $1
	`, pollID))
	if err == sql.ErrNoRows {
		return nil, models.ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	// Voting "C" on a two-option poll names an empty slot
	if !poll.HasOption(option) {
		return nil, models.ErrInvalidOption
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO anonymous_votes (poll_id, voter_identifier, chosen_option, created_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, voterIdentifier, option, now)
	if err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return nil, models.ErrDuplicateVote
		}
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE polls
		SET `+column+` = `+column+` + 1, updated_at = $1
		WHERE id = $2
	`, now, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to increment counter: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// The poll row vanished between the snapshot read and the
		// increment. The insert above rolls back with the transaction,
		// but an already-committed orphan row (external deletion) is
		// exactly what this error class exists for.
		return nil, models.ErrConsistency
	}

	poll, err = scanPoll(tx.QueryRowContext(ctx, `
		SELECT `+pollColumns+`
		FROM polls
		WHERE id = $1
	`, pollID))
	if err != nil {
		return nil, fmt.Errorf("failed to read back poll: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}

	return &poll, nil
}
