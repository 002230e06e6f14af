// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Vote processing errors. Handlers map these to HTTP status codes;
// anything else that comes out of the vote path is a storage error and
// maps to a generic 500.
var (
	// ErrInvalidOption means the vote named an option slot that is not
	// populated on the poll (including "C"/"D" on a two-option poll).
	ErrInvalidOption = errors.New("invalid vote option")

	// ErrInvalidVoter means the voterIdentifier was missing or not a UUID.
	ErrInvalidVoter = errors.New("missing or invalid voter identifier")

	// ErrDuplicateVote means the ledger's uniqueness constraint rejected
	// the insert: this identity has already voted on this poll.
	ErrDuplicateVote = errors.New("voter has already voted on this poll")

	ErrPollNotFound = errors.New("poll not found")

	// ErrConsistency means a vote row exists but the poll row it references
	// is gone. This is never auto-corrected; it needs manual reconciliation.
	ErrConsistency = errors.New("vote recorded but poll row missing")
)
