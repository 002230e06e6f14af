// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, slug (optional), optionA_text..optionD_text
  - VoteRequest: option ("A"|"B"|"C"|"D"), voterIdentifier (client UUID)

# Domain Types

  - Poll: question, up to four labeled option slots, per-slot counters,
    timestamps. A and B are required; C and D are nullable slots.
  - VoteRecord: one ledger row per (poll, voter identity) pair
  - ErrorResponse: error, message

Poll is also the payload of every stream event: subscribers always
receive a full snapshot, never a delta.

# Errors

Sentinel errors for the vote path live in errors.go:

	ErrInvalidOption  → 400
	ErrInvalidVoter   → 400
	ErrDuplicateVote  → 403
	ErrPollNotFound   → 404
	ErrConsistency    → 500 (fatal class, logged distinctly)

# Option Slots

Option names on the wire are the single letters A-D:

	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"

Poll.HasOption reports whether a slot is populated; voting on an
unpopulated slot is rejected with ErrInvalidOption.
*/
package models
