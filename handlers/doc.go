// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the shadow-poll API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - PollHandler: poll listing, lookup by slug, creation
  - VoteHandler: the vote write path
  - StreamHandler: live result streaming over SSE

	pollHandler := handlers.NewPollHandler(db)
	voteHandler := handlers.NewVoteHandler(db, reg)
	streamHandler := handlers.NewStreamHandler(db, reg)

# The Vote Path

POST /polls/{id}/vote runs castVote: validate, insert the ledger row,
increment the chosen counter, read back the snapshot - all in one
transaction. The ledger's (poll_id, voter_identifier) primary key is the
only double-vote guard; a unique-violation on insert maps to 403.

Error mapping:

	ErrInvalidOption / ErrInvalidVoter → 400
	ErrDuplicateVote                   → 403
	ErrPollNotFound                    → 404
	ErrConsistency / storage errors    → 500

On success the handler broadcasts the new snapshot through the
registry before writing the HTTP response.

# Streaming

GET /polls/{id}/stream is a Server-Sent Events endpoint. On open it
pushes the current snapshot once, then subscribes to the registry and
forwards every broadcast as a `data:` frame until the client
disconnects. A failed write is treated as a disconnect: the handler
unsubscribes and returns without surfacing an error.

Missed broadcasts are not replayed; the initial snapshot on connect is
how a late subscriber catches up.
*/
package handlers
