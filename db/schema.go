// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is kept portable across PostgreSQL and SQLite: no NOW()
// defaults (timestamps are set by the application) and no dialect-only
// column types.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS polls (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    question TEXT NOT NULL,
    option_a_text TEXT NOT NULL,
    option_b_text TEXT NOT NULL,
    option_c_text TEXT,
    option_d_text TEXT,
    option_a_votes INTEGER NOT NULL DEFAULT 0,
    option_b_votes INTEGER NOT NULL DEFAULT 0,
    option_c_votes INTEGER NOT NULL DEFAULT 0,
    option_d_votes INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_polls_slug ON polls(slug);

-- Vote ledger. The primary key IS the double-vote guarantee: two
-- concurrent inserts for the same (poll, voter) pair cannot both commit.
CREATE TABLE IF NOT EXISTS anonymous_votes (
    poll_id TEXT NOT NULL REFERENCES polls(id),
    voter_identifier TEXT NOT NULL,
    chosen_option TEXT NOT NULL CHECK (chosen_option IN ('A', 'B', 'C', 'D')),
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (poll_id, voter_identifier)
);

CREATE INDEX IF NOT EXISTS idx_anonymous_votes_poll_id ON anonymous_votes(poll_id);
`

// IsUniqueViolation reports whether err is a uniqueness-constraint
// rejection from either supported driver. This is the authoritative
// duplicate signal; callers never pre-check with a SELECT.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}
	// modernc.org/sqlite surfaces SQLITE_CONSTRAINT_* as plain errors
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
