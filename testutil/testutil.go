// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	dbpkg "github.com/danielhkuo/shadow-poll/db"
	"github.com/danielhkuo/shadow-poll/ident"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each call gets its own database, so tests stay independent
// and need no external services.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Named in-memory DB with a shared cache: the database lives as long
	// as the pool holds at least one connection
	name, err := ident.GenerateID(8)
	if err != nil {
		t.Fatalf("Failed to generate test database name: %v", err)
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// SQLite allows one writer; a single pooled connection avoids
	// "database is locked" under the concurrency tests
	db.SetMaxOpenConns(1)

	if err := dbpkg.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// CreateTestPoll inserts a poll and returns its ID and slug. Pass one
// or two extra labels to populate option slots C and D.
func CreateTestPoll(t *testing.T, db *sql.DB, question, optionA, optionB string, extra ...string) (pollID, slug string) {
	t.Helper()

	pollID, err := ident.GenerateID(16)
	if err != nil {
		t.Fatalf("Failed to generate poll ID: %v", err)
	}
	slug, err = ident.NewSlug(question)
	if err != nil {
		t.Fatalf("Failed to generate slug: %v", err)
	}

	var optionC, optionD *string
	if len(extra) > 0 {
		optionC = &extra[0]
	}
	if len(extra) > 1 {
		optionD = &extra[1]
	}
	if len(extra) > 2 {
		t.Fatalf("A poll has at most 4 options, got %d", 2+len(extra))
	}

	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO polls (id, slug, question, option_a_text, option_b_text, option_c_text, option_d_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, pollID, slug, question, optionA, optionB, optionC, optionD, now, now)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, slug
}

// CountVotes returns the number of ledger rows for a poll.
func CountVotes(t *testing.T, db *sql.DB, pollID string) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM anonymous_votes WHERE poll_id = $1`, pollID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
