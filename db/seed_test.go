// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB mirrors testutil.SetupTestDB, which this package cannot
// import without creating a cycle.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("Failed to generate database name: %v", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", hex.EncodeToString(buf))

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

func TestSeedPopulatesEmptyDatabase(t *testing.T) {
	conn := openTestDB(t)
	defer conn.Close()

	if err := Seed(conn); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM polls`).Scan(&count); err != nil {
		t.Fatalf("Failed to count polls: %v", err)
	}
	if count != len(seedPolls) {
		t.Errorf("Expected %d seeded polls, got %d", len(seedPolls), count)
	}

	// Slugs come through untouched
	var question string
	err := conn.QueryRow(`
		SELECT question FROM polls WHERE slug = $1
	`, "only-whisper-vs-only-shout").Scan(&question)
	if err != nil {
		t.Fatalf("Expected seeded slug to exist: %v", err)
	}
	if question != "Would you rather only be able to whisper or only be able to shout?" {
		t.Errorf("Unexpected seeded question: %s", question)
	}
}

func TestSeedLeavesExistingDataAlone(t *testing.T) {
	conn := openTestDB(t)
	defer conn.Close()

	if err := Seed(conn); err != nil {
		t.Fatalf("First seed failed: %v", err)
	}

	// Second run must not duplicate rows or delete anything
	if err := Seed(conn); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM polls`).Scan(&count); err != nil {
		t.Fatalf("Failed to count polls: %v", err)
	}
	if count != len(seedPolls) {
		t.Errorf("Expected %d polls after reseeding, got %d", len(seedPolls), count)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	conn := openTestDB(t)
	defer conn.Close()

	_, err := conn.Exec(`
		INSERT INTO polls (id, slug, question, option_a_text, option_b_text, created_at, updated_at)
		VALUES ('p1', 'dup-slug', 'Q?', 'A', 'B', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`)
	if err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO polls (id, slug, question, option_a_text, option_b_text, created_at, updated_at)
		VALUES ('p2', 'dup-slug', 'Q?', 'A', 'B', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`)
	if err == nil {
		t.Fatal("Expected unique violation on duplicate slug")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("Expected IsUniqueViolation to recognize %v", err)
	}

	if IsUniqueViolation(nil) {
		t.Error("IsUniqueViolation(nil) should be false")
	}
	if IsUniqueViolation(sql.ErrNoRows) {
		t.Error("IsUniqueViolation should not match unrelated errors")
	}
}
