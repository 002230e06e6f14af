// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The DDL runs unchanged on PostgreSQL and SQLite.

# Tables

  - polls: question, option slots A-D with labels and counters, timestamps
  - anonymous_votes: the vote ledger, one row per (poll, voter identity)

# The Uniqueness Constraint

anonymous_votes carries PRIMARY KEY (poll_id, voter_identifier). This
constraint, enforced by the storage engine, is the sole mechanism that
prevents double voting. Application code treats a unique-violation error
on insert as the authoritative "already voted" signal:

	if db.IsUniqueViolation(err) { ... }

An application-level SELECT-then-INSERT check would race under
concurrent requests and is deliberately absent.

# Seeding

Seed inserts five sample polls when the polls table is empty, and is a
no-op otherwise.
*/
package db
