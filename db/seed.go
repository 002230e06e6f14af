// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/shadow-poll/ident"
)

type seedPoll struct {
	question string
	slug     string
	optionA  string
	optionB  string
}

var seedPolls = []seedPoll{
	{
		question: "Would you rather fight one horse-sized duck or one hundred duck-sized horses?",
		slug:     "horse-sized-duck-vs-duck-sized-horses",
		optionA:  "One horse-sized duck",
		optionB:  "One hundred duck-sized horses",
	},
	{
		question: "Would you rather have the ability to talk to animals or speak all human languages?",
		slug:     "talk-to-animals-vs-speak-all-languages",
		optionA:  "Talk to animals",
		optionB:  "Speak all human languages",
	},
	{
		question: "Would you rather always be 10 minutes late or always be 20 minutes early?",
		slug:     "10-minutes-late-vs-20-minutes-early",
		optionA:  "Always 10 minutes late",
		optionB:  "Always 20 minutes early",
	},
	{
		question: "Would you rather live without the internet or live without air conditioning?",
		slug:     "without-internet-vs-without-air-conditioning",
		optionA:  "Without Internet",
		optionB:  "Without Air Conditioning",
	},
	{
		question: "Would you rather only be able to whisper or only be able to shout?",
		slug:     "only-whisper-vs-only-shout",
		optionA:  "Only whisper",
		optionB:  "Only shout",
	},
}

// Seed inserts the sample polls when the polls table is empty. Unlike
// the usual dev-seed pattern it never deletes existing data.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM polls`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count polls: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	for _, p := range seedPolls {
		id, err := ident.GenerateID(16)
		if err != nil {
			return err
		}
		_, err = db.Exec(`
			INSERT INTO polls (id, slug, question, option_a_text, option_b_text, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, p.slug, p.question, p.optionA, p.optionB, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed poll %q: %w", p.slug, err)
		}
	}

	slog.Info("seeded sample polls", "count", len(seedPolls))
	return nil
}
