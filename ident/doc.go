// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ident provides identity and identifier utilities.

# ID Generation

Random hex IDs for database records:

	id, err := ident.GenerateID(16)  // 32 hex characters

# Voter Identifiers

Voters are anonymous. The client generates a UUID once, stores it
locally, and sends it with every vote. The server only deduplicates on
it; it never verifies possession:

	if !ident.ValidVoterIdentifier(req.VoterIdentifier) { ... }

This is best-effort vote limiting, not authentication. Clearing local
storage mints a fresh identity.

# Slugs

Poll slugs are derived from the question text plus a short random
base62 suffix:

	slug, err := ident.NewSlug("Would you rather fight one horse-sized duck?")
	// "would-you-rather-fight-one-horse-a3Xk9"

The suffix keeps near-identical questions from colliding; the slug
column still carries a UNIQUE constraint as the real guarantee.
*/
package ident
