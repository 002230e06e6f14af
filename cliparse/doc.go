// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: connection string / DSN (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - CORSOrigins: allowed cross-origin frontends (optional)

# CLI Flags

	-p     Server port
	-d     Database URL
	-t     Database type
	-cors  Allowed CORS origins, comma-separated

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	CORS_ORIGIN   → -cors

CLI flags take precedence over environment variables. main loads a
.env file first (godotenv), so a local .env works for all of these.

# Validation

ParseFlags returns an error if DATABASE_URL is missing or the database
type is not one of sqlite/postgres.
*/
package cliparse
