// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file path or PostgreSQL connection string
  - DatabaseType: sqlite (default) or postgres
  - ProgramID: base58 program id used to derive record addresses
  - MetricsEnabled: serve /metrics (default: true)
  - Verbose: debug logging

# CLI Flags

	-p, --port           Server port
	-d, --database-url   Database URL
	-t, --database-type  sqlite or postgres
	    --program-id     Program id
	    --no-metrics     Disable /metrics
	-v, --verbose        Debug logging
	    --env-file       Environment file (default: .env)

# Environment Variables

The env file is loaded first without overriding variables already set.
Flags then fall back to environment variables:

	PORT            → --port
	DATABASE_URL    → --database-url
	DATABASE_TYPE   → --database-type
	PROGRAM_ID      → --program-id
	METRICS_ENABLED → --no-metrics (inverted)
	VERBOSE         → --verbose

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - the database type is neither sqlite nor postgres
  - postgres is selected without a database URL
  - the program id is not a valid base58 public key
*/
package cliparse
