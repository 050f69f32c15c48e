// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns the query service Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

ParseDashboardFlags returns the visualization service DashboardConfig:

	cfg, err := cliparse.ParseDashboardFlags(os.Args[1:])

# Query Service Flags

	-p             Server port (default: 5000)
	-d             Database URL (required)
	-t             Database type: postgres, pgx or sqlite (default: postgres)
	-fact-layout   named or packed (default: named)
	-migrate       Create the named-layout schema on start
	-seed          Load sample data on start
	-env           Dotenv file (default: .env)

# Dashboard Flags

	-p             Server port (default: 8050)
	-api           Cube API base URL (default: http://localhost:5000)
	-env           Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	FACT_LAYOUT   → -fact-layout
	MIGRATE       → -migrate
	SEED          → -seed
	CUBE_API_URL  → -api

CLI flags take precedence over environment variables. The dotenv file is
optional; values it sets never override variables already present in the
environment.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - the database type or fact layout is unknown
  - the packed layout is combined with sqlite
  - sample data is requested with the packed layout
*/
package cliparse
