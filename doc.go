// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the dropout cube API server.

The server answers OLAP queries over a star schema of student dropout
counts: a fact table keyed by region, time and school standard, with a
region hierarchy that can be drilled into.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 5000 -d "postgres://..."

For local work without Postgres, use SQLite with the sample data:

	go run . -t sqlite -d cube.db -migrate -seed

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string or SQLite file

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): postgres, pgx or sqlite (default: postgres)
  - FACT_LAYOUT (--fact-layout): named or packed (default: named)
  - MIGRATE (--migrate): create the named-layout schema
  - SEED (--seed): load the sample region hierarchy and facts

A .env file in the working directory is read if present (--env to change).

# Dashboard

The 3D scatter dashboard is a separate binary in cmd/dashboard:

	go run ./cmd/dashboard -api http://localhost:5000

It serves on port 8050 by default.

# Architecture

	main.go      - Entry point, server setup
	cliparse/    - Configuration parsing
	cube/        - SQL statement builder and store for cube queries
	dashboard/   - API client, figures, views, PNG snapshots
	db/          - Driver selection, schema and sample data
	handlers/    - HTTP request handlers
	metrics/     - Prometheus collectors
	middleware/  - Logging, CORS, response helpers
	models/      - Row types and wire format
	router/      - Route definitions
	testutil/    - Test helpers

# Graceful Shutdown

The server handles SIGINT and SIGTERM and closes the listener.
*/
package main
