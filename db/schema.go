// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open returns a handle for the configured database type.
// Idle connections are not kept, so every request that takes a
// connection dials a fresh one and closes it when done.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	driver, err := driverName(databaseType)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", databaseType, err)
	}
	conn.SetMaxIdleConns(0)

	return conn, nil
}

func driverName(databaseType string) (string, error) {
	switch databaseType {
	case "postgres":
		return "postgres", nil
	case "pgx":
		return "pgx", nil
	case "sqlite":
		return "sqlite", nil
	}
	return "", fmt.Errorf("unsupported database type %q", databaseType)
}

// CreateSchema creates the star schema with the named fact layout.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Regions (self-referencing hierarchy)
CREATE TABLE IF NOT EXISTS region_dim (
    region_id INTEGER PRIMARY KEY,
    region_name TEXT NOT NULL,
    parent_region_id INTEGER REFERENCES region_dim(region_id)
);

CREATE INDEX IF NOT EXISTS idx_region_dim_parent ON region_dim(parent_region_id);

-- Time points
CREATE TABLE IF NOT EXISTS time_dim (
    time_id INTEGER PRIMARY KEY,
    year INTEGER NOT NULL,
    month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
    day INTEGER NOT NULL CHECK (day BETWEEN 1 AND 31)
);

CREATE INDEX IF NOT EXISTS idx_time_dim_year ON time_dim(year);

-- Grade levels
CREATE TABLE IF NOT EXISTS standard_dim (
    standard_id INTEGER PRIMARY KEY,
    standard_name TEXT NOT NULL
);

-- Facts
CREATE TABLE IF NOT EXISTS student_dropout_fact (
    region_id INTEGER NOT NULL REFERENCES region_dim(region_id),
    time_id INTEGER NOT NULL REFERENCES time_dim(time_id),
    standard_id INTEGER NOT NULL REFERENCES standard_dim(standard_id),
    no_of_students INTEGER NOT NULL CHECK (no_of_students >= 0),
    PRIMARY KEY (region_id, time_id, standard_id)
);

CREATE INDEX IF NOT EXISTS idx_fact_time ON student_dropout_fact(time_id);
`
