// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages the star schema.

# Opening

Open maps the configured database type to a database/sql driver:

  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib
  - sqlite: modernc.org/sqlite

The returned handle keeps no idle connections. Handlers take a connection
per request with (*sql.DB).Conn and close it before returning, so nothing
is reused between requests.

# Schema Creation

CreateSchema creates the named-layout star schema:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Databases using the packed cube layout manage their own schema and should
not call it.

# Tables

  - region_dim: region_id, region_name, parent_region_id
  - time_dim: time_id, year, month, day
  - standard_dim: standard_id, standard_name
  - student_dropout_fact: region_id, time_id, standard_id, no_of_students

# Relationships

	region_dim 1──* region_dim (parent_region_id)
	region_dim 1──* student_dropout_fact
	time_dim 1──* student_dropout_fact
	standard_dim 1──* student_dropout_fact

# Sample Data

SeedSample inserts a small Indian region hierarchy with facts for 2023
and 2024. Inserts use ON CONFLICT DO NOTHING, so reseeding is a no-op.
*/
package db
