// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cube builds and runs the OLAP statements behind the API.

# Statements

A Builder is bound to a Dialect and a FactSource:

	b, err := cube.NewBuilder(cube.Postgres, src)
	stmt := b.Cube(nil)

Statements available:

  - Facts(where): the full star join, optionally filtered
  - Cube(where): CUBE(region_name, year, standard_name)
  - RegionRollup(year): ROLLUP(region_name, month, standard_name)
  - Periods(year): monthly totals within a year
  - RegionClosure(id): recursive walk down the region hierarchy

# Dialects

Postgres receives native GROUP BY CUBE/ROLLUP with a GROUPING() mask.
SQLite has no grouping sets, so the same grouping is emitted as one
UNION ALL branch per set with a literal mask. Both produce identical
columns, and the mask always uses Postgres bit order.

# Predicates

Where composes parameterized predicates joined with AND:

	w := cube.NewWhere().Eq(cube.ColYear, 2024).Eq(cube.ColRegionName, "Chennai")
	clause, args := w.Build(cube.Postgres, 1)
	// WHERE t.year = $1 AND r.region_name = $2

SliceFilter maps the optional slice parameters onto a Where.

# Fact Layouts

The named layout reads region_id, time_id, standard_id and no_of_students
columns. The packed layout reads the same fields by position from a
cube value with cube_ll_coord and is only available on Postgres.

# Store

Store runs statements against any Querier, usually the request's *sql.Conn:

	store := cube.NewStore(conn, b)
	rows, err := store.RegionFacts(ctx, 5)

RegionFacts returns ErrRegionCycle when the hierarchy under the region
loops back on itself.
*/
package cube
