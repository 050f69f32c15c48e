// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the row and response types for the cube API.

# Row Types

Each query shape has its own row type:

  - FactRow: region, year, month, day, standard, students
  - CubeRow: CUBE(region, year, standard) grouping with a total
  - RegionRollupRow: ROLLUP(region, month, standard) grouping within a year
  - PeriodRow: per-month total for a region and standard

Grouping rows use nil pointers for dimensions that were aggregated away.
A nil is never confused with a NULL stored in the database: the store
decides nil-ness from the grouping mask, not from the column value.

# Wire Format

Every row type implements Celler. Table converts a slice of rows into the
array-of-arrays JSON the API returns:

	middleware.JSONResponse(w, http.StatusOK, models.Table(rows))

Cells is the presentation boundary. It is the only place the sentinel
labels are substituted:

	AllRegions   = "All Regions"
	AllYears     = "All Years"
	AllMonths    = "All Months"
	AllStandards = "All Standards"

AllTime is used by the dashboard when a composed time label is incomplete.

# Errors

ErrorResponse is the body of every 4xx/5xx reply:

	{"error": "Missing year parameter"}
*/
package models
