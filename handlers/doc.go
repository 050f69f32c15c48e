// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the cube API.

# Handler Types

CubeHandler serves every OLAP endpoint. It is created with the database
handle and config, which select the SQL dialect and fact layout:

	cubeHandler, err := handlers.NewCubeHandler(db, cfg)

DashboardHandler serves the visualization pages. It only talks to the cube
API through a dashboard.Fetcher:

	dashboardHandler := handlers.NewDashboardHandler(dashboard.NewClient(apiURL, nil))

# Endpoints

	GET /cube_sales                          → CubeSales
	GET /cube_rollup                         → CubeRollup
	GET /cube_drilldown_region?region_id=5   → CubeDrilldownRegion
	GET /cube_rollup_region?year=2024        → CubeRollupRegion
	GET /cube_slice?region_name=&year=&standard_name= → CubeSlice
	GET /cube_drilldown_time?year=2024       → CubeDrilldownTime

Dashboard:

	GET /figures/{view}   → Figure
	GET /snapshots/{view} → Snapshot
	GET /{path}           → Page

Successful cube responses are JSON arrays of arrays. Roll-up rows carry
"All Regions", "All Years", "All Months" or "All Standards" in place of
dimensions that were aggregated away.

# Request Lifecycle

Required parameters are validated first; a missing or non-integer
region_id or year is a 400 and never touches the database.

Each request then takes its own connection with (*sql.DB).Conn and closes
it before returning. There is no retry.

# Errors

	400  missing/invalid parameter, cyclic region hierarchy
	500  "Database connection error" when no connection could be opened
	500  operation-specific message when the query fails

The underlying cause is logged and never sent to the client.
*/
package handlers
