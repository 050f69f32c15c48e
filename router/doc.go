// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the cube API and the dashboard.

# Route Registration

NewRouter creates the query service mux. It fails if the configured database
type and fact layout cannot be combined:

	mux, err := router.NewRouter(db, cfg)

NewDashboardRouter creates the visualization service mux around a fetcher:

	mux := router.NewDashboardRouter(dashboard.NewClient(apiURL, nil))

# Query Service Endpoints

Health and metrics:

	GET /health  - "OK"
	GET /metrics - Prometheus exposition
	GET /        - banner

Cube queries (JSON arrays of arrays):

	GET /cube_sales
	GET /cube_rollup
	GET /cube_drilldown_region?region_id=
	GET /cube_rollup_region?year=
	GET /cube_slice?region_name=&year=&standard_name=
	GET /cube_drilldown_time?year=

# Dashboard Endpoints

	GET /figures/{view}   - Plotly figure JSON
	GET /snapshots/{view} - PNG projection
	GET /{path}           - HTML page, "404" for unknown paths

Cube and dashboard routes are wrapped with middleware.WithLogging.
*/
package router
