// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dashboard turns cube API tables into 3D scatter figures.

# Fetching

Client calls the cube API and decodes the array-of-arrays body. Failures are
logged and counted, and the caller gets an empty table:

	client := dashboard.NewClient("http://localhost:5000", nil)
	rows := client.Fetch(ctx, "cube_rollup_region", url.Values{"year": {"2024"}})

# Figures

NewScatter3D accepts rows of width 6 (fact rows) or width 4 (aggregated
rows). Regions go on x, standards on y and time labels on z. Marker color is
the student count scaled into [0, 1] with Normalize.

With collective labels, regions collapse into North, South, East or Chennai
and time labels keep only the year.

# Views

Views lists the pages of the dashboard. Each page fetches its endpoint once
and renders the figure into an HTML page that loads Plotly from its CDN.
WriteSnapshot renders the same points as a flat PNG.
*/
package dashboard
