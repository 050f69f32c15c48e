// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"context"
	"net/url"
	"strings"
)

// View binds a dashboard path to the cube endpoint it plots.
type View struct {
	Path       string
	Link       string
	Title      string
	Endpoint   string
	Params     url.Values
	Collective bool
}

// Views is the fixed navigation table, in menu order.
var Views = []View{
	{
		Path:       "/cube_student",
		Link:       "Cube Student Data belonging to Chennai",
		Title:      "Cube Student Data",
		Endpoint:   "cube_sales",
		Collective: true,
	},
	{
		Path:     "/cube_drilldown_region",
		Link:     "Cube Drilldown Region Data and Year (all years)",
		Title:    "Cube Drilldown Region Data",
		Endpoint: "cube_drilldown_region",
		Params:   url.Values{"region_id": {"5"}},
	},
	{
		Path:     "/cube_drilldown_time",
		Link:     "Cube Drilldown Time Data by month",
		Title:    "Cube Drilldown Time Data",
		Endpoint: "cube_drilldown_time",
		Params:   url.Values{"year": {"2024"}},
	},
	{
		Path:     "/cube_rollup_region",
		Link:     "Cube DrillDown with total",
		Title:    "Cube Rollup Region Data",
		Endpoint: "cube_rollup_region",
		Params:   url.Values{"year": {"2024"}},
	},
}

// Lookup finds the view for a path. The leading slash is optional.
func Lookup(path string) (View, bool) {
	path = "/" + strings.TrimPrefix(path, "/")
	for _, v := range Views {
		if v.Path == path {
			return v, true
		}
	}
	return View{}, false
}

// Name is the path without its leading slash.
func (v View) Name() string {
	return strings.TrimPrefix(v.Path, "/")
}

// Load fetches the view's rows once and resolves them into points. Rows
// that cannot be plotted yield no points.
func (v View) Load(ctx context.Context, f Fetcher) []Point {
	return pointsOrEmpty(f.Fetch(ctx, v.Endpoint, v.Params), v.Collective)
}

// Figure fetches the view's rows once and plots them.
func (v View) Figure(ctx context.Context, f Fetcher) Figure {
	return NewScatter3D(f.Fetch(ctx, v.Endpoint, v.Params), v.Title, v.Collective)
}

func pointsOrEmpty(rows [][]any, collective bool) []Point {
	points, err := Points(rows)
	if err != nil {
		return []Point{}
	}
	if collective {
		return Collapse(points)
	}
	return points
}
