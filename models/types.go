// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "fmt"

// Sentinel labels for dimensions that were aggregated away.
// Only rendered at the JSON / chart boundary.
const (
	AllRegions   = "All Regions"
	AllYears     = "All Years"
	AllMonths    = "All Months"
	AllStandards = "All Standards"
	AllTime      = "All Time"
)

// Operation names, used for metrics labels and log fields
const (
	OpCubeSales       = "cube_sales"
	OpCubeRollup      = "cube_rollup"
	OpDrilldownRegion = "cube_drilldown_region"
	OpRollupRegion    = "cube_rollup_region"
	OpSlice           = "cube_slice"
	OpDrilldownTime   = "cube_drilldown_time"
)

// Domain types

// FactRow is one fact joined with its region, time and standard labels.
type FactRow struct {
	RegionName   string
	Year         int
	Month        int
	Day          int
	StandardName string
	Students     float64
}

// Cells renders the row as region, year, month, day, standard, students.
func (r FactRow) Cells() []any {
	return []any{r.RegionName, r.Year, r.Month, r.Day, r.StandardName, r.Students}
}

// CubeRow is one grouping of CUBE(region, year, standard).
// A nil dimension was aggregated away.
type CubeRow struct {
	RegionName    *string
	Year          *int
	StandardName  *string
	TotalStudents float64
}

// Cells renders the row as region, year, standard, total.
func (r CubeRow) Cells() []any {
	return []any{
		stringOr(r.RegionName, AllRegions),
		intOr(r.Year, AllYears),
		stringOr(r.StandardName, AllStandards),
		r.TotalStudents,
	}
}

// RegionRollupRow is one grouping of ROLLUP(region, month, standard) within a year.
type RegionRollupRow struct {
	RegionName    *string
	Month         *int
	StandardName  *string
	TotalStudents float64
}

// Cells renders the row as region, month, standard, total.
func (r RegionRollupRow) Cells() []any {
	return []any{
		stringOr(r.RegionName, AllRegions),
		intOr(r.Month, AllMonths),
		stringOr(r.StandardName, AllStandards),
		r.TotalStudents,
	}
}

// PeriodRow is a per-month total for one region and standard
type PeriodRow struct {
	RegionName    string
	Year          int
	Month         int
	StandardName  string
	TotalStudents float64
}

// Period formats the year and month as YYYY-MM.
func (r PeriodRow) Period() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

// Cells renders the row as region, period, standard, total.
func (r PeriodRow) Cells() []any {
	return []any{r.RegionName, r.Period(), r.StandardName, r.TotalStudents}
}

// Celler is implemented by every row type the API returns.
type Celler interface {
	Cells() []any
}

// Table converts rows into the array-of-arrays wire format.
// Never returns nil so empty results encode as [].
func Table[T Celler](rows []T) [][]any {
	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Cells())
	}
	return out
}

func stringOr(v *string, sentinel string) any {
	if v == nil {
		return sentinel
	}
	return *v
}

func intOr(v *int, sentinel string) any {
	if v == nil {
		return sentinel
	}
	return *v
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
