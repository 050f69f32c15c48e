// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import "strings"

// DefaultGroup absorbs every region outside the compass zones.
const DefaultGroup = "Chennai"

var zones = []string{"North", "South", "East"}

// CollectiveRegion maps a region name onto its zone: the first of North,
// South or East it contains, otherwise DefaultGroup.
func CollectiveRegion(region string) string {
	for _, zone := range zones {
		if strings.Contains(region, zone) {
			return zone
		}
	}
	return DefaultGroup
}

// Collapse relabels points by zone and truncates time labels to the year.
func Collapse(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		year, _, _ := strings.Cut(p.Time, "-")
		out[i] = Point{
			Region:   CollectiveRegion(p.Region),
			Time:     year,
			Standard: p.Standard,
			Students: p.Students,
		}
	}
	return out
}
