// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cube

import "fmt"

// Fact table layouts
const (
	LayoutNamed  = "named"
	LayoutPacked = "packed"
)

// FactSource yields the SQL expressions that address the fact table's keys
// and measure. The named layout stores them in ordinary columns; the packed
// layout keeps them inside a single cube value read by position:
// 1 = region key, 2 = time key, 3 = standard key, 4 = measure.
type FactSource struct {
	layout string
}

// SourceFor returns the fact source for a layout name.
func SourceFor(layout string) (FactSource, error) {
	switch layout {
	case LayoutNamed, "":
		return FactSource{layout: LayoutNamed}, nil
	case LayoutPacked:
		return FactSource{layout: LayoutPacked}, nil
	}
	return FactSource{}, fmt.Errorf("unknown fact layout %q", layout)
}

func (s FactSource) Layout() string { return s.layout }

func (s FactSource) RegionKey() string   { return s.key("region_id", 1) }
func (s FactSource) TimeKey() string     { return s.key("time_id", 2) }
func (s FactSource) StandardKey() string { return s.key("standard_id", 3) }

// Measure is the per-fact student count.
func (s FactSource) Measure() string {
	if s.layout == LayoutPacked {
		return "cube_ll_coord(f.cube_data, 4)::NUMERIC"
	}
	return "f.no_of_students"
}

func (s FactSource) key(column string, position int) string {
	if s.layout == LayoutPacked {
		return fmt.Sprintf("cube_ll_coord(f.cube_data, %d)", position)
	}
	return "f." + column
}

// from is the star join shared by every statement.
func (s FactSource) from() string {
	return fmt.Sprintf(`FROM student_dropout_fact f
JOIN region_dim r ON %s = r.region_id
JOIN time_dim t ON %s = t.time_id
JOIN standard_dim s ON %s = s.standard_id`, s.RegionKey(), s.TimeKey(), s.StandardKey())
}
