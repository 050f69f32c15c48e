// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cube

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Columns addressable by predicates
const (
	ColRegionID     = "r.region_id"
	ColRegionName   = "r.region_name"
	ColYear         = "t.year"
	ColMonth        = "t.month"
	ColStandardName = "s.standard_name"
)

var ErrPackedLayoutUnsupported = errors.New("packed fact layout requires the Postgres cube extension")

// Statement is a SQL string with its bind arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Builder assembles the cube statements for one dialect and fact layout.
type Builder struct {
	dialect Dialect
	source  FactSource
}

func NewBuilder(d Dialect, s FactSource) (Builder, error) {
	if s.Layout() == LayoutPacked && !d.cubeExtension {
		return Builder{}, ErrPackedLayoutUnsupported
	}
	return Builder{dialect: d, source: s}, nil
}

func (b Builder) Dialect() Dialect { return b.dialect }

// SliceFilter holds the optional equality filters of a slice.
// A nil field is not filtered on.
type SliceFilter struct {
	RegionName   *string
	Year         *int
	StandardName *string
}

// Where converts the filter into conjunctive predicates.
func (f SliceFilter) Where() *Where {
	w := NewWhere()
	if f.RegionName != nil {
		w.Eq(ColRegionName, *f.RegionName)
	}
	if f.Year != nil {
		w.Eq(ColYear, *f.Year)
	}
	if f.StandardName != nil {
		w.Eq(ColStandardName, *f.StandardName)
	}
	return w
}

// Facts selects every matching fact with its labels:
// region_name, year, month, day, standard_name, no_of_students.
func (b Builder) Facts(where *Where) Statement {
	clause, args := where.Build(b.dialect, 1)
	var sb strings.Builder
	fmt.Fprintf(&sb, `SELECT r.region_name, t.year, t.month, t.day, s.standard_name, %s AS no_of_students
%s`, b.source.Measure(), b.source.from())
	if clause != "" {
		sb.WriteString("\n" + clause)
	}
	sb.WriteString("\nORDER BY r.region_name, t.year, t.month, t.day, s.standard_name")
	return Statement{SQL: sb.String(), Args: args}
}

// Cube aggregates over every subset of (region_name, year, standard_name):
// region_name, year, standard_name, total_students, grouping_mask.
func (b Builder) Cube(where *Where) Statement {
	return b.grouped(groupedQuery{
		dims:  []dimension{{ColRegionName, "region_name"}, {ColYear, "year"}, {ColStandardName, "standard_name"}},
		where: where,
		sets:  CubeSets(3),
		op:    "CUBE",
	})
}

// RegionRollup aggregates along (region_name, month, standard_name) for one year:
// region_name, month, standard_name, total_students, grouping_mask.
func (b Builder) RegionRollup(year int) Statement {
	return b.grouped(groupedQuery{
		dims:  []dimension{{ColRegionName, "region_name"}, {ColMonth, "month"}, {ColStandardName, "standard_name"}},
		where: NewWhere().Eq(ColYear, year),
		sets:  RollupSets(3),
		op:    "ROLLUP",
	})
}

// Periods totals one year per region, month and standard:
// region_name, year, month, standard_name, total_students.
func (b Builder) Periods(year int) Statement {
	clause, args := NewWhere().Eq(ColYear, year).Build(b.dialect, 1)
	sql := fmt.Sprintf(`SELECT r.region_name, t.year, t.month, s.standard_name, SUM(%s) AS total_students
%s
%s
GROUP BY r.region_name, t.year, t.month, s.standard_name
ORDER BY 1, 2, 3, 4`, b.source.Measure(), b.source.from(), clause)
	return Statement{SQL: sql, Args: args}
}

// RegionClosure walks region_dim from regionID down the parent links and
// returns region_id, is_cycle. The region itself is the base row. A child
// already on its path is returned once with is_cycle = 1 and not expanded,
// so cyclic hierarchies terminate.
func (b Builder) RegionClosure(regionID int64) Statement {
	sql := fmt.Sprintf(`WITH RECURSIVE region_hierarchy(region_id, path, is_cycle) AS (
    SELECT region_id, ',' || CAST(region_id AS TEXT) || ',', 0
    FROM region_dim
    WHERE region_id = %s
    UNION ALL
    SELECT r.region_id,
           rh.path || CAST(r.region_id AS TEXT) || ',',
           CASE WHEN rh.path LIKE '%%,' || CAST(r.region_id AS TEXT) || ',%%' THEN 1 ELSE 0 END
    FROM region_dim r
    JOIN region_hierarchy rh ON r.parent_region_id = rh.region_id
    WHERE rh.is_cycle = 0
)
SELECT region_id, is_cycle FROM region_hierarchy`, b.dialect.Placeholder(1))
	return Statement{SQL: sql, Args: []any{regionID}}
}

type dimension struct {
	expr  string
	alias string
}

type groupedQuery struct {
	dims  []dimension
	where *Where
	sets  []uint
	op    string // CUBE or ROLLUP
}

// grouped renders a grouping-set aggregation. Postgres gets the native
// operator; other dialects get one UNION ALL branch per grouping set with
// NULL in place of the omitted dimensions and a literal grouping mask.
func (b Builder) grouped(q groupedQuery) Statement {
	measure := fmt.Sprintf("SUM(%s) AS total_students", b.source.Measure())
	order := "ORDER BY grouping_mask"
	for i := range q.dims {
		order += ", " + strconv.Itoa(i+1)
	}

	exprs := make([]string, len(q.dims))
	for i, d := range q.dims {
		exprs[i] = d.expr
	}

	if b.dialect.NativeGroupingSets() {
		clause, args := q.where.Build(b.dialect, 1)
		cols := make([]string, len(q.dims))
		for i, d := range q.dims {
			cols[i] = d.expr + " AS " + d.alias
		}
		parts := []string{
			"SELECT " + strings.Join(cols, ", ") + ", " + measure +
				", GROUPING(" + strings.Join(exprs, ", ") + ") AS grouping_mask",
			b.source.from(),
		}
		if clause != "" {
			parts = append(parts, clause)
		}
		parts = append(parts,
			"GROUP BY "+q.op+"("+strings.Join(exprs, ", ")+")",
			order,
		)
		return Statement{SQL: strings.Join(parts, "\n"), Args: args}
	}

	n := len(q.dims)
	var args []any
	branches := make([]string, 0, len(q.sets))
	for _, mask := range q.sets {
		cols := make([]string, n)
		var groupBy []string
		for i, d := range q.dims {
			if Includes(mask, n, i) {
				cols[i] = d.expr + " AS " + d.alias
				groupBy = append(groupBy, d.expr)
			} else {
				cols[i] = "NULL AS " + d.alias
			}
		}

		clause, branchArgs := q.where.Build(b.dialect, len(args)+1)
		args = append(args, branchArgs...)

		parts := []string{
			"SELECT " + strings.Join(cols, ", ") + ", " + measure + ", " + strconv.FormatUint(uint64(mask), 10) + " AS grouping_mask",
			b.source.from(),
		}
		if clause != "" {
			parts = append(parts, clause)
		}
		if len(groupBy) > 0 {
			parts = append(parts, "GROUP BY "+strings.Join(groupBy, ", "))
		}
		branches = append(branches, strings.Join(parts, "\n"))
	}

	return Statement{SQL: strings.Join(branches, "\nUNION ALL\n") + "\n" + order, Args: args}
}
