// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cube

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/dropout-cube/models"
)

var ErrRegionCycle = errors.New("region hierarchy contains a cycle")

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Store runs cube statements and scans them into model rows.
type Store struct {
	q Querier
	b Builder
}

func NewStore(q Querier, b Builder) *Store {
	return &Store{q: q, b: b}
}

// Facts returns fact rows matching the filter. The zero filter returns all facts.
func (s *Store) Facts(ctx context.Context, f SliceFilter) ([]models.FactRow, error) {
	return s.facts(ctx, f.Where())
}

// RegionFacts returns the facts of a region and all of its descendants.
// It returns ErrRegionCycle if the hierarchy below the region loops.
func (s *Store) RegionFacts(ctx context.Context, regionID int64) ([]models.FactRow, error) {
	ids, err := s.RegionClosure(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.FactRow{}, nil
	}

	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return s.facts(ctx, NewWhere().In(ColRegionID, values...))
}

// RegionClosure returns the region and every transitive descendant.
// An unknown region yields an empty slice.
func (s *Store) RegionClosure(ctx context.Context, regionID int64) ([]int64, error) {
	stmt := s.b.RegionClosure(regionID)
	rows, err := s.q.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query region closure: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id, cycle int64
		if err := rows.Scan(&id, &cycle); err != nil {
			return nil, fmt.Errorf("failed to scan region closure: %w", err)
		}
		if cycle != 0 {
			return nil, fmt.Errorf("region %d: %w", id, ErrRegionCycle)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read region closure: %w", err)
	}
	return ids, nil
}

// Cube returns every grouping of CUBE(region, year, standard).
func (s *Store) Cube(ctx context.Context) ([]models.CubeRow, error) {
	stmt := s.b.Cube(nil)
	rows, err := s.q.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cube: %w", err)
	}
	defer rows.Close()

	out := []models.CubeRow{}
	for rows.Next() {
		var (
			region, standard sql.NullString
			year             sql.NullInt64
			total            sql.NullFloat64
			mask             int64
		)
		if err := rows.Scan(&region, &year, &standard, &total, &mask); err != nil {
			return nil, fmt.Errorf("failed to scan cube row: %w", err)
		}
		m := uint(mask)
		out = append(out, models.CubeRow{
			RegionName:    groupedString(m, 3, 0, region),
			Year:          groupedInt(m, 3, 1, year),
			StandardName:  groupedString(m, 3, 2, standard),
			TotalStudents: total.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cube rows: %w", err)
	}
	return out, nil
}

// RegionRollup returns ROLLUP(region, month, standard) for one year.
func (s *Store) RegionRollup(ctx context.Context, year int) ([]models.RegionRollupRow, error) {
	stmt := s.b.RegionRollup(year)
	rows, err := s.q.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query region rollup: %w", err)
	}
	defer rows.Close()

	out := []models.RegionRollupRow{}
	for rows.Next() {
		var (
			region, standard sql.NullString
			month            sql.NullInt64
			total            sql.NullFloat64
			mask             int64
		)
		if err := rows.Scan(&region, &month, &standard, &total, &mask); err != nil {
			return nil, fmt.Errorf("failed to scan region rollup row: %w", err)
		}
		m := uint(mask)
		out = append(out, models.RegionRollupRow{
			RegionName:    groupedString(m, 3, 0, region),
			Month:         groupedInt(m, 3, 1, month),
			StandardName:  groupedString(m, 3, 2, standard),
			TotalStudents: total.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read region rollup rows: %w", err)
	}
	return out, nil
}

// Periods returns per-month totals for one year.
func (s *Store) Periods(ctx context.Context, year int) ([]models.PeriodRow, error) {
	stmt := s.b.Periods(year)
	rows, err := s.q.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	out := []models.PeriodRow{}
	for rows.Next() {
		var (
			row   models.PeriodRow
			total sql.NullFloat64
		)
		if err := rows.Scan(&row.RegionName, &row.Year, &row.Month, &row.StandardName, &total); err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		row.TotalStudents = total.Float64
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read period rows: %w", err)
	}
	return out, nil
}

func (s *Store) facts(ctx context.Context, where *Where) ([]models.FactRow, error) {
	stmt := s.b.Facts(where)
	rows, err := s.q.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query facts: %w", err)
	}
	defer rows.Close()

	out := []models.FactRow{}
	for rows.Next() {
		var (
			row      models.FactRow
			students sql.NullFloat64
		)
		if err := rows.Scan(&row.RegionName, &row.Year, &row.Month, &row.Day, &row.StandardName, &students); err != nil {
			return nil, fmt.Errorf("failed to scan fact row: %w", err)
		}
		row.Students = students.Float64
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fact rows: %w", err)
	}
	return out, nil
}

// Dimension columns are NOT NULL, so a grouped dimension always has a value.
func groupedString(mask uint, n, i int, v sql.NullString) *string {
	if !Includes(mask, n, i) {
		return nil
	}
	s := v.String
	return &s
}

func groupedInt(mask uint, n, i int, v sql.NullInt64) *int {
	if !Includes(mask, n, i) {
		return nil
	}
	x := int(v.Int64)
	return &x
}
