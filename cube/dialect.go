// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cube

import (
	"fmt"
	"strconv"
)

// Dialect captures the SQL differences between the supported databases.
type Dialect struct {
	Name string

	// positional placeholders (?) instead of numbered ones ($1)
	positional bool
	// native GROUP BY CUBE/ROLLUP and GROUPING()
	groupingSets bool
	// cube extension with cube_ll_coord()
	cubeExtension bool
}

var (
	Postgres = Dialect{Name: "postgres", groupingSets: true, cubeExtension: true}
	SQLite   = Dialect{Name: "sqlite", positional: true}
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database type %q", driver)
}

// Placeholder returns the bind marker for the n-th argument (1-based).
func (d Dialect) Placeholder(n int) string {
	if d.positional {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

// NativeGroupingSets reports whether CUBE/ROLLUP are emitted as-is.
func (d Dialect) NativeGroupingSets() bool {
	return d.groupingSets
}
