// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cube

// A grouping mask uses the same bit order as Postgres GROUPING(d0, ..., dn-1):
// bit (n-1-i) is set when dimension i is aggregated away.

// CubeSets returns every subset of n dimensions, full detail first.
func CubeSets(n int) []uint {
	sets := make([]uint, 0, 1<<n)
	for mask := uint(0); mask < 1<<n; mask++ {
		sets = append(sets, mask)
	}
	return sets
}

// RollupSets returns the n+1 prefixes of n dimensions, from full detail
// down to the grand total.
func RollupSets(n int) []uint {
	sets := make([]uint, 0, n+1)
	for k := 0; k <= n; k++ {
		sets = append(sets, (1<<k)-1)
	}
	return sets
}

// Includes reports whether dimension i of n is grouped (not aggregated) in mask.
func Includes(mask uint, n, i int) bool {
	return mask&(1<<(n-1-i)) == 0
}
