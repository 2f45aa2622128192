// Package testutil provides testing utilities for colsaw.
//
// This package is intended for use in tests and benchmarks only.
// It generates reproducible columns and tables with skewed values and
// missing cells.
//
// # Random Tables
//
//	rng := testutil.NewRNG(seed)
//	tbl := rng.Table("events", 10_000)
//
// # Single Columns
//
//	ids := rng.Ints("id", n, 1000, 0.02)     // 2% missing
//	states := rng.Strings("state", n, 50, 0) // Zipf over 50 values
package testutil
