package benchmark_test

import (
	"fmt"
	"testing"

	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/filter"
	"github.com/hupe1980/colsaw/index"
	"github.com/hupe1980/colsaw/order"
	"github.com/hupe1980/colsaw/testutil"
)

// BenchmarkSort sorts on one, two and three keys.
func BenchmarkSort(b *testing.B) {
	tbl := testutil.NewRNG(42).Table("events", 100_000)

	for _, keys := range [][]string{
		{"id"},
		{"state", "-score"},
		{"-day", "state", "id"},
	} {
		b.Run(fmt.Sprint(keys), func(b *testing.B) {
			spec, err := order.Parse(tbl, keys...)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			for b.Loop() {
				if _, err := order.Permutation(tbl, spec); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkFilterSelectivity compares a linear scan with an index lookup at
// several selectivities.
func BenchmarkFilterSelectivity(b *testing.B) {
	const rows = 100_000
	tbl := testutil.NewRNG(42).Table("events", rows)
	col, err := tbl.Column("id")
	if err != nil {
		b.Fatal(err)
	}
	idx, err := index.Build(col)
	if err != nil {
		b.Fatal(err)
	}

	// id is uniform over [-1000, 1000)
	for _, pct := range []int{1, 10, 50, 90} {
		bound := int32(-1000 + 20*pct)

		b.Run(fmt.Sprintf("scan/%d%%", pct), func(b *testing.B) {
			f := filter.Where("id", column.Lt(bound))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := f.Apply(tbl); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(fmt.Sprintf("index/%d%%", pct), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := idx.LessThan(bound); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkIndexBuild measures building a sorted index per column type.
func BenchmarkIndexBuild(b *testing.B) {
	tbl := testutil.NewRNG(42).Table("events", 100_000)
	for _, name := range []string{"id", "score", "state", "day"} {
		col, err := tbl.Column(name)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(col.Type().Name(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := index.Build(col); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
