package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/colsaw"
	"github.com/hupe1980/colsaw/blobstore"
	"github.com/hupe1980/colsaw/saw"
	"github.com/hupe1980/colsaw/testutil"
)

var compressions = []saw.Compression{saw.CompressionNone, saw.CompressionLZ4, saw.CompressionSnappy, saw.CompressionZstd}

// BenchmarkSave measures writing a mixed table with each codec.
func BenchmarkSave(b *testing.B) {
	for _, rows := range []int{10_000, 100_000} {
		tbl := testutil.NewRNG(42).Table("events", rows)
		for _, c := range compressions {
			b.Run(fmt.Sprintf("rows=%d/%s", rows, c), func(b *testing.B) {
				ctx := context.Background()
				db, err := colsaw.Open(b.TempDir(), colsaw.WithCompression(c), colsaw.WithConcurrency(4))
				if err != nil {
					b.Fatal(err)
				}
				b.ReportAllocs()
				b.ResetTimer()
				for b.Loop() {
					if _, err := db.Save(ctx, tbl); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkLoad measures reading back the table written by BenchmarkSave,
// reporting the stored size per op.
func BenchmarkLoad(b *testing.B) {
	const rows = 100_000
	tbl := testutil.NewRNG(42).Table("events", rows)

	for _, c := range compressions {
		for _, conc := range []int{1, 4} {
			b.Run(fmt.Sprintf("%s/concurrency=%d", c, conc), func(b *testing.B) {
				ctx := context.Background()
				mem := blobstore.NewMemoryStore()
				db, err := colsaw.Open("", colsaw.WithBlobStore(mem), colsaw.WithCompression(c), colsaw.WithConcurrency(conc))
				if err != nil {
					b.Fatal(err)
				}
				meta, err := db.Save(ctx, tbl)
				if err != nil {
					b.Fatal(err)
				}
				var raw int64
				for _, cm := range meta.Columns {
					raw += cm.BodySize
				}
				b.SetBytes(raw)
				b.ReportMetric(float64(storedBytes(b, mem))/float64(raw), "ratio")

				b.ReportAllocs()
				b.ResetTimer()
				for b.Loop() {
					if _, err := db.Load(ctx, "events"); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func storedBytes(b *testing.B, mem *blobstore.MemoryStore) int64 {
	b.Helper()
	ctx := context.Background()
	names, err := mem.List(ctx, "")
	if err != nil {
		b.Fatal(err)
	}
	var total int64
	for _, n := range names {
		data, err := blobstore.ReadAll(ctx, mem, n)
		if err != nil {
			b.Fatal(err)
		}
		total += int64(len(data))
	}
	return total
}
