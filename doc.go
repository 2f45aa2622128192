// Package colsaw is an in-memory columnar dataframe core with a compressed
// on-disk format.
//
// Tables are made of typed columns (numbers, booleans, dictionary-encoded
// strings, free text and packed calendar values). Rows are selected with
// compressed bitmaps, sorted on several keys at once and indexed per column.
// Tables are saved in SAW format: one directory per table holding a
// checksummed metadata record and one compressed body per column.
//
// # Quick Start
//
//	ctx := context.Background()
//	db, _ := colsaw.Open("./data", colsaw.WithCompression(saw.CompressionZstd))
//
//	polls := table.Must("bush",
//	    column.NewDateColumn("date", packed.MustDate(2001, time.December, 12)),
//	    column.NewIntColumn("approval", 71),
//	    column.NewStringColumn("who", "fox"),
//	)
//	_, _ = db.Save(ctx, polls)
//
//	loaded, _ := db.Load(ctx, "bush", "approval")
//
// # Selecting and Sorting
//
//	high, _ := polls.Filter(filter.Where("approval", column.Gte(60)))
//	spec, _ := order.Parse(polls, "-date", "who")
//	sorted, _ := polls.Sort(spec)
//
// # Packages
//
//   - packed: calendar values packed into fixed-width integers
//   - selection: row sets over roaring bitmaps
//   - column: typed columns and predicates
//   - filter: predicate composition over tables
//   - order: multi-key sort
//   - index: sorted per-column index
//   - table: the table type
//   - saw: the on-disk format
//   - blobstore: storage backends
//
// # Observability
//
// Store operations report to a MetricsCollector (see prommetrics for a
// Prometheus implementation) and log through a Logger.
package colsaw
