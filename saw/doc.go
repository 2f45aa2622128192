// Package saw reads and writes tables in the SAW on-disk columnar format.
//
// # Layout
//
// Every table gets its own directory in a blobstore.BlobStore, named after
// the table with whitespace removed:
//
//	<table>/Metadata.saw   schema record: name, row count, codec, generation, columns
//	<table>/0000.col       one compressed body per column, by column id
//	<table>/0001.col
//
// The metadata record is protected by a CRC32C checksum. Each body carries a
// header (type, write generation, row count, uncompressed size), the
// compressed payload and a trailer with the compressed length and an XXH64
// digest of the uncompressed payload.
//
// # Consistency
//
// Write clears the directory, writes the metadata, then the bodies, each
// blob published atomically on close. Read fails as a whole when a body is
// missing or extra (ErrInconsistent), carries a different generation or row
// count (ErrInconsistent), or does not decode (ErrCorrupt). Failures tied to
// one column are reported as *ColumnError.
//
// # Options
//
//	meta, err := saw.Write(ctx, store, tbl,
//	    saw.WithCompression(saw.CompressionZstd),
//	    saw.WithConcurrency(4))
//
//	tbl, err := saw.Read(ctx, store, "bush", saw.WithColumns("date", "approval"))
package saw
