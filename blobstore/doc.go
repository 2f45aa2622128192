// Package blobstore provides the storage abstraction tables are persisted to.
//
// A BlobStore reads and writes whole named blobs. Implementations must be
// safe for concurrent use, and a blob written through Create becomes visible
// only when its WritableBlob is closed; Abort discards it.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, temp file plus rename on Close
//   - MemoryStore: in-process map, for tests and scratch tables
//   - CachingStore: wraps another store and caches selected small blobs
//   - FaultyStore: wraps another store and injects write, open and close failures
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
