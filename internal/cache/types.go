package cache

// BlockCache is a byte-oriented cache for immutable blobs keyed by name.
// Returned slices must be treated as read-only.
type BlockCache interface {
	// Get returns a cached block. ok=false if missing.
	Get(key string) (b []byte, ok bool)
	// Set caches a block. The cache retains b; the caller must treat it as immutable.
	Set(key string, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key string) bool)
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
}
