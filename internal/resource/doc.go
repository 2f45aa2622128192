// Package resource enforces the limits a table store runs under.
//
// The Controller manages three resource types:
//
//   - Memory: decoded column bytes held by in-flight loads (non-blocking, fail-fast)
//   - Workers: column bodies encoded or decoded at once
//   - IO: blob throughput (token bucket)
//
// # Memory
//
// AcquireMemory returns ErrMemoryLimitExceeded immediately when the limit
// would be exceeded:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
//	if err := rc.AcquireMemory(size); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(size)
//
// # IO Rate Limiting
//
//	w := resource.NewRateLimitedWriter(ctx, blob, rc)
//	r := resource.NewRateLimitedReader(ctx, blob, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
