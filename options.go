package colsaw

import (
	"log/slog"

	"github.com/hupe1980/colsaw/blobstore"
	"github.com/hupe1980/colsaw/saw"
)

// DefaultMetadataCacheBytes is the default size of the metadata record cache.
const DefaultMetadataCacheBytes = 4 << 20

type options struct {
	compression        saw.Compression
	concurrency        int
	ioLimit            int64
	memoryLimit        int64
	metadataCacheBytes int64
	blobStore          blobstore.BlobStore
	metricsCollector   MetricsCollector
	logger             *Logger
}

// Option configures a Store.
type Option func(*options)

// WithCompression sets the codec column bodies are saved with.
// The default is LZ4.
func WithCompression(c saw.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithConcurrency sets how many column bodies are encoded or decoded at
// once. The limit is shared by every operation on the Store. Default 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// WithIOLimit caps the blob throughput of the Store in bytes per second.
// 0 means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = max(bytesPerSec, 0)
	}
}

// WithMemoryLimit caps the decoded column bytes held by concurrent loads.
// A load that would exceed it fails with ErrMemoryLimitExceeded.
// 0 means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = max(bytes, 0)
	}
}

// WithMetadataCache sets the byte capacity of the in-memory cache of
// metadata records. 0 disables the cache.
func WithMetadataCache(bytes int64) Option {
	return func(o *options) {
		o.metadataCacheBytes = max(bytes, 0)
	}
}

// WithBlobStore stores tables in bs instead of a local directory.
//
// Example:
//
//	db, _ := colsaw.Open("", colsaw.WithBlobStore(blobstore.NewMemoryStore()))
func WithBlobStore(bs blobstore.BlobStore) Option {
	return func(o *options) {
		o.blobStore = bs
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &colsaw.BasicMetricsCollector{}
//	db, _ := colsaw.Open("./data", colsaw.WithMetricsCollector(metrics))
//	// ... use db ...
//	stats := metrics.GetStats()
//	fmt.Printf("Loads: %d, Avg latency: %dns\n", stats.LoadCount, stats.LoadAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := colsaw.NewJSONLogger(slog.LevelInfo)
//	db, _ := colsaw.Open("./data", colsaw.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression:        saw.CompressionLZ4,
		concurrency:        1,
		metadataCacheBytes: DefaultMetadataCacheBytes,
		metricsCollector:   NoopMetricsCollector{},
		logger:             NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
