package saw

import (
	"log/slog"

	"github.com/hupe1980/colsaw/internal/compress"
	"github.com/hupe1980/colsaw/internal/resource"
)

// Compression selects the codec column bodies are written with.
type Compression = compress.Type

const (
	CompressionNone   = compress.None
	CompressionLZ4    = compress.LZ4
	CompressionSnappy = compress.Snappy
	CompressionZstd   = compress.Zstd
)

// ParseCompression parses "none", "lz4", "snappy" or "zstd".
func ParseCompression(s string) (Compression, error) { return compress.Parse(s) }

type options struct {
	compression Compression
	concurrency int
	ioLimit     int64
	memoryLimit int64
	columns     []string
	logger      *slog.Logger
	rc          *resource.Controller
}

// Option configures Write and Read. Options that only apply to one side
// are ignored by the other.
type Option func(*options)

func defaultOptions() options {
	return options{
		compression: CompressionLZ4,
		concurrency: 1,
		logger:      slog.New(slog.DiscardHandler),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rc == nil {
		o.rc = resource.NewController(resource.Config{
			MemoryLimitBytes:   o.memoryLimit,
			MaxWorkers:         int64(o.concurrency),
			IOLimitBytesPerSec: o.ioLimit,
		})
	}
	return o
}

// WithCompression sets the body codec for Write. Default LZ4.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithConcurrency sets how many column bodies are processed at once.
// Values below 1 mean 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// WithIOLimit caps blob throughput in bytes per second. 0 means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = max(bytesPerSec, 0)
	}
}

// WithMemoryLimit caps the decoded body bytes a Read may hold. 0 means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = max(bytes, 0)
	}
}

// WithColumns makes Read load only the named columns, in stored order.
func WithColumns(names ...string) Option {
	return func(o *options) {
		o.columns = names
	}
}

// WithLogger sets the logger. Column operations log at Debug, tables at
// Info and failures at Error.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithController shares one resource controller between calls, so limits
// apply across concurrent reads and writes. It overrides WithIOLimit and
// WithMemoryLimit.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}
