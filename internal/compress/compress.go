package compress

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a body compression algorithm. The values are written to disk.
type Type uint8

const (
	// None stores bodies as-is.
	None Type = 0
	// LZ4 is LZ4 block compression (fast, the default).
	LZ4 Type = 1
	// Snappy is Snappy block compression.
	Snappy Type = 2
	// Zstd is Zstandard (better ratio, slower).
	Zstd Type = 3
)

var (
	// ErrUnknown is returned for a Type outside the enumeration.
	ErrUnknown = errors.New("compress: unknown compression")
	// ErrSizeMismatch is returned when a block does not decode to the declared size.
	ErrSizeMismatch = errors.New("compress: decompressed size mismatch")
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Snappy:
		return "snappy"
	case Zstd:
		return "zstd"
	}
	return fmt.Sprintf("compression(%d)", uint8(t))
}

// Valid reports whether t is a known algorithm.
func (t Type) Valid() bool { return t <= Zstd }

// Parse inverts String, ignoring case.
func Parse(s string) (Type, error) {
	for t := None; t <= Zstd; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknown, s)
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Compress encodes data with t. The returned type is the one actually
// applied: LZ4 reports incompressible input, which is then stored as None.
func Compress(t Type, data []byte) ([]byte, Type, error) {
	if len(data) == 0 {
		return nil, None, nil
	}

	switch t {
	case None:
		return data, None, nil
	case LZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, t, err
		}
		if n == 0 {
			return data, None, nil
		}
		return dst[:n], LZ4, nil
	case Snappy:
		return s2.EncodeSnappy(nil, data), Snappy, nil
	case Zstd:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), Zstd, nil
	}
	return nil, t, fmt.Errorf("%w: %d", ErrUnknown, uint8(t))
}

// Decompress decodes data written by Compress with type t. size is the
// uncompressed length recorded by the writer.
func Decompress(t Type, data []byte, size int) ([]byte, error) {
	if size == 0 {
		if len(data) != 0 {
			return nil, ErrSizeMismatch
		}
		return nil, nil
	}

	var (
		out []byte
		err error
	)
	switch t {
	case None:
		out = data
	case LZ4:
		out = make([]byte, size)
		var n int
		n, err = lz4.UncompressBlock(data, out)
		out = out[:max(n, 0)]
	case Snappy:
		var n int
		if n, err = s2.DecodedLen(data); err == nil && n != size {
			return nil, fmt.Errorf("%w: header says %d, expected %d", ErrSizeMismatch, n, size)
		}
		if err == nil {
			out, err = s2.Decode(make([]byte, size), data)
		}
	case Zstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err = dec.DecodeAll(data, make([]byte, 0, size))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknown, uint8(t))
	}
	if err != nil {
		return nil, fmt.Errorf("compress: %s: %w", t, err)
	}
	if len(out) != size {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrSizeMismatch, len(out), size)
	}
	return out, nil
}
