package saw

import (
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/hupe1980/colsaw/column"
)

const (
	bodyMagic      = 0x43574153 // "SAWC"
	bodyVersion    = 1
	bodyHeaderSize = 40
	bodyTailSize   = 16
)

// bodyHeader opens every column body.
//
// Format:
// Magic (4 bytes)
// Version (2 bytes)
// Compression (1 byte) - codec actually applied, may be None
// Type (1 byte)
// Generation (16 bytes)
// Elements (8 bytes)
// Size (8 bytes) - uncompressed payload length
//
// The compressed payload follows, then a trailer of
// CompressedLength (8 bytes) and XXH64 of the uncompressed payload (8 bytes).
type bodyHeader struct {
	Compression Compression
	Type        column.Type
	Generation  uuid.UUID
	Elements    int
	Size        int64
}

func (h bodyHeader) marshal() []byte {
	b := make([]byte, 0, bodyHeaderSize)
	b = binary.LittleEndian.AppendUint32(b, bodyMagic)
	b = binary.LittleEndian.AppendUint16(b, bodyVersion)
	b = append(b, uint8(h.Compression), uint8(h.Type))
	b = append(b, h.Generation[:]...)
	b = binary.LittleEndian.AppendUint64(b, uint64(h.Elements))
	b = binary.LittleEndian.AppendUint64(b, uint64(h.Size))
	return b
}

func bodyTrailer(compressedLen int, digest uint64) []byte {
	b := make([]byte, 0, bodyTailSize)
	b = binary.LittleEndian.AppendUint64(b, uint64(compressedLen))
	return binary.LittleEndian.AppendUint64(b, digest)
}

// parseBody splits a stored body into its header, compressed payload and
// payload digest. It checks framing only.
func parseBody(data []byte) (bodyHeader, []byte, uint64, error) {
	var h bodyHeader
	if len(data) < bodyHeaderSize+bodyTailSize {
		return h, nil, 0, corruptf("body of %d bytes is truncated", len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != bodyMagic {
		return h, nil, 0, corruptf("body: invalid magic: %x", magic)
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v != bodyVersion {
		return h, nil, 0, corruptf("body: unsupported version: %d", v)
	}
	h.Compression = Compression(data[6])
	h.Type = column.Type(data[7])
	copy(h.Generation[:], data[8:24])
	h.Elements = int(binary.LittleEndian.Uint64(data[24:32]))
	h.Size = int64(binary.LittleEndian.Uint64(data[32:40]))

	tail := data[len(data)-bodyTailSize:]
	compressedLen := binary.LittleEndian.Uint64(tail[0:8])
	digest := binary.LittleEndian.Uint64(tail[8:16])
	payload := data[bodyHeaderSize : len(data)-bodyTailSize]
	if compressedLen != uint64(len(payload)) {
		return h, nil, 0, corruptf("body: trailer says %d compressed bytes, found %d", compressedLen, len(payload))
	}
	if !h.Compression.Valid() {
		return h, nil, 0, corruptf("body: unknown compression %d", data[6])
	}
	if h.Elements < 0 || h.Size < 0 {
		return h, nil, 0, corruptf("body: negative element count or size")
	}
	return h, payload, digest, nil
}
