package saw

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/internal/conv"
	"github.com/hupe1980/colsaw/internal/hash"
	"github.com/hupe1980/colsaw/table"
)

const (
	metadataMagic   = 0x4d574153 // "SAWM"
	metadataVersion = 1
	headerSize      = 16
)

// ColumnMetadata describes one stored column.
type ColumnMetadata struct {
	ID   int
	Name string
	Type column.Type
	// DictionarySize is the number of distinct values of a String column,
	// and 0 for every other type.
	DictionarySize int
	// BodySize is the uncompressed length of the column body in bytes.
	BodySize int64
}

// Metadata is the schema record stored with every table.
type Metadata struct {
	Version     int
	Table       string
	Rows        int
	Compression Compression
	// Generation identifies one write. Every body of the table carries it.
	Generation uuid.UUID
	Columns    []ColumnMetadata
}

// ColumnNames returns the stored column names in table order.
func (m *Metadata) ColumnNames() []string {
	names := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the metadata of the named column.
func (m *Metadata) Column(name string) (ColumnMetadata, bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnMetadata{}, false
}

// Shape describes the stored table like table.Table.Shape.
func (m *Metadata) Shape() string {
	return fmt.Sprintf("%s: %d rows X %d cols", m.Table, m.Rows, len(m.Columns))
}

// Structure lists the stored columns like table.Table.Structure.
func (m *Metadata) Structure() *table.Table {
	idx := column.NewIntColumn("Index")
	names := column.NewStringColumn("Column Name")
	types := column.NewStringColumn("Column Type")
	for i, c := range m.Columns {
		idx.AppendValue(int32(i))
		_ = names.Append(c.Name)
		_ = types.Append(c.Type.Name())
	}
	return table.Must("Structure of "+m.Table, idx, names, types)
}

// MarshalBinary encodes the record.
//
// Format:
// Magic (4 bytes)
// Version (4 bytes)
// Checksum (4 bytes) - CRC32C of payload
// PayloadLength (4 bytes)
// Payload:
//
//	Table (string)
//	Rows (8 bytes)
//	Compression (1 byte)
//	Generation (16 bytes)
//	NumColumns (4 bytes)
//	Columns...
//	  ID (4 bytes)
//	  Name (string)
//	  Type tag (string)
//	  DictionarySize (4 bytes)
//	  BodySize (8 bytes)
//
// Strings are a 2-byte length followed by UTF-8 bytes.
func (m *Metadata) MarshalBinary() ([]byte, error) {
	pb := newPayloadBuffer(make([]byte, headerSize, headerSize+64+len(m.Columns)*48))

	pb.writeString(m.Table)
	pb.writeUint64(uint64(m.Rows))
	pb.writeUint8(uint8(m.Compression))
	pb.writeBytes(m.Generation[:])
	pb.writeUint32(uint32(len(m.Columns)))
	for _, c := range m.Columns {
		pb.writeUint32(uint32(c.ID))
		pb.writeString(c.Name)
		pb.writeString(c.Type.Name())
		pb.writeUint32(uint32(c.DictionarySize))
		pb.writeUint64(uint64(c.BodySize))
	}
	if pb.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, pb.err)
	}

	out := pb.buf
	payload := out[headerSize:]
	binary.LittleEndian.PutUint32(out[0:4], metadataMagic)
	binary.LittleEndian.PutUint32(out[4:8], metadataVersion)
	binary.LittleEndian.PutUint32(out[8:12], hash.CRC32C(payload))
	binary.LittleEndian.PutUint32(out[12:16], uint32(len(payload)))
	return out, nil
}

// UnmarshalBinary decodes and validates a record written by MarshalBinary.
func (m *Metadata) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return corruptf("metadata: %d bytes is shorter than the header", len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != metadataMagic {
		return corruptf("metadata: invalid magic: %x", magic)
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != metadataVersion {
		return corruptf("metadata: unsupported version: %d", version)
	}
	checksum := binary.LittleEndian.Uint32(data[8:12])
	length := binary.LittleEndian.Uint32(data[12:16])
	if uint64(length) != uint64(len(data)-headerSize) {
		return corruptf("metadata: payload is %d bytes, header says %d", len(data)-headerSize, length)
	}
	payload := data[headerSize:]
	if hash.CRC32C(payload) != checksum {
		return corruptf("metadata: checksum mismatch")
	}

	pb := newPayloadBuffer(payload)
	out := Metadata{Version: int(version)}
	out.Table = pb.readString()
	out.Rows = int(pb.readUint64())
	out.Compression = Compression(pb.readUint8())
	copy(out.Generation[:], pb.readBytes(16))

	n := int(pb.readUint32())
	if pb.err == nil && n > pb.remaining() {
		return corruptf("metadata: %d columns cannot fit in %d bytes", n, pb.remaining())
	}
	out.Columns = make([]ColumnMetadata, 0, n)
	for i := 0; i < n && pb.err == nil; i++ {
		c := ColumnMetadata{
			ID:   int(pb.readUint32()),
			Name: pb.readString(),
		}
		tag := pb.readString()
		c.DictionarySize = int(pb.readUint32())
		c.BodySize = int64(pb.readUint64())
		if pb.err != nil {
			break
		}
		typ, err := column.ParseType(tag)
		if err != nil {
			return fmt.Errorf("%w: metadata column %q: %w", ErrCorrupt, c.Name, err)
		}
		c.Type = typ
		out.Columns = append(out.Columns, c)
	}
	if pb.err != nil {
		if errors.Is(pb.err, io.ErrUnexpectedEOF) {
			return corruptf("metadata: truncated payload")
		}
		return fmt.Errorf("%w: metadata: %w", ErrCorrupt, pb.err)
	}
	if pb.remaining() != 0 {
		return corruptf("metadata: %d trailing bytes", pb.remaining())
	}
	if err := out.validate(); err != nil {
		return err
	}
	*m = out
	return nil
}

func (m *Metadata) validate() error {
	if !m.Compression.Valid() {
		return corruptf("metadata: unknown compression %d", uint8(m.Compression))
	}
	if m.Rows < 0 || uint64(m.Rows) > conv.MaxRows {
		return corruptf("metadata: row count %d out of range", m.Rows)
	}
	ids := make(map[int]struct{}, len(m.Columns))
	names := make(map[string]struct{}, len(m.Columns))
	for _, c := range m.Columns {
		if _, dup := ids[c.ID]; dup {
			return corruptf("metadata: duplicate column id %d", c.ID)
		}
		if _, dup := names[c.Name]; dup {
			return corruptf("metadata: duplicate column name %q", c.Name)
		}
		ids[c.ID] = struct{}{}
		names[c.Name] = struct{}{}
		if c.Type == column.Skip {
			return corruptf("metadata: column %q has type %s", c.Name, c.Type)
		}
		if c.Type != column.String && c.DictionarySize != 0 {
			return corruptf("metadata: %s column %q declares a dictionary", c.Type, c.Name)
		}
		if c.BodySize < 0 {
			return corruptf("metadata: column %q has negative body size", c.Name)
		}
	}
	return nil
}
