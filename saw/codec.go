package saw

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/packed"
)

// Column bodies are little-endian. Fixed-width types write one value per
// row. String bodies write the dictionary (count, then length-prefixed
// entries) followed by one code per row at the narrowest width that can
// address the dictionary. Text bodies write each row length-prefixed.

// codeWidth is the byte width of a dictionary code.
func codeWidth(dictSize int) int {
	switch {
	case dictSize <= 1<<8:
		return 1
	case dictSize <= 1<<16:
		return 2
	}
	return 4
}

func uvarintLen(x uint64) int {
	n := 1
	for x >= 0x80 {
		x >>= 7
		n++
	}
	return n
}

// describe returns the exact body length of col and its dictionary size.
func describe(col column.Column) (size int64, dict int, err error) {
	rows := int64(col.Len())
	switch c := col.(type) {
	case *column.StringColumn:
		d := c.Dictionary()
		size = int64(uvarintLen(uint64(len(d))))
		for _, s := range d {
			size += int64(uvarintLen(uint64(len(s))) + len(s))
		}
		return size + rows*int64(codeWidth(len(d))), len(d), nil
	case *column.TextColumn:
		for _, s := range c.Data() {
			size += int64(uvarintLen(uint64(len(s))) + len(s))
		}
		return size, 0, nil
	}
	width := col.Type().ByteSize()
	if width <= 0 {
		return 0, 0, fmt.Errorf("%w: cannot store %s column %q", ErrInvalidTable, col.Type(), col.Name())
	}
	return rows * int64(width), 0, nil
}

func appendFixed[T any](dst []byte, data []T, put func([]byte, T) []byte) []byte {
	for _, v := range data {
		dst = put(dst, v)
	}
	return dst
}

func put16[T ~int16](b []byte, v T) []byte { return binary.LittleEndian.AppendUint16(b, uint16(v)) }
func put32[T ~int32](b []byte, v T) []byte { return binary.LittleEndian.AppendUint32(b, uint32(v)) }
func put64[T ~int64](b []byte, v T) []byte { return binary.LittleEndian.AppendUint64(b, uint64(v)) }

func putFloat32(b []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
}

func putFloat64(b []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
}

// encodeColumn serializes col into a buffer of exactly size bytes.
func encodeColumn(col column.Column, size int64) ([]byte, error) {
	b := make([]byte, 0, size)
	switch c := col.(type) {
	case *column.ShortColumn:
		b = appendFixed(b, c.Data(), put16[int16])
	case *column.IntColumn:
		b = appendFixed(b, c.Data(), put32[int32])
	case *column.LongColumn:
		b = appendFixed(b, c.Data(), put64[int64])
	case *column.FloatColumn:
		b = appendFixed(b, c.Data(), putFloat32)
	case *column.DoubleColumn:
		b = appendFixed(b, c.Data(), putFloat64)
	case *column.BoolColumn:
		for _, v := range c.Data() {
			b = append(b, uint8(v))
		}
	case *column.DateColumn:
		b = appendFixed(b, c.Data(), put32[packed.Date])
	case *column.TimeColumn:
		b = appendFixed(b, c.Data(), put32[packed.Time])
	case *column.DateTimeColumn:
		b = appendFixed(b, c.Data(), put64[packed.DateTime])
	case *column.InstantColumn:
		b = appendFixed(b, c.Data(), put64[packed.Instant])
	case *column.StringColumn:
		dict := c.Dictionary()
		b = binary.AppendUvarint(b, uint64(len(dict)))
		for _, s := range dict {
			b = binary.AppendUvarint(b, uint64(len(s)))
			b = append(b, s...)
		}
		switch codeWidth(len(dict)) {
		case 1:
			for _, code := range c.Codes() {
				b = append(b, uint8(code))
			}
		case 2:
			b = appendFixed(b, c.Codes(), func(b []byte, v int32) []byte { return binary.LittleEndian.AppendUint16(b, uint16(v)) })
		default:
			b = appendFixed(b, c.Codes(), put32[int32])
		}
	case *column.TextColumn:
		for _, s := range c.Data() {
			b = binary.AppendUvarint(b, uint64(len(s)))
			b = append(b, s...)
		}
	default:
		return nil, fmt.Errorf("%w: cannot store %s column %q", ErrInvalidTable, col.Type(), col.Name())
	}
	if int64(len(b)) != size {
		return nil, fmt.Errorf("saw: column %q encoded to %d bytes, expected %d", col.Name(), len(b), size)
	}
	return b, nil
}

func decodeFixed[T any](payload []byte, rows, width int, get func([]byte) T) ([]T, error) {
	if len(payload) != rows*width {
		return nil, corruptf("body holds %d bytes, %d rows of %d bytes need %d", len(payload), rows, width, rows*width)
	}
	out := make([]T, rows)
	for i := range out {
		out[i] = get(payload[i*width:])
	}
	return out, nil
}

func get16[T ~int16](b []byte) T { return T(binary.LittleEndian.Uint16(b)) }
func get32[T ~int32](b []byte) T { return T(binary.LittleEndian.Uint32(b)) }
func get64[T ~int64](b []byte) T { return T(binary.LittleEndian.Uint64(b)) }

func getFloat32(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
func getFloat64(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }

func decodeNumbers[T column.Number](cm ColumnMetadata, payload []byte, rows, width int, get func([]byte) T) (column.Column, error) {
	data, err := decodeFixed(payload, rows, width, get)
	if err != nil {
		return nil, err
	}
	return column.NewNumberColumn(cm.Name, data), nil
}

func decodeTemporal[T column.Temporal](cm ColumnMetadata, payload []byte, rows, width int, get func([]byte) T) (column.Column, error) {
	data, err := decodeFixed(payload, rows, width, get)
	if err != nil {
		return nil, err
	}
	return column.NewTemporalColumn(cm.Name, data), nil
}

// decodeColumn rebuilds a column of cm's type holding rows values.
func decodeColumn(cm ColumnMetadata, rows int, payload []byte) (column.Column, error) {
	switch cm.Type {
	case column.Short:
		return decodeNumbers(cm, payload, rows, 2, get16[int16])
	case column.Int:
		return decodeNumbers(cm, payload, rows, 4, get32[int32])
	case column.Long:
		return decodeNumbers(cm, payload, rows, 8, get64[int64])
	case column.Float:
		return decodeNumbers(cm, payload, rows, 4, getFloat32)
	case column.Double:
		return decodeNumbers(cm, payload, rows, 8, getFloat64)
	case column.LocalDate:
		return decodeTemporal(cm, payload, rows, 4, get32[packed.Date])
	case column.LocalTime:
		return decodeTemporal(cm, payload, rows, 4, get32[packed.Time])
	case column.LocalDateTime:
		return decodeTemporal(cm, payload, rows, 8, get64[packed.DateTime])
	case column.Instant:
		return decodeTemporal(cm, payload, rows, 8, get64[packed.Instant])
	case column.Boolean:
		data, err := decodeFixed(payload, rows, 1, func(b []byte) int8 { return int8(b[0]) })
		if err != nil {
			return nil, err
		}
		c, err := column.NewBoolColumnFromBytes(cm.Name, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return c, nil
	case column.String:
		return decodeStrings(cm, rows, payload)
	case column.Text:
		return decodeText(cm, rows, payload)
	}
	return nil, corruptf("cannot decode %s column %q", cm.Type, cm.Name)
}

// stringReader consumes length-prefixed strings.
type stringReader struct {
	b   []byte
	err error
}

func (r *stringReader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.b)
	if n <= 0 {
		r.err = corruptf("bad length prefix")
		return 0
	}
	r.b = r.b[n:]
	return v
}

func (r *stringReader) next() string {
	n := r.uvarint()
	if r.err != nil {
		return ""
	}
	if n > uint64(len(r.b)) {
		r.err = corruptf("string of %d bytes overruns the body", n)
		return ""
	}
	s := string(r.b[:n])
	r.b = r.b[n:]
	return s
}

func decodeStrings(cm ColumnMetadata, rows int, payload []byte) (column.Column, error) {
	r := &stringReader{b: payload}
	size := r.uvarint()
	if r.err != nil {
		return nil, r.err
	}
	if size != uint64(cm.DictionarySize) {
		return nil, inconsistentf("body dictionary has %d entries, metadata says %d", size, cm.DictionarySize)
	}
	dict := make([]string, 0, min(cm.DictionarySize, len(r.b)))
	for range cm.DictionarySize {
		dict = append(dict, r.next())
	}
	if r.err != nil {
		return nil, r.err
	}

	var (
		codes []int32
		err   error
	)
	switch codeWidth(len(dict)) {
	case 1:
		codes, err = decodeFixed(r.b, rows, 1, func(b []byte) int32 { return int32(b[0]) })
	case 2:
		codes, err = decodeFixed(r.b, rows, 2, func(b []byte) int32 { return int32(binary.LittleEndian.Uint16(b)) })
	default:
		codes, err = decodeFixed(r.b, rows, 4, get32[int32])
	}
	if err != nil {
		return nil, err
	}
	c, err := column.NewStringColumnFromDictionary(cm.Name, dict, codes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return c, nil
}

func decodeText(cm ColumnMetadata, rows int, payload []byte) (column.Column, error) {
	r := &stringReader{b: payload}
	data := make([]string, 0, min(rows, len(payload)))
	for range rows {
		data = append(data, r.next())
	}
	if r.err != nil {
		return nil, r.err
	}
	if len(r.b) != 0 {
		return nil, corruptf("%d bytes after the last row", len(r.b))
	}
	return column.NewTextColumn(cm.Name, data...), nil
}
