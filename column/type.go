package column

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/colsaw/packed"
)

// Type is the closed set of column types.
type Type uint8

const (
	Skip Type = iota
	Short
	Int
	Long
	Float
	Double
	Boolean
	String
	Text
	LocalDate
	LocalTime
	LocalDateTime
	Instant
)

// Types lists every storable type in tag order. Skip is excluded.
var Types = []Type{Short, Int, Long, Float, Double, Boolean, String, Text, LocalDate, LocalTime, LocalDateTime, Instant}

var typeNames = [...]string{
	Skip:          "SKIP",
	Short:         "SHORT",
	Int:           "INTEGER",
	Long:          "LONG",
	Float:         "FLOAT",
	Double:        "DOUBLE",
	Boolean:       "BOOLEAN",
	String:        "STRING",
	Text:          "TEXT",
	LocalDate:     "LOCAL_DATE",
	LocalTime:     "LOCAL_TIME",
	LocalDateTime: "LOCAL_DATE_TIME",
	Instant:       "INSTANT",
}

// Name returns the stable tag written to disk.
func (t Type) Name() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("TYPE(%d)", uint8(t))
}

// String returns the type tag, as Name does.
func (t Type) String() string { return t.Name() }

// ParseType inverts Name.
func ParseType(tag string) (Type, error) {
	for i, name := range typeNames {
		if name == tag {
			return Type(i), nil
		}
	}
	return Skip, fmt.Errorf("%w: %q", ErrUnknownType, tag)
}

// ByteSize is the width of one cell in bytes, -1 for variable width
// (String, Text) and 0 for Skip.
func (t Type) ByteSize() int {
	switch t {
	case Short:
		return 2
	case Int, Float, LocalDate, LocalTime:
		return 4
	case Long, Double, LocalDateTime, Instant:
		return 8
	case Boolean:
		return 1
	case String, Text:
		return -1
	default:
		return 0
	}
}

// IsNumeric reports whether t holds integers or floats.
func (t Type) IsNumeric() bool {
	return t >= Short && t <= Double
}

// IsTemporal reports whether t holds packed calendar values.
func (t Type) IsTemporal() bool {
	return t >= LocalDate && t <= Instant
}

// New returns an empty column of type t.
func (t Type) New(name string) (Column, error) {
	switch t {
	case Short:
		return NewShortColumn(name), nil
	case Int:
		return NewIntColumn(name), nil
	case Long:
		return NewLongColumn(name), nil
	case Float:
		return NewFloatColumn(name), nil
	case Double:
		return NewDoubleColumn(name), nil
	case Boolean:
		return NewBoolColumn(name), nil
	case String:
		return NewStringColumn(name), nil
	case Text:
		return NewTextColumn(name), nil
	case LocalDate:
		return NewDateColumn(name), nil
	case LocalTime:
		return NewTimeColumn(name), nil
	case LocalDateTime:
		return NewDateTimeColumn(name), nil
	case Instant:
		return NewInstantColumn(name), nil
	default:
		return nil, fmt.Errorf("%w: cannot create a %s column", ErrUnknownType, t)
	}
}

// Parse converts a textual literal into a cell value of type t.
// Empty text, "NA" and "NaN" parse to nil, the missing value.
func (t Type) Parse(s string) (any, error) {
	s = strings.TrimSpace(s)
	if t != String && t != Text && isMissingText(s) {
		return nil, nil
	}

	switch t {
	case Short:
		v, err := strconv.ParseInt(s, 10, 16)
		return int16(v), wrapParse(t, s, err)
	case Int:
		v, err := strconv.ParseInt(s, 10, 32)
		return int32(v), wrapParse(t, s, err)
	case Long:
		v, err := strconv.ParseInt(s, 10, 64)
		return v, wrapParse(t, s, err)
	case Float:
		v, err := strconv.ParseFloat(s, 32)
		return float32(v), wrapParse(t, s, err)
	case Double:
		v, err := strconv.ParseFloat(s, 64)
		return v, wrapParse(t, s, err)
	case Boolean:
		return parseBool(s)
	case String, Text:
		if s == "" {
			return nil, nil
		}
		return s, nil
	case LocalDate:
		v, err := packed.ParseDate(s)
		return v, wrapParse(t, s, err)
	case LocalTime:
		v, err := packed.ParseTime(s)
		return v, wrapParse(t, s, err)
	case LocalDateTime:
		v, err := packed.ParseDateTime(s)
		return v, wrapParse(t, s, err)
	case Instant:
		v, err := packed.ParseInstant(s)
		return v, wrapParse(t, s, err)
	default:
		return nil, fmt.Errorf("%w: cannot parse %s", ErrUnknownType, t)
	}
}

func isMissingText(s string) bool {
	switch s {
	case "", "NA", "N/A", "NaN", "null":
		return true
	}
	return false
}

func parseBool(s string) (any, error) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return nil, fmt.Errorf("column: cannot parse %q as %s", s, Boolean)
}

func wrapParse(t Type, s string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("column: cannot parse %q as %s: %w", s, t, err)
}
