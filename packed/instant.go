package packed

import (
	"fmt"
	"math"
	"time"
)

// Instant is a point on the UTC time line with millisecond precision, stored in
// the DateTime layout of its UTC wall clock.
type Instant int64

// MissingInstant is the reserved bit pattern for an absent instant.
const MissingInstant Instant = math.MinInt64

// InstantOf packs t after converting it to UTC.
func InstantOf(t time.Time) (Instant, error) {
	dt, err := DateTimeOf(t.UTC())
	if err != nil {
		return MissingInstant, err
	}
	return Instant(dt), nil
}

// PackInstant packs an optional instant; nil packs to MissingInstant.
func PackInstant(t *time.Time) (Instant, error) {
	if t == nil {
		return MissingInstant, nil
	}
	return InstantOf(*t)
}

// ParseInstant parses RFC 3339 text. Empty input is missing.
func ParseInstant(s string) (Instant, error) {
	if s == "" {
		return MissingInstant, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return MissingInstant, err
	}
	return InstantOf(t)
}

// IsMissing reports whether i is the missing sentinel.
func (i Instant) IsMissing() bool { return i == MissingInstant }

// DateTime reinterprets the instant as its UTC wall clock.
func (i Instant) DateTime() DateTime { return DateTime(i) }

// Unpack returns the instant in UTC, or ok == false when missing.
func (i Instant) Unpack() (time.Time, bool) { return DateTime(i).Unpack() }

// UnixMilli returns milliseconds since the Unix epoch.
func (i Instant) UnixMilli() int64 {
	dt := DateTime(i)
	return dt.Date().EpochDay()*millisPerDay + int64(dt.Time().MillisecondOfDay())
}

// IsBefore reports whether i is strictly earlier than other.
func (i Instant) IsBefore(other Instant) bool {
	return i != MissingInstant && other != MissingInstant && i < other
}

// IsAfter reports whether i is strictly later than other.
func (i Instant) IsAfter(other Instant) bool {
	return i != MissingInstant && other != MissingInstant && i > other
}

// IsOnOrBefore reports whether i is not later than other.
func (i Instant) IsOnOrBefore(other Instant) bool {
	return i != MissingInstant && other != MissingInstant && i <= other
}

// IsOnOrAfter reports whether i is not earlier than other.
func (i Instant) IsOnOrAfter(other Instant) bool {
	return i != MissingInstant && other != MissingInstant && i >= other
}

// IsEqualTo reports whether i and other are the same valid instant.
func (i Instant) IsEqualTo(other Instant) bool {
	return i != MissingInstant && i == other
}

// Plus adds amount units; instants carry no calendar, so Months and Years are rejected.
func (i Instant) Plus(amount int, unit Unit) (Instant, error) {
	if i == MissingInstant {
		return MissingInstant, nil
	}
	if unit == Months || unit == Years {
		return MissingInstant, fmt.Errorf("%w: %s on an instant", ErrUnsupportedUnit, unit)
	}
	dt, err := DateTime(i).Plus(amount, unit)
	return Instant(dt), err
}

// String renders i as RFC 3339 with a Z suffix, or "" when missing.
func (i Instant) String() string {
	if i == MissingInstant {
		return ""
	}
	return DateTime(i).String() + "Z"
}
