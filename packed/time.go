package packed

import (
	"fmt"
	"math"
	"time"
)

// Time is a time of day packed as hour(8) | minute(8) | millisecond-of-minute(16).
type Time int32

// MissingTime is the reserved bit pattern for an absent time of day.
const MissingTime Time = math.MinInt32

const (
	millisPerMinute = 60_000
	millisPerDay    = 24 * 60 * millisPerMinute
)

// Midnight and Noon are the packed forms of 00:00 and 12:00.
const (
	Midnight Time = 0
	Noon     Time = 12 << 24
)

// NewTime packs a time of day with millisecond precision.
func NewTime(hour, minute, second, millisecond int) (Time, error) {
	switch {
	case hour < 0 || hour > 23:
		return MissingTime, fmt.Errorf("%w: hour %d", ErrOutOfRange, hour)
	case minute < 0 || minute > 59:
		return MissingTime, fmt.Errorf("%w: minute %d", ErrOutOfRange, minute)
	case second < 0 || second > 59:
		return MissingTime, fmt.Errorf("%w: second %d", ErrOutOfRange, second)
	case millisecond < 0 || millisecond > 999:
		return MissingTime, fmt.Errorf("%w: millisecond %d", ErrOutOfRange, millisecond)
	}
	return packTime(hour, minute, second*1000+millisecond), nil
}

// MustTime is like NewTime but panics on invalid components.
func MustTime(hour, minute, second, millisecond int) Time {
	t, err := NewTime(hour, minute, second, millisecond)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDay packs a duration since midnight, truncated to milliseconds.
func TimeOfDay(d time.Duration) (Time, error) {
	if d < 0 || d >= 24*time.Hour {
		return MissingTime, fmt.Errorf("%w: time of day %s", ErrOutOfRange, d)
	}
	return fromMillisOfDay(int(d / time.Millisecond)), nil
}

// ClockOf packs the wall clock of t in t's location.
func ClockOf(t time.Time) Time {
	h, m, s := t.Clock()
	return packTime(h, m, s*1000+t.Nanosecond()/int(time.Millisecond))
}

// PackTime packs an optional time of day; nil packs to MissingTime.
func PackTime(d *time.Duration) (Time, error) {
	if d == nil {
		return MissingTime, nil
	}
	return TimeOfDay(*d)
}

// ParseTime accepts 15:04, 15:04:05 and 15:04:05.000. Empty input is missing.
func ParseTime(s string) (Time, error) {
	if s == "" {
		return MissingTime, nil
	}
	var (
		t   time.Time
		err error
	)
	for _, layout := range []string{"15:04:05.999999999", "15:04:05", "15:04"} {
		if t, err = time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return MissingTime, err
}

func packTime(hour, minute, millisOfMinute int) Time {
	return Time(int32(hour)<<24 | int32(minute)<<16 | int32(uint16(millisOfMinute)))
}

func fromMillisOfDay(ms int) Time {
	return packTime(ms/3_600_000, (ms/millisPerMinute)%60, ms%millisPerMinute)
}

// IsMissing reports whether t is the missing sentinel.
func (t Time) IsMissing() bool { return t == MissingTime }

// Unpack returns the duration since midnight, or ok == false for MissingTime.
func (t Time) Unpack() (d time.Duration, ok bool) {
	if t == MissingTime {
		return 0, false
	}
	return time.Duration(t.MillisecondOfDay()) * time.Millisecond, true
}

// Hour returns the hour, 0 to 23.
func (t Time) Hour() int { return int(uint8(t >> 24)) }

// Minute returns the minute of the hour.
func (t Time) Minute() int { return int(uint8(t >> 16)) }

// MillisecondOfMinute extracts the low 16-bit field.
func (t Time) MillisecondOfMinute() int { return int(uint16(t)) }

// Second returns the second of the minute.
func (t Time) Second() int { return t.MillisecondOfMinute() / 1000 }

// Millisecond returns the millisecond of the second.
func (t Time) Millisecond() int { return t.MillisecondOfMinute() % 1000 }

// MinuteOfDay returns minutes since midnight.
func (t Time) MinuteOfDay() int { return t.Hour()*60 + t.Minute() }

// SecondOfDay returns seconds since midnight.
func (t Time) SecondOfDay() int { return t.MinuteOfDay()*60 + t.Second() }

// MillisecondOfDay returns milliseconds since midnight.
func (t Time) MillisecondOfDay() int {
	return t.MinuteOfDay()*millisPerMinute + t.MillisecondOfMinute()
}

// IsBefore reports whether t is strictly earlier than other.
func (t Time) IsBefore(other Time) bool {
	return t != MissingTime && other != MissingTime && t < other
}

// IsAfter reports whether t is strictly later than other.
func (t Time) IsAfter(other Time) bool {
	return t != MissingTime && other != MissingTime && t > other
}

// IsOnOrBefore reports whether t is not later than other.
func (t Time) IsOnOrBefore(other Time) bool {
	return t != MissingTime && other != MissingTime && t <= other
}

// IsOnOrAfter reports whether t is not earlier than other.
func (t Time) IsOnOrAfter(other Time) bool {
	return t != MissingTime && other != MissingTime && t >= other
}

// IsEqualTo reports whether t and other are the same valid time.
func (t Time) IsEqualTo(other Time) bool {
	return t != MissingTime && t == other
}

// IsMidnight reports whether t is 00:00:00.000.
func (t Time) IsMidnight() bool { return t == Midnight }

// IsNoon reports whether t is 12:00:00.000.
func (t Time) IsNoon() bool { return t == Noon }

// IsAM reports whether t is before noon.
func (t Time) IsAM() bool { return t != MissingTime && t.Hour() < 12 }

// IsPM reports whether t is noon or later.
func (t Time) IsPM() bool { return t != MissingTime && t.Hour() >= 12 }

// Plus adds amount sub-day units, wrapping around midnight.
func (t Time) Plus(amount int, unit Unit) (Time, error) {
	if t == MissingTime {
		return MissingTime, nil
	}
	step, ok := unit.duration()
	if !ok {
		return MissingTime, fmt.Errorf("%w: %s on a time", ErrUnsupportedUnit, unit)
	}
	delta := int64(amount) * int64(step/time.Millisecond)
	ms := floorMod(int64(t.MillisecondOfDay())+delta, millisPerDay)
	return fromMillisOfDay(int(ms)), nil
}

// String renders t as 15:04:05.000, or "" for MissingTime.
func (t Time) String() string {
	if t == MissingTime {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour(), t.Minute(), t.Second(), t.Millisecond())
}
