package packed

import (
	"math"
	"time"
)

// DateTime is a local date-time: Date bits in the high word, Time bits in the low word.
type DateTime int64

// MissingDateTime is the reserved bit pattern for an absent date-time.
const MissingDateTime DateTime = math.MinInt64

// Combine joins a date and a time of day. Either part missing yields MissingDateTime.
func Combine(d Date, t Time) DateTime {
	if d == MissingDate || t == MissingTime {
		return MissingDateTime
	}
	return DateTime(int64(d)<<32 | int64(uint32(t)))
}

// NewDateTime packs all components with validation.
func NewDateTime(year int, month time.Month, day, hour, minute, second, millisecond int) (DateTime, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return MissingDateTime, err
	}
	t, err := NewTime(hour, minute, second, millisecond)
	if err != nil {
		return MissingDateTime, err
	}
	return Combine(d, t), nil
}

// DateTimeOf packs the wall clock of t in t's location.
func DateTimeOf(t time.Time) (DateTime, error) {
	d, err := DateOf(t)
	if err != nil {
		return MissingDateTime, err
	}
	return Combine(d, ClockOf(t)), nil
}

// PackDateTime packs an optional date-time; nil packs to MissingDateTime.
func PackDateTime(t *time.Time) (DateTime, error) {
	if t == nil {
		return MissingDateTime, nil
	}
	return DateTimeOf(*t)
}

// ParseDateTime parses 2006-01-02T15:04:05[.000]. Empty input is missing.
func ParseDateTime(s string) (DateTime, error) {
	if s == "" {
		return MissingDateTime, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05.999999999", s)
	if err != nil {
		return MissingDateTime, err
	}
	return DateTimeOf(t)
}

// IsMissing reports whether dt is the missing sentinel.
func (dt DateTime) IsMissing() bool { return dt == MissingDateTime }

// Date extracts the high word.
func (dt DateTime) Date() Date { return Date(int32(dt >> 32)) }

// Time extracts the low word.
func (dt DateTime) Time() Time { return Time(int32(dt)) }

// Unpack returns the wall clock as a UTC time.Time, or ok == false when missing.
func (dt DateTime) Unpack() (t time.Time, ok bool) {
	if dt == MissingDateTime {
		return time.Time{}, false
	}
	d, tm := dt.Date(), dt.Time()
	return time.Date(d.Year(), d.Month(), d.Day(), tm.Hour(), tm.Minute(), tm.Second(),
		tm.Millisecond()*int(time.Millisecond), time.UTC), true
}

// Year returns the calendar year.
func (dt DateTime) Year() int { return dt.Date().Year() }

// Month returns the month of the year.
func (dt DateTime) Month() time.Month { return dt.Date().Month() }

// Day returns the day of the month.
func (dt DateTime) Day() int { return dt.Date().Day() }

// DayOfWeek returns the weekday.
func (dt DateTime) DayOfWeek() time.Weekday { return dt.Date().DayOfWeek() }

// DayOfYear returns the day of the year, from 1.
func (dt DateTime) DayOfYear() int { return dt.Date().DayOfYear() }

// Hour returns the hour of the day.
func (dt DateTime) Hour() int { return dt.Time().Hour() }

// Minute returns the minute of the hour.
func (dt DateTime) Minute() int { return dt.Time().Minute() }

// Second returns the second of the minute.
func (dt DateTime) Second() int { return dt.Time().Second() }

// Millisecond returns the millisecond of the second.
func (dt DateTime) Millisecond() int { return dt.Time().Millisecond() }

// IsBefore reports whether dt is strictly earlier than other.
func (dt DateTime) IsBefore(other DateTime) bool {
	return dt != MissingDateTime && other != MissingDateTime && dt < other
}

// IsAfter reports whether dt is strictly later than other.
func (dt DateTime) IsAfter(other DateTime) bool {
	return dt != MissingDateTime && other != MissingDateTime && dt > other
}

// IsOnOrBefore reports whether dt is not later than other.
func (dt DateTime) IsOnOrBefore(other DateTime) bool {
	return dt != MissingDateTime && other != MissingDateTime && dt <= other
}

// IsOnOrAfter reports whether dt is not earlier than other.
func (dt DateTime) IsOnOrAfter(other DateTime) bool {
	return dt != MissingDateTime && other != MissingDateTime && dt >= other
}

// IsEqualTo reports whether dt and other are the same valid instant of the wall clock.
func (dt DateTime) IsEqualTo(other DateTime) bool {
	return dt != MissingDateTime && dt == other
}

// IsDayOfWeek reports whether dt falls on wd.
func (dt DateTime) IsDayOfWeek(wd time.Weekday) bool {
	return dt != MissingDateTime && dt.Date().IsDayOfWeek(wd)
}

// IsInMonth reports whether dt lies in month m.
func (dt DateTime) IsInMonth(m time.Month) bool {
	return dt != MissingDateTime && dt.Date().IsInMonth(m)
}

// IsInYear reports whether dt lies in year.
func (dt DateTime) IsInYear(year int) bool {
	return dt != MissingDateTime && dt.Date().IsInYear(year)
}

// IsMidnight reports whether the time of day is 00:00:00.000.
func (dt DateTime) IsMidnight() bool { return dt != MissingDateTime && dt.Time().IsMidnight() }

// IsNoon reports whether the time of day is 12:00:00.000.
func (dt DateTime) IsNoon() bool { return dt != MissingDateTime && dt.Time().IsNoon() }

// IsAM reports whether the time of day is before noon.
func (dt DateTime) IsAM() bool { return dt != MissingDateTime && dt.Time().IsAM() }

// IsPM reports whether the time of day is noon or later.
func (dt DateTime) IsPM() bool { return dt != MissingDateTime && dt.Time().IsPM() }

// Plus adds amount units. Month and year steps clamp the day of month.
func (dt DateTime) Plus(amount int, unit Unit) (DateTime, error) {
	if dt == MissingDateTime {
		return MissingDateTime, nil
	}
	if step, ok := unit.duration(); ok {
		t, _ := dt.Unpack()
		return DateTimeOf(t.Add(time.Duration(amount) * step))
	}
	d, err := dt.Date().Plus(amount, unit)
	if err != nil {
		return MissingDateTime, err
	}
	return Combine(d, dt.Time()), nil
}

// String renders dt as 2006-01-02T15:04:05.000, or "" when missing.
func (dt DateTime) String() string {
	if dt == MissingDateTime {
		return ""
	}
	return dt.Date().String() + "T" + dt.Time().String()
}
