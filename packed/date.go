package packed

import (
	"fmt"
	"math"
	"time"
)

// Date is a calendar date packed as year(16) | month(8) | day(8).
type Date int32

// MissingDate is the reserved bit pattern for an absent date.
const MissingDate Date = math.MinInt32

const dateLayout = "2006-01-02"

// NewDate packs year, month and day. Components are validated, not clamped.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < math.MinInt16 || year > math.MaxInt16 {
		return MissingDate, fmt.Errorf("%w: year %d", ErrOutOfRange, year)
	}
	if month < time.January || month > time.December {
		return MissingDate, fmt.Errorf("%w: month %d", ErrOutOfRange, month)
	}
	if day < 1 || day > daysIn(month, year) {
		return MissingDate, fmt.Errorf("%w: day %d of %d-%02d", ErrOutOfRange, day, year, month)
	}
	return packDate(year, month, day), nil
}

// MustDate is like NewDate but panics on invalid components.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf packs the calendar date of t in t's location.
func DateOf(t time.Time) (Date, error) {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// PackDate packs an optional date; nil packs to MissingDate.
func PackDate(t *time.Time) (Date, error) {
	if t == nil {
		return MissingDate, nil
	}
	return DateOf(*t)
}

// ParseDate parses an ISO-8601 date (2006-01-02). Empty input is missing.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return MissingDate, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return MissingDate, err
	}
	return DateOf(t)
}

func packDate(year int, month time.Month, day int) Date {
	return Date(int32(int16(year))<<16 | int32(month)<<8 | int32(day))
}

// IsMissing reports whether d is the missing sentinel.
func (d Date) IsMissing() bool { return d == MissingDate }

// Unpack returns the date as midnight UTC, or ok == false for MissingDate.
func (d Date) Unpack() (t time.Time, ok bool) {
	if d == MissingDate {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
}

// Year extracts the year field.
func (d Date) Year() int { return int(int16(d >> 16)) }

// Month extracts the month field.
func (d Date) Month() time.Month { return time.Month(uint8(d >> 8)) }

// Day extracts the day-of-month field.
func (d Date) Day() int { return int(uint8(d)) }

// EpochDay returns the number of days since 1970-01-01.
func (d Date) EpochDay() int64 { return epochDay(d.Year(), d.Month(), d.Day()) }

// DayOfWeek computes the weekday arithmetically from the packed fields.
func (d Date) DayOfWeek() time.Weekday {
	return time.Weekday(floorMod(d.EpochDay()+4, 7))
}

// DayOfYear returns the 1-based ordinal day within the year.
func (d Date) DayOfYear() int {
	m := d.Month()
	n := cumulativeDays[m] + d.Day()
	if m > time.February && isLeap(d.Year()) {
		n++
	}
	return n
}

// Quarter returns 1..4, or 0 for MissingDate.
func (d Date) Quarter() int {
	if d == MissingDate {
		return 0
	}
	return int(d.Month()-1)/3 + 1
}

// LengthOfMonth returns the number of days in d's month.
func (d Date) LengthOfMonth() int { return daysIn(d.Month(), d.Year()) }

// IsBefore reports whether d is strictly earlier than other. Missing dates never compare.
func (d Date) IsBefore(other Date) bool {
	return d != MissingDate && other != MissingDate && d < other
}

// IsAfter reports whether d is strictly later than other.
func (d Date) IsAfter(other Date) bool {
	return d != MissingDate && other != MissingDate && d > other
}

// IsOnOrBefore reports whether d is not later than other.
func (d Date) IsOnOrBefore(other Date) bool {
	return d != MissingDate && other != MissingDate && d <= other
}

// IsOnOrAfter reports whether d is not earlier than other.
func (d Date) IsOnOrAfter(other Date) bool {
	return d != MissingDate && other != MissingDate && d >= other
}

// IsEqualTo reports whether d and other are the same valid date.
func (d Date) IsEqualTo(other Date) bool {
	return d != MissingDate && d == other
}

// IsDayOfWeek reports whether d falls on wd.
func (d Date) IsDayOfWeek(wd time.Weekday) bool {
	return d != MissingDate && d.DayOfWeek() == wd
}

// IsSunday reports whether d is a Sunday.
func (d Date) IsSunday() bool { return d.IsDayOfWeek(time.Sunday) }

// IsSaturday reports whether d is a Saturday.
func (d Date) IsSaturday() bool { return d.IsDayOfWeek(time.Saturday) }

// IsWeekend reports whether d is a Saturday or a Sunday.
func (d Date) IsWeekend() bool {
	if d == MissingDate {
		return false
	}
	wd := d.DayOfWeek()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWeekday reports whether d is Monday through Friday.
func (d Date) IsWeekday() bool {
	return d != MissingDate && !d.IsWeekend()
}

// IsInMonth reports whether d lies in month m of any year.
func (d Date) IsInMonth(m time.Month) bool {
	return d != MissingDate && d.Month() == m
}

// IsInJanuary reports whether d lies in January.
func (d Date) IsInJanuary() bool { return d.IsInMonth(time.January) }

// IsInDecember reports whether d lies in December.
func (d Date) IsInDecember() bool { return d.IsInMonth(time.December) }

// IsInYear reports whether d lies in year.
func (d Date) IsInYear(year int) bool {
	return d != MissingDate && d.Year() == year
}

// IsInQuarter reports whether d lies in quarter q (1 to 4).
func (d Date) IsInQuarter(q int) bool {
	return d != MissingDate && d.Quarter() == q
}

// IsFirstDayOfMonth reports whether d is the 1st.
func (d Date) IsFirstDayOfMonth() bool {
	return d != MissingDate && d.Day() == 1
}

// IsLastDayOfMonth reports whether d is the last day of its month.
func (d Date) IsLastDayOfMonth() bool {
	return d != MissingDate && d.Day() == d.LengthOfMonth()
}

// IsLeapYear reports whether the year of d is a leap year.
func (d Date) IsLeapYear() bool {
	return d != MissingDate && isLeap(d.Year())
}

// Plus adds amount units to d. Only Days, Weeks, Months and Years apply.
// Month and year steps land on the last valid day when the day overflows.
func (d Date) Plus(amount int, unit Unit) (Date, error) {
	if d == MissingDate {
		return MissingDate, nil
	}
	switch unit {
	case Days, Weeks:
		if unit == Weeks {
			amount *= 7
		}
		t, _ := d.Unpack()
		return DateOf(t.AddDate(0, 0, amount))
	case Months:
		return NewDate(addMonths(d.Year(), d.Month(), d.Day(), amount))
	case Years:
		return NewDate(addMonths(d.Year(), d.Month(), d.Day(), amount*12))
	default:
		return MissingDate, fmt.Errorf("%w: %s on a date", ErrUnsupportedUnit, unit)
	}
}

// String renders d as 2006-01-02, or "" for MissingDate.
func (d Date) String() string {
	if d == MissingDate {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
}
