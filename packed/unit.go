package packed

import "time"

// Unit is the granularity of a Plus operation.
type Unit uint8

const (
	Milliseconds Unit = iota
	Seconds
	Minutes
	Hours
	Days
	Weeks
	Months
	Years
)

// String returns the lower-case unit name.
func (u Unit) String() string {
	switch u {
	case Milliseconds:
		return "milliseconds"
	case Seconds:
		return "seconds"
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	case Days:
		return "days"
	case Weeks:
		return "weeks"
	case Months:
		return "months"
	case Years:
		return "years"
	default:
		return "unknown"
	}
}

// duration returns the fixed length of a sub-day unit.
func (u Unit) duration() (time.Duration, bool) {
	switch u {
	case Milliseconds:
		return time.Millisecond, true
	case Seconds:
		return time.Second, true
	case Minutes:
		return time.Minute, true
	case Hours:
		return time.Hour, true
	default:
		return 0, false
	}
}

var cumulativeDays = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(month time.Month, year int) int {
	switch month {
	case time.February:
		if isLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// epochDay counts days since 1970-01-01 in the proleptic Gregorian calendar.
func epochDay(year int, month time.Month, day int) int64 {
	y := int64(year)
	m := int64(month)
	total := 365 * y
	if y >= 0 {
		total += (y+3)/4 - (y+99)/100 + (y+399)/400
	} else {
		total -= y/-4 - y/-100 + y/-400
	}
	total += (367*m - 362) / 12
	total += int64(day) - 1
	if m > 2 {
		total--
		if !isLeap(year) {
			total--
		}
	}
	const days0000To1970 = 146097*5 - (30*365 + 7)
	return total - days0000To1970
}

func floorMod(a, b int64) int64 {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// addMonths moves year/month by n months and clamps the day to the target month.
func addMonths(year int, month time.Month, day, n int) (int, time.Month, int) {
	total := year*12 + int(month-1) + n
	y := total / 12
	m := total % 12
	if m < 0 {
		m += 12
		y--
	}
	mon := time.Month(m + 1)
	return y, mon, min(day, daysIn(mon, y))
}
