package packed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_FieldsWithoutUnpack(t *testing.T) {
	d, err := NewDate(2001, time.December, 12)
	require.NoError(t, err)

	assert.Equal(t, 2001, d.Year())
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 12, d.Day())
	assert.Equal(t, 4, d.Quarter())
	assert.Equal(t, time.Wednesday, d.DayOfWeek())
	assert.Equal(t, 346, d.DayOfYear())
	assert.True(t, d.IsInDecember())
	assert.False(t, d.IsInJanuary())
	assert.Equal(t, "2001-12-12", d.String())
}

func TestDate_RoundTrip(t *testing.T) {
	start := time.Date(1899, time.December, 25, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 365*250; i += 7 {
		want := start.AddDate(0, 0, i)

		d, err := DateOf(want)
		require.NoError(t, err)
		require.False(t, d.IsMissing())

		got, ok := d.Unpack()
		require.True(t, ok)
		require.Equal(t, want, got)

		require.Equal(t, want.Unix()/86400, d.EpochDay(), "epoch day of %s", want)
		require.Equal(t, want.Weekday(), d.DayOfWeek(), "weekday of %s", want)
		require.Equal(t, want.YearDay(), d.DayOfYear(), "day of year of %s", want)
	}
}

func TestDate_NegativeAndExtremeYears(t *testing.T) {
	for _, year := range []int{-32768, -400, -1, 0, 1, 1600, 32767} {
		d, err := NewDate(year, time.March, 1)
		require.NoError(t, err)
		assert.Equal(t, year, d.Year())
		assert.Equal(t, time.March, d.Month())
		assert.Equal(t, 1, d.Day())
		assert.NotEqual(t, MissingDate, d)
	}

	lo := MustDate(-1, time.December, 31)
	hi := MustDate(0, time.January, 1)
	assert.True(t, lo.IsBefore(hi))
	assert.Equal(t, lo.EpochDay()+1, hi.EpochDay())
}

func TestDate_Ordering(t *testing.T) {
	a := MustDate(2020, time.February, 29)
	b := MustDate(2020, time.March, 1)
	c := MustDate(2021, time.January, 1)

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsBefore(c))
	assert.True(t, c.IsAfter(a))
	assert.True(t, a.IsOnOrBefore(a))
	assert.True(t, a.IsOnOrAfter(a))
	assert.True(t, a.IsEqualTo(a))
	assert.False(t, a.IsEqualTo(b))
}

func TestDate_Missing(t *testing.T) {
	d, err := PackDate(nil)
	require.NoError(t, err)
	assert.Equal(t, MissingDate, d)
	assert.True(t, d.IsMissing())

	_, ok := d.Unpack()
	assert.False(t, ok)

	other := MustDate(2000, time.January, 1)
	assert.False(t, d.IsBefore(other))
	assert.False(t, d.IsAfter(other))
	assert.False(t, other.IsAfter(d))
	assert.False(t, d.IsEqualTo(d))
	assert.False(t, d.IsWeekend())
	assert.False(t, d.IsWeekday())
	assert.False(t, d.IsSunday())
	assert.False(t, d.IsLeapYear())
	assert.False(t, d.IsFirstDayOfMonth())
	assert.Equal(t, 0, d.Quarter())
	assert.Equal(t, "", d.String())

	p, err := d.Plus(3, Days)
	require.NoError(t, err)
	assert.Equal(t, MissingDate, p)

	parsed, err := ParseDate("")
	require.NoError(t, err)
	assert.Equal(t, MissingDate, parsed)
}

func TestDate_SentinelIsNotAValidDate(t *testing.T) {
	// month 0 is never produced by NewDate
	assert.Equal(t, time.Month(0), MissingDate.Month())
	assert.Equal(t, 0, MissingDate.Day())

	_, err := NewDate(-32768, 0, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
	}{
		{"YearTooLarge", 40000, time.January, 1},
		{"YearTooSmall", -40000, time.January, 1},
		{"MonthZero", 2020, 0, 1},
		{"Month13", 2020, 13, 1},
		{"DayZero", 2020, time.January, 0},
		{"Feb30", 2020, time.February, 30},
		{"Feb29NonLeap", 2021, time.February, 29},
		{"April31", 2021, time.April, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDate(tt.year, tt.month, tt.day)
			require.ErrorIs(t, err, ErrOutOfRange)
			assert.Equal(t, MissingDate, d)
		})
	}

	assert.Panics(t, func() { MustDate(2021, time.February, 29) })
}

func TestDate_Predicates(t *testing.T) {
	sat := MustDate(2024, time.June, 1)
	assert.True(t, sat.IsSaturday())
	assert.True(t, sat.IsWeekend())
	assert.False(t, sat.IsWeekday())
	assert.True(t, sat.IsFirstDayOfMonth())
	assert.False(t, sat.IsLastDayOfMonth())
	assert.True(t, sat.IsLeapYear())
	assert.True(t, sat.IsInQuarter(2))
	assert.True(t, sat.IsInYear(2024))
	assert.True(t, sat.IsInMonth(time.June))

	end := MustDate(2023, time.February, 28)
	assert.True(t, end.IsLastDayOfMonth())
	assert.False(t, end.IsLeapYear())
	assert.Equal(t, 28, end.LengthOfMonth())
	assert.True(t, end.IsDayOfWeek(time.Tuesday))
}

func TestDate_Plus(t *testing.T) {
	tests := []struct {
		name   string
		from   Date
		amount int
		unit   Unit
		want   Date
	}{
		{"Days", MustDate(2024, time.February, 28), 2, Days, MustDate(2024, time.March, 1)},
		{"NegativeDays", MustDate(2024, time.January, 1), -1, Days, MustDate(2023, time.December, 31)},
		{"Weeks", MustDate(2024, time.January, 1), 2, Weeks, MustDate(2024, time.January, 15)},
		{"MonthsClampLeap", MustDate(2024, time.January, 31), 1, Months, MustDate(2024, time.February, 29)},
		{"MonthsClamp", MustDate(2023, time.January, 31), 1, Months, MustDate(2023, time.February, 28)},
		{"MonthsBackwards", MustDate(2023, time.March, 31), -1, Months, MustDate(2023, time.February, 28)},
		{"MonthsAcrossYear", MustDate(2023, time.November, 30), 3, Months, MustDate(2024, time.February, 29)},
		{"YearsFromLeapDay", MustDate(2024, time.February, 29), 1, Years, MustDate(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Plus(tt.amount, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}

	_, err := MustDate(2024, time.January, 1).Plus(1, Hours)
	require.ErrorIs(t, err, ErrUnsupportedUnit)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1999-07-04")
	require.NoError(t, err)
	assert.Equal(t, MustDate(1999, time.July, 4), d)

	_, err = ParseDate("07/04/1999")
	require.Error(t, err)
}
