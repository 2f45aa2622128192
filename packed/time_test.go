package packed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_Fields(t *testing.T) {
	tm, err := NewTime(13, 45, 30, 250)
	require.NoError(t, err)

	assert.Equal(t, 13, tm.Hour())
	assert.Equal(t, 45, tm.Minute())
	assert.Equal(t, 30, tm.Second())
	assert.Equal(t, 250, tm.Millisecond())
	assert.Equal(t, 30_250, tm.MillisecondOfMinute())
	assert.Equal(t, 13*60+45, tm.MinuteOfDay())
	assert.Equal(t, (13*60+45)*60+30, tm.SecondOfDay())
	assert.True(t, tm.IsPM())
	assert.False(t, tm.IsAM())
	assert.Equal(t, "13:45:30.250", tm.String())
}

func TestTime_RoundTrip(t *testing.T) {
	// every 7.777 seconds across the day, so all fields vary
	for ms := 0; ms < millisPerDay; ms += 7_777 {
		want := time.Duration(ms) * time.Millisecond

		tm, err := TimeOfDay(want)
		require.NoError(t, err)
		require.False(t, tm.IsMissing())

		got, ok := tm.Unpack()
		require.True(t, ok)
		require.Equal(t, want, got)
		require.Equal(t, ms, tm.MillisecondOfDay())
	}
}

func TestTime_Ordering(t *testing.T) {
	a := MustTime(0, 0, 0, 1)
	b := MustTime(0, 0, 59, 999)
	c := MustTime(0, 1, 0, 0)
	d := MustTime(23, 59, 59, 999)

	assert.True(t, Midnight.IsBefore(a))
	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsBefore(c))
	assert.True(t, c.IsBefore(d))
	assert.True(t, d.IsOnOrAfter(d))
	assert.True(t, Noon.IsAfter(c))
}

func TestTime_Missing(t *testing.T) {
	tm, err := PackTime(nil)
	require.NoError(t, err)
	assert.Equal(t, MissingTime, tm)

	_, ok := tm.Unpack()
	assert.False(t, ok)

	// hour field of the sentinel is outside 0..23
	assert.Equal(t, 128, tm.Hour())

	assert.False(t, tm.IsBefore(Noon))
	assert.False(t, Noon.IsAfter(tm))
	assert.False(t, tm.IsAM())
	assert.False(t, tm.IsPM())
	assert.False(t, tm.IsMidnight())
	assert.False(t, tm.IsEqualTo(tm))
	assert.Equal(t, "", tm.String())

	p, err := tm.Plus(1, Hours)
	require.NoError(t, err)
	assert.Equal(t, MissingTime, p)
}

func TestTime_Validation(t *testing.T) {
	for _, args := range [][4]int{{24, 0, 0, 0}, {-1, 0, 0, 0}, {0, 60, 0, 0}, {0, 0, 60, 0}, {0, 0, 0, 1000}} {
		_, err := NewTime(args[0], args[1], args[2], args[3])
		require.ErrorIs(t, err, ErrOutOfRange, "%v", args)
	}

	_, err := TimeOfDay(24 * time.Hour)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = TimeOfDay(-time.Millisecond)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestTime_Plus(t *testing.T) {
	tests := []struct {
		name   string
		from   Time
		amount int
		unit   Unit
		want   Time
	}{
		{"Millis", MustTime(10, 0, 0, 999), 1, Milliseconds, MustTime(10, 0, 1, 0)},
		{"Seconds", MustTime(10, 0, 59, 0), 2, Seconds, MustTime(10, 1, 1, 0)},
		{"Minutes", MustTime(10, 30, 0, 0), 45, Minutes, MustTime(11, 15, 0, 0)},
		{"WrapForward", MustTime(23, 0, 0, 0), 2, Hours, MustTime(1, 0, 0, 0)},
		{"WrapBackward", Midnight, -1, Minutes, MustTime(23, 59, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Plus(tt.amount, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Noon.Plus(1, Days)
	require.ErrorIs(t, err, ErrUnsupportedUnit)
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want Time
	}{
		{"07:30", MustTime(7, 30, 0, 0)},
		{"07:30:15", MustTime(7, 30, 15, 0)},
		{"07:30:15.125", MustTime(7, 30, 15, 125)},
		{"", MissingTime},
	}

	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseTime("7h30")
	require.Error(t, err)
}

func TestClockOf(t *testing.T) {
	ts := time.Date(2020, time.May, 5, 18, 4, 5, 123_456_789, time.UTC)
	assert.Equal(t, MustTime(18, 4, 5, 123), ClockOf(ts))
	assert.True(t, MustTime(11, 59, 59, 999).IsAM())
	assert.True(t, Noon.IsNoon())
	assert.True(t, Noon.IsPM())
}
