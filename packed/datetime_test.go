package packed

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTime_SplitAndCombine(t *testing.T) {
	d := MustDate(2001, time.December, 12)
	tm := MustTime(8, 15, 0, 5)

	dt := Combine(d, tm)
	assert.Equal(t, d, dt.Date())
	assert.Equal(t, tm, dt.Time())
	assert.Equal(t, 2001, dt.Year())
	assert.Equal(t, time.December, dt.Month())
	assert.Equal(t, 12, dt.Day())
	assert.Equal(t, 8, dt.Hour())
	assert.Equal(t, 15, dt.Minute())
	assert.Equal(t, 5, dt.Millisecond())
	assert.True(t, dt.IsAM())
	assert.Equal(t, "2001-12-12T08:15:00.005", dt.String())

	assert.Equal(t, MissingDateTime, Combine(MissingDate, tm))
	assert.Equal(t, MissingDateTime, Combine(d, MissingTime))
}

func TestDateTime_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	base := time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)

	for range 2000 {
		want := base.Add(time.Duration(rng.Int64N(int64(150*365*24*time.Hour))) / time.Millisecond * time.Millisecond)

		dt, err := DateTimeOf(want)
		require.NoError(t, err)
		require.NotEqual(t, MissingDateTime, dt)

		got, ok := dt.Unpack()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestDateTime_OrderingMatchesTime(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	base := time.Date(1800, time.January, 1, 0, 0, 0, 0, time.UTC)

	for range 1000 {
		a := base.Add(time.Duration(rng.Int64N(300*365*24*int64(time.Hour/time.Millisecond))) * time.Millisecond)
		b := base.Add(time.Duration(rng.Int64N(300*365*24*int64(time.Hour/time.Millisecond))) * time.Millisecond)

		pa, err := DateTimeOf(a)
		require.NoError(t, err)
		pb, err := DateTimeOf(b)
		require.NoError(t, err)

		require.Equal(t, a.Before(b), pa.IsBefore(pb))
		require.Equal(t, a.After(b), pa.IsAfter(pb))
		require.Equal(t, a.Equal(b), pa.IsEqualTo(pb))
	}
}

func TestDateTime_Missing(t *testing.T) {
	dt, err := PackDateTime(nil)
	require.NoError(t, err)
	assert.True(t, dt.IsMissing())

	_, ok := dt.Unpack()
	assert.False(t, ok)

	// high word equals the date sentinel, low word is zero
	assert.Equal(t, MissingDate, dt.Date())

	other := Combine(MustDate(2000, time.January, 1), Midnight)
	assert.False(t, dt.IsBefore(other))
	assert.False(t, other.IsAfter(dt))
	assert.False(t, dt.IsMidnight())
	assert.False(t, dt.IsInYear(-32768))
	assert.Equal(t, "", dt.String())

	p, err := dt.Plus(1, Days)
	require.NoError(t, err)
	assert.Equal(t, MissingDateTime, p)
}

func TestDateTime_Plus(t *testing.T) {
	from := Combine(MustDate(2024, time.January, 31), MustTime(23, 30, 0, 0))

	tests := []struct {
		name   string
		amount int
		unit   Unit
		want   string
	}{
		{"HoursCrossDay", 1, Hours, "2024-02-01T00:30:00.000"},
		{"MinutesBack", -31, Minutes, "2024-01-31T22:59:00.000"},
		{"Days", 29, Days, "2024-02-29T23:30:00.000"},
		{"MonthsClamp", 1, Months, "2024-02-29T23:30:00.000"},
		{"Years", -1, Years, "2023-01-31T23:30:00.000"},
		{"Weeks", 1, Weeks, "2024-02-07T23:30:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := from.Plus(tt.amount, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseDateTime(t *testing.T) {
	dt, err := ParseDateTime("2019-03-10T02:30:00.5")
	require.NoError(t, err)
	assert.Equal(t, Combine(MustDate(2019, time.March, 10), MustTime(2, 30, 0, 500)), dt)

	dt, err = ParseDateTime("")
	require.NoError(t, err)
	assert.Equal(t, MissingDateTime, dt)
}

func TestInstant(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	ts := time.Date(2024, time.January, 1, 0, 30, 0, 0, zone)

	i, err := InstantOf(ts)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31T23:30:00.000Z", i.String())
	assert.Equal(t, ts.UnixMilli(), i.UnixMilli())

	got, ok := i.Unpack()
	require.True(t, ok)
	assert.True(t, ts.Equal(got))

	later, err := i.Plus(90, Minutes)
	require.NoError(t, err)
	assert.True(t, later.IsAfter(i))
	assert.Equal(t, ts.Add(90*time.Minute).UnixMilli(), later.UnixMilli())

	_, err = i.Plus(1, Months)
	require.ErrorIs(t, err, ErrUnsupportedUnit)

	parsed, err := ParseInstant("2023-12-31T23:30:00Z")
	require.NoError(t, err)
	assert.True(t, parsed.IsEqualTo(i))

	missing, err := PackInstant(nil)
	require.NoError(t, err)
	assert.True(t, missing.IsMissing())
	assert.False(t, missing.IsBefore(i))

	for _, unit := range []Unit{Minutes, Days, Months, Years} {
		p, err := missing.Plus(1, unit)
		require.NoError(t, err, unit)
		assert.Equal(t, MissingInstant, p, unit)
	}
}
