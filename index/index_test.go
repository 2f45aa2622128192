package index

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/packed"
	"github.com/hupe1980/colsaw/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_Approval(t *testing.T) {
	approval := column.NewIntColumn("approval", 71, 49, 71, 30)
	idx := ForNumbers(approval)

	assert.Equal(t, []int{0, 2}, idx.Get(71).ToOrderedIndices())
	assert.Equal(t, []int{0, 2}, idx.AtLeast(50).ToOrderedIndices())
	assert.Equal(t, []int{1, 3}, idx.LessThan(50).ToOrderedIndices())
	assert.Equal(t, []int{1, 3}, idx.AtMost(49).ToOrderedIndices())
	assert.Equal(t, []int{0, 2}, idx.GreaterThan(49).ToOrderedIndices())
	assert.Equal(t, []int{1, 3}, idx.Between(30, 49).ToOrderedIndices())

	assert.Equal(t, 3, idx.Keys())
	assert.Equal(t, 4, idx.Rows())
	assert.Equal(t, "approval", idx.Column())
	assert.Equal(t, column.Int, idx.Type())
}

func TestIndex_EmptyResults(t *testing.T) {
	idx := ForNumbers(column.NewIntColumn("v", 5, 6))

	assert.True(t, idx.Get(7).IsEmpty())
	assert.True(t, idx.LessThan(5).IsEmpty())
	assert.True(t, idx.GreaterThan(6).IsEmpty())
	assert.True(t, idx.Between(9, 1).IsEmpty())

	empty := ForNumbers(column.NewIntColumn("e"))
	assert.True(t, empty.AtLeast(0).IsEmpty())
	assert.Equal(t, 0, empty.Keys())
}

func TestIndex_ResultsAreFresh(t *testing.T) {
	idx := ForNumbers(column.NewLongColumn("v", 1, 1, 2))

	got := idx.Get(1)
	got.Add(99)
	assert.Equal(t, []int{0, 1}, idx.Get(1).ToOrderedIndices())
}

// scanEquivalence checks every bound against the matching linear-scan predicate.
func scanEquivalence[K Key](t *testing.T, col column.Column, idx *Index[K], bounds []K) {
	t.Helper()

	eval := func(p column.Predicate) *selection.Selection {
		sel, err := col.Eval(p)
		require.NoError(t, err)
		return sel
	}

	for _, b := range bounds {
		require.True(t, idx.Get(b).Equal(eval(column.Eq(b))), "get %v", b)
		require.True(t, idx.LessThan(b).Equal(eval(column.Lt(b))), "lessThan %v", b)
		require.True(t, idx.AtMost(b).Equal(eval(column.Lte(b))), "atMost %v", b)
		require.True(t, idx.AtLeast(b).Equal(eval(column.Gte(b))), "atLeast %v", b)
		require.True(t, idx.GreaterThan(b).Equal(eval(column.Gt(b))), "greaterThan %v", b)
	}
}

func TestIndex_ScanEquivalence(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	const n = 3000

	t.Run("Int", func(t *testing.T) {
		c := column.NewIntColumn("i")
		for range n {
			if rng.IntN(20) == 0 {
				c.AppendMissing()
				continue
			}
			c.AppendValue(int32(rng.IntN(200) - 100))
		}
		idx := ForNumbers(c)
		assert.Equal(t, n-c.CountMissing(), idx.Rows())
		scanEquivalence(t, c, idx, []int32{-101, -100, -3, 0, 1, 57, 99, 100, math.MaxInt32})
	})

	t.Run("Double", func(t *testing.T) {
		c := column.NewDoubleColumn("d")
		for range n {
			if rng.IntN(20) == 0 {
				c.AppendMissing()
				continue
			}
			c.AppendValue(math.Round(rng.NormFloat64()*100) / 10)
		}
		scanEquivalence(t, c, ForNumbers(c), []float64{-1e9, -2.5, 0, 0.1, 3.3, 1e9})
	})

	t.Run("Short", func(t *testing.T) {
		c := column.NewShortColumn("s")
		for range n {
			c.AppendValue(int16(rng.IntN(10)))
		}
		scanEquivalence(t, c, ForNumbers(c), []int16{-1, 0, 4, 9, 10})
	})

	t.Run("Date", func(t *testing.T) {
		base := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
		c := column.NewDateColumn("d")
		for range n {
			if rng.IntN(20) == 0 {
				c.AppendMissing()
				continue
			}
			d, err := packed.DateOf(base.AddDate(0, 0, rng.IntN(3650)))
			require.NoError(t, err)
			c.AppendValue(d)
		}
		bounds := []packed.Date{
			packed.MustDate(1999, time.December, 31),
			packed.MustDate(2003, time.June, 15),
			packed.MustDate(2009, time.December, 28),
			packed.MustDate(2020, time.January, 1),
		}
		scanEquivalence(t, c, ForDates(c), bounds)
	})

	t.Run("Time", func(t *testing.T) {
		c := column.NewTimeColumn("t")
		for range n {
			tm, err := packed.TimeOfDay(time.Duration(rng.IntN(24*60)) * time.Minute)
			require.NoError(t, err)
			c.AppendValue(tm)
		}
		scanEquivalence(t, c, ForTimes(c), []packed.Time{packed.Midnight, packed.Noon, packed.MustTime(23, 59, 0, 0)})
	})

	t.Run("String", func(t *testing.T) {
		c := column.NewStringColumn("s", "b", "a", "", "c", "a", "b")
		scanEquivalence(t, c, ForStrings(c), []string{"a", "b", "bb", "z"})
	})
}

func TestBuild(t *testing.T) {
	lookup, err := Build(column.NewIntColumn("approval", 71, 49, 71, 30))
	require.NoError(t, err)

	sel, err := lookup.Get(71)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, sel.ToOrderedIndices())

	sel, err = lookup.AtLeast(int32(50))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, sel.ToOrderedIndices())

	sel, err = lookup.Between(30, 49)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, sel.ToOrderedIndices())

	for _, operand := range []any{int64(71), int16(71), uint8(71), int8(71), uint32(71)} {
		sel, err = lookup.Get(operand)
		require.NoError(t, err, "%T", operand)
		assert.Equal(t, []int{0, 2}, sel.ToOrderedIndices(), "%T", operand)
	}

	_, err = lookup.Get(int64(1) << 40)
	require.ErrorIs(t, err, column.ErrTypeMismatch)

	shorts, err := Build(column.NewShortColumn("s", 1, 2))
	require.NoError(t, err)
	_, err = shorts.AtLeast(int32(1) << 20)
	require.ErrorIs(t, err, column.ErrTypeMismatch)

	_, err = lookup.LessThan("fifty")
	require.ErrorIs(t, err, column.ErrTypeMismatch)

	_, err = lookup.GreaterThan(1 << 40)
	require.ErrorIs(t, err, column.ErrTypeMismatch)

	dates, err := Build(column.NewDateColumn("d", packed.MustDate(2001, time.December, 12)))
	require.NoError(t, err)
	sel, err = dates.AtMost(packed.MustDate(2002, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, sel.ToOrderedIndices())

	_, err = Build(column.NewBoolColumn("b", true))
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), "BOOLEAN")

	_, err = Build(column.NewTextColumn("t", "x"))
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestIndex_All(t *testing.T) {
	idx := ForNumbers(column.NewIntColumn("v", 3, 1, 3, 2))

	var keys []int32
	for k, sel := range idx.All {
		keys = append(keys, k)
		assert.False(t, sel.IsEmpty())
	}
	assert.Equal(t, []int32{1, 2, 3}, keys)
}
