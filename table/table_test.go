package table

import (
	"testing"

	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/filter"
	"github.com/hupe1980/colsaw/order"
	"github.com/hupe1980/colsaw/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func polls(t *testing.T) *Table {
	t.Helper()
	tbl, err := New("polls",
		column.NewIntColumn("Year", 2002, 2004, 2002, 2005, 2004),
		column.NewStringColumn("State", "TX", "CA", "AL", "NY", "AL"),
		column.NewDoubleColumn("Approval", 71, 49, 71, 30, 55.5),
	)
	require.NoError(t, err)
	return tbl
}

func TestTable_Basics(t *testing.T) {
	tbl := polls(t)

	assert.Equal(t, "polls", tbl.Name())
	assert.Equal(t, 5, tbl.RowCount())
	assert.Equal(t, 3, tbl.ColumnCount())
	assert.Equal(t, []string{"Year", "State", "Approval"}, tbl.ColumnNames())
	assert.Equal(t, "polls: 5 rows X 3 cols", tbl.Shape())
	assert.Equal(t, "State", tbl.ColumnAt(1).Name())

	_, err := tbl.Column("Nope")
	require.ErrorIs(t, err, column.ErrUnknownColumn)

	empty, err := New("empty")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.RowCount())
}

func TestTable_AddColumns(t *testing.T) {
	tbl := polls(t)

	err := tbl.AddColumns(column.NewIntColumn("Year", 1, 2, 3, 4, 5))
	require.ErrorIs(t, err, ErrShape)

	err = tbl.AddColumns(column.NewIntColumn("Short", 1, 2))
	require.ErrorIs(t, err, ErrShape)

	err = tbl.AddColumns(column.NewIntColumn("A", 1, 2, 3, 4, 5), column.NewIntColumn("A", 1, 2, 3, 4, 5))
	require.ErrorIs(t, err, ErrShape)
	assert.Equal(t, 3, tbl.ColumnCount(), "failed add must not change the table")

	require.NoError(t, tbl.AddColumns(column.NewBoolColumn("Won", true, false, true, false, true)))
	assert.Equal(t, 4, tbl.ColumnCount())
}

func TestTable_SortOn(t *testing.T) {
	tbl := polls(t)

	sorted, err := tbl.SortOn("-Year", "State")
	require.NoError(t, err)

	year, err := sorted.Column("Year")
	require.NoError(t, err)
	state, err := sorted.Column("State")
	require.NoError(t, err)
	approval, err := sorted.Column("Approval")
	require.NoError(t, err)

	var (
		years  []any
		states []any
		apps   []any
	)
	for r := 0; r < sorted.RowCount(); r++ {
		years = append(years, year.Get(r))
		states = append(states, state.Get(r))
		apps = append(apps, approval.Get(r))
	}
	assert.Equal(t, []any{int32(2005), int32(2004), int32(2004), int32(2002), int32(2002)}, years)
	assert.Equal(t, []any{"NY", "AL", "CA", "AL", "TX"}, states)
	assert.Equal(t, []any{30.0, 55.5, 49.0, 71.0, 71.0}, apps)

	// the receiver is untouched
	first, _ := tbl.Column("State")
	assert.Equal(t, "TX", first.Get(0))

	_, err = tbl.SortOn("*Year")
	require.ErrorIs(t, err, order.ErrInvalidSortKey)
	_, err = tbl.SortOn("-Nope")
	require.ErrorIs(t, err, column.ErrUnknownColumn)
}

func TestTable_Filter(t *testing.T) {
	tbl := polls(t)

	out, err := tbl.Filter(filter.All(
		filter.Where("Year", column.Gte(2004)),
		filter.Where("Approval", column.Gt(40)),
	))
	require.NoError(t, err)
	assert.Equal(t, 2, out.RowCount())

	state, _ := out.Column("State")
	assert.Equal(t, "CA", state.Get(0))
	assert.Equal(t, "AL", state.Get(1))

	all, err := tbl.Filter(nil)
	require.NoError(t, err)
	assert.True(t, all.Equal(tbl))

	_, err = tbl.Filter(filter.Where("State", column.IsTrue()))
	require.ErrorIs(t, err, column.ErrTypeMismatch)
}

func TestTable_WhereAndFirst(t *testing.T) {
	tbl := polls(t)

	sub := tbl.Where(selection.Of(4, 0))
	state, _ := sub.Column("State")
	assert.Equal(t, 2, sub.RowCount())
	assert.Equal(t, "TX", state.Get(0))
	assert.Equal(t, "AL", state.Get(1))

	assert.Equal(t, 2, tbl.First(2).RowCount())
	assert.Equal(t, 5, tbl.First(50).RowCount())
	assert.Equal(t, 0, tbl.First(-1).RowCount())
	assert.Equal(t, 0, tbl.EmptyCopy().RowCount())
}

func TestTable_Select(t *testing.T) {
	tbl := polls(t)

	sel, err := tbl.Select("Approval", "Year")
	require.NoError(t, err)
	assert.Equal(t, []string{"Approval", "Year"}, sel.ColumnNames())

	_, err = tbl.Select("Year", "Nope")
	require.ErrorIs(t, err, column.ErrUnknownColumn)
}

func TestTable_Structure(t *testing.T) {
	st := polls(t).Structure()

	assert.Equal(t, 3, st.RowCount())
	names, _ := st.Column("Column Name")
	types, _ := st.Column("Column Type")
	assert.Equal(t, "State", names.Get(1))
	assert.Equal(t, "DOUBLE", types.Get(2))
}

func TestTable_Equal(t *testing.T) {
	a := polls(t)
	b := polls(t)
	assert.True(t, a.Equal(b))

	c := a.Copy()
	require.NoError(t, c.columns[0].Set(0, 1999))
	assert.False(t, a.Equal(c))

	d, err := New("other", a.Columns()...)
	require.NoError(t, err)
	assert.False(t, a.Equal(d))
}

func TestTable_String(t *testing.T) {
	tbl := Must("t",
		column.NewIntColumn("a", 1, 2),
		column.NewStringColumn("b", "x", ""),
	)
	out := tbl.String()
	assert.Contains(t, out, "a  b")
	assert.Contains(t, out, "1  x")
}
