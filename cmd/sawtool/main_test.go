package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/colsaw"
	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/packed"
	"github.com/hupe1980/colsaw/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	db, err := colsaw.Open(root)
	require.NoError(t, err)
	_, err = db.Save(context.Background(), table.Must("bush",
		column.NewDateColumn("date",
			packed.MustDate(2004, time.February, 4),
			packed.MustDate(2001, time.December, 12),
			packed.MustDate(2002, time.March, 1),
		),
		column.NewIntColumn("approval", 53, 86, 71),
		column.NewStringColumn("who", "fox", "gallup", "fox"),
	))
	require.NoError(t, err)
	return root
}

func run(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run(context.Background(), append([]string{"sawtool", "--root", root}, args...))
	return buf.String(), err
}

// dataLines drops the shape, name and header lines of printed tables.
func dataLines(out string) []string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 3 {
		return nil
	}
	return lines[3:]
}

func TestList(t *testing.T) {
	out, err := run(t, seed(t), "list")
	require.NoError(t, err)
	assert.Equal(t, "bush\n", out)
}

func TestInfo(t *testing.T) {
	out, err := run(t, seed(t), "info", "bush")
	require.NoError(t, err)
	assert.Contains(t, out, "bush: 3 rows X 3 cols")
	assert.Contains(t, out, "compression: lz4")
	assert.Contains(t, out, "LOCAL_DATE")
	assert.Contains(t, out, "INTEGER")

	_, err = run(t, seed(t), "info", "gore")
	require.ErrorIs(t, err, colsaw.ErrNotFound)
}

func TestHead(t *testing.T) {
	out, err := run(t, seed(t), "head", "-n", "1", "--columns", "who", "bush")
	require.NoError(t, err)
	assert.Contains(t, out, "bush: 3 rows X 1 cols")
	rows := dataLines(out)
	require.Len(t, rows, 1)
	assert.Equal(t, "fox", strings.TrimSpace(rows[0]))
}

func TestSort(t *testing.T) {
	out, err := run(t, seed(t), "sort", "--", "bush", "-approval")
	require.NoError(t, err)
	rows := dataLines(out)
	require.Len(t, rows, 3)
	assert.Contains(t, rows[0], "86")
	assert.Contains(t, rows[1], "71")
	assert.Contains(t, rows[2], "53")

	_, err = run(t, seed(t), "sort", "bush")
	require.ErrorIs(t, err, errUsage)
}

func TestFilter(t *testing.T) {
	root := seed(t)

	out, err := run(t, root, "filter", "--where", "approval>=60", "--where", "who=fox", "bush")
	require.NoError(t, err)
	rows := dataLines(out)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "2002-03-01")

	out, err = run(t, root, "filter", "--any", "--where", "approval<60", "--where", "who~g.*", "bush")
	require.NoError(t, err)
	assert.Len(t, dataLines(out), 2)

	out, err = run(t, root, "filter", "--not", "--where", "who=fox", "bush")
	require.NoError(t, err)
	rows = dataLines(out)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "gallup")

	_, err = run(t, root, "filter", "--where", "approval>=lots", "bush")
	require.Error(t, err)
}

func TestIndex(t *testing.T) {
	root := seed(t)

	out, err := run(t, root, "index", "--min", "60", "--max", "80", "bush", "approval")
	require.NoError(t, err)
	rows := dataLines(out)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "71")

	out, err = run(t, root, "index", "--eq", "2001-12-12", "bush", "date")
	require.NoError(t, err)
	rows = dataLines(out)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "gallup")

	out, err = run(t, root, "index", "bush", "who")
	require.NoError(t, err)
	assert.Equal(t, "who: 2 distinct values over 3 rows\n", out)
}

func TestDrop(t *testing.T) {
	root := seed(t)
	_, err := run(t, root, "drop", "bush")
	require.NoError(t, err)

	out, err := run(t, root, "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSplitCondition(t *testing.T) {
	tests := []struct {
		expr, name, op, value string
	}{
		{"approval>=60", "approval", ">=", "60"},
		{"approval > 60", "approval", ">", "60"},
		{"who=fox", "who", "=", "fox"},
		{"who!=fox", "who", "!=", "fox"},
		{"date<=2002-01-01", "date", "<=", "2002-01-01"},
		{"who~^f.*x$", "who", "~", "^f.*x$"},
		{"who=a>b", "who", "=", "a>b"},
	}
	for _, tt := range tests {
		name, op, value, err := splitCondition(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.name, name, tt.expr)
		assert.Equal(t, tt.op, op, tt.expr)
		assert.Equal(t, tt.value, value, tt.expr)
	}

	for _, bad := range []string{"approval", "=60", ""} {
		_, _, _, err := splitCondition(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseCondition_Missing(t *testing.T) {
	tbl := table.Must("t", column.NewIntColumn("v", 1, 2))
	tbl.ColumnAt(0).AppendMissing()

	f, err := parseCondition(tbl, "v=NA")
	require.NoError(t, err)
	sel, err := f.Apply(tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, sel.ToOrderedIndices())

	_, err = parseCondition(tbl, "v<NA")
	require.Error(t, err)

	_, err = parseCondition(tbl, "w=1")
	require.ErrorIs(t, err, column.ErrUnknownColumn)
}
