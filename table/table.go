package table

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/filter"
	"github.com/hupe1980/colsaw/order"
	"github.com/hupe1980/colsaw/selection"
)

// ErrShape is returned when a column does not fit the table.
var ErrShape = errors.New("table: shape mismatch")

// Table is a named, ordered set of equal-length columns.
//
// Operations that reorder or subset rows return a new Table and leave the
// receiver untouched.
type Table struct {
	name    string
	columns []column.Column
	byName  map[string]int
}

// New returns a table holding cols. It fails like AddColumns.
func New(name string, cols ...column.Column) (*Table, error) {
	t := &Table{name: name, byName: make(map[string]int, len(cols))}
	if err := t.AddColumns(cols...); err != nil {
		return nil, err
	}
	return t, nil
}

// Must is New for statically known tables.
func Must(name string, cols ...column.Column) *Table {
	t, err := New(name, cols...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Name() string { return t.name }

// RowCount is the length of every column, or 0 for a table without columns.
func (t *Table) RowCount() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

func (t *Table) ColumnCount() int { return len(t.columns) }

// Column returns the column called name.
func (t *Table) Column(name string) (column.Column, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in table %q", column.ErrUnknownColumn, name, t.name)
	}
	return t.columns[i], nil
}

// ColumnAt returns the i-th column. It panics when i is out of range.
func (t *Table) ColumnAt(i int) column.Column { return t.columns[i] }

// Columns returns the columns in table order. The slice is a copy.
func (t *Table) Columns() []column.Column {
	out := make([]column.Column, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// AddColumns appends cols. Nothing is added when any column has a
// duplicate name or a length that differs from the table's row count.
func (t *Table) AddColumns(cols ...column.Column) error {
	rows := t.RowCount()
	if len(t.columns) == 0 && len(cols) > 0 {
		rows = cols[0].Len()
	}
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, dup := t.byName[c.Name()]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrShape, c.Name())
		}
		if _, dup := seen[c.Name()]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrShape, c.Name())
		}
		seen[c.Name()] = struct{}{}
		if c.Len() != rows {
			return fmt.Errorf("%w: column %q has %d rows, table %q has %d", ErrShape, c.Name(), c.Len(), t.name, rows)
		}
	}
	for _, c := range cols {
		t.byName[c.Name()] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return nil
}

// Where returns the selected rows in row order.
func (t *Table) Where(sel *selection.Selection) *Table {
	return t.derive(func(c column.Column) column.Column { return c.Where(sel) })
}

// Filter evaluates f against the table and returns the matching rows. A nil
// filter keeps every row.
func (t *Table) Filter(f filter.Filter) (*Table, error) {
	if f == nil {
		f = filter.All()
	}
	sel, err := f.Apply(t)
	if err != nil {
		return nil, err
	}
	return t.Where(sel), nil
}

// Sort returns the rows ordered by spec. Every column moves through the
// same permutation.
func (t *Table) Sort(spec order.Spec) (*Table, error) {
	perm, err := order.Permutation(t, spec)
	if err != nil {
		return nil, err
	}
	return t.Gather(perm), nil
}

// SortOn sorts on shorthand keys such as "-Year" or "State".
func (t *Table) SortOn(keys ...string) (*Table, error) {
	spec, err := order.Parse(t, keys...)
	if err != nil {
		return nil, err
	}
	return t.Sort(spec)
}

// Gather returns the given rows in the given order.
func (t *Table) Gather(rows []int) *Table {
	return t.derive(func(c column.Column) column.Column { return c.Gather(rows) })
}

// First returns up to n leading rows.
func (t *Table) First(n int) *Table {
	n = min(max(n, 0), t.RowCount())
	return t.Where(selection.FromRange(0, n))
}

// Select returns a table holding the named columns in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]column.Column, 0, len(names))
	for _, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(t.name, cols...)
}

// Copy deep-copies every column.
func (t *Table) Copy() *Table {
	return t.derive(column.Column.Copy)
}

// EmptyCopy returns a table with the same columns and no rows.
func (t *Table) EmptyCopy() *Table {
	return t.derive(func(c column.Column) column.Column { return c.EmptyCopy() })
}

func (t *Table) derive(f func(column.Column) column.Column) *Table {
	out := &Table{name: t.name, columns: make([]column.Column, len(t.columns)), byName: make(map[string]int, len(t.columns))}
	for i, c := range t.columns {
		out.columns[i] = f(c)
		out.byName[c.Name()] = i
	}
	return out
}

// Shape describes the table size, e.g. "bush: 323 rows X 4 cols".
func (t *Table) Shape() string {
	return fmt.Sprintf("%s: %d rows X %d cols", t.name, t.RowCount(), t.ColumnCount())
}

// Structure returns one row per column with its position, name and type.
func (t *Table) Structure() *Table {
	idx := column.NewIntColumn("Index")
	names := column.NewStringColumn("Column Name")
	types := column.NewStringColumn("Column Type")
	for i, c := range t.columns {
		idx.AppendValue(int32(i))
		_ = names.Append(c.Name())
		_ = types.Append(c.Type().Name())
	}
	return Must("Structure of "+t.name, idx, names, types)
}

// Equal reports whether both tables have the same name, column names,
// types and cells.
func (t *Table) Equal(o *Table) bool {
	if t.name != o.name || t.ColumnCount() != o.ColumnCount() || t.RowCount() != o.RowCount() {
		return false
	}
	for i, c := range t.columns {
		d := o.columns[i]
		if c.Name() != d.Name() || c.Type() != d.Type() {
			return false
		}
		for r := 0; r < c.Len(); r++ {
			if c.Get(r) != d.Get(r) {
				return false
			}
		}
	}
	return true
}

// String renders the table as aligned text, missing cells left blank.
func (t *Table) String() string {
	var sb strings.Builder
	fmt.Fprintln(&sb, t.name)
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.ColumnNames(), "\t"))
	cells := make([]string, len(t.columns))
	for r := 0; r < t.RowCount(); r++ {
		for i, c := range t.columns {
			if v := c.Get(r); v != nil {
				cells[i] = fmt.Sprint(v)
			} else {
				cells[i] = ""
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
	return sb.String()
}
