package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/colsaw/column"
)

// ErrInvalidSortKey is returned for a sort key with an unrecognized prefix.
var ErrInvalidSortKey = errors.New("order: invalid sort key")

// Direction is the sort direction of one key.
type Direction uint8

const (
	Ascend Direction = iota
	Descend
)

func (d Direction) String() string {
	if d == Descend {
		return "DESCEND"
	}
	return "ASCEND"
}

// Key names one column and its direction.
type Key struct {
	Column    string
	Direction Direction
}

func (k Key) String() string {
	if k.Direction == Descend {
		return "-" + k.Column
	}
	return "+" + k.Column
}

// Asc and Desc build keys.
func Asc(name string) Key  { return Key{Column: name, Direction: Ascend} }
func Desc(name string) Key { return Key{Column: name, Direction: Descend} }

// Spec is an ordered list of keys; later keys only break ties of earlier ones.
type Spec []Key

// By builds a Spec.
func By(keys ...Key) Spec { return Spec(keys) }

func (s Spec) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}

// Source is the part of a table the sort engine reads.
type Source interface {
	Column(name string) (column.Column, error)
	ColumnNames() []string
	RowCount() int
}

// Parse resolves shorthand keys against src.
//
// A key that names a column sorts ascending, even if the name starts with
// '+' or '-'. Names match ignoring case when there is no exact match, and the
// resulting Key carries the column's own spelling. Otherwise a leading '+' or '-' selects the direction for
// the rest of the key. Any other prefix, or a name that is not a column, is
// an error. All keys are resolved before anything is sorted.
func Parse(src Source, keys ...string) (Spec, error) {
	spec := make(Spec, 0, len(keys))
	for _, raw := range keys {
		key := strings.TrimSpace(raw)
		if name, ok := resolve(src, key); ok {
			spec = append(spec, Asc(name))
			continue
		}
		if key == "" {
			return nil, fmt.Errorf("%w: empty key", ErrInvalidSortKey)
		}

		rest := strings.TrimSpace(key[1:])
		switch key[0] {
		case '+', '-':
			name, ok := resolve(src, rest)
			if !ok {
				return nil, fmt.Errorf("%w: sort key %q", column.ErrUnknownColumn, raw)
			}
			dir := Ascend
			if key[0] == '-' {
				dir = Descend
			}
			spec = append(spec, Key{Column: name, Direction: dir})
		default:
			if _, ok := resolve(src, rest); ok {
				return nil, fmt.Errorf("%w: %q has prefix %q; use '+' or '-'", ErrInvalidSortKey, raw, key[:1])
			}
			return nil, fmt.Errorf("%w: sort key %q", column.ErrUnknownColumn, raw)
		}
	}
	return spec, nil
}

// resolve finds the column called name, falling back to the first column
// whose name matches ignoring case.
func resolve(src Source, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if _, err := src.Column(name); err == nil {
		return name, true
	}
	for _, n := range src.ColumnNames() {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// Comparator chains the per-column comparators of spec. Every column is
// resolved before the comparator is returned.
func Comparator(src Source, spec Spec) (func(i, j int) int, error) {
	cols := make([]column.Column, len(spec))
	for k, key := range spec {
		col, err := src.Column(key.Column)
		if err != nil {
			return nil, fmt.Errorf("sort key %s: %w", key, err)
		}
		if key.Direction != Ascend && key.Direction != Descend {
			return nil, fmt.Errorf("%w: direction %d for %q", ErrInvalidSortKey, key.Direction, key.Column)
		}
		cols[k] = col
	}

	return func(i, j int) int {
		for k, col := range cols {
			c := col.Compare(i, j)
			if c == 0 {
				continue
			}
			if spec[k].Direction == Descend {
				return -c
			}
			return c
		}
		return 0
	}, nil
}

// Permutation returns the row indices of src in sorted order. The sort is
// stable: fully tied rows keep their original relative order.
func Permutation(src Source, spec Spec) ([]int, error) {
	cmp, err := Comparator(src, spec)
	if err != nil {
		return nil, err
	}
	perm := identity(src.RowCount())
	slices.SortStableFunc(perm, cmp)
	return perm, nil
}

// Ascending returns the stable ascending permutation of a single column.
func Ascending(col column.Column) []int {
	perm := identity(col.Len())
	slices.SortStableFunc(perm, col.Compare)
	return perm
}

func identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}
