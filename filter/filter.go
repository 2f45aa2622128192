package filter

import (
	"fmt"

	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/selection"
)

// Source is the part of a table a filter reads.
type Source interface {
	Column(name string) (column.Column, error)
	RowCount() int
}

// Filter selects rows of a Source.
type Filter interface {
	Apply(src Source) (*selection.Selection, error)
}

// Func adapts an ordinary function to a Filter.
type Func func(src Source) (*selection.Selection, error)

func (f Func) Apply(src Source) (*selection.Selection, error) { return f(src) }

type where struct {
	name string
	pred column.Predicate
}

// Where binds a predicate to the named column.
func Where(name string, pred column.Predicate) Filter {
	return where{name: name, pred: pred}
}

func (w where) Apply(src Source) (*selection.Selection, error) {
	col, err := src.Column(w.name)
	if err != nil {
		return nil, err
	}
	sel, err := col.Eval(w.pred)
	if err != nil {
		return nil, fmt.Errorf("filter %s on %q: %w", w.pred, w.name, err)
	}
	return sel, nil
}

func (w where) String() string { return w.name + "." + w.pred.String() }

type rows struct {
	sel *selection.Selection
}

// Rows wraps a precomputed selection, such as an index lookup. Rows outside
// the source are dropped.
func Rows(sel *selection.Selection) Filter {
	return rows{sel: sel}
}

func (r rows) Apply(src Source) (*selection.Selection, error) {
	return r.sel.And(selection.FromRange(0, src.RowCount())), nil
}

func applyAll(src Source, filters []Filter) ([]*selection.Selection, error) {
	out := make([]*selection.Selection, len(filters))
	for i, f := range filters {
		sel, err := f.Apply(src)
		if err != nil {
			return nil, err
		}
		out[i] = sel
	}
	return out, nil
}

type anyOf []Filter

// Any selects rows matching at least one filter. With no filters it selects nothing.
func Any(filters ...Filter) Filter { return anyOf(filters) }

func (a anyOf) Apply(src Source) (*selection.Selection, error) {
	sels, err := applyAll(src, a)
	if err != nil {
		return nil, err
	}
	return selection.Union(sels...), nil
}

type allOf []Filter

// All selects rows matching every filter. With no filters it selects every row.
func All(filters ...Filter) Filter { return allOf(filters) }

func (a allOf) Apply(src Source) (*selection.Selection, error) {
	if len(a) == 0 {
		return selection.FromRange(0, src.RowCount()), nil
	}
	sels, err := applyAll(src, a)
	if err != nil {
		return nil, err
	}
	return selection.Intersection(sels...), nil
}

type not struct {
	f Filter
}

// Not selects the rows of the source that f does not select.
func Not(f Filter) Filter { return not{f: f} }

func (n not) Apply(src Source) (*selection.Selection, error) {
	sel, err := n.f.Apply(src)
	if err != nil {
		return nil, err
	}
	return sel.Complement(src.RowCount()), nil
}

// Both selects rows matching a and b.
func Both(a, b Filter) Filter { return All(a, b) }

// Either selects rows matching a or b.
func Either(a, b Filter) Filter { return Any(a, b) }

// Neither selects rows matching neither a nor b.
func Neither(a, b Filter) Filter { return Not(Any(a, b)) }

// NotBoth selects rows that do not match both a and b.
func NotBoth(a, b Filter) Filter { return Not(All(a, b)) }

// NotAny selects rows matching none of the filters.
func NotAny(filters ...Filter) Filter { return Not(Any(filters...)) }

// NotAll selects rows that fail at least one filter.
func NotAll(filters ...Filter) Filter { return Not(All(filters...)) }
