package index

import (
	"cmp"

	"github.com/benbjohnson/immutable"
	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/order"
	"github.com/hupe1980/colsaw/selection"
)

// Key is the set of value types an index can be keyed by.
type Key interface {
	cmp.Ordered
}

type comparer[K Key] struct{}

func (comparer[K]) Compare(a, b K) int { return cmp.Compare(a, b) }

// Index maps each distinct value of a column to the rows holding it, in
// value order. Missing cells are not indexed.
//
// An Index is immutable once built and safe for concurrent queries. Every
// query returns a fresh Selection.
type Index[K Key] struct {
	column string
	typ    column.Type
	rows   int
	m      *immutable.SortedMap[K, *selection.Selection]
}

// build sorts rows with the sort engine and groups runs of equal values.
func build[K Key](col column.Column, value func(i int) K) *Index[K] {
	b := immutable.NewSortedMapBuilder[K, *selection.Selection](comparer[K]{})

	var (
		run     []uint32
		current K
		indexed int
	)
	flush := func() {
		if len(run) > 0 {
			b.Set(current, selection.FromUint32s(run))
			run = run[:0]
		}
	}

	for _, r := range order.Ascending(col) {
		if col.IsMissing(r) {
			continue
		}
		v := value(r)
		if len(run) > 0 && v != current {
			flush()
		}
		current = v
		run = append(run, uint32(r))
		indexed++
	}
	flush()

	return &Index[K]{column: col.Name(), typ: col.Type(), rows: indexed, m: b.Map()}
}

// Column returns the name of the indexed column.
func (x *Index[K]) Column() string { return x.column }

// Type returns the type of the indexed column.
func (x *Index[K]) Type() column.Type { return x.typ }

// Keys returns the number of distinct values.
func (x *Index[K]) Keys() int { return x.m.Len() }

// Rows returns the number of indexed, non-missing rows.
func (x *Index[K]) Rows() int { return x.rows }

// Get returns the rows equal to v.
func (x *Index[K]) Get(v K) *selection.Selection {
	if sel, ok := x.m.Get(v); ok {
		return sel.Clone()
	}
	return selection.New()
}

// LessThan returns the rows strictly below v.
func (x *Index[K]) LessThan(v K) *selection.Selection {
	return x.head(func(k K) bool { return k < v })
}

// AtMost returns the rows at or below v.
func (x *Index[K]) AtMost(v K) *selection.Selection {
	return x.head(func(k K) bool { return k <= v })
}

// AtLeast returns the rows at or above v.
func (x *Index[K]) AtLeast(v K) *selection.Selection {
	return x.tail(v, func(k K) bool { return true })
}

// GreaterThan returns the rows strictly above v.
func (x *Index[K]) GreaterThan(v K) *selection.Selection {
	return x.tail(v, func(k K) bool { return k != v })
}

// Between returns the rows in [lo, hi].
func (x *Index[K]) Between(lo, hi K) *selection.Selection {
	if hi < lo {
		return selection.New()
	}
	var parts []*selection.Selection
	it := x.m.Iterator()
	it.Seek(lo)
	for !it.Done() {
		k, sel, _ := it.Next()
		if k > hi {
			break
		}
		parts = append(parts, sel)
	}
	return selection.Union(parts...)
}

// head walks from the smallest key while in(k) holds.
func (x *Index[K]) head(in func(K) bool) *selection.Selection {
	var parts []*selection.Selection
	it := x.m.Iterator()
	it.First()
	for !it.Done() {
		k, sel, _ := it.Next()
		if !in(k) {
			break
		}
		parts = append(parts, sel)
	}
	return selection.Union(parts...)
}

// tail walks from the first key >= from to the end, keeping keys where keep(k) holds.
func (x *Index[K]) tail(from K, keep func(K) bool) *selection.Selection {
	var parts []*selection.Selection
	it := x.m.Iterator()
	it.Seek(from)
	for !it.Done() {
		k, sel, _ := it.Next()
		if keep(k) {
			parts = append(parts, sel)
		}
	}
	return selection.Union(parts...)
}

// All iterates the distinct values in ascending order with their rows.
// The yielded selections are shared; clone them before mutating.
func (x *Index[K]) All(yield func(K, *selection.Selection) bool) {
	it := x.m.Iterator()
	it.First()
	for !it.Done() {
		k, sel, _ := it.Next()
		if !yield(k, sel) {
			return
		}
	}
}
