package index

import (
	"fmt"

	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/packed"
	"github.com/hupe1980/colsaw/selection"
)

// ForNumbers indexes an integer or float column.
func ForNumbers[T column.Number](c *column.NumberColumn[T]) *Index[T] {
	data := c.Data()
	return build(c, func(i int) T { return data[i] })
}

// ForTemporal indexes a packed calendar column on its packed integers.
func ForTemporal[T column.Temporal](c *column.TemporalColumn[T]) *Index[T] {
	data := c.Data()
	return build(c, func(i int) T { return data[i] })
}

func ForDates(c *column.DateColumn) *Index[packed.Date] { return ForTemporal(c) }

func ForTimes(c *column.TimeColumn) *Index[packed.Time] { return ForTemporal(c) }

// ForStrings indexes a dictionary-encoded column by value.
func ForStrings(c *column.StringColumn) *Index[string] {
	return build(c, c.Value)
}

// Lookup is a type-erased index. Operands must be the column's storage type
// (as returned by Column.Get or Type.Parse) or an integer that fits it.
type Lookup interface {
	Column() string
	Type() column.Type
	Keys() int
	Rows() int

	Get(v any) (*selection.Selection, error)
	LessThan(v any) (*selection.Selection, error)
	AtMost(v any) (*selection.Selection, error)
	AtLeast(v any) (*selection.Selection, error)
	GreaterThan(v any) (*selection.Selection, error)
	Between(lo, hi any) (*selection.Selection, error)
}

// Build indexes any supported column. Boolean and Text columns are rejected
// with an error naming the type.
func Build(col column.Column) (Lookup, error) {
	switch c := col.(type) {
	case *column.ShortColumn:
		return erase(ForNumbers(c)), nil
	case *column.IntColumn:
		return erase(ForNumbers(c)), nil
	case *column.LongColumn:
		return erase(ForNumbers(c)), nil
	case *column.FloatColumn:
		return erase(ForNumbers(c)), nil
	case *column.DoubleColumn:
		return erase(ForNumbers(c)), nil
	case *column.DateColumn:
		return erase(ForDates(c)), nil
	case *column.TimeColumn:
		return erase(ForTimes(c)), nil
	case *column.DateTimeColumn:
		return erase(ForTemporal(c)), nil
	case *column.InstantColumn:
		return erase(ForTemporal(c)), nil
	case *column.StringColumn:
		return erase(ForStrings(c)), nil
	}
	return nil, fmt.Errorf("%w: cannot index %s column %q", ErrUnsupported, col.Type(), col.Name())
}

type erased[K Key] struct {
	*Index[K]
}

func erase[K Key](x *Index[K]) Lookup { return erased[K]{x} }

func (e erased[K]) key(op column.Op, v any) (K, error) {
	if k, ok := v.(K); ok {
		return k, nil
	}
	if k, ok := convertInt[K](v); ok {
		return k, nil
	}
	var zero K
	return zero, &column.TypeMismatchError{Column: e.column, Type: e.typ, Op: op, Operand: v}
}

func (e erased[K]) Get(v any) (*selection.Selection, error) {
	k, err := e.key(column.OpEq, v)
	if err != nil {
		return nil, err
	}
	return e.Index.Get(k), nil
}

func (e erased[K]) LessThan(v any) (*selection.Selection, error) {
	k, err := e.key(column.OpLt, v)
	if err != nil {
		return nil, err
	}
	return e.Index.LessThan(k), nil
}

func (e erased[K]) AtMost(v any) (*selection.Selection, error) {
	k, err := e.key(column.OpLte, v)
	if err != nil {
		return nil, err
	}
	return e.Index.AtMost(k), nil
}

func (e erased[K]) AtLeast(v any) (*selection.Selection, error) {
	k, err := e.key(column.OpGte, v)
	if err != nil {
		return nil, err
	}
	return e.Index.AtLeast(k), nil
}

func (e erased[K]) GreaterThan(v any) (*selection.Selection, error) {
	k, err := e.key(column.OpGt, v)
	if err != nil {
		return nil, err
	}
	return e.Index.GreaterThan(k), nil
}

func (e erased[K]) Between(lo, hi any) (*selection.Selection, error) {
	l, err := e.key(column.OpBetween, lo)
	if err != nil {
		return nil, err
	}
	h, err := e.key(column.OpBetween, hi)
	if err != nil {
		return nil, err
	}
	return e.Index.Between(l, h), nil
}

// convertInt accepts any Go integer for numeric keys when the value survives
// the round trip through K, matching the operands column predicates accept.
func convertInt[K Key](v any) (K, bool) {
	var zero K
	n, ok := asInt(v)
	if !ok {
		return zero, false
	}
	switch any(zero).(type) {
	case int16:
		if int64(int16(n)) == n {
			return any(int16(n)).(K), true
		}
	case int32:
		if int64(int32(n)) == n {
			return any(int32(n)).(K), true
		}
	case int64:
		return any(n).(K), true
	case float32:
		if int64(float32(n)) == n {
			return any(float32(n)).(K), true
		}
	case float64:
		if int64(float64(n)) == n {
			return any(float64(n)).(K), true
		}
	}
	return zero, false
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	}
	return 0, false
}
