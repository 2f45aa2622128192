package column

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/hupe1980/colsaw/selection"
)

// Bool cell encodings.
const (
	BoolTrue    int8 = 1
	BoolFalse   int8 = 0
	BoolMissing int8 = -1
)

// BoolColumn stores one byte per row: 1, 0, or -1 for missing.
type BoolColumn struct {
	name string
	data []int8
}

// NewBoolColumn returns a Boolean column holding values.
func NewBoolColumn(name string, values ...bool) *BoolColumn {
	data := make([]int8, len(values))
	for i, v := range values {
		data[i] = boolCell(v)
	}
	return &BoolColumn{name: name, data: data}
}

// NewBoolColumnFromBytes wraps encoded cells without copying.
func NewBoolColumnFromBytes(name string, data []int8) (*BoolColumn, error) {
	for i, b := range data {
		if b != BoolTrue && b != BoolFalse && b != BoolMissing {
			return nil, fmt.Errorf("%w: bool cell %d holds %d", ErrInvalidValue, i, b)
		}
	}
	return &BoolColumn{name: name, data: data}, nil
}

func boolCell(v bool) int8 {
	if v {
		return BoolTrue
	}
	return BoolFalse
}

func (c *BoolColumn) Name() string { return c.name }
func (c *BoolColumn) Type() Type   { return Boolean }
func (c *BoolColumn) Len() int     { return len(c.data) }

// Data exposes the encoded backing array.
func (c *BoolColumn) Data() []int8 { return c.data }

func (c *BoolColumn) IsMissing(i int) bool { return c.data[i] == BoolMissing }
func (c *BoolColumn) CountMissing() int    { return countMissing(c) }

func (c *BoolColumn) Get(i int) any {
	switch c.data[i] {
	case BoolTrue:
		return true
	case BoolFalse:
		return false
	}
	return nil
}

func (c *BoolColumn) coerce(v any) (int8, error) {
	switch x := v.(type) {
	case nil:
		return BoolMissing, nil
	case bool:
		return boolCell(x), nil
	case *bool:
		if x == nil {
			return BoolMissing, nil
		}
		return boolCell(*x), nil
	}
	return BoolMissing, invalidValue(c, v)
}

func (c *BoolColumn) Set(i int, v any) error {
	b, err := c.coerce(v)
	if err != nil {
		return err
	}
	c.data[i] = b
	return nil
}

func (c *BoolColumn) Append(v any) error {
	b, err := c.coerce(v)
	if err != nil {
		return err
	}
	c.data = append(c.data, b)
	return nil
}

func (c *BoolColumn) AppendMissing() { c.data = append(c.data, BoolMissing) }

func (c *BoolColumn) EmptyCopy() Column { return &BoolColumn{name: c.name} }

func (c *BoolColumn) Copy() Column {
	return &BoolColumn{name: c.name, data: append([]int8(nil), c.data...)}
}

// Compare orders missing, then false, then true.
func (c *BoolColumn) Compare(i, j int) int { return cmp.Compare(c.data[i], c.data[j]) }

func (c *BoolColumn) Gather(rows []int) Column {
	return &BoolColumn{name: c.name, data: gather(c.data, rows)}
}

func (c *BoolColumn) Where(sel *selection.Selection) Column {
	return &BoolColumn{name: c.name, data: where(c.data, sel)}
}

func (c *BoolColumn) Values() iter.Seq2[int, any] { return values(c) }

func (c *BoolColumn) Eval(p Predicate) (*selection.Selection, error) {
	return evaluate(c, p, c.matcher)
}

func (c *BoolColumn) matcher(p Predicate) (func(int) bool, error) {
	data := c.data
	switch p.Op {
	case OpIsTrue:
		return func(i int) bool { return data[i] == BoolTrue }, nil
	case OpIsFalse:
		return func(i int) bool { return data[i] == BoolFalse }, nil
	case OpEq, OpNotEq:
		b, ok := p.Args[0].(bool)
		if !ok {
			return nil, mismatch(c, p.Op, p.Args[0])
		}
		want := boolCell(b)
		if p.Op == OpNotEq {
			return func(i int) bool { return data[i] != want }, nil
		}
		return func(i int) bool { return data[i] == want }, nil
	case OpIn:
		var hasTrue, hasFalse bool
		for _, a := range p.Args {
			b, ok := a.(bool)
			if !ok {
				return nil, mismatch(c, p.Op, a)
			}
			hasTrue, hasFalse = hasTrue || b, hasFalse || !b
		}
		return func(i int) bool {
			return (hasTrue && data[i] == BoolTrue) || (hasFalse && data[i] == BoolFalse)
		}, nil
	default:
		return nil, mismatch(c, p.Op, nil)
	}
}
