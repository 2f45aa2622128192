package column

import (
	"cmp"
	"iter"
	"math"

	"github.com/hupe1980/colsaw/selection"
)

// Number is the set of primitive cell types backed by NumberColumn.
type Number interface {
	int16 | int32 | int64 | float32 | float64
}

// NumberColumn stores one primitive per row. Integer columns reserve the
// minimum value of their width as missing; float columns use NaN.
type NumberColumn[T Number] struct {
	name    string
	typ     Type
	float   bool
	missing T
	data    []T
}

var (
	minShort int64 = math.MinInt16
	minInt   int64 = math.MinInt32
	minLong  int64 = math.MinInt64
)

type (
	ShortColumn  = NumberColumn[int16]
	IntColumn    = NumberColumn[int32]
	LongColumn   = NumberColumn[int64]
	FloatColumn  = NumberColumn[float32]
	DoubleColumn = NumberColumn[float64]
)

// NewNumberColumn wraps data without copying. The column owns data afterwards.
func NewNumberColumn[T Number](name string, data []T) *NumberColumn[T] {
	c := &NumberColumn[T]{name: name, data: data}
	switch any(c.missing).(type) {
	case int16:
		c.typ, c.missing = Short, T(minShort)
	case int32:
		c.typ, c.missing = Int, T(minInt)
	case int64:
		c.typ, c.missing = Long, T(minLong)
	case float32:
		c.typ, c.float, c.missing = Float, true, T(math.NaN())
	case float64:
		c.typ, c.float, c.missing = Double, true, T(math.NaN())
	}
	return c
}

// NewShortColumn returns a Short column holding values.
func NewShortColumn(name string, values ...int16) *ShortColumn {
	return NewNumberColumn(name, values)
}

// NewIntColumn returns an Int column holding values.
func NewIntColumn(name string, values ...int32) *IntColumn {
	return NewNumberColumn(name, values)
}

// NewLongColumn returns a Long column holding values.
func NewLongColumn(name string, values ...int64) *LongColumn {
	return NewNumberColumn(name, values)
}

// NewFloatColumn returns a Float column holding values.
func NewFloatColumn(name string, values ...float32) *FloatColumn {
	return NewNumberColumn(name, values)
}

// NewDoubleColumn returns a Double column holding values.
func NewDoubleColumn(name string, values ...float64) *DoubleColumn {
	return NewNumberColumn(name, values)
}

func (c *NumberColumn[T]) Name() string { return c.name }
func (c *NumberColumn[T]) Type() Type   { return c.typ }
func (c *NumberColumn[T]) Len() int     { return len(c.data) }

// Data exposes the backing array. Missing cells hold MissingValue.
func (c *NumberColumn[T]) Data() []T { return c.data }

// MissingValue returns the sentinel stored for missing cells.
func (c *NumberColumn[T]) MissingValue() T { return c.missing }

func (c *NumberColumn[T]) isMissing(v T) bool {
	if c.float {
		return v != v
	}
	return v == c.missing
}

func (c *NumberColumn[T]) IsMissing(i int) bool { return c.isMissing(c.data[i]) }

func (c *NumberColumn[T]) CountMissing() int { return countMissing(c) }

// Value returns the cell and whether it is present.
func (c *NumberColumn[T]) Value(i int) (T, bool) {
	v := c.data[i]
	return v, !c.isMissing(v)
}

func (c *NumberColumn[T]) Get(i int) any {
	v := c.data[i]
	if c.isMissing(v) {
		return nil
	}
	return v
}

func (c *NumberColumn[T]) coerce(v any) (T, error) {
	if v == nil {
		return c.missing, nil
	}
	if x, ok := v.(T); ok {
		return x, nil
	}
	if c.float {
		if f, ok := asFloat(v); ok {
			return T(f), nil
		}
		return c.missing, invalidValue(c, v)
	}
	n, ok := asInt(v)
	if !ok || !fitsInt[T](n) {
		return c.missing, invalidValue(c, v)
	}
	return T(n), nil
}

func (c *NumberColumn[T]) Set(i int, v any) error {
	x, err := c.coerce(v)
	if err != nil {
		return err
	}
	c.data[i] = x
	return nil
}

func (c *NumberColumn[T]) Append(v any) error {
	x, err := c.coerce(v)
	if err != nil {
		return err
	}
	c.data = append(c.data, x)
	return nil
}

// AppendValue appends without boxing.
func (c *NumberColumn[T]) AppendValue(v T) { c.data = append(c.data, v) }

func (c *NumberColumn[T]) AppendMissing() { c.data = append(c.data, c.missing) }

func (c *NumberColumn[T]) EmptyCopy() Column {
	return NewNumberColumn[T](c.name, nil)
}

func (c *NumberColumn[T]) Copy() Column {
	return NewNumberColumn(c.name, append([]T(nil), c.data...))
}

func (c *NumberColumn[T]) Compare(i, j int) int {
	// NaN and the integer sentinels both order first under cmp.Compare.
	return cmp.Compare(c.data[i], c.data[j])
}

func (c *NumberColumn[T]) Gather(rows []int) Column {
	return NewNumberColumn(c.name, gather(c.data, rows))
}

func (c *NumberColumn[T]) Where(sel *selection.Selection) Column {
	return NewNumberColumn(c.name, where(c.data, sel))
}

func (c *NumberColumn[T]) Values() iter.Seq2[int, any] { return values(c) }

func (c *NumberColumn[T]) Eval(p Predicate) (*selection.Selection, error) {
	return evaluate(c, p, c.matcher)
}

func (c *NumberColumn[T]) matcher(p Predicate) (func(int) bool, error) {
	data := c.data
	switch p.Op {
	case OpEq, OpNotEq, OpLt, OpLte, OpGt, OpGte:
		against, ok := c.comparator(p.Args[0])
		if !ok {
			return nil, mismatch(c, p.Op, p.Args[0])
		}
		test := orderTest(p.Op)
		return func(i int) bool { return test(against(data[i])) }, nil
	case OpBetween:
		lo, okLo := c.comparator(p.Args[0])
		hi, okHi := c.comparator(p.Args[1])
		if !okLo || !okHi {
			return nil, mismatch(c, p.Op, p.Args)
		}
		return func(i int) bool { return lo(data[i]) >= 0 && hi(data[i]) <= 0 }, nil
	case OpIn:
		return c.inMatcher(p)
	default:
		return nil, mismatch(c, p.Op, nil)
	}
}

// comparator returns a function ordering a cell against the operand.
// Integer cells compare exactly against integer operands and in float64
// against fractional ones.
func (c *NumberColumn[T]) comparator(arg any) (func(T) int, bool) {
	if !c.float {
		if n, ok := asInt(arg); ok {
			return func(v T) int { return cmp.Compare(int64(v), n) }, true
		}
	}
	if f, ok := asFloat(arg); ok {
		return func(v T) int { return cmp.Compare(float64(v), f) }, true
	}
	return nil, false
}

func (c *NumberColumn[T]) inMatcher(p Predicate) (func(int) bool, error) {
	data := c.data
	if c.float {
		set := make(map[float64]struct{}, len(p.Args))
		for _, a := range p.Args {
			f, ok := asFloat(a)
			if !ok {
				return nil, mismatch(c, p.Op, a)
			}
			set[f] = struct{}{}
		}
		return func(i int) bool { _, ok := set[float64(data[i])]; return ok }, nil
	}

	set := make(map[int64]struct{}, len(p.Args))
	for _, a := range p.Args {
		if n, ok := asInt(a); ok {
			set[n] = struct{}{}
			continue
		}
		f, ok := asFloat(a)
		if !ok {
			return nil, mismatch(c, p.Op, a)
		}
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			set[int64(f)] = struct{}{}
		}
	}
	return func(i int) bool { _, ok := set[int64(data[i])]; return ok }, nil
}

// orderTest maps a comparison result to the outcome of an ordering operation.
func orderTest(op Op) func(int) bool {
	switch op {
	case OpEq:
		return func(c int) bool { return c == 0 }
	case OpNotEq:
		return func(c int) bool { return c != 0 }
	case OpLt, OpIsBefore:
		return func(c int) bool { return c < 0 }
	case OpLte, OpIsOnOrBefore:
		return func(c int) bool { return c <= 0 }
	case OpGt, OpIsAfter:
		return func(c int) bool { return c > 0 }
	case OpGte, OpIsOnOrAfter:
		return func(c int) bool { return c >= 0 }
	}
	return func(int) bool { return false }
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

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	if n, ok := asInt(v); ok {
		return float64(n), true
	}
	return 0, false
}

func fitsInt[T Number](n int64) bool {
	return int64(T(n)) == n
}
