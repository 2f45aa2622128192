package column

import (
	"cmp"
	"errors"
	"iter"
	"time"

	"github.com/hupe1980/colsaw/packed"
	"github.com/hupe1980/colsaw/selection"
)

// Temporal is the set of packed calendar cell types.
type Temporal interface {
	packed.Date | packed.Time | packed.DateTime | packed.Instant
	IsMissing() bool
	String() string
}

// TemporalColumn stores packed calendar values. Comparisons and field
// predicates run on the packed integers without unpacking.
type TemporalColumn[T Temporal] struct {
	name    string
	typ     Type
	missing T
	data    []T

	dateOf func(T) packed.Date // nil for time-of-day columns
	timeOf func(T) packed.Time // nil for date columns
}

type (
	DateColumn     = TemporalColumn[packed.Date]
	TimeColumn     = TemporalColumn[packed.Time]
	DateTimeColumn = TemporalColumn[packed.DateTime]
	InstantColumn  = TemporalColumn[packed.Instant]
)

// NewTemporalColumn wraps data without copying.
func NewTemporalColumn[T Temporal](name string, data []T) *TemporalColumn[T] {
	c := &TemporalColumn[T]{name: name, data: data}
	switch any(c.missing).(type) {
	case packed.Date:
		c.typ = LocalDate
		c.missing = any(packed.MissingDate).(T)
		c.dateOf = func(v T) packed.Date { return packed.Date(int64(v)) }
	case packed.Time:
		c.typ = LocalTime
		c.missing = any(packed.MissingTime).(T)
		c.timeOf = func(v T) packed.Time { return packed.Time(int64(v)) }
	case packed.DateTime:
		c.typ = LocalDateTime
		c.missing = any(packed.MissingDateTime).(T)
	case packed.Instant:
		c.typ = Instant
		c.missing = any(packed.MissingInstant).(T)
	}
	if c.typ == LocalDateTime || c.typ == Instant {
		c.dateOf = func(v T) packed.Date { return packed.DateTime(int64(v)).Date() }
		c.timeOf = func(v T) packed.Time { return packed.DateTime(int64(v)).Time() }
	}
	return c
}

// NewDateColumn returns a LocalDate column holding values.
func NewDateColumn(name string, values ...packed.Date) *DateColumn {
	return NewTemporalColumn(name, values)
}

// NewTimeColumn returns a LocalTime column holding values.
func NewTimeColumn(name string, values ...packed.Time) *TimeColumn {
	return NewTemporalColumn(name, values)
}

// NewDateTimeColumn returns a LocalDateTime column holding values.
func NewDateTimeColumn(name string, values ...packed.DateTime) *DateTimeColumn {
	return NewTemporalColumn(name, values)
}

// NewInstantColumn returns an Instant column holding values.
func NewInstantColumn(name string, values ...packed.Instant) *InstantColumn {
	return NewTemporalColumn(name, values)
}

func (c *TemporalColumn[T]) Name() string { return c.name }
func (c *TemporalColumn[T]) Type() Type   { return c.typ }
func (c *TemporalColumn[T]) Len() int     { return len(c.data) }

// Data exposes the packed backing array.
func (c *TemporalColumn[T]) Data() []T { return c.data }

func (c *TemporalColumn[T]) IsMissing(i int) bool { return c.data[i] == c.missing }
func (c *TemporalColumn[T]) CountMissing() int    { return countMissing(c) }

func (c *TemporalColumn[T]) Get(i int) any {
	v := c.data[i]
	if v == c.missing {
		return nil
	}
	return v
}

var errNotTemporal = errors.New("not a temporal value")

// coerce accepts the packed type, time.Time (and *time.Time), ISO text, and
// time.Duration since midnight for time-of-day columns.
func (c *TemporalColumn[T]) coerce(v any) (T, error) {
	if v == nil {
		return c.missing, nil
	}
	if x, ok := v.(T); ok {
		return x, nil
	}
	if p, ok := v.(*time.Time); ok {
		if p == nil {
			return c.missing, nil
		}
		v = *p
	}

	var (
		out any
		err error
	)
	switch any(c.missing).(type) {
	case packed.Date:
		out, err = toDate(v)
	case packed.Time:
		out, err = toTime(v)
	case packed.DateTime:
		out, err = toDateTime(v)
	case packed.Instant:
		out, err = toInstant(v)
	}
	if errors.Is(err, errNotTemporal) {
		return c.missing, invalidValue(c, v)
	}
	if err != nil {
		return c.missing, err
	}
	return out.(T), nil
}

func toDate(v any) (packed.Date, error) {
	switch x := v.(type) {
	case time.Time:
		return packed.DateOf(x)
	case string:
		return packed.ParseDate(x)
	}
	return packed.MissingDate, errNotTemporal
}

func toTime(v any) (packed.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return packed.ClockOf(x), nil
	case time.Duration:
		return packed.TimeOfDay(x)
	case string:
		return packed.ParseTime(x)
	}
	return packed.MissingTime, errNotTemporal
}

func toDateTime(v any) (packed.DateTime, error) {
	switch x := v.(type) {
	case time.Time:
		return packed.DateTimeOf(x)
	case string:
		return packed.ParseDateTime(x)
	}
	return packed.MissingDateTime, errNotTemporal
}

func toInstant(v any) (packed.Instant, error) {
	switch x := v.(type) {
	case time.Time:
		return packed.InstantOf(x)
	case string:
		return packed.ParseInstant(x)
	}
	return packed.MissingInstant, errNotTemporal
}

func (c *TemporalColumn[T]) Set(i int, v any) error {
	x, err := c.coerce(v)
	if err != nil {
		return err
	}
	c.data[i] = x
	return nil
}

func (c *TemporalColumn[T]) Append(v any) error {
	x, err := c.coerce(v)
	if err != nil {
		return err
	}
	c.data = append(c.data, x)
	return nil
}

// AppendValue appends without boxing.
func (c *TemporalColumn[T]) AppendValue(v T) { c.data = append(c.data, v) }

func (c *TemporalColumn[T]) AppendMissing() { c.data = append(c.data, c.missing) }

func (c *TemporalColumn[T]) EmptyCopy() Column { return NewTemporalColumn[T](c.name, nil) }

func (c *TemporalColumn[T]) Copy() Column {
	return NewTemporalColumn(c.name, append([]T(nil), c.data...))
}

// Compare orders by the packed integer; the sentinels are the minimum of
// their width, so missing sorts first.
func (c *TemporalColumn[T]) Compare(i, j int) int { return cmp.Compare(c.data[i], c.data[j]) }

func (c *TemporalColumn[T]) Gather(rows []int) Column {
	return NewTemporalColumn(c.name, gather(c.data, rows))
}

func (c *TemporalColumn[T]) Where(sel *selection.Selection) Column {
	return NewTemporalColumn(c.name, where(c.data, sel))
}

func (c *TemporalColumn[T]) Values() iter.Seq2[int, any] { return values(c) }

func (c *TemporalColumn[T]) Eval(p Predicate) (*selection.Selection, error) {
	return evaluate(c, p, c.matcher)
}

func (c *TemporalColumn[T]) operand(op Op, v any) (T, error) {
	if v == nil {
		return c.missing, mismatch(c, op, v)
	}
	x, err := c.coerce(v)
	if err != nil {
		return c.missing, &TypeMismatchError{Column: c.name, Type: c.typ, Op: op, Operand: v}
	}
	return x, nil
}

func (c *TemporalColumn[T]) matcher(p Predicate) (func(int) bool, error) {
	data := c.data
	switch p.Op {
	case OpEq, OpNotEq, OpLt, OpLte, OpGt, OpGte, OpIsBefore, OpIsAfter, OpIsOnOrBefore, OpIsOnOrAfter:
		x, err := c.operand(p.Op, p.Args[0])
		if err != nil {
			return nil, err
		}
		test := orderTest(p.Op)
		return func(i int) bool { return test(cmp.Compare(data[i], x)) }, nil
	case OpBetween:
		lo, err := c.operand(p.Op, p.Args[0])
		if err != nil {
			return nil, err
		}
		hi, err := c.operand(p.Op, p.Args[1])
		if err != nil {
			return nil, err
		}
		return func(i int) bool { return data[i] >= lo && data[i] <= hi }, nil
	case OpIn:
		set := make(map[T]struct{}, len(p.Args))
		for _, a := range p.Args {
			x, err := c.operand(p.Op, a)
			if err != nil {
				return nil, err
			}
			set[x] = struct{}{}
		}
		return func(i int) bool { _, ok := set[data[i]]; return ok }, nil
	}

	if test, ok, err := c.dateMatcher(p); ok {
		return test, err
	}
	if test, ok, err := c.timeMatcher(p); ok {
		return test, err
	}
	return nil, mismatch(c, p.Op, nil)
}

// dateMatcher handles calendar field predicates. ok is false when p is not one.
func (c *TemporalColumn[T]) dateMatcher(p Predicate) (test func(int) bool, ok bool, err error) {
	var fn func(packed.Date) bool
	switch p.Op {
	case OpIsWeekend:
		fn = packed.Date.IsWeekend
	case OpIsWeekday:
		fn = packed.Date.IsWeekday
	case OpIsFirstDayOfMonth:
		fn = packed.Date.IsFirstDayOfMonth
	case OpIsLastDayOfMonth:
		fn = packed.Date.IsLastDayOfMonth
	case OpIsLeapYear:
		fn = packed.Date.IsLeapYear
	case OpDayOfWeekIs, OpMonthIs, OpYearIs, OpDayOfMonthIs, OpQuarterIs:
		n, isInt := intArg(p.Args[0])
		if !isInt {
			return nil, true, mismatch(c, p.Op, p.Args[0])
		}
		switch p.Op {
		case OpDayOfWeekIs:
			fn = func(d packed.Date) bool { return d.IsDayOfWeek(time.Weekday(n)) }
		case OpMonthIs:
			fn = func(d packed.Date) bool { return d.IsInMonth(time.Month(n)) }
		case OpYearIs:
			fn = func(d packed.Date) bool { return d.IsInYear(n) }
		case OpDayOfMonthIs:
			fn = func(d packed.Date) bool { return d.Day() == n }
		default:
			fn = func(d packed.Date) bool { return d.IsInQuarter(n) }
		}
	default:
		return nil, false, nil
	}

	if c.dateOf == nil {
		return nil, true, mismatch(c, p.Op, nil)
	}
	data, dateOf := c.data, c.dateOf
	return func(i int) bool { return fn(dateOf(data[i])) }, true, nil
}

// timeMatcher handles time-of-day field predicates. ok is false when p is not one.
func (c *TemporalColumn[T]) timeMatcher(p Predicate) (test func(int) bool, ok bool, err error) {
	var fn func(packed.Time) bool
	switch p.Op {
	case OpIsAM:
		fn = packed.Time.IsAM
	case OpIsPM:
		fn = packed.Time.IsPM
	case OpIsMidnight:
		fn = packed.Time.IsMidnight
	case OpIsNoon:
		fn = packed.Time.IsNoon
	case OpHourIs, OpMinuteIs:
		n, isInt := intArg(p.Args[0])
		if !isInt {
			return nil, true, mismatch(c, p.Op, p.Args[0])
		}
		if p.Op == OpHourIs {
			fn = func(t packed.Time) bool { return t.Hour() == n }
		} else {
			fn = func(t packed.Time) bool { return t.Minute() == n }
		}
	default:
		return nil, false, nil
	}

	if c.timeOf == nil {
		return nil, true, mismatch(c, p.Op, nil)
	}
	data, timeOf := c.data, c.timeOf
	return func(i int) bool { return fn(timeOf(data[i])) }, true, nil
}
