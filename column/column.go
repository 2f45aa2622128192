package column

import (
	"errors"
	"fmt"
	"iter"

	"github.com/hupe1980/colsaw/selection"
)

var (
	// ErrTypeMismatch is matched by every *TypeMismatchError.
	ErrTypeMismatch = errors.New("column: type mismatch")

	// ErrUnknownColumn is returned when a name does not resolve to a column.
	ErrUnknownColumn = errors.New("column: unknown column")

	// ErrUnknownType is returned for a tag or Type outside the enumeration.
	ErrUnknownType = errors.New("column: unknown type")

	// ErrInvalidPredicate is returned for a predicate with the wrong number of operands.
	ErrInvalidPredicate = errors.New("column: invalid predicate")

	// ErrInvalidValue is returned when a cell value cannot be stored in a column.
	ErrInvalidValue = errors.New("column: invalid value")
)

// TypeMismatchError reports a predicate or value applied to a column type
// that cannot evaluate it.
type TypeMismatchError struct {
	Column  string
	Type    Type
	Op      Op
	Operand any // nil when the operation itself is unsupported
}

// Error names the column, its type and the rejected operation.
func (e *TypeMismatchError) Error() string {
	if e.Operand != nil {
		return fmt.Sprintf("column %q: %s operand %v (%T) does not fit a %s column", e.Column, e.Op, e.Operand, e.Operand, e.Type)
	}
	return fmt.Sprintf("column %q: %s is not applicable to a %s column", e.Column, e.Op, e.Type)
}

// Unwrap makes the error match ErrTypeMismatch.
func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// Column is a named, typed sequence of cells.
//
// Get returns the cell as its storage type (int32, float64, string,
// packed.Date, ...) or nil when missing. Set and Append accept the storage
// type, convertible Go values, and nil for missing.
type Column interface {
	Name() string
	Type() Type
	Len() int

	IsMissing(i int) bool
	CountMissing() int

	Get(i int) any
	Set(i int, v any) error
	Append(v any) error
	AppendMissing()

	// EmptyCopy returns a column of the same name and type with no rows.
	EmptyCopy() Column
	Copy() Column

	// Compare orders rows i and j by value. Missing sorts before everything else.
	Compare(i, j int) int

	// Gather returns a new column holding rows in the given order.
	Gather(rows []int) Column
	// Where returns a new column holding the selected rows in order.
	Where(sel *selection.Selection) Column

	// Eval scans the column once and returns the rows matching p.
	Eval(p Predicate) (*selection.Selection, error)

	Values() iter.Seq2[int, any]
}

// scan collects the rows in [0, n) that match.
func scan(n int, match func(i int) bool) *selection.Selection {
	rows := make([]uint32, 0, 64)
	for i := 0; i < n; i++ {
		if match(i) {
			rows = append(rows, uint32(i))
		}
	}
	return selection.FromUint32s(rows)
}

// evaluate handles the missing-value predicates for every column and
// guards value predicates so missing cells never match.
func evaluate(c Column, p Predicate, matcher func(Predicate) (func(int) bool, error)) (*selection.Selection, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch p.Op {
	case OpIsMissing:
		return scan(c.Len(), c.IsMissing), nil
	case OpIsNotMissing:
		return scan(c.Len(), func(i int) bool { return !c.IsMissing(i) }), nil
	}

	match, err := matcher(p)
	if err != nil {
		return nil, err
	}
	return scan(c.Len(), func(i int) bool { return !c.IsMissing(i) && match(i) }), nil
}

func gather[T any](data []T, rows []int) []T {
	out := make([]T, len(rows))
	for k, r := range rows {
		out[k] = data[r]
	}
	return out
}

func where[T any](data []T, sel *selection.Selection) []T {
	out := make([]T, 0, sel.Size())
	for r := range sel.All() {
		out = append(out, data[r])
	}
	return out
}

func values(c Column) iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i := 0; i < c.Len(); i++ {
			if !yield(i, c.Get(i)) {
				return
			}
		}
	}
}

func countMissing(c Column) int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			n++
		}
	}
	return n
}

func mismatch(c Column, op Op, operand any) error {
	return &TypeMismatchError{Column: c.Name(), Type: c.Type(), Op: op, Operand: operand}
}

func invalidValue(c Column, v any) error {
	return fmt.Errorf("%w: %v (%T) for %s column %q", ErrInvalidValue, v, v, c.Type(), c.Name())
}
