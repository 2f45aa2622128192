// Package column provides typed columns over primitive backing arrays and
// the predicates evaluated against them.
//
// # Types
//
// Type is a closed enumeration. Each value fixes the cell width, the
// on-disk tag, a literal parser and an empty-column factory:
//
//	Short, Int, Long          int16, int32, int64; missing = minimum value
//	Float, Double             float32, float64; missing = NaN
//	Boolean                   int8 cells 1/0; missing = -1
//	String                    dictionary + int32 code per row; missing = ""
//	Text                      one string per row; missing = ""
//	LocalDate, LocalTime      packed int32 (package packed)
//	LocalDateTime, Instant    packed int64 (package packed)
//
// # Predicates
//
// A Predicate is an operation tag plus operands, built with constructors
// such as Gt(50), StartsWith("A") or IsInDecember(). Column.Eval switches on
// the tag once, scans the backing array once and returns a fresh
// selection.Selection. Missing cells never match a value predicate; use
// IsMissing to find them.
//
// A predicate that does not apply to the column's type, or whose operand
// does not fit it, fails with a *TypeMismatchError rather than selecting
// nothing:
//
//	_, err := names.Eval(column.IsInDecember())
//	errors.Is(err, column.ErrTypeMismatch) // true
package column
