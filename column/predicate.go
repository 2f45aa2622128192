package column

import (
	"fmt"
	"strings"
	"time"
)

// Op names a predicate kind.
type Op uint8

const (
	opInvalid Op = iota

	OpEq
	OpNotEq
	OpLt
	OpLte
	OpGt
	OpGte
	OpBetween
	OpIn
	OpIsMissing
	OpIsNotMissing

	OpStartsWith
	OpEndsWith
	OpContains
	OpMatchesRegex
	OpEqualsIgnoreCase
	OpIsAlpha
	OpIsNumeric
	OpIsAlphaNumeric
	OpIsUpperCase
	OpIsLowerCase
	OpIsEmptyString
	OpLengthEquals

	OpIsTrue
	OpIsFalse

	OpIsBefore
	OpIsAfter
	OpIsOnOrBefore
	OpIsOnOrAfter
	OpDayOfWeekIs
	OpIsWeekend
	OpIsWeekday
	OpMonthIs
	OpYearIs
	OpDayOfMonthIs
	OpQuarterIs
	OpIsFirstDayOfMonth
	OpIsLastDayOfMonth
	OpIsLeapYear

	OpHourIs
	OpMinuteIs
	OpIsAM
	OpIsPM
	OpIsMidnight
	OpIsNoon

	opCount
)

// variadic marks an operation that takes one or more operands.
const variadic = -1

var ops = [opCount]struct {
	name  string
	arity int
}{
	opInvalid:           {"invalid", 0},
	OpEq:                {"isEqualTo", 1},
	OpNotEq:             {"isNotEqualTo", 1},
	OpLt:                {"isLessThan", 1},
	OpLte:               {"isLessThanOrEqualTo", 1},
	OpGt:                {"isGreaterThan", 1},
	OpGte:               {"isGreaterThanOrEqualTo", 1},
	OpBetween:           {"isBetweenInclusive", 2},
	OpIn:                {"isIn", variadic},
	OpIsMissing:         {"isMissing", 0},
	OpIsNotMissing:      {"isNotMissing", 0},
	OpStartsWith:        {"startsWith", 1},
	OpEndsWith:          {"endsWith", 1},
	OpContains:          {"containsString", 1},
	OpMatchesRegex:      {"matchesRegex", 1},
	OpEqualsIgnoreCase:  {"equalsIgnoreCase", 1},
	OpIsAlpha:           {"isAlpha", 0},
	OpIsNumeric:         {"isNumeric", 0},
	OpIsAlphaNumeric:    {"isAlphaNumeric", 0},
	OpIsUpperCase:       {"isUpperCase", 0},
	OpIsLowerCase:       {"isLowerCase", 0},
	OpIsEmptyString:     {"isEmptyString", 0},
	OpLengthEquals:      {"lengthEquals", 1},
	OpIsTrue:            {"isTrue", 0},
	OpIsFalse:           {"isFalse", 0},
	OpIsBefore:          {"isBefore", 1},
	OpIsAfter:           {"isAfter", 1},
	OpIsOnOrBefore:      {"isOnOrBefore", 1},
	OpIsOnOrAfter:       {"isOnOrAfter", 1},
	OpDayOfWeekIs:       {"isDayOfWeek", 1},
	OpIsWeekend:         {"isWeekend", 0},
	OpIsWeekday:         {"isWeekday", 0},
	OpMonthIs:           {"isInMonth", 1},
	OpYearIs:            {"isInYear", 1},
	OpDayOfMonthIs:      {"isDayOfMonth", 1},
	OpQuarterIs:         {"isInQuarter", 1},
	OpIsFirstDayOfMonth: {"isFirstDayOfMonth", 0},
	OpIsLastDayOfMonth:  {"isLastDayOfMonth", 0},
	OpIsLeapYear:        {"isInLeapYear", 0},
	OpHourIs:            {"isHour", 1},
	OpMinuteIs:          {"isMinute", 1},
	OpIsAM:              {"isBeforeNoon", 0},
	OpIsPM:              {"isAfterNoon", 0},
	OpIsMidnight:        {"isMidnight", 0},
	OpIsNoon:            {"isNoon", 0},
}

// String renders the operation name.
func (o Op) String() string {
	if o < opCount {
		return ops[o].name
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Predicate is one test applied to every cell of a column.
// Build it with the constructor functions rather than by hand.
type Predicate struct {
	Op   Op
	Args []any
}

// String renders the operation name.
func (p Predicate) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = fmt.Sprint(a)
	}
	return p.Op.String() + "(" + strings.Join(args, ", ") + ")"
}

// Validate checks the operand count.
func (p Predicate) Validate() error {
	if p.Op == opInvalid || p.Op >= opCount {
		return fmt.Errorf("%w: unknown operation %s", ErrInvalidPredicate, p.Op)
	}
	want := ops[p.Op].arity
	switch {
	case want == variadic && len(p.Args) == 0:
		return fmt.Errorf("%w: %s needs at least one operand", ErrInvalidPredicate, p.Op)
	case want != variadic && len(p.Args) != want:
		return fmt.Errorf("%w: %s takes %d operands, got %d", ErrInvalidPredicate, p.Op, want, len(p.Args))
	}
	return nil
}

func pred(op Op, args ...any) Predicate { return Predicate{Op: op, Args: args} }

// Eq matches cells equal to v.
func Eq(v any) Predicate { return pred(OpEq, v) }

// NotEq matches non-missing cells different from v.
func NotEq(v any) Predicate { return pred(OpNotEq, v) }

// Lt matches cells less than v.
func Lt(v any) Predicate { return pred(OpLt, v) }

// Lte matches cells less than or equal to v.
func Lte(v any) Predicate { return pred(OpLte, v) }

// Gt matches cells greater than v.
func Gt(v any) Predicate { return pred(OpGt, v) }

// Gte matches cells greater than or equal to v.
func Gte(v any) Predicate { return pred(OpGte, v) }

// Between matches cells in [lo, hi].
func Between(lo, hi any) Predicate { return pred(OpBetween, lo, hi) }

// In matches cells equal to any of vs.
func In(vs ...any) Predicate { return pred(OpIn, vs...) }

// IsMissing matches missing cells.
func IsMissing() Predicate { return pred(OpIsMissing) }

// IsNotMissing matches cells that hold a value.
func IsNotMissing() Predicate { return pred(OpIsNotMissing) }

// StartsWith matches strings with the given prefix.
func StartsWith(prefix string) Predicate { return pred(OpStartsWith, prefix) }

// EndsWith matches strings with the given suffix.
func EndsWith(suffix string) Predicate { return pred(OpEndsWith, suffix) }

// Contains matches strings containing sub.
func Contains(sub string) Predicate { return pred(OpContains, sub) }

// MatchesRegex matches cells the pattern matches in full, with .NET/Perl-style
// syntax including lookarounds and backreferences.
func MatchesRegex(pattern string) Predicate { return pred(OpMatchesRegex, pattern) }

// EqualsIgnoreCase matches strings equal to s under Unicode case folding.
func EqualsIgnoreCase(s string) Predicate { return pred(OpEqualsIgnoreCase, s) }

// IsAlpha matches strings made only of letters.
func IsAlpha() Predicate { return pred(OpIsAlpha) }

// IsNumeric matches strings made only of digits.
func IsNumeric() Predicate { return pred(OpIsNumeric) }

// IsAlphaNumeric matches strings made only of letters and digits.
func IsAlphaNumeric() Predicate { return pred(OpIsAlphaNumeric) }

// IsUpperCase matches strings made only of upper-case letters.
func IsUpperCase() Predicate { return pred(OpIsUpperCase) }

// IsLowerCase matches strings made only of lower-case letters.
func IsLowerCase() Predicate { return pred(OpIsLowerCase) }

// IsEmptyString matches cells holding "". For String and Text columns that is
// also the missing value, so value predicates never match it; this one does.
func IsEmptyString() Predicate { return pred(OpIsEmptyString) }

// LengthEquals matches strings of n runes.
func LengthEquals(n int) Predicate { return pred(OpLengthEquals, n) }

// IsTrue matches true booleans.
func IsTrue() Predicate { return pred(OpIsTrue) }

// IsFalse matches false booleans.
func IsFalse() Predicate { return pred(OpIsFalse) }

// IsBefore matches temporal cells strictly earlier than v.
func IsBefore(v any) Predicate { return pred(OpIsBefore, v) }

// IsAfter matches temporal cells strictly later than v.
func IsAfter(v any) Predicate { return pred(OpIsAfter, v) }

// IsOnOrBefore matches temporal cells not later than v.
func IsOnOrBefore(v any) Predicate { return pred(OpIsOnOrBefore, v) }

// IsOnOrAfter matches temporal cells not earlier than v.
func IsOnOrAfter(v any) Predicate { return pred(OpIsOnOrAfter, v) }

// DayOfWeekIs matches dates on weekday wd.
func DayOfWeekIs(wd time.Weekday) Predicate { return pred(OpDayOfWeekIs, wd) }

// IsSunday matches Sundays.
func IsSunday() Predicate { return DayOfWeekIs(time.Sunday) }

// IsSaturday matches Saturdays.
func IsSaturday() Predicate { return DayOfWeekIs(time.Saturday) }

// IsWeekend matches Saturdays and Sundays.
func IsWeekend() Predicate { return pred(OpIsWeekend) }

// IsWeekday matches Monday through Friday.
func IsWeekday() Predicate { return pred(OpIsWeekday) }

// MonthIs matches dates in month m.
func MonthIs(m time.Month) Predicate { return pred(OpMonthIs, m) }

// IsInJanuary matches dates in January.
func IsInJanuary() Predicate { return MonthIs(time.January) }

// IsInDecember matches dates in December.
func IsInDecember() Predicate { return MonthIs(time.December) }

// YearIs matches dates in year.
func YearIs(year int) Predicate { return pred(OpYearIs, year) }

// DayOfMonthIs matches dates on the given day of the month.
func DayOfMonthIs(day int) Predicate { return pred(OpDayOfMonthIs, day) }

// QuarterIs matches dates in quarter q.
func QuarterIs(q int) Predicate { return pred(OpQuarterIs, q) }

// IsFirstDayOfMonth matches the 1st of each month.
func IsFirstDayOfMonth() Predicate { return pred(OpIsFirstDayOfMonth) }

// IsLastDayOfMonth matches the last day of each month.
func IsLastDayOfMonth() Predicate { return pred(OpIsLastDayOfMonth) }

// IsLeapYear matches dates in leap years.
func IsLeapYear() Predicate { return pred(OpIsLeapYear) }

// HourIs matches times in hour h.
func HourIs(h int) Predicate { return pred(OpHourIs, h) }

// MinuteIs matches times in minute m of the hour.
func MinuteIs(m int) Predicate { return pred(OpMinuteIs, m) }

// IsAM matches times before noon.
func IsAM() Predicate { return pred(OpIsAM) }

// IsPM matches times at or after noon.
func IsPM() Predicate { return pred(OpIsPM) }

// IsMidnight matches exactly 00:00.
func IsMidnight() Predicate { return pred(OpIsMidnight) }

// IsNoon matches exactly 12:00.
func IsNoon() Predicate { return pred(OpIsNoon) }

// intArg extracts an int operand for field predicates such as YearIs.
func intArg(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case time.Month:
		return int(x), true
	case time.Weekday:
		return int(x), true
	}
	return 0, false
}
