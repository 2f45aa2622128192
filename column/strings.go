package column

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// stringTest builds a per-value test for String and Text columns.
// OpIsEmptyString is handled by the callers because it targets the missing value.
func stringTest(c Column, p Predicate) (func(string) bool, error) {
	arg := func(k int) (string, error) {
		s, ok := p.Args[k].(string)
		if !ok {
			return "", mismatch(c, p.Op, p.Args[k])
		}
		return s, nil
	}

	switch p.Op {
	case OpEq, OpNotEq, OpLt, OpLte, OpGt, OpGte:
		s, err := arg(0)
		if err != nil {
			return nil, err
		}
		test := orderTest(p.Op)
		return func(v string) bool { return test(strings.Compare(v, s)) }, nil
	case OpBetween:
		lo, err := arg(0)
		if err != nil {
			return nil, err
		}
		hi, err := arg(1)
		if err != nil {
			return nil, err
		}
		return func(v string) bool { return v >= lo && v <= hi }, nil
	case OpIn:
		set := make(map[string]struct{}, len(p.Args))
		for k := range p.Args {
			s, err := arg(k)
			if err != nil {
				return nil, err
			}
			set[s] = struct{}{}
		}
		return func(v string) bool { _, ok := set[v]; return ok }, nil
	case OpStartsWith, OpEndsWith, OpContains, OpEqualsIgnoreCase:
		s, err := arg(0)
		if err != nil {
			return nil, err
		}
		switch p.Op {
		case OpStartsWith:
			return func(v string) bool { return strings.HasPrefix(v, s) }, nil
		case OpEndsWith:
			return func(v string) bool { return strings.HasSuffix(v, s) }, nil
		case OpContains:
			return func(v string) bool { return strings.Contains(v, s) }, nil
		default:
			return func(v string) bool { return strings.EqualFold(v, s) }, nil
		}
	case OpMatchesRegex:
		pattern, err := arg(0)
		if err != nil {
			return nil, err
		}
		return regexTest(pattern)
	case OpIsAlpha:
		return allRunes(unicode.IsLetter), nil
	case OpIsNumeric:
		return allRunes(unicode.IsDigit), nil
	case OpIsAlphaNumeric:
		return allRunes(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }), nil
	case OpIsUpperCase:
		return allRunes(unicode.IsUpper), nil
	case OpIsLowerCase:
		return allRunes(unicode.IsLower), nil
	case OpLengthEquals:
		n, ok := intArg(p.Args[0])
		if !ok {
			return nil, mismatch(c, p.Op, p.Args[0])
		}
		return func(v string) bool { return utf8.RuneCountInString(v) == n }, nil
	default:
		return nil, mismatch(c, p.Op, nil)
	}
}

// regexTest compiles pattern so that it must match the whole cell.
func regexTest(pattern string) (func(string) bool, error) {
	re, err := regexp2.Compile(`\A(?:`+pattern+`)\z`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: regex %q: %w", ErrInvalidPredicate, pattern, err)
	}
	return func(v string) bool {
		ok, err := re.MatchString(v)
		return err == nil && ok
	}, nil
}

// allRunes reports whether a non-empty string consists only of runes matching fn.
func allRunes(fn func(rune) bool) func(string) bool {
	return func(v string) bool {
		if v == "" {
			return false
		}
		for _, r := range v {
			if !fn(r) {
				return false
			}
		}
		return true
	}
}
