package column

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/colsaw/selection"
)

// StringColumn is dictionary encoded: each distinct value is stored once and
// every row holds an int32 code into the dictionary. The empty string is the
// missing value.
type StringColumn struct {
	name   string
	dict   []string
	lookup map[string]int32
	codes  []int32
}

// NewStringColumn returns a dictionary-encoded column holding values. Empty strings are missing.
func NewStringColumn(name string, values ...string) *StringColumn {
	c := &StringColumn{name: name, lookup: make(map[string]int32), codes: make([]int32, 0, len(values))}
	for _, v := range values {
		c.codes = append(c.codes, c.code(v))
	}
	return c
}

// NewStringColumnFromDictionary wraps a decoded dictionary and per-row codes
// without copying. Dictionary entries must be distinct and every code must
// index the dictionary.
func NewStringColumnFromDictionary(name string, dict []string, codes []int32) (*StringColumn, error) {
	lookup := make(map[string]int32, len(dict))
	for i, v := range dict {
		if _, dup := lookup[v]; dup {
			return nil, fmt.Errorf("%w: duplicate dictionary entry %q in column %q", ErrInvalidValue, v, name)
		}
		lookup[v] = int32(i)
	}
	for i, code := range codes {
		if code < 0 || int(code) >= len(dict) {
			return nil, fmt.Errorf("%w: row %d of column %q has code %d outside a dictionary of %d", ErrInvalidValue, i, name, code, len(dict))
		}
	}
	return &StringColumn{name: name, dict: dict, lookup: lookup, codes: codes}, nil
}

func (c *StringColumn) code(v string) int32 {
	if code, ok := c.lookup[v]; ok {
		return code
	}
	code := int32(len(c.dict))
	c.dict = append(c.dict, v)
	c.lookup[v] = code
	return code
}

func (c *StringColumn) Name() string { return c.name }
func (c *StringColumn) Type() Type   { return String }
func (c *StringColumn) Len() int     { return len(c.codes) }

// Dictionary returns the distinct values indexed by code.
func (c *StringColumn) Dictionary() []string { return c.dict }

// Codes returns the per-row dictionary codes.
func (c *StringColumn) Codes() []int32 { return c.codes }

// Value returns the cell as a string, "" when missing.
func (c *StringColumn) Value(i int) string { return c.dict[c.codes[i]] }

func (c *StringColumn) IsMissing(i int) bool { return c.dict[c.codes[i]] == "" }
func (c *StringColumn) CountMissing() int    { return countMissing(c) }

func (c *StringColumn) Get(i int) any {
	if v := c.dict[c.codes[i]]; v != "" {
		return v
	}
	return nil
}

func (c *StringColumn) Set(i int, v any) error {
	s, err := coerceString(c, v)
	if err != nil {
		return err
	}
	c.codes[i] = c.code(s)
	return nil
}

func (c *StringColumn) Append(v any) error {
	s, err := coerceString(c, v)
	if err != nil {
		return err
	}
	c.codes = append(c.codes, c.code(s))
	return nil
}

func (c *StringColumn) AppendMissing() { c.codes = append(c.codes, c.code("")) }

func (c *StringColumn) EmptyCopy() Column { return NewStringColumn(c.name) }

func (c *StringColumn) Copy() Column {
	lookup := make(map[string]int32, len(c.lookup))
	for k, v := range c.lookup {
		lookup[k] = v
	}
	return &StringColumn{
		name:   c.name,
		dict:   append([]string(nil), c.dict...),
		lookup: lookup,
		codes:  append([]int32(nil), c.codes...),
	}
}

func (c *StringColumn) Compare(i, j int) int {
	return strings.Compare(c.dict[c.codes[i]], c.dict[c.codes[j]])
}

// Gather builds a compacted dictionary holding only the values the rows use.
func (c *StringColumn) Gather(rows []int) Column {
	out := NewStringColumn(c.name)
	out.codes = make([]int32, len(rows))
	for k, r := range rows {
		out.codes[k] = out.code(c.dict[c.codes[r]])
	}
	return out
}

func (c *StringColumn) Where(sel *selection.Selection) Column {
	out := NewStringColumn(c.name)
	out.codes = make([]int32, 0, sel.Size())
	for r := range sel.All() {
		out.codes = append(out.codes, out.code(c.dict[c.codes[r]]))
	}
	return out
}

func (c *StringColumn) Values() iter.Seq2[int, any] { return values(c) }

func (c *StringColumn) Eval(p Predicate) (*selection.Selection, error) {
	if p.Op == OpIsEmptyString {
		return evaluate(c, IsMissing(), nil)
	}
	return evaluate(c, p, c.matcher)
}

// matcher evaluates the test once per dictionary entry, then scans codes.
func (c *StringColumn) matcher(p Predicate) (func(int) bool, error) {
	test, err := stringTest(c, p)
	if err != nil {
		return nil, err
	}
	hits := make([]bool, len(c.dict))
	for code, v := range c.dict {
		hits[code] = test(v)
	}
	codes := c.codes
	return func(i int) bool { return hits[codes[i]] }, nil
}

func coerceString(c Column, v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return "", invalidValue(c, v)
}
