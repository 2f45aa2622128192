package column

import (
	"iter"
	"strings"

	"github.com/hupe1980/colsaw/selection"
)

// TextColumn stores one string per row with no dictionary, for values that
// rarely repeat. The empty string is the missing value.
type TextColumn struct {
	name string
	data []string
}

// NewTextColumn wraps values without copying.
func NewTextColumn(name string, values ...string) *TextColumn {
	return &TextColumn{name: name, data: values}
}

func (c *TextColumn) Name() string { return c.name }
func (c *TextColumn) Type() Type   { return Text }
func (c *TextColumn) Len() int     { return len(c.data) }

// Data exposes the backing array.
func (c *TextColumn) Data() []string { return c.data }

func (c *TextColumn) IsMissing(i int) bool { return c.data[i] == "" }
func (c *TextColumn) CountMissing() int    { return countMissing(c) }

func (c *TextColumn) Get(i int) any {
	if v := c.data[i]; v != "" {
		return v
	}
	return nil
}

func (c *TextColumn) Set(i int, v any) error {
	s, err := coerceString(c, v)
	if err != nil {
		return err
	}
	c.data[i] = s
	return nil
}

func (c *TextColumn) Append(v any) error {
	s, err := coerceString(c, v)
	if err != nil {
		return err
	}
	c.data = append(c.data, s)
	return nil
}

func (c *TextColumn) AppendMissing() { c.data = append(c.data, "") }

func (c *TextColumn) EmptyCopy() Column { return &TextColumn{name: c.name} }

func (c *TextColumn) Copy() Column {
	return &TextColumn{name: c.name, data: append([]string(nil), c.data...)}
}

func (c *TextColumn) Compare(i, j int) int { return strings.Compare(c.data[i], c.data[j]) }

func (c *TextColumn) Gather(rows []int) Column {
	return &TextColumn{name: c.name, data: gather(c.data, rows)}
}

func (c *TextColumn) Where(sel *selection.Selection) Column {
	return &TextColumn{name: c.name, data: where(c.data, sel)}
}

func (c *TextColumn) Values() iter.Seq2[int, any] { return values(c) }

func (c *TextColumn) Eval(p Predicate) (*selection.Selection, error) {
	if p.Op == OpIsEmptyString {
		return evaluate(c, IsMissing(), nil)
	}
	return evaluate(c, p, func(p Predicate) (func(int) bool, error) {
		test, err := stringTest(c, p)
		if err != nil {
			return nil, err
		}
		data := c.data
		return func(i int) bool { return test(data[i]) }, nil
	})
}
