package main

import (
	"fmt"
	"strings"

	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/filter"
)

// operators in match priority: two-character forms first.
var operators = []string{">=", "<=", "!=", "=", "<", ">", "~"}

// splitCondition cuts "approval>=60" into column, operator and value at
// the leftmost operator.
func splitCondition(expr string) (name, op, value string, err error) {
	at := -1
	for _, o := range operators {
		if i := strings.Index(expr, o); i >= 0 && (at < 0 || i < at) {
			at, op = i, o
		}
	}
	if at <= 0 {
		return "", "", "", fmt.Errorf("condition %q: want <column><op><value>", expr)
	}
	return strings.TrimSpace(expr[:at]), op, strings.TrimSpace(expr[at+len(op):]), nil
}

// parseCondition turns a condition into a filter, parsing the value as the
// column's type. A missing literal such as NA compares for missingness.
func parseCondition(src filter.Source, expr string) (filter.Filter, error) {
	name, op, text, err := splitCondition(expr)
	if err != nil {
		return nil, err
	}
	col, err := src.Column(name)
	if err != nil {
		return nil, err
	}
	if op == "~" {
		return filter.Where(name, column.MatchesRegex(text)), nil
	}

	v, err := col.Type().Parse(text)
	if err != nil {
		return nil, err
	}
	if v == nil {
		switch op {
		case "=":
			return filter.Where(name, column.IsMissing()), nil
		case "!=":
			return filter.Where(name, column.IsNotMissing()), nil
		}
		return nil, fmt.Errorf("condition %q: %s needs a value", expr, op)
	}

	var p column.Predicate
	switch op {
	case "=":
		p = column.Eq(v)
	case "!=":
		p = column.NotEq(v)
	case "<":
		p = column.Lt(v)
	case "<=":
		p = column.Lte(v)
	case ">":
		p = column.Gt(v)
	case ">=":
		p = column.Gte(v)
	}
	return filter.Where(name, p), nil
}
