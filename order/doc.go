// Package order sorts tables on one or more columns.
//
// A Spec is a list of (column, direction) keys. Comparator chains each
// column's row comparator left to right, flipping the sign for Descend and
// falling through to the next key only on a tie. Permutation sorts the row
// indices stably with that comparator; the table package then gathers every
// column through the same permutation so rows move in lockstep.
//
// Keys can be written in shorthand and resolved with Parse:
//
//	spec, err := order.Parse(tbl, "-Year", "State") // Year descending, then State
//
// Names fall back to a case-insensitive match, so "-year" also finds Year.
package order
