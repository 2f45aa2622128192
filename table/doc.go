// Package table groups equal-length columns under a name.
//
// A Table is the unit that is filtered, sorted and persisted. It satisfies
// both filter.Source and order.Source, so filters and sort specs resolve
// column names against it directly:
//
//	recent, err := tbl.Filter(filter.Where("Year", column.Gte(2004)))
//	sorted, err := recent.SortOn("-Year", "State")
package table
