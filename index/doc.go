// Package index builds sorted per-column indexes.
//
// An Index maps each distinct non-missing value of a column to the
// Selection of rows holding it. Keys are kept in a persistent sorted map, so
// equality lookups are a single probe and range queries walk only the keys
// inside the range before unioning their row sets.
//
// # Typed and erased access
//
// ForNumbers, ForDates, ForTimes, ForTemporal and ForStrings return a typed
// *Index[K]. Build accepts any column.Column and returns a Lookup whose
// operands are checked at run time:
//
//	idx := index.ForNumbers(approval)
//	high := idx.AtLeast(50)
//
// Boolean and Text columns cannot be indexed.
package index
