// Package selection provides the row-set algebra that every filter produces.
//
// A Selection is a compressed bitmap of row indices. Iteration yields rows in
// strictly increasing order and costs time proportional to the number of
// selected rows, not the table size.
//
// # Copy on combine
//
// And, Or, AndNot and Complement return a new Selection and leave both
// operands untouched, so one Selection may feed several filters and be read
// from several goroutines at once. Only Add, AddRange, Remove, RunOptimize
// and ReadFrom mutate.
//
//	a := selection.Of(1, 2, 3)
//	b := selection.FromRange(2, 10)
//	both := a.And(b) // {2, 3}; a and b unchanged
package selection
