// Package filter composes column predicates into row selections.
//
// Leaf filters bind a column.Predicate to a column name (Where) or wrap a
// precomputed selection (Rows). Combinators such as Both, Either and Not
// hold only their child filters and combine the child selections with
// copy-on-combine bitmap algebra, so a filter tree can be applied to many
// tables, or concurrently to one.
//
//	f := filter.Both(
//		filter.Where("Year", column.Gte(2000)),
//		filter.Not(filter.Where("State", column.In("CA", "NY"))),
//	)
//	sel, err := f.Apply(tbl)
package filter
