// Package conv provides safe integer conversions.
//
// Row indices live in the 32-bit bitmap domain while Go slices are indexed by
// int. They cross through here so overflow is caught at the boundary instead
// of wrapping silently.
package conv
