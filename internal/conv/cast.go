package conv

import (
	"fmt"
	"math"
)

// MaxRows is the largest row count a table can hold; row indices are 32-bit.
const MaxRows = math.MaxUint32

// Row converts a row index to the 32-bit bitmap domain.
// It panics on a negative or oversized index, like an out-of-range slice index.
func Row(i int) uint32 {
	v, err := IntToUint32(i)
	if err != nil {
		panic(fmt.Sprintf("row index out of range: %v", err))
	}
	return v
}

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}
