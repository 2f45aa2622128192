package packed

import "errors"

var (
	// ErrOutOfRange is returned when a calendar component cannot be represented.
	ErrOutOfRange = errors.New("packed: component out of range")

	// ErrUnsupportedUnit is returned by Plus for a unit the value type cannot carry.
	ErrUnsupportedUnit = errors.New("packed: unsupported unit")
)
