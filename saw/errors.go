package saw

import (
	"errors"
	"fmt"

	"github.com/hupe1980/colsaw/internal/resource"
)

var (
	// ErrNotFound is returned when no table is stored under the name.
	ErrNotFound = errors.New("saw: table not found")

	// ErrCorrupt is returned when stored bytes fail validation: bad magic,
	// checksum mismatch, truncation, or an undecodable field.
	ErrCorrupt = errors.New("saw: corrupt data")

	// ErrInconsistent is returned when well-formed files disagree with each
	// other: a missing or extra body, a write generation mismatch, or a
	// body whose row count or dictionary size differs from the metadata.
	ErrInconsistent = errors.New("saw: inconsistent table")

	// ErrInvalidTable is returned for a table that cannot be written.
	ErrInvalidTable = errors.New("saw: invalid table")

	// ErrMemoryLimitExceeded is returned when a read would hold more decoded
	// bytes than the configured memory limit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// ColumnError reports a failure reading or writing one column body.
type ColumnError struct {
	Table  string
	Column string
	ID     int
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("saw: table %q column %q (%s): %v", e.Table, e.Column, bodyName(e.ID), e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}

func inconsistentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...))
}
