package colsaw

import (
	"errors"
	"fmt"

	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/saw"
)

var (
	// ErrNotFound is returned when no table is stored under a name.
	ErrNotFound = errors.New("table not found")

	// ErrCorrupt is returned when a stored table cannot be trusted: a
	// checksum failed, a body is missing or truncated, or a body disagrees
	// with its metadata.
	ErrCorrupt = errors.New("table corrupt")

	// ErrInvalidTable is returned for a table that cannot be stored.
	ErrInvalidTable = errors.New("invalid table")

	// ErrMemoryLimitExceeded is returned when a load would exceed the
	// configured memory budget.
	ErrMemoryLimitExceeded = saw.ErrMemoryLimitExceeded

	// ErrClosed is returned by a Store after Close.
	ErrClosed = errors.New("store closed")
)

// ColumnError identifies the column whose body failed to load or save.
//
// The original underlying error can be accessed via errors.Unwrap.
type ColumnError = saw.ColumnError

// ErrUnknownColumn indicates a requested column the stored table does not have.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnknownColumn struct {
	Table string
	cause error
}

func (e *ErrUnknownColumn) Error() string {
	return fmt.Sprintf("table %q: %v", e.Table, e.cause)
}

func (e *ErrUnknownColumn) Unwrap() error { return e.cause }

func translateError(table string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, saw.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if errors.Is(err, saw.ErrCorrupt) || errors.Is(err, saw.ErrInconsistent) {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if errors.Is(err, saw.ErrInvalidTable) {
		return fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}
	if errors.Is(err, column.ErrUnknownColumn) {
		return &ErrUnknownColumn{Table: table, cause: err}
	}

	return err
}
