// Package packed encodes calendar values into native integers.
//
// Columns of dates and times store one integer per cell instead of one
// time.Time, so a million-row date column is a []int32 rather than a
// million 24-byte structs. Comparisons and field extraction operate on the
// integer directly; only arithmetic unpacks to time.Time and repacks.
//
// # Layouts
//
//	Date     (int32): year int16 | month uint8 | day uint8
//	Time     (int32): hour uint8 | minute uint8 | millisecond-of-minute uint16
//	DateTime (int64): Date (high 32 bits) | Time (low 32 bits)
//	Instant  (int64): DateTime layout of the UTC wall clock
//
// The field order makes signed integer order equal chronological order, so
// IsBefore and friends are single integer comparisons.
//
// # Missing Values
//
// Each width reserves its minimum value as the missing sentinel:
//
//	MissingDate, MissingTime         = math.MinInt32
//	MissingDateTime, MissingInstant  = math.MinInt64
//
// The sentinel decodes to month 0 (dates) or hour 128 (times), neither of
// which a constructor accepts, so no valid value can equal it. Unpack reports
// ok == false for the sentinel and every predicate is false on it.
package packed
