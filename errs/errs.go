// Package errs collects the sentinel errors returned across the storage and
// query packages. Callers match on these with errors.Is; wrapped errors add
// row positions or counts via fmt.Errorf("%w: ...", errs.ErrXxx, ...).
package errs

import "errors"

// Row-group framing errors.
var (
	// ErrTruncatedHeader is returned when fewer than 2 bytes remain for the
	// item-count header at a row-group boundary.
	ErrTruncatedHeader = errors.New("row group: truncated header")

	// ErrInvalidItemCount is returned when the parsed item count is zero or
	// exceeds the maximum row-group size.
	ErrInvalidItemCount = errors.New("row group: item count out of range")
)

// RLE column errors.
var (
	// ErrTruncatedRunHeader is returned when fewer than 8 bytes remain for
	// the run-count header of an RLE column.
	ErrTruncatedRunHeader = errors.New("rle column: truncated run-count header")

	// ErrTruncatedRuns is returned when fewer bytes remain than the run
	// count requires.
	ErrTruncatedRuns = errors.New("rle column: truncated run data")

	// ErrRunCountMismatch is returned when an RLE column's run counts do not
	// sum to the enclosing row group's item count.
	ErrRunCountMismatch = errors.New("rle column: run counts disagree with item count")
)

// Measure column errors.
var (
	// ErrTruncatedMeasureColumn is returned when fewer bytes remain than a
	// measure column of the expected length requires.
	ErrTruncatedMeasureColumn = errors.New("measure column: truncated data")
)

// Aggregation executor errors.
var (
	// ErrKeyColumnDesync is returned when the run-aligned merge over the two
	// key columns cannot advance because one cursor is exhausted while rows
	// remain in the row group.
	ErrKeyColumnDesync = errors.New("executor: key column run counts disagree")
)
