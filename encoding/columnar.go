package encoding

import "iter"

// ColumnEncoder is implemented by the column encoders that make up one row
// group: the RLE-compressed key columns (§4.4) and the fixed-width measure
// columns (§4.3).
//
// Both encoders in this package accumulate a column into an internal buffer
// and release it back to a pool once Finish is called.
type ColumnEncoder[T any] interface {
	// Bytes returns the encoded byte slice accumulated so far.
	// The returned slice is valid until the next call to Write, WriteSlice, or Reset.
	Bytes() []byte

	// Len returns the number of logical values written since the last Reset.
	Len() int

	// Reset clears the encoder state but keeps the underlying buffer allocated,
	// so the encoder can be reused for the next row group.
	Reset()

	// Finish returns the internal buffer to its pool. The encoder must not be
	// used again afterwards.
	Finish()

	// Write encodes a single value.
	Write(data T)

	// WriteSlice encodes a slice of values. Prefer this over repeated Write
	// calls when the full column is already materialized.
	WriteSlice(values []T)
}

// ColumnDecoder is implemented by the column decoders that parse one row
// group column back out of its on-disk byte representation.
type ColumnDecoder[T any] interface {
	// All returns an iterator over the count logical values encoded in data.
	// If data is malformed the iterator yields fewer than count values.
	All(data []byte, count int) iter.Seq[T]
}
