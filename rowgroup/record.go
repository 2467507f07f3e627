// Package rowgroup implements the row-group binary format: a header carrying
// an item count followed by six fixed-order columns (two RLE-compressed
// single-byte key columns, four fixed-width measure columns). A file is a
// bare concatenation of row groups with no outer header or footer.
package rowgroup

// MaxSize is the largest number of records a single row group may hold.
const MaxSize = 8000

// Record is one input row: the TPC-H lineitem fields this format persists.
// ReturnFlag and LineStatus are grouping keys; only their first byte is
// consulted and stored. The four measures are real-valued and must round to
// a fixed-point image in [0, 65535] at scale 100.
type Record struct {
	ReturnFlag byte
	LineStatus byte

	Quantity      float64
	ExtendedPrice float64
	Discount      float64
	Tax           float64
}
