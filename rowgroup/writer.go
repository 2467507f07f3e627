package rowgroup

import (
	"fmt"
	"io"
	"sort"

	"github.com/adbrowne/lineitemcol/encoding"
	"github.com/adbrowne/lineitemcol/endian"
	"github.com/adbrowne/lineitemcol/internal/pool"
)

// Writer serialises batches of records into row groups (§4.5).
type Writer struct {
	engine endian.EndianEngine
}

// NewWriter creates a row-group writer using the given endian engine. The
// on-disk format targets little-endian hosts; pass endian.GetLittleEndianEngine()
// outside of tests.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{engine: engine}
}

// WriteRowGroup sorts records by (return_flag, line_status) ascending and
// serialises them as exactly one row group to w.
//
// len(records) must be in [1, MaxSize]. Measures must already be in the
// representable fixed-point range; values outside [0, 655.35] are silently
// truncated by the fixed-point codec (§4.2).
func (rw *Writer) WriteRowGroup(w *TrackedWriter, records []Record) error {
	n := len(records)
	if n < 1 || n > MaxSize {
		return fmt.Errorf("rowgroup: batch size %d out of range [1, %d]", n, MaxSize)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].ReturnFlag != records[j].ReturnFlag {
			return records[i].ReturnFlag < records[j].ReturnFlag
		}

		return records[i].LineStatus < records[j].LineStatus
	})

	// One row group at a time is assembled in a pooled buffer sized for it,
	// then handed to the sink in a single write.
	bb := pool.GetFileBuffer()
	defer pool.PutFileBuffer(bb)

	var headerBuf [2]byte
	rw.engine.PutUint16(headerBuf[:], uint16(n))
	bb.MustWrite(headerBuf[:])

	if err := rw.writeKeyColumn(bb, records, func(r Record) byte { return r.LineStatus }); err != nil {
		return fmt.Errorf("rowgroup: write line_status column: %w", err)
	}

	if err := rw.writeKeyColumn(bb, records, func(r Record) byte { return r.ReturnFlag }); err != nil {
		return fmt.Errorf("rowgroup: write return_flag column: %w", err)
	}

	if err := rw.writeMeasureColumn(bb, records, func(r Record) float64 { return r.Quantity }); err != nil {
		return fmt.Errorf("rowgroup: write quantity column: %w", err)
	}

	if err := rw.writeMeasureColumn(bb, records, func(r Record) float64 { return r.Discount }); err != nil {
		return fmt.Errorf("rowgroup: write discount column: %w", err)
	}

	if err := rw.writeMeasureColumn(bb, records, func(r Record) float64 { return r.Tax }); err != nil {
		return fmt.Errorf("rowgroup: write tax column: %w", err)
	}

	if err := rw.writeMeasureColumn(bb, records, func(r Record) float64 { return r.ExtendedPrice }); err != nil {
		return fmt.Errorf("rowgroup: write extended_price column: %w", err)
	}

	if _, err := bb.WriteTo(w.Buffered()); err != nil {
		return fmt.Errorf("rowgroup: flush row group: %w", err)
	}

	return nil
}

func (rw *Writer) writeKeyColumn(w io.Writer, records []Record, key func(Record) byte) error {
	enc := encoding.NewRLEEncoder(rw.engine)
	defer enc.Finish()

	for _, r := range records {
		enc.Write(key(r))
	}

	_, err := w.Write(enc.Bytes())

	return err
}

func (rw *Writer) writeMeasureColumn(w io.Writer, records []Record, measure func(Record) float64) error {
	enc := encoding.NewMeasureEncoder(rw.engine)
	defer enc.Finish()

	for _, r := range records {
		enc.Write(measure(r))
	}

	_, err := w.Write(enc.Bytes())

	return err
}
