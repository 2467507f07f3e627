package rowgroup

import (
	"bufio"
	"fmt"
	"io"

	"github.com/adbrowne/lineitemcol/encoding"
	"github.com/adbrowne/lineitemcol/endian"
	"github.com/adbrowne/lineitemcol/errs"
	"github.com/adbrowne/lineitemcol/internal/pool"
)

// RowGroup is a parsed row group: the item count and handles to its six
// columns. The key-column handles and measure slices are owned by the
// Reader and are only valid until the next call to ReadRowGroup.
type RowGroup struct {
	N int

	LineStatus *encoding.RLEColumn
	ReturnFlag *encoding.RLEColumn

	Quantity      []uint16
	Discount      []uint16
	Tax           []uint16
	ExtendedPrice []uint16
}

// Reader parses row groups (§4.6) from a byte source positioned at a row-group
// boundary. It reuses its column buffers across calls to avoid per-row-group
// allocation, per §4.3 and §5's ownership note.
type Reader struct {
	engine endian.EndianEngine
	rle    encoding.RLEDecoder
	meas   encoding.MeasureDecoder

	lineStatus encoding.RLEColumn
	returnFlag encoding.RLEColumn

	quantity      []uint16
	discount      []uint16
	tax           []uint16
	extendedPrice []uint16

	// done releases the pooled slice currently backing the like-named field
	// above, deferred until the next call replaces it (§5's reuse-across-calls
	// ownership note).
	quantityDone      func()
	discountDone      func()
	taxDone           func()
	extendedPriceDone func()

	runHeaderScratch [8]byte
	runBodyScratch   []byte
	measureScratch   []byte
}

// NewReader creates a row-group reader using the given endian engine.
func NewReader(engine endian.EndianEngine) *Reader {
	return &Reader{
		engine: engine,
		rle:    encoding.NewRLEDecoder(engine),
		meas:   encoding.NewMeasureDecoder(engine),
	}
}

// ReadRowGroup parses exactly one row group from r.
//
// The caller must ensure r is positioned at a row-group boundary; detecting
// clean end-of-file versus a truncated row group is the caller's
// responsibility (§4.6, "Framing detection"), performed by peeking r before
// calling ReadRowGroup.
func (rr *Reader) ReadRowGroup(r *bufio.Reader) (*RowGroup, error) {
	var headerBuf [2]byte
	if _, err := io.ReadFull(r, headerBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: item count header", errs.ErrTruncatedHeader)
	}

	n := int(rr.engine.Uint16(headerBuf[:]))
	if n < 1 || n > MaxSize {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidItemCount, n)
	}

	if err := rr.readRLEColumn(r, &rr.lineStatus, n); err != nil {
		return nil, fmt.Errorf("line_status column: %w", err)
	}

	if err := rr.readRLEColumn(r, &rr.returnFlag, n); err != nil {
		return nil, fmt.Errorf("return_flag column: %w", err)
	}

	if err := rr.readMeasureColumn(r, n, &rr.quantity, &rr.quantityDone); err != nil {
		return nil, fmt.Errorf("quantity column: %w", err)
	}
	if err := rr.readMeasureColumn(r, n, &rr.discount, &rr.discountDone); err != nil {
		return nil, fmt.Errorf("discount column: %w", err)
	}
	if err := rr.readMeasureColumn(r, n, &rr.tax, &rr.taxDone); err != nil {
		return nil, fmt.Errorf("tax column: %w", err)
	}
	if err := rr.readMeasureColumn(r, n, &rr.extendedPrice, &rr.extendedPriceDone); err != nil {
		return nil, fmt.Errorf("extended_price column: %w", err)
	}

	return &RowGroup{
		N:             n,
		LineStatus:    &rr.lineStatus,
		ReturnFlag:    &rr.returnFlag,
		Quantity:      rr.quantity,
		Discount:      rr.discount,
		Tax:           rr.tax,
		ExtendedPrice: rr.extendedPrice,
	}, nil
}

func (rr *Reader) readRLEColumn(r *bufio.Reader, dst *encoding.RLEColumn, n int) error {
	if _, err := io.ReadFull(r, rr.runHeaderScratch[:]); err != nil {
		return errs.ErrTruncatedRunHeader
	}

	k := rr.engine.Uint64(rr.runHeaderScratch[:])
	// A run covers at least one item, so a column can never legitimately carry
	// more runs than the row group has items; reject before sizing any buffer
	// off an attacker- or corruption-controlled k.
	if k > uint64(n) {
		return fmt.Errorf("%w: %d runs exceeds item count %d", errs.ErrRunCountMismatch, k, n)
	}
	bodyLen := int(k) * 5

	if cap(rr.runBodyScratch) < bodyLen {
		rr.runBodyScratch = make([]byte, bodyLen)
	} else {
		rr.runBodyScratch = rr.runBodyScratch[:bodyLen]
	}

	if bodyLen > 0 {
		if _, err := io.ReadFull(r, rr.runBodyScratch); err != nil {
			return errs.ErrTruncatedRuns
		}
	}

	if err := rr.rle.DecodeBulk(rr.runBodyScratch, k, dst); err != nil {
		return err
	}

	if dst.TotalCount() != n {
		return fmt.Errorf("%w: runs sum to %d, item count is %d", errs.ErrRunCountMismatch, dst.TotalCount(), n)
	}

	return nil
}

// readMeasureColumn decodes one measure column into a slice drawn from the
// package-level uint16 pool. The slice backing *dst from the previous call is
// released back to the pool before a replacement is requested, matching the
// "valid until the next call to ReadRowGroup" ownership note on RowGroup.
func (rr *Reader) readMeasureColumn(r *bufio.Reader, n int, dst *[]uint16, done *func()) error {
	byteLen := n * 2
	if cap(rr.measureScratch) < byteLen {
		rr.measureScratch = make([]byte, byteLen)
	} else {
		rr.measureScratch = rr.measureScratch[:byteLen]
	}

	if _, err := io.ReadFull(r, rr.measureScratch); err != nil {
		return errs.ErrTruncatedMeasureColumn
	}

	if *done != nil {
		(*done)()
	}

	slice, cleanup := pool.GetUint16Slice(n)
	*done = cleanup

	if err := rr.meas.Decode(rr.measureScratch, n, slice); err != nil {
		return err
	}

	*dst = slice

	return nil
}
