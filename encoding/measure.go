package encoding

import (
	"fmt"
	"iter"

	"github.com/adbrowne/lineitemcol/endian"
	"github.com/adbrowne/lineitemcol/internal/pool"
)

// MaxRowGroupSize is the largest number of records a single row group may
// hold (§3, "Row group"). Decoders may size reusable buffers to this bound
// to avoid per-row-group allocation.
const MaxRowGroupSize = 8000

// MeasureEncoder encodes a fixed-width measure column (§4.3): a contiguous
// run of N little-endian uint16 values, each the fixed-point image of a
// real-valued measure (quantity, extended price, discount, or tax).
//
// MeasureEncoder writes exactly 2*N bytes and carries no header of its own;
// the enclosing row group supplies N.
type MeasureEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnEncoder[float64] = (*MeasureEncoder)(nil)

// NewMeasureEncoder creates a measure column encoder using the given endian
// engine (§4.1). The format targets little-endian hosts, so callers should
// pass endian.GetLittleEndianEngine() outside of tests.
func NewMeasureEncoder(engine endian.EndianEngine) *MeasureEncoder {
	return &MeasureEncoder{
		engine: engine,
		buf:    pool.GetColumnBuffer(),
	}
}

// Write encodes a single real-valued measure through the fixed-point codec.
func (e *MeasureEncoder) Write(value float64) {
	e.writeRaw(CompressMeasure(value))
}

// WriteSlice encodes a slice of real-valued measures through the fixed-point
// codec, pre-growing the buffer once for the whole slice.
func (e *MeasureEncoder) WriteSlice(values []float64) {
	if len(values) == 0 {
		return
	}

	e.buf.Grow(len(values) * 2)
	start := e.buf.Len()
	e.buf.ExtendOrGrow(len(values) * 2)
	buf := e.buf.Bytes()

	for i, v := range values {
		off := start + i*2
		e.engine.PutUint16(buf[off:off+2], CompressMeasure(v))
	}
	e.count += len(values)
}

// WriteRaw encodes a single already-compressed fixed-point image directly,
// bypassing the codec. Used by callers that already hold fixed-point values
// (e.g. a reader re-serializing a parsed row group).
func (e *MeasureEncoder) WriteRaw(raw uint16) {
	e.writeRaw(raw)
}

func (e *MeasureEncoder) writeRaw(raw uint16) {
	e.buf.Grow(2)
	start := e.buf.Len()
	e.buf.ExtendOrGrow(2)
	e.engine.PutUint16(e.buf.Bytes()[start:start+2], raw)
	e.count++
}

// Bytes returns the encoded byte slice: 2*Len() bytes of little-endian uint16s.
func (e *MeasureEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of measures written since the last Reset.
func (e *MeasureEncoder) Len() int {
	return e.count
}

// Reset clears the logical contents but keeps the buffer allocated.
func (e *MeasureEncoder) Reset() {
	e.count = 0
	e.buf.Reset()
}

// Finish returns the internal buffer to its pool. The encoder must not be
// reused afterwards.
func (e *MeasureEncoder) Finish() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// MeasureDecoder decodes a fixed-width measure column (§4.3).
type MeasureDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnDecoder[uint16] = MeasureDecoder{}

// NewMeasureDecoder creates a measure column decoder using the given endian engine.
func NewMeasureDecoder(engine endian.EndianEngine) MeasureDecoder {
	return MeasureDecoder{engine: engine}
}

// Decode reads exactly 2*count bytes from data into dst, which must have
// length count, as count little-endian uint16 values.
//
// dst is typically a slice backed by a buffer pooled at MaxRowGroupSize and
// reused across row groups (§4.3); callers must not read dst[count:] since
// those positions are left over from the previous row group.
func (d MeasureDecoder) Decode(data []byte, count int, dst []uint16) error {
	if len(dst) != count {
		return fmt.Errorf("measure column: dst length %d does not match count %d", len(dst), count)
	}
	if len(data) < count*2 {
		return fmt.Errorf("measure column: need %d bytes for %d values, got %d", count*2, count, len(data))
	}

	for i := range count {
		off := i * 2
		dst[i] = d.engine.Uint16(data[off : off+2])
	}

	return nil
}

// All returns an iterator over the count raw fixed-point images encoded in
// data, satisfying ColumnDecoder[uint16]. Use AllReal to iterate decompressed
// real values instead.
func (d MeasureDecoder) All(data []byte, count int) iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		if len(data) < count*2 {
			return
		}
		for i := range count {
			off := i * 2
			if !yield(d.engine.Uint16(data[off : off+2])) {
				return
			}
		}
	}
}

// AllReal returns an iterator over the count decompressed real-valued
// measures encoded in data. It is provided for tests and callers that want
// rescaled values directly rather than raw fixed-point images.
func (d MeasureDecoder) AllReal(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if len(data) < count*2 {
			return
		}
		for i := range count {
			off := i * 2
			raw := d.engine.Uint16(data[off : off+2])
			if !yield(DecompressMeasure(raw)) {
				return
			}
		}
	}
}
