package encoding

import (
	"iter"
	"unsafe"

	"github.com/adbrowne/lineitemcol/endian"
	"github.com/adbrowne/lineitemcol/errs"
	"github.com/adbrowne/lineitemcol/internal/pool"
)

// runHeaderSize is the width of the run-count header: a single u64 LE value.
const runHeaderSize = 8

// packedRunSize is the on-disk width of one run pair: 1 value byte + 4 count bytes.
const packedRunSize = 5

// packedRun is the in-memory mirror of one on-disk run pair. Every field is a
// byte so the type has no alignment padding, which is what lets the bulk
// decode path reinterpret a []byte directly as a []packedRun via unsafe.Slice.
type packedRun [packedRunSize]byte

func (p packedRun) value() byte { return p[0] }

func (p packedRun) count(engine endian.EndianEngine) uint32 {
	return engine.Uint32(p[1:packedRunSize])
}

// RLEEncoder encodes a run-length-compressed single-byte column (§4.4): a
// little-endian u64 run count followed by that many (value, count) pairs.
//
// Values are collapsed into runs as they arrive; callers need not pre-group
// adjacent equal values themselves.
type RLEEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	runs   uint64
	total  int

	pending      byte
	pendingCount uint32
	hasPending   bool
}

var _ ColumnEncoder[byte] = (*RLEEncoder)(nil)

// NewRLEEncoder creates an RLE column encoder using the given endian engine.
func NewRLEEncoder(engine endian.EndianEngine) *RLEEncoder {
	e := &RLEEncoder{
		engine: engine,
		buf:    pool.GetColumnBuffer(),
	}
	e.buf.ExtendOrGrow(runHeaderSize) // reserve the run-count header; filled in by Bytes()

	return e
}

// Write encodes a single value, extending the current run or starting a new one.
func (e *RLEEncoder) Write(value byte) {
	e.total++

	if !e.hasPending {
		e.pending = value
		e.pendingCount = 1
		e.hasPending = true

		return
	}

	if value == e.pending {
		e.pendingCount++
		return
	}

	e.flushPending()
	e.pending = value
	e.pendingCount = 1
	e.hasPending = true
}

// WriteSlice encodes a slice of values in order.
func (e *RLEEncoder) WriteSlice(values []byte) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *RLEEncoder) flushPending() {
	if !e.hasPending {
		return
	}

	e.appendRun(e.pending, e.pendingCount)
	e.hasPending = false
}

func (e *RLEEncoder) appendRun(value byte, count uint32) {
	e.buf.Grow(packedRunSize)
	start := e.buf.Len()
	e.buf.ExtendOrGrow(packedRunSize)
	b := e.buf.Bytes()[start : start+packedRunSize]
	b[0] = value
	e.engine.PutUint32(b[1:], count)
	e.runs++
}

// Bytes finalizes any outstanding run and returns the encoded column: the
// run-count header followed by the run pairs, in the layout of §6.
//
// The returned slice is valid until the next call to Write, WriteSlice, or Reset.
func (e *RLEEncoder) Bytes() []byte {
	e.flushPending()
	buf := e.buf.Bytes()
	e.engine.PutUint64(buf[0:runHeaderSize], e.runs)

	return buf
}

// Len returns the number of logical values written since the last Reset.
func (e *RLEEncoder) Len() int {
	return e.total
}

// Reset clears the encoder state but keeps the underlying buffer allocated.
func (e *RLEEncoder) Reset() {
	e.runs = 0
	e.total = 0
	e.hasPending = false
	e.buf.Reset()
	e.buf.ExtendOrGrow(runHeaderSize)
}

// Finish returns the internal buffer to its pool. The encoder must not be
// reused afterwards.
func (e *RLEEncoder) Finish() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}

	e.runs = 0
	e.total = 0
	e.hasPending = false
}

// RLEColumn is a decoded RLE column: parallel run values and counts, reused
// across row groups to avoid per-row-group allocation.
type RLEColumn struct {
	values []byte
	counts []uint32
	total  int
}

// Runs returns the number of (value, count) pairs in the column.
func (c *RLEColumn) Runs() int { return len(c.values) }

// TotalCount returns the sum of all run counts, i.e. the number of logical
// values the column expands to.
func (c *RLEColumn) TotalCount() int { return c.total }

// Compressed returns an iterator over the column's (value, count) pairs in
// order — the only view the aggregation executor consumes.
func (c *RLEColumn) Compressed() iter.Seq2[byte, uint32] {
	return func(yield func(byte, uint32) bool) {
		for i := range c.values {
			if !yield(c.values[i], c.counts[i]) {
				return
			}
		}
	}
}

// Expanded returns an iterator yielding each logical value repeated by its
// run's count. Provided for tests and callers that need per-row materialization.
func (c *RLEColumn) Expanded() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := range c.values {
			for range c.counts[i] {
				if !yield(c.values[i]) {
					return
				}
			}
		}
	}
}

// RunAt returns the value and count of the run at index i.
func (c *RLEColumn) RunAt(i int) (value byte, count uint32) {
	return c.values[i], c.counts[i]
}

func (c *RLEColumn) reset(k int) {
	if cap(c.values) < k {
		c.values = make([]byte, 0, k)
		c.counts = make([]uint32, 0, k)
	} else {
		c.values = c.values[:0]
		c.counts = c.counts[:0]
	}

	c.total = 0
}

// RLEDecoder decodes an RLE column (§4.4) body given its already-parsed run
// count. Two interchangeable strategies are provided, matching §4.4 and §6.
type RLEDecoder struct {
	engine endian.EndianEngine
}

// NewRLEDecoder creates an RLE column decoder using the given endian engine.
func NewRLEDecoder(engine endian.EndianEngine) RLEDecoder {
	return RLEDecoder{engine: engine}
}

// RunHeader reads the 8-byte run-count header from the front of data,
// returning the run count and the remaining body bytes.
func (d RLEDecoder) RunHeader(data []byte) (k uint64, body []byte, err error) {
	if len(data) < runHeaderSize {
		return 0, nil, errs.ErrTruncatedRunHeader
	}

	return d.engine.Uint64(data[:runHeaderSize]), data[runHeaderSize:], nil
}

// DecodeEntryByEntry decodes k run pairs from body one field at a time: one
// value byte, then one u32 LE count, repeated k times.
func (d RLEDecoder) DecodeEntryByEntry(body []byte, k uint64, dst *RLEColumn) error {
	needed := int(k) * packedRunSize
	if len(body) < needed {
		return errs.ErrTruncatedRuns
	}

	dst.reset(int(k))

	for i := uint64(0); i < k; i++ {
		off := int(i) * packedRunSize
		value := body[off]
		count := d.engine.Uint32(body[off+1 : off+packedRunSize])
		dst.values = append(dst.values, value)
		dst.counts = append(dst.counts, count)
		dst.total += int(count)
	}

	return nil
}

// DecodeBulk decodes k run pairs from body by reinterpreting the relevant
// byte range as a []packedRun via unsafe.Slice, avoiding a per-pair read.
//
// DecodeBulk and DecodeEntryByEntry must be interchangeable: given the same
// encoded body, they produce identical values/counts.
func (d RLEDecoder) DecodeBulk(body []byte, k uint64, dst *RLEColumn) error {
	needed := int(k) * packedRunSize
	if len(body) < needed {
		return errs.ErrTruncatedRuns
	}

	dst.reset(int(k))

	if k == 0 {
		return nil
	}

	runs := unsafe.Slice((*packedRun)(unsafe.Pointer(&body[0])), k)
	for _, r := range runs {
		count := r.count(d.engine)
		dst.values = append(dst.values, r.value())
		dst.counts = append(dst.counts, count)
		dst.total += int(count)
	}

	return nil
}
