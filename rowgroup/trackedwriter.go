package rowgroup

import (
	"bufio"
	"io"
)

// TrackedWriter is a buffered sink that forwards every write to an inner
// writer and counts the bytes written. It is the only sink the row-group
// Writer accepts, so callers always have a byte count to consult after a
// write completes.
type TrackedWriter struct {
	inner   io.Writer
	buf     *bufio.Writer
	written int64
}

// NewTrackedWriter wraps w in a buffered, byte-counting sink.
func NewTrackedWriter(w io.Writer) *TrackedWriter {
	tw := &TrackedWriter{inner: w}
	tw.buf = bufio.NewWriter(tw)

	return tw
}

// Write implements io.Writer, forwarding to the inner writer and updating
// the byte counter. It is called by the internal bufio.Writer on flush, not
// directly by row-group encoders (those write through Buffered()).
func (tw *TrackedWriter) Write(p []byte) (int, error) {
	n, err := tw.inner.Write(p)
	tw.written += int64(n)

	return n, err
}

// Buffered returns the buffered writer encoders should write through.
func (tw *TrackedWriter) Buffered() *bufio.Writer {
	return tw.buf
}

// Flush flushes any buffered bytes to the inner writer.
func (tw *TrackedWriter) Flush() error {
	return tw.buf.Flush()
}

// BytesWritten returns the total number of bytes handed to the inner writer
// so far (i.e. bytes that have survived a Flush, not bytes still buffered).
func (tw *TrackedWriter) BytesWritten() int64 {
	return tw.written
}

// Close flushes any buffered bytes and returns the inner writer, closing it
// first if it implements io.Closer.
func (tw *TrackedWriter) Close() (io.Writer, error) {
	if err := tw.Flush(); err != nil {
		return tw.inner, err
	}

	if c, ok := tw.inner.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return tw.inner, err
		}
	}

	return tw.inner, nil
}
