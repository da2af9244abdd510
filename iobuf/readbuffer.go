package iobuf

import "io"

const minGrow = 4096

// ReadBuffer is a growable in-memory byte buffer fillable from a
// Transport. Unlike bufio.Reader it exposes its backing slice directly
// and supports removing an arbitrary byte range in place, which the
// chunked decoder needs to strip chunk-size lines and CRLFs from
// the middle of already-buffered data without copying the whole body.
type ReadBuffer struct {
	buf []byte
	eof bool
}

// NewReadBuffer returns an empty ReadBuffer.
func NewReadBuffer() *ReadBuffer {
	return &ReadBuffer{}
}

// Bytes returns the currently buffered bytes. The slice is invalidated
// by the next Fill/Consume/RemoveRange call.
func (r *ReadBuffer) Bytes() []byte { return r.buf }

// Len returns the number of buffered bytes.
func (r *ReadBuffer) Len() int { return len(r.buf) }

// EOF reports whether the underlying transport has reported io.EOF.
// Once set it stays set: a byte stream does not un-EOF.
func (r *ReadBuffer) EOF() bool { return r.eof }

// Fill reads once from src, appending to the buffer, growing it first if
// there isn't reasonable room. Returns the number of bytes appended.
// A zero n with a nil error means src made no progress this call (e.g. a
// non-blocking transport returning "would block" as err == nil, 0); this
// mirrors the driver's poll-tick "read buffer cannot make progress"
// suspension point.
func (r *ReadBuffer) Fill(src io.Reader) (int, error) {
	if r.eof {
		return 0, io.EOF
	}
	if free := cap(r.buf) - len(r.buf); free < minGrow {
		grown := make([]byte, len(r.buf), len(r.buf)+minGrow+free)
		copy(grown, r.buf)
		r.buf = grown
	}
	n, err := src.Read(r.buf[len(r.buf):cap(r.buf)])
	r.buf = r.buf[:len(r.buf)+n]
	if err == io.EOF {
		r.eof = true
	}
	return n, err
}

// Consume drops the first n bytes of the buffer, shifting the remainder
// to the front.
func (r *ReadBuffer) Consume(n int) {
	if n <= 0 {
		return
	}
	copy(r.buf, r.buf[n:])
	r.buf = r.buf[:len(r.buf)-n]
}

// RemoveRange deletes buf[start:end] in place, shifting the bytes after
// end down to start. Used by the chunked decoder to excise chunk-size
// lines and inter-chunk CRLFs while leaving the payload bytes contiguous.
func (r *ReadBuffer) RemoveRange(start, end int) {
	copy(r.buf[start:], r.buf[end:])
	r.buf = r.buf[:len(r.buf)-(end-start)]
}

// Reset clears the buffer without releasing its capacity.
func (r *ReadBuffer) Reset() {
	r.buf = r.buf[:0]
}
