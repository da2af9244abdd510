package iobuf

// WriteBuffer is the drainable out-buffer half of a Stream. Message
// serializers and the WebSocket frame codec write into it via io.Writer;
// Flush drains it to the Transport. A plain growable slice plays this
// role rather than bufio.Writer, since Stream already owns the
// growth/flush policy.
type WriteBuffer struct {
	buf []byte
}

// NewWriteBuffer returns an empty WriteBuffer.
func NewWriteBuffer() *WriteBuffer {
	return &WriteBuffer{}
}

// Write implements io.Writer, appending p to the buffer. Never fails.
func (w *WriteBuffer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Len returns the number of buffered, undrained bytes.
func (w *WriteBuffer) Len() int { return len(w.buf) }

// Bytes returns the buffered bytes.
func (w *WriteBuffer) Bytes() []byte { return w.buf }

// Consume drops the first n bytes, e.g. after a partial write to the
// transport.
func (w *WriteBuffer) Consume(n int) {
	copy(w.buf, w.buf[n:])
	w.buf = w.buf[:len(w.buf)-n]
}

// Reset clears the buffer without releasing its capacity.
func (w *WriteBuffer) Reset() {
	w.buf = w.buf[:0]
}
