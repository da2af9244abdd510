package iobuf

import "time"

// Stream is a half-duplex buffered byte-stream pair over a Transport:
// a fillable in-buffer (ReadBuffer) and a drainable out-buffer
// (WriteBuffer).
type Stream struct {
	Conn Transport
	In   *ReadBuffer
	Out  *WriteBuffer

	readLimit int64 // <=0 means unlimited; mirrors connReader.remain
	hijacked  bool
}

// NewStream wraps conn with empty in/out buffers.
func NewStream(conn Transport) *Stream {
	return &Stream{Conn: conn, In: NewReadBuffer(), Out: NewWriteBuffer()}
}

// SetReadLimit caps how many more bytes FillOnce will accept before
// reporting ErrReadLimitExceeded. The server and client drivers do not
// set one; they bound the header read with their own size checks.
// A limit <= 0 means unlimited.
func (s *Stream) SetReadLimit(n int64) { s.readLimit = n }

// FillOnce reads one chunk from the transport into the in-buffer. It
// returns the number of bytes read, or ErrReadLimitExceeded if the read
// limit set by SetReadLimit would be exceeded by the already-buffered
// data (checked before reading, so it can never read past the limit more
// than one Transport.Read call's worth).
func (s *Stream) FillOnce() (int, error) {
	if s.readLimit > 0 && int64(s.In.Len()) >= s.readLimit {
		return 0, ErrReadLimitExceeded
	}
	return s.In.Fill(s.Conn)
}

// Flush drains the out-buffer to the transport.
func (s *Stream) Flush() error {
	return s.FlushDeadline(nil)
}

// FlushDeadline drains the out-buffer to the transport like Flush, but
// calls arm (when non-nil) before every individual Write call, letting
// the caller re-arm a per-write deadline that narrows as a body is
// written out in several chunks.
func (s *Stream) FlushDeadline(arm func()) error {
	for s.Out.Len() > 0 {
		if arm != nil {
			arm()
		}
		n, err := s.Conn.Write(s.Out.Bytes())
		if err != nil {
			return err
		}
		s.Out.Consume(n)
	}
	return nil
}

// SetDeadlines is a convenience wrapper applying the same deadline to
// both directions; the server/client drivers more often set them
// independently (first-byte vs keep-alive vs body timeouts).
func (s *Stream) SetDeadlines(t time.Time) {
	s.Conn.SetReadDeadline(t)
	s.Conn.SetWriteDeadline(t)
}

// Hijacked reports whether Hijack has already been called.
func (s *Stream) Hijacked() bool { return s.hijacked }

// Hijack relinquishes ownership of the connection halves to a different
// protocol codec (the WebSocket upgrade path or a CONNECT tunnel). Any
// bytes already read past the HTTP headers remain in In and must be
// consumed by the new owner before reading more from Conn.
func (s *Stream) Hijack() (Transport, *ReadBuffer, *WriteBuffer) {
	s.hijacked = true
	return s.Conn, s.In, s.Out
}
