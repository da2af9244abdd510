// Package iobuf implements the half-duplex buffered byte-stream
// abstraction shared by the server driver, client driver, and WebSocket
// loop.
package iobuf

import (
	"io"
	"time"
)

// Transport is any bidirectional byte stream with deadline support and
// explicit close: a TLS-wrapped net.Conn, a plain net.Conn, an in-memory
// pipe for tests, or anything else a caller supplies. This library never
// dials or wraps TLS itself.
type Transport interface {
	io.Reader
	io.Writer
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}
