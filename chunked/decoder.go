// Package chunked implements the incremental RFC 7230 §4.1 chunked
// transfer-coding decoder.
package chunked

import (
	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/iobuf"
)

// Decoder is the chunk-size/payload parser. It operates in place on a
// *iobuf.ReadBuffer: Buffered counts logical payload bytes already
// decoded and compacted to the front of the buffer, Pending counts bytes
// remaining in the chunk currently being consumed.
type Decoder struct {
	buffered int
	pending  int
	lastSeen bool // saw the zero-size chunk, waiting on the trailer
	done     bool
}

// New returns a fresh Decoder.
func New() *Decoder { return &Decoder{} }

// Buffered returns the number of logical payload bytes decoded so far
// and available at the front of the buffer.
func (d *Decoder) Buffered() int { return d.buffered }

// Done reports whether the terminating zero-size chunk has been seen.
func (d *Decoder) Done() bool { return d.done }

// Parse consumes as many complete chunk-size lines and chunk bodies as
// are available in buf, advancing Buffered() and removing chunk-size
// lines and inter-chunk CRLFs from buf as it goes. A partial chunk-size
// line leaves state untouched and returns nil. A chunk body cut short has
// the bytes that did arrive decoded, except the chunk's last byte, which
// waits until the CRLF after it has arrived; Parse then returns nil.
// Once the zero-size last chunk is seen, Parse requires the terminating
// CRLF immediately after it (the empty trailer) and consumes that too
// before setting Done(); anything else there is a trailer, which is
// rejected with ErrTrailerNotSupported per RFC 7230 §4.1.2.
//
// Invariant maintained throughout: Buffered() <= buf.Len(), and the
// decoded run buf[:Buffered()] never contains chunk-size lines,
// trailing CRLFs, or the chunked-body terminator.
func (d *Decoder) Parse(buf *iobuf.ReadBuffer) error {
	if d.done {
		return nil
	}
	for d.lastSeen || d.buffered < buf.Len() {
		if d.lastSeen {
			rest := buf.Bytes()[d.buffered:]
			if len(rest) == 0 {
				return nil // need more data
			}
			if rest[0] != '\r' {
				return tkhttp.ErrTrailerNotSupported
			}
			if len(rest) < 2 {
				return nil // need more data
			}
			if rest[1] != '\n' {
				return tkhttp.ErrTrailerNotSupported
			}
			buf.RemoveRange(d.buffered, d.buffered+2)
			d.done = true
			return nil
		}
		if d.pending == 0 {
			n, size, ok, err := parseChunkSizeLine(buf.Bytes()[d.buffered:])
			if err != nil {
				return err
			}
			if !ok {
				return nil // partial chunk-size line, needs more data
			}
			buf.RemoveRange(d.buffered, d.buffered+n)
			if size == 0 {
				d.lastSeen = true
				continue
			}
			d.pending = size
		} else {
			avail := buf.Len() - d.buffered
			if d.pending+2 <= avail {
				d.buffered += d.pending
				d.pending = 0
				buf.RemoveRange(d.buffered, d.buffered+2)
			} else {
				// Decode what has arrived, but hold back the chunk's last
				// byte until its CRLF is here too, so pending only reaches
				// zero in the branch above, which strips that CRLF.
				take := avail
				if take > d.pending-1 {
					take = d.pending - 1
				}
				d.pending -= take
				d.buffered += take
				return nil
			}
		}
	}
	return nil
}

// Consume drops n logical bytes from the front of the decoded run,
// shrinking Buffered(). It does not touch the underlying ReadBuffer —
// callers consume the matching n bytes from the buffer themselves once
// they've copied/dispatched the payload.
func (d *Decoder) Consume(n int) {
	if n > d.buffered {
		panic("chunked: Consume n exceeds Buffered()")
	}
	d.buffered -= n
}
