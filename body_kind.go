package tkhttp

// BodyKind says how a message body's length is determined on the wire:
// a fixed byte count, chunked transfer-coding, read-to-EOF (client
// responses only), or no body at all.
type BodyKind struct {
	Kind   BodyKindTag
	Length uint64 // valid when Kind == BodyFixed
}

// BodyKindTag enumerates the four length-determination rules.
type BodyKindTag int

const (
	BodyEmpty BodyKindTag = iota
	BodyFixed
	BodyChunked
	BodyEOF // client-only: body ends at connection close
)

// Fixed constructs a BodyKind of n declared bytes.
func Fixed(n uint64) BodyKind { return BodyKind{Kind: BodyFixed, Length: n} }

// Chunked constructs a chunked-transfer BodyKind.
func Chunked() BodyKind { return BodyKind{Kind: BodyChunked} }

// Empty constructs a BodyKind declaring no body at all.
func Empty() BodyKind { return BodyKind{Kind: BodyEmpty} }

// EOF constructs a read-to-connection-close BodyKind (client responses
// only).
func EOF() BodyKind { return BodyKind{Kind: BodyEOF} }

// RecvMode is a codec's declared preference for how the driver feeds it
// the request/response body.
type RecvMode struct {
	Mode RecvModeTag
	// Max is the byte cap for RecvModeBufferedUpfront (counting decoded
	// bytes for Chunked).
	Max int
	// MinChunk is the hint for RecvModeProgressive: DataReceived is
	// invoked once at least this many decoded bytes are buffered, or at
	// end-of-body, whichever comes first.
	MinChunk int
}

// RecvModeTag is the closed set of receive strategies.
type RecvModeTag int

const (
	RecvModeBufferedUpfront RecvModeTag = iota
	RecvModeProgressive
	RecvModeHijack
)

// BufferedUpfront requests the full body (up to max bytes) in one
// DataReceived(body, true) call.
func BufferedUpfront(max int) RecvMode {
	return RecvMode{Mode: RecvModeBufferedUpfront, Max: max}
}

// Progressive requests DataReceived calls as soon as minChunk decoded
// bytes are available (or at EOF/end-of-chunks).
func Progressive(minChunk int) RecvMode {
	return RecvMode{Mode: RecvModeProgressive, MinChunk: minChunk}
}

// Hijack requests no body reading at all. Server side, the driver hands
// the raw connection to a Hijacker codec as soon as the request head has
// been dispatched: StartResponse is not called, so the driver writes no
// response before the handoff. Client side, a Hijacker codec gets the
// connection right after the response head; the response body is not read.
func Hijack() RecvMode {
	return RecvMode{Mode: RecvModeHijack}
}
