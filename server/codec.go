package server

import (
	tkhttp "github.com/swindon-rs/tk-http-sub000"
)

// Dispatcher maps a parsed request head to a Codec. It is the single
// collaborator interface a server embedder must implement.
type Dispatcher interface {
	HeadersReceived(head *tkhttp.Head) (Codec, error)
}

// Codec drives one request/response exchange. RecvMode is consulted
// once, immediately after HeadersReceived returned this Codec.
type Codec interface {
	RecvMode() tkhttp.RecvMode

	// DataReceived is called with the next chunk of decoded body bytes.
	// end is true on the final call for this body (possibly with an
	// empty chunk). It returns how many leading bytes of chunk were
	// consumed; unconsumed bytes are re-offered on the next call.
	DataReceived(chunk []byte, end bool) (consumed int, err error)

	// StartResponse is invoked once the request (and, for
	// BufferedUpfront/Progressive modes, its body) has been fully
	// received, with an Encoder bound to this request's response. The
	// codec writes headers/body through enc and returns when done.
	StartResponse(enc *Encoder) error
}

// Hijacker is an optional Codec extension: a codec implementing it is
// handed the raw connection halves after RecvMode() returns Hijack(),
// and the driver exits its HTTP loop for this connection.
type Hijacker interface {
	Hijack(conn Transport, buffered []byte)
}

// Transport is re-exported so Dispatcher/Codec implementations don't need
// to import the iobuf package directly for the Hijacker signature.
type Transport = interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
}
