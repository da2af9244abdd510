package client

import (
	tkhttp "github.com/swindon-rs/tk-http-sub000"
)

// Codec drives one client request/response exchange. StartWrite produces
// the request; HeadersReceived is called once the response head is
// parsed and returns the RecvMode the driver should use for the response
// body; DataReceived is driven identically to the server side.
type Codec interface {
	StartWrite(enc *Encoder) error
	HeadersReceived(head *tkhttp.Head) (tkhttp.RecvMode, error)
	DataReceived(chunk []byte, end bool) (consumed int, err error)
}

// Hijacker lets a client codec take over the raw connection once its
// response head has been parsed; no response body is read first (rarely
// used client-side, carried for symmetry with the server).
type Hijacker interface {
	Hijack(conn Transport, buffered []byte)
}

// Transport mirrors server.Transport to avoid importing iobuf from
// embedder code just for the Hijacker signature.
type Transport = interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
}
