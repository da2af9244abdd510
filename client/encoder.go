package client

import (
	tkhttp "github.com/swindon-rs/tk-http-sub000"
)

// Encoder is the request-writing handle a Codec receives from
// StartWrite. It wraps the shared serializer and records whether the
// request line declared HEAD, since the response parser must treat a
// HEAD response as bodyless regardless of any declared length.
type Encoder struct {
	msg    *tkhttp.Message
	isHead bool
}

func newEncoder(msg *tkhttp.Message) *Encoder { return &Encoder{msg: msg} }

// RequestLine writes the request line and records the is-HEAD flag.
func (e *Encoder) RequestLine(method, target string, version tkhttp.Version) {
	e.isHead = method == "HEAD"
	e.msg.RequestLine(method, target, version)
}

// AddHeader writes one request header field.
func (e *Encoder) AddHeader(name, value string) error {
	return e.msg.AddHeader(name, value)
}

// AddLength declares a fixed Content-Length body.
func (e *Encoder) AddLength(n uint64) error { return e.msg.AddLength(n) }

// AddChunked declares a chunked-transfer body.
func (e *Encoder) AddChunked() error { return e.msg.AddChunked() }

// DoneHeaders closes the header block, returning whether a body is
// expected to follow.
func (e *Encoder) DoneHeaders() (bool, error) { return e.msg.DoneHeaders() }

// WriteBody writes a chunk of body data.
func (e *Encoder) WriteBody(data []byte) { e.msg.WriteBody(data) }

// Done finalizes the request.
func (e *Encoder) Done() { e.msg.Done() }

// IsComplete reports whether Done has already been called.
func (e *Encoder) IsComplete() bool { return e.msg.IsComplete() }
