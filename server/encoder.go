package server

import (
	tkhttp "github.com/swindon-rs/tk-http-sub000"
)

// Encoder is the response-writing handle a Codec receives from
// StartResponse; it wraps the shared serializer pre-seeded with the
// request's version/HEAD/close characteristics.
type Encoder struct {
	msg *tkhttp.Message
}

func newEncoder(msg *tkhttp.Message) *Encoder { return &Encoder{msg: msg} }

// Status writes the status line.
func (e *Encoder) Status(code int, reason string) error {
	return e.msg.ResponseStatus(code, reason)
}

// AddHeader writes one response header field.
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

// Done finalizes the response.
func (e *Encoder) Done() { e.msg.Done() }

// IsComplete reports whether Done has already been called.
func (e *Encoder) IsComplete() bool { return e.msg.IsComplete() }
