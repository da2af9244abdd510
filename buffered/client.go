package buffered

import (
	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/client"
)

const defaultMaxResponseLength = 10 * 1024 * 1024

// Response is a fully buffered response: headers and body are copied out
// of the connection's read buffer so they outlive it.
type Response struct {
	Code    int
	Reason  string
	Headers []Header
	Body    []byte
}

// RequestWriter writes a request through enc; it is called once, from
// ClientCodec.StartWrite.
type RequestWriter func(enc *client.Encoder) error

// ClientCodec adapts a RequestWriter to client.Codec, buffering the
// response body up to MaxResponseLength and delivering the result through
// Done once the exchange completes.
type ClientCodec struct {
	MaxResponseLength int
	Write             RequestWriter
	Done              func(*Response, error)

	resp *Response
}

// NewClientCodec returns a ClientCodec with the default 10MiB response
// length cap.
func NewClientCodec(write RequestWriter, done func(*Response, error)) *ClientCodec {
	return &ClientCodec{
		MaxResponseLength: defaultMaxResponseLength,
		Write:             write,
		Done:              done,
	}
}

// StartWrite implements client.Codec.
func (c *ClientCodec) StartWrite(enc *client.Encoder) error {
	return c.Write(enc)
}

// HeadersReceived implements client.Codec.
func (c *ClientCodec) HeadersReceived(head *tkhttp.Head) (tkhttp.RecvMode, error) {
	resp := &Response{Code: head.StatusCode, Reason: head.Reason}
	for _, p := range head.Headers.Pairs() {
		resp.Headers = append(resp.Headers, Header{Name: p.Name, Value: p.Value})
	}
	c.resp = resp
	max := c.MaxResponseLength
	if max <= 0 {
		max = defaultMaxResponseLength
	}
	return tkhttp.BufferedUpfront(max), nil
}

// DataReceived implements client.Codec.
func (c *ClientCodec) DataReceived(chunk []byte, end bool) (int, error) {
	if !end {
		return len(chunk), nil
	}
	c.resp.Body = append([]byte(nil), chunk...)
	if c.Done != nil {
		c.Done(c.resp, nil)
	}
	return len(chunk), nil
}
