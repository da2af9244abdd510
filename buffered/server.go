// Package buffered supplements the streaming server/client codecs with a
// fully in-memory convenience layer: request (or response) bodies are
// buffered upfront and handed to a plain function instead of driving a
// DataReceived/StartResponse state machine by hand.
package buffered

import (
	"net"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/server"
)

const defaultMaxRequestLength = 10 * 1024 * 1024

// Request is a fully buffered, heap-allocated view of an inbound request:
// every field outlives the connection's read buffer, unlike tkhttp.Head.
type Request struct {
	PeerAddr net.Addr
	Method   string
	Path     string
	Host     string
	Version  tkhttp.Version
	Headers  []Header
	Body     []byte
}

// Header is a single copied header field, preserving wire order and
// duplicates.
type Header struct {
	Name  string
	Value string
}

// Handler answers a buffered Request by writing a response through enc.
type Handler func(req *Request, enc *server.Encoder) error

// ServerDispatcher adapts a Handler to server.Dispatcher, buffering every
// request body up to MaxRequestLength before calling Handler.
type ServerDispatcher struct {
	PeerAddr         net.Addr
	MaxRequestLength int
	Handler          Handler
}

// NewServerDispatcher returns a ServerDispatcher with the default
// 10MiB request length cap.
func NewServerDispatcher(peerAddr net.Addr, handler Handler) *ServerDispatcher {
	return &ServerDispatcher{
		PeerAddr:         peerAddr,
		MaxRequestLength: defaultMaxRequestLength,
		Handler:          handler,
	}
}

// HeadersReceived implements server.Dispatcher.
func (d *ServerDispatcher) HeadersReceived(head *tkhttp.Head) (server.Codec, error) {
	req := &Request{
		PeerAddr: d.PeerAddr,
		Method:   head.Method.String(),
		Version:  head.Version,
		Host:     head.Host,
	}
	if head.Target.Path != "" {
		req.Path = head.Target.Path
	} else {
		req.Path = head.Target.Raw
	}
	for _, p := range head.Headers.Pairs() {
		req.Headers = append(req.Headers, Header{Name: p.Name, Value: p.Value})
	}
	max := d.MaxRequestLength
	if max <= 0 {
		max = defaultMaxRequestLength
	}
	return &serverCodec{max: max, handler: d.Handler, req: req}, nil
}

type serverCodec struct {
	max     int
	handler Handler
	req     *Request
}

func (c *serverCodec) RecvMode() tkhttp.RecvMode {
	return tkhttp.BufferedUpfront(c.max)
}

func (c *serverCodec) DataReceived(chunk []byte, end bool) (int, error) {
	if !end {
		return len(chunk), nil
	}
	c.req.Body = append([]byte(nil), chunk...)
	return len(chunk), nil
}

func (c *serverCodec) StartResponse(enc *server.Encoder) error {
	return c.handler(c.req, enc)
}
