package server

import (
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/iobuf"
)

// Proto drives one connection's worth of HTTP/1.x request/response
// exchanges. It owns the connection halves and runs two cooperating
// goroutines: a reader that parses requests and feeds codecs their
// bodies, and a writer that drains completed codecs in strict arrival
// order, never driving more than one response-writing call at a time.
type Proto struct {
	stream     *iobuf.Stream
	config     Config
	dispatcher Dispatcher
}

// New returns a Proto ready to Serve conn.
func New(conn iobuf.Transport, config Config, dispatcher Dispatcher) *Proto {
	return &Proto{stream: iobuf.NewStream(conn), config: config, dispatcher: dispatcher}
}

// pendingResponse is the FIFO element: a codec whose request has been
// fully parsed (and, unless hijacking, its body fully delivered) paired
// with the request characteristics the response serializer needs.
type pendingResponse struct {
	head  *tkhttp.Head
	codec Codec
}

// Serve runs the connection to completion: until the peer or a codec
// requests close, a fatal parse/transport error occurs, or a codec
// hijacks the connection. It returns the terminal error, or nil on a
// clean close.
func (p *Proto) Serve() error {
	capacity := p.config.InflightRequestLimit
	if capacity < 1 {
		capacity = 1
	}
	queue := make(chan *pendingResponse, capacity)

	g := new(errgroup.Group)
	g.Go(func() error {
		defer close(queue)
		return p.readLoop(queue)
	})
	g.Go(func() error {
		return p.writeLoop(queue)
	})
	err := g.Wait()
	if !p.stream.Hijacked() {
		p.stream.Conn.Close()
	}
	return err
}

func (p *Proto) readLoop(queue chan<- *pendingResponse) error {
	firstRequest := true
	for {
		// The very first request gets FirstByteTimeout; every
		// subsequent, pipelined request-wait gets the longer
		// KeepAliveTimeout instead of reusing FirstByteTimeout.
		waitTimeout := p.config.KeepAliveTimeout
		if firstRequest {
			waitTimeout = p.config.FirstByteTimeout
		}
		firstRequest = false

		p.stream.Conn.SetReadDeadline(time.Now().Add(waitTimeout))
		if p.stream.In.Len() == 0 {
			if _, err := p.stream.FillOnce(); err != nil {
				if err == io.EOF && p.stream.In.Len() == 0 {
					return nil // peer closed cleanly between requests
				}
				return err
			}
		}
		p.stream.Conn.SetReadDeadline(time.Now().Add(p.config.HeadersTimeout))

		var headEnd int
		for {
			headEnd = findHeaderEnd(p.stream.In.Bytes())
			if headEnd >= 0 {
				break
			}
			if p.stream.In.Len() > maxHeaderBlockBytes {
				return ErrRequestTooLong
			}
			if _, err := p.stream.FillOnce(); err != nil {
				return err
			}
		}

		head, err := parseRequestHead(p.stream.In.Bytes(), headEnd, p.config.MaxHeaderFields)
		if err != nil {
			queue <- &pendingResponse{head: &tkhttp.Head{Close: true}, codec: errorCodec{err: err}}
			return err
		}
		p.stream.In.Consume(headEnd)

		codec, err := p.dispatcher.HeadersReceived(head)
		if err != nil {
			queue <- &pendingResponse{head: head, codec: errorCodec{err: err}}
			return err
		}

		mode := codec.RecvMode()
		if mode.Mode == tkhttp.RecvModeHijack {
			conn, in, _ := p.stream.Hijack()
			if hj, ok := codec.(Hijacker); ok {
				hj.Hijack(conn, in.Bytes())
			}
			return nil
		}
		if head.Method.IsConnect() || head.Method.Kind() == tkhttp.MethodTrace {
			queue <- &pendingResponse{head: head, codec: errorCodec{err: tkhttp.ErrUnsupportedBody}}
			return tkhttp.ErrUnsupportedBody
		}

		wholeDeadline := time.Now().Add(p.config.InputBodyWholeTimeout)
		byteTimeout := p.config.InputBodyByteTimeout
		armRead := func() {
			d := time.Now().Add(byteTimeout)
			if d.After(wholeDeadline) {
				d = wholeDeadline
			}
			p.stream.Conn.SetReadDeadline(d)
		}
		armRead()
		if err := readBody(p.stream, head.Body, mode, codec, armRead); err != nil {
			queue <- &pendingResponse{head: head, codec: errorCodec{err: err}}
			return err
		}

		queue <- &pendingResponse{head: head, codec: codec}
		if head.Close {
			return nil
		}
	}
}

// maxHeaderBlockBytes bounds the request line + header block read before
// a complete blank-line terminator has appeared.
const maxHeaderBlockBytes = 64 * 1024

func (p *Proto) writeLoop(queue <-chan *pendingResponse) error {
	for item := range queue {
		wholeDeadline := time.Now().Add(p.config.OutputBodyWholeTimeout)
		byteTimeout := p.config.OutputBodyByteTimeout
		armWrite := func() {
			d := time.Now().Add(byteTimeout)
			if d.After(wholeDeadline) {
				d = wholeDeadline
			}
			p.stream.Conn.SetWriteDeadline(d)
		}
		armWrite()
		// A bare HTTP/1.0 request closes by default without announcing it:
		// only tell the serializer to emit a literal "Connection: close"
		// header when the peer is HTTP/1.1, where keep-alive is the
		// default and closing must be stated explicitly.
		announceClose := item.head.Close && item.head.Version.AtLeast11()
		msg := tkhttp.NewResponseMessage(p.stream.Out, item.head.Version, item.head.Method.IsHead(), announceClose)
		enc := newEncoder(msg)

		err := item.codec.StartResponse(enc)
		if err != nil && !msg.IsStarted() {
			writeFallback501(p.stream.Out, item.head.Version)
		} else if !msg.IsComplete() {
			msg.Done()
		}
		if flushErr := p.stream.FlushDeadline(armWrite); flushErr != nil {
			return flushErr
		}
		if err != nil {
			return err
		}
		if item.head.Close {
			return nil
		}
	}
	return nil
}

// writeFallback501 emits a minimal, self-contained 501 response when a
// codec errors before writing any bytes.
func writeFallback501(out *iobuf.WriteBuffer, version tkhttp.Version) {
	fallback := tkhttp.NewResponseMessage(out, version, false, true)
	fallback.ResponseStatus(501, "Not Implemented")
	fallback.AddLength(0)
	fallback.DoneHeaders()
	fallback.Done()
}

// errorCodec is a stub Codec used to push a fatal parse/dispatch error
// through the ordinary response path so the writer goroutine observes a
// consistent FIFO even on the error path (it always yields StartResponse
// an error before the message is started, triggering writeFallback501).
type errorCodec struct{ err error }

func (errorCodec) RecvMode() tkhttp.RecvMode              { return tkhttp.BufferedUpfront(0) }
func (errorCodec) DataReceived([]byte, bool) (int, error) { return 0, nil }
func (e errorCodec) StartResponse(*Encoder) error         { return e.err }
