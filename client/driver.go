package client

import (
	"time"

	"golang.org/x/sync/errgroup"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/iobuf"
)

// Proto drives one connection's worth of client request/response
// exchanges: symmetric to server.Proto with inverted roles — a writer
// goroutine turns submitted Codecs into wire bytes, a reader goroutine
// parses responses in the same order and drives each Codec's body
// reception. The pipelining-window acceptance rule is expressed as the
// capacity of the submit channel.
type Proto struct {
	stream *iobuf.Stream
	config Config
	submit chan Codec
	gate   *pipelineGate
}

// New returns a Proto ready to Run over conn.
func New(conn iobuf.Transport, config Config) *Proto {
	capacity := config.InflightRequestLimit
	if capacity < 1 {
		capacity = 1
	}
	return &Proto{
		stream: iobuf.NewStream(conn),
		config: config,
		submit: make(chan Codec, capacity),
		gate:   newPipelineGate(config.SafePipelineTimeout),
	}
}

// Submit enqueues codec to be written; it blocks once the pipelining
// window (InflightRequestLimit) is full, providing backpressure. Submit
// must not be called again after Close.
func (p *Proto) Submit(codec Codec) { p.submit <- codec }

// Close signals that no more requests will be submitted; Run's writer
// goroutine exits once the submit channel drains.
func (p *Proto) Close() { close(p.submit) }

type pendingRequest struct {
	codec  Codec
	isHead bool
}

// Run drives the connection until the peer closes, a codec hijacks, or a
// fatal error occurs. It returns the terminal error, or nil on a clean
// close.
func (p *Proto) Run() error {
	capacity := p.config.InflightRequestLimit
	if capacity < 1 {
		capacity = 1
	}
	awaiting := make(chan *pendingRequest, capacity)

	g := new(errgroup.Group)
	g.Go(func() error {
		defer close(awaiting)
		return p.writeLoop(awaiting)
	})
	g.Go(func() error {
		return p.readLoop(awaiting)
	})
	err := g.Wait()
	if !p.stream.Hijacked() {
		p.stream.Conn.Close()
	}
	return err
}

func (p *Proto) writeLoop(awaiting chan<- *pendingRequest) error {
	for codec := range p.submit {
		p.gate.waitForRoom()
		p.stream.Conn.SetWriteDeadline(time.Now().Add(p.config.MaxRequestTimeout))
		msg := tkhttp.NewRequestMessage(p.stream.Out)
		enc := newEncoder(msg)
		if err := codec.StartWrite(enc); err != nil {
			return err
		}
		if !msg.IsComplete() {
			msg.Done()
		}
		if err := p.stream.Flush(); err != nil {
			return err
		}
		p.gate.requestSent()
		awaiting <- &pendingRequest{codec: codec, isHead: enc.isHead}
	}
	return nil
}

func (p *Proto) readLoop(awaiting <-chan *pendingRequest) error {
	for req := range awaiting {
		p.stream.Conn.SetReadDeadline(time.Now().Add(p.config.KeepAliveTimeout))

		var headEnd int
		for {
			headEnd = findHeaderEnd(p.stream.In.Bytes())
			if headEnd >= 0 {
				break
			}
			if p.stream.In.Len() > maxHeaderBlockBytes {
				return errMalformedStatusLine
			}
			n, err := p.stream.FillOnce()
			if err != nil {
				if p.stream.In.Len() == 0 {
					return ErrResetOnResponseHeaders
				}
				return err
			}
			if n == 0 && p.stream.In.EOF() {
				return ErrResetOnResponseHeaders
			}
		}

		head, err := parseResponseHead(p.stream.In.Bytes(), headEnd, req.isHead, p.config.MaxHeaderFields)
		if err != nil {
			return err
		}
		p.stream.In.Consume(headEnd)

		mode, err := req.codec.HeadersReceived(head)
		if err != nil {
			return err
		}
		if mode.Mode == tkhttp.RecvModeHijack {
			conn, in, _ := p.stream.Hijack()
			if hj, ok := req.codec.(Hijacker); ok {
				hj.Hijack(conn, in.Bytes())
			}
			return nil
		}

		if err := readBody(p.stream, head.Body, mode, req.codec); err != nil {
			return err
		}
		p.gate.responseDone()
		if head.Close {
			return nil
		}
	}
	return nil
}

const maxHeaderBlockBytes = 64 * 1024
