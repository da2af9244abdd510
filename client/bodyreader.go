package client

import (
	"io"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/chunked"
	"github.com/swindon-rs/tk-http-sub000/iobuf"
)

// readBody mirrors server.readBody's algorithm on the response side; see
// that file for the grounding note. Duplicated rather than shared
// because the two Codec interfaces differ (StartResponse vs StartWrite)
// and Go has no structural typeclass to unify them without an adapter
// that would obscure more than it saves for these few small functions.
func readBody(stream *iobuf.Stream, body tkhttp.BodyKind, mode tkhttp.RecvMode, codec Codec) error {
	switch body.Kind {
	case tkhttp.BodyEmpty:
		_, err := codec.DataReceived(nil, true)
		return err
	case tkhttp.BodyFixed:
		if mode.Mode == tkhttp.RecvModeBufferedUpfront {
			return readFixedBuffered(stream, body.Length, mode.Max, codec)
		}
		return readFixedProgressive(stream, body.Length, mode.MinChunk, codec)
	case tkhttp.BodyChunked:
		if mode.Mode == tkhttp.RecvModeBufferedUpfront {
			return readChunkedBuffered(stream, mode.Max, codec)
		}
		return readChunkedProgressive(stream, mode.MinChunk, codec)
	case tkhttp.BodyEOF:
		return readEOFProgressive(stream, mode, codec)
	default:
		panic("client: unknown BodyKind")
	}
}

func fillUntil(stream *iobuf.Stream, want int) error {
	for stream.In.Len() < want && !stream.In.EOF() {
		if _, err := stream.FillOnce(); err != nil && err != io.EOF {
			return err
		}
	}
	return nil
}

func readFixedBuffered(stream *iobuf.Stream, total uint64, max int, codec Codec) error {
	if total > uint64(max) {
		return ErrResetOnResponseBody
	}
	if err := fillUntil(stream, int(total)); err != nil {
		return err
	}
	if stream.In.Len() < int(total) {
		return ErrResetOnResponseBody
	}
	n, err := codec.DataReceived(stream.In.Bytes()[:total], true)
	if err != nil {
		return err
	}
	stream.In.Consume(n)
	return nil
}

func readFixedProgressive(stream *iobuf.Stream, total uint64, minChunk int, codec Codec) error {
	if minChunk <= 0 {
		minChunk = 1
	}
	var delivered uint64
	for delivered < total {
		want := minUint64(uint64(minChunk), total-delivered)
		if err := fillUntil(stream, int(want)); err != nil {
			return err
		}
		avail := minUint64(uint64(stream.In.Len()), total-delivered)
		if avail == 0 {
			return ErrResetOnResponseBody
		}
		end := delivered+avail == total
		n, err := codec.DataReceived(stream.In.Bytes()[:avail], end)
		if err != nil {
			return err
		}
		stream.In.Consume(n)
		delivered += uint64(n)
	}
	return nil
}

func readChunkedBuffered(stream *iobuf.Stream, max int, codec Codec) error {
	dec := chunked.New()
	for {
		if err := dec.Parse(stream.In); err != nil {
			return err
		}
		if dec.Buffered() > max {
			return ErrResetOnResponseBody
		}
		if dec.Done() {
			n, err := codec.DataReceived(stream.In.Bytes()[:dec.Buffered()], true)
			if err != nil {
				return err
			}
			stream.In.Consume(n)
			dec.Consume(n)
			return nil
		}
		if _, err := stream.FillOnce(); err != nil && err != io.EOF {
			return err
		}
		if stream.In.EOF() {
			return ErrResetOnResponseBody
		}
	}
}

func readChunkedProgressive(stream *iobuf.Stream, minChunk int, codec Codec) error {
	if minChunk <= 0 {
		minChunk = 1
	}
	dec := chunked.New()
	for {
		if err := dec.Parse(stream.In); err != nil {
			return err
		}
		for dec.Buffered() < minChunk && !dec.Done() {
			if _, err := stream.FillOnce(); err == io.EOF {
				return ErrResetOnResponseBody
			} else if err != nil {
				return err
			}
			if stream.In.EOF() && dec.Buffered() == 0 && !dec.Done() {
				return ErrResetOnResponseBody
			}
			if err := dec.Parse(stream.In); err != nil {
				return err
			}
		}
		if dec.Buffered() == 0 && dec.Done() {
			_, err := codec.DataReceived(nil, true)
			return err
		}
		end := dec.Done()
		n, err := codec.DataReceived(stream.In.Bytes()[:dec.Buffered()], end)
		if err != nil {
			return err
		}
		stream.In.Consume(n)
		dec.Consume(n)
		if end {
			return nil
		}
	}
}

// readEOFProgressive reads a body that ends only at connection close —
// the common client case for a response without Content-Length/chunked.
// In BufferedUpfront mode the whole body, up to mode.Max bytes, goes to a
// single DataReceived(body, true) call.
func readEOFProgressive(stream *iobuf.Stream, mode tkhttp.RecvMode, codec Codec) error {
	minChunk := mode.MinChunk
	if mode.Mode == tkhttp.RecvModeBufferedUpfront {
		minChunk = mode.Max + 1 // fill until EOF; more than Max bytes fails below
	} else if minChunk <= 0 {
		minChunk = 4096
	}
	for {
		for stream.In.Len() < minChunk && !stream.In.EOF() {
			if _, err := stream.FillOnce(); err != nil && err != io.EOF {
				return err
			}
		}
		end := stream.In.EOF()
		if mode.Mode == tkhttp.RecvModeBufferedUpfront && !end {
			return ErrResetOnResponseBody
		}
		n, err := codec.DataReceived(stream.In.Bytes(), end)
		if err != nil {
			return err
		}
		stream.In.Consume(n)
		if end {
			return nil
		}
	}
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
