package server

import (
	"io"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/chunked"
	"github.com/swindon-rs/tk-http-sub000/iobuf"
)

// readBody drives the BodyKind/RecvMode interaction for one request. It
// fills stream.In from the transport as needed, decodes chunked bodies
// through chunked.Decoder, and calls codec.DataReceived the number of
// times the declared RecvMode implies, consuming stream.In as bytes are
// handed off. mode.Mode == RecvModeHijack must be checked by the caller
// before readBody is invoked — this function never reads for a
// hijacking codec. armRead is called before every Transport read, so
// the caller can re-arm a per-byte read deadline; it may be nil.
func readBody(stream *iobuf.Stream, body tkhttp.BodyKind, mode tkhttp.RecvMode, codec Codec, armRead func()) error {
	switch body.Kind {
	case tkhttp.BodyEmpty:
		_, err := codec.DataReceived(nil, true)
		return err
	case tkhttp.BodyFixed:
		if mode.Mode == tkhttp.RecvModeBufferedUpfront {
			return readFixedBuffered(stream, body.Length, mode.Max, codec, armRead)
		}
		return readFixedProgressive(stream, body.Length, mode.MinChunk, codec, armRead)
	case tkhttp.BodyChunked:
		if mode.Mode == tkhttp.RecvModeBufferedUpfront {
			return readChunkedBuffered(stream, mode.Max, codec, armRead)
		}
		return readChunkedProgressive(stream, mode.MinChunk, codec, armRead)
	case tkhttp.BodyEOF:
		return readEOFProgressive(stream, mode, codec, armRead)
	default:
		panic("server: unknown BodyKind")
	}
}

func fillOnce(stream *iobuf.Stream, armRead func()) (int, error) {
	if armRead != nil {
		armRead()
	}
	return stream.FillOnce()
}

func fillUntil(stream *iobuf.Stream, want int, armRead func()) error {
	for stream.In.Len() < want && !stream.In.EOF() {
		if _, err := fillOnce(stream, armRead); err != nil {
			return err
		}
	}
	return nil
}

func readFixedBuffered(stream *iobuf.Stream, total uint64, max int, codec Codec, armRead func()) error {
	if total > uint64(max) {
		return ErrRequestTooLong
	}
	if err := fillUntil(stream, int(total), armRead); err != nil {
		return err
	}
	if stream.In.Len() < int(total) {
		return tkhttp.ErrCantDetermineBodySize
	}
	n, err := codec.DataReceived(stream.In.Bytes()[:total], true)
	if err != nil {
		return err
	}
	stream.In.Consume(n)
	return nil
}

func readFixedProgressive(stream *iobuf.Stream, total uint64, minChunk int, codec Codec, armRead func()) error {
	if minChunk <= 0 {
		minChunk = 1
	}
	var delivered uint64
	for delivered < total {
		want := minUint64(uint64(minChunk), total-delivered)
		if err := fillUntil(stream, int(want), armRead); err != nil {
			return err
		}
		avail := minUint64(uint64(stream.In.Len()), total-delivered)
		if avail == 0 {
			return tkhttp.ErrCantDetermineBodySize
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

func readChunkedBuffered(stream *iobuf.Stream, max int, codec Codec, armRead func()) error {
	dec := chunked.New()
	for {
		if err := dec.Parse(stream.In); err != nil {
			return err
		}
		if dec.Buffered() > max {
			return ErrRequestTooLong
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
		if _, err := fillOnce(stream, armRead); err != nil {
			return err
		}
		if stream.In.EOF() {
			return tkhttp.ErrCantDetermineBodySize
		}
	}
}

func readChunkedProgressive(stream *iobuf.Stream, minChunk int, codec Codec, armRead func()) error {
	if minChunk <= 0 {
		minChunk = 1
	}
	dec := chunked.New()
	for {
		if err := dec.Parse(stream.In); err != nil {
			return err
		}
		for dec.Buffered() < minChunk && !dec.Done() {
			if _, err := fillOnce(stream, armRead); err != nil {
				return err
			}
			if stream.In.EOF() && dec.Buffered() == 0 && !dec.Done() {
				return tkhttp.ErrCantDetermineBodySize
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

// readEOFProgressive reads a body that ends only at connection close.
// The server never constructs a BodyEOF head, but the algorithm is
// shared with the client side since it is identical either way, apart
// from the error returned when a BufferedUpfront body exceeds mode.Max.
func readEOFProgressive(stream *iobuf.Stream, mode tkhttp.RecvMode, codec Codec, armRead func()) error {
	minChunk := mode.MinChunk
	if mode.Mode == tkhttp.RecvModeBufferedUpfront {
		minChunk = mode.Max + 1 // fill until EOF; more than Max bytes fails below
	} else if minChunk <= 0 {
		minChunk = 4096
	}
	for {
		for stream.In.Len() < minChunk && !stream.In.EOF() {
			if _, err := fillOnce(stream, armRead); err != nil && err != io.EOF {
				return err
			}
		}
		end := stream.In.EOF()
		if mode.Mode == tkhttp.RecvModeBufferedUpfront && !end {
			return ErrRequestTooLong
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
