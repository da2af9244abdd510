package tkhttp

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/http/httpguts"

	"github.com/swindon-rs/tk-http-sub000/hdr"
)

// Message is the shared HTTP/1.x serializer: a finite-state machine over
// an append-only output that enforces message well-formedness byte by
// byte. Both the server response writer and the client request writer
// embed one.
type Message struct {
	out io.Writer
	st  msgState
}

// msgTag is the MessageState discriminant.
type msgTag int

const (
	stRequestStart msgTag = iota
	stResponseStart
	stFinalResponseStart
	stHeaders
	stFixedHeaders
	stChunkedHeaders
	stBodyless
	stFixedBody
	stChunkedBody
	stDone
)

// bodyClass classifies how a message's body presence is constrained:
// Normal / Head / Denied / Request.
type bodyClass int

const (
	bodyNormal bodyClass = iota
	bodyHead
	bodyDenied
	bodyRequest
)

// msgState holds exactly the fields each serializer state needs.
type msgState struct {
	tag     msgTag
	version Version
	body    bodyClass
	close   bool
	isHead  bool
	remain  uint64 // FixedHeaders/FixedBody: remaining declared bytes
}

// NewRequestMessage starts a request serializer (client side).
func NewRequestMessage(out io.Writer) *Message {
	return &Message{out: out, st: msgState{tag: stRequestStart}}
}

// NewResponseMessage starts a response serializer (server side) for a
// request with the given characteristics.
func NewResponseMessage(out io.Writer, version Version, isHead, close bool) *Message {
	body := bodyNormal
	if isHead {
		body = bodyHead
	}
	return &Message{out: out, st: msgState{tag: stResponseStart, version: version, body: body, close: close}}
}

// RequestLine writes the request line and transitions to Headers{Request}.
// Panics (programmer error) if called out of RequestStart state.
func (m *Message) RequestLine(method, target string, version Version) {
	if m.st.tag != stRequestStart {
		panic(fmt.Sprintf("tkhttp: RequestLine called in state %d", m.st.tag))
	}
	fmt.Fprintf(m.out, "%s %s %s\r\n", method, target, version)
	m.st = msgState{tag: stHeaders, body: bodyRequest}
}

// ResponseStatus writes the status line. code == 100 is rejected (100 is
// never a final status). For 1xx/204/304 the body class is forced to
// Denied regardless of the caller's earlier choice.
func (m *Message) ResponseStatus(code int, reason string) error {
	switch m.st.tag {
	case stResponseStart, stFinalResponseStart:
	default:
		panic(fmt.Sprintf("tkhttp: ResponseStatus called in state %d", m.st.tag))
	}
	if code == 100 {
		return fmt.Errorf("tkhttp: 100 Continue is not a valid final status")
	}
	fmt.Fprintf(m.out, "%s %d %s\r\n", m.st.version, code, reason)
	body := m.st.body
	if !HasBody(code) {
		body = bodyDenied
	}
	m.st = msgState{tag: stHeaders, body: body, close: m.st.close}
	return nil
}

// ResponseContinue writes a literal "<version> 100 Continue\r\n\r\n" and
// transitions to FinalResponseStart. Legal only once, from ResponseStart.
func (m *Message) ResponseContinue() {
	if m.st.tag != stResponseStart {
		panic(fmt.Sprintf("tkhttp: ResponseContinue called in state %d", m.st.tag))
	}
	fmt.Fprintf(m.out, "%s 100 Continue\r\n\r\n", m.st.version)
	m.st = msgState{tag: stFinalResponseStart, version: m.st.version, body: m.st.body, close: m.st.close}
}

func (m *Message) writeHeaderLine(name, value string) {
	io.WriteString(m.out, name)
	io.WriteString(m.out, ": ")
	io.WriteString(m.out, value)
	io.WriteString(m.out, "\r\n")
}

// AddHeader writes an arbitrary header field. Rejects Content-Length and
// Transfer-Encoding, which must go through AddLength/AddChunked, and
// rejects a name or value that is not valid per RFC 7230 field grammar —
// the same check the parse path applies via hdr.List.Add, wired here so
// a codec can never inject extra header lines or split the response
// through a crafted value containing CR/LF.
func (m *Message) AddHeader(name, value string) error {
	if hdr.CanonicalHeaderKey(name) == "Content-Length" || hdr.CanonicalHeaderKey(name) == "Transfer-Encoding" {
		return ErrBodyLengthHeader
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return hdr.ErrInvalidFieldName
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return hdr.ErrInvalidFieldValue
	}
	switch m.st.tag {
	case stHeaders, stFixedHeaders, stChunkedHeaders:
		m.writeHeaderLine(name, value)
		return nil
	default:
		panic(fmt.Sprintf("tkhttp: AddHeader called in state %d", m.st.tag))
	}
}

// AddLength declares a fixed Content-Length body.
func (m *Message) AddLength(n uint64) error {
	switch m.st.tag {
	case stFixedHeaders:
		return ErrDuplicateContentLength
	case stChunkedHeaders:
		return ErrContentLengthAfterTransferEncoding
	case stHeaders:
		if m.st.body == bodyDenied {
			return ErrRequireBodyless
		}
		m.writeHeaderLine("Content-Length", strconv.FormatUint(n, 10))
		m.st = msgState{tag: stFixedHeaders, isHead: m.st.body == bodyHead, close: m.st.close, remain: n}
		return nil
	default:
		panic(fmt.Sprintf("tkhttp: AddLength called in state %d", m.st.tag))
	}
}

// AddChunked declares a chunked-transfer body.
func (m *Message) AddChunked() error {
	switch m.st.tag {
	case stFixedHeaders:
		return ErrTransferEncodingAfterLength
	case stChunkedHeaders:
		return ErrDuplicateTransferEncoding
	case stHeaders:
		if m.st.body == bodyDenied {
			return ErrRequireBodyless
		}
		m.writeHeaderLine("Transfer-Encoding", "chunked")
		m.st = msgState{tag: stChunkedHeaders, isHead: m.st.body == bodyHead, close: m.st.close}
		return nil
	default:
		panic(fmt.Sprintf("tkhttp: AddChunked called in state %d", m.st.tag))
	}
}

// IsStarted reports whether at least the status/request line has been
// written (useful to decide whether an error page can still be built).
func (m *Message) IsStarted() bool {
	switch m.st.tag {
	case stRequestStart, stResponseStart, stFinalResponseStart:
		return false
	default:
		return true
	}
}

// DoneHeaders closes the header block and returns whether an entity body
// is expected to follow. Fails with ErrCantDetermineBodySize for a
// response with neither Content-Length nor Transfer-Encoding set.
func (m *Message) DoneHeaders() (bool, error) {
	switch m.st.tag {
	case stHeaders, stFixedHeaders, stChunkedHeaders:
		if m.st.close {
			// Written whenever close is set: AddHeader does not reject a
			// Connection header, and a codec that already added one gets
			// this line as well — mirrors base_serializer.rs's
			// done_headers() self-call.
			m.writeHeaderLine("Connection", "close")
		}
	default:
		panic(fmt.Sprintf("tkhttp: DoneHeaders called in state %d", m.st.tag))
	}

	var expectBody bool
	switch m.st.tag {
	case stHeaders:
		switch m.st.body {
		case bodyDenied:
			m.st = msgState{tag: stBodyless}
			expectBody = false
		case bodyRequest:
			m.st = msgState{tag: stFixedBody, remain: 0}
			expectBody = true
		case bodyNormal:
			return false, ErrCantDetermineBodySize
		default:
			// bodyHead reaching here means the caller skipped
			// AddLength/AddChunked on a HEAD response — a
			// programmer error, not a recoverable one (mirrors
			// base_serializer.rs's catch-all panic! arm).
			panic(fmt.Sprintf("tkhttp: DoneHeaders called in state %d with undetermined body length", m.st.tag))
		}
	case stFixedHeaders:
		expectBody = !m.st.isHead
		m.st = msgState{tag: stFixedBody, isHead: m.st.isHead, remain: m.st.remain}
	case stChunkedHeaders:
		expectBody = !m.st.isHead
		m.st = msgState{tag: stChunkedBody, isHead: m.st.isHead}
	}
	io.WriteString(m.out, "\r\n")
	return expectBody, nil
}

// WriteBody writes (or, for HEAD responses, accounts for without
// emitting) a chunk of body data. Panics if it would overrun a declared
// Content-Length — that is a programmer error, not a recoverable one.
func (m *Message) WriteBody(data []byte) {
	switch m.st.tag {
	case stBodyless:
		panic("tkhttp: message must not contain a body")
	case stFixedBody:
		if uint64(len(data)) > m.st.remain {
			panic(fmt.Sprintf("tkhttp: fixed body overrun: %d bytes left, got %d more", m.st.remain, len(data)))
		}
		if !m.st.isHead {
			m.out.Write(data)
		}
		m.st.remain -= uint64(len(data))
	case stChunkedBody:
		if !m.st.isHead && len(data) > 0 {
			fmt.Fprintf(m.out, "%x\r\n", len(data))
			m.out.Write(data)
			io.WriteString(m.out, "\r\n")
		}
	default:
		panic(fmt.Sprintf("tkhttp: WriteBody called in state %d", m.st.tag))
	}
}

// IsComplete reports whether Done has already been called.
func (m *Message) IsComplete() bool { return m.st.tag == stDone }

// Done finalizes the message. Idempotent once reached. Panics if a fixed
// body still has undelivered bytes declared.
func (m *Message) Done() {
	switch m.st.tag {
	case stBodyless:
		m.st.tag = stDone
	case stFixedBody:
		if m.st.isHead {
			m.st.tag = stDone
			return
		}
		if m.st.remain != 0 {
			panic(fmt.Sprintf("tkhttp: tried to close message with %d bytes remaining", m.st.remain))
		}
		m.st.tag = stDone
	case stChunkedBody:
		if !m.st.isHead {
			io.WriteString(m.out, "0\r\n\r\n")
		}
		m.st.tag = stDone
	case stDone:
		// multiple invocations are okay
	default:
		panic(fmt.Sprintf("tkhttp: Done called in state %d", m.st.tag))
	}
}
