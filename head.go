package tkhttp

import (
	"strings"

	"github.com/swindon-rs/tk-http-sub000/hdr"
)

// Head is a borrowed view of a parsed request (server side) or response
// (client side): method, target, version, headers and the body-framing
// decisions derived from them.
//
// Fields are valid only for the lifetime of the buffer they were parsed
// from; codec implementations that need data beyond the
// HeadersReceived/Received call must copy it out.
type Head struct {
	Method  Method
	Target  RequestTarget
	Version Version
	Headers *hdr.List

	// Host is extracted from an absolute-form target when present,
	// otherwise from the Host header.
	Host string
	// ConflictingHost is set when both an absolute-form target and a
	// Host header are present and name different hosts.
	ConflictingHost bool

	// Body is the determined length-framing for this message.
	Body BodyKind

	// Close records whether this message forces the connection closed
	// after it completes.
	Close bool
	// ConnectionTokens holds the raw Connection header tokens, trimmed,
	// in wire order.
	ConnectionTokens []string

	// ExpectContinue is set when an `Expect: 100-continue` header was
	// present.
	ExpectContinue bool

	// StatusCode is only meaningful for a response Head (client side);
	// zero on the server side.
	StatusCode int
	Reason     string
}

// HasConnectionToken reports whether token is present in the Connection
// header (case-insensitive), matching ConnectionTokens.
func (h *Head) HasConnectionToken(token string) bool {
	for _, t := range h.ConnectionTokens {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}

// connectionTokens splits and trims a Connection header value list.
func connectionTokens(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AccumulateConnectionTokens appends every token from every Connection
// header field (there may legally be more than one field, though
// uncommon) onto h.ConnectionTokens and recomputes h.Close.
func (h *Head) AccumulateConnectionTokens() {
	h.ConnectionTokens = h.ConnectionTokens[:0]
	for _, v := range h.Headers.Values("Connection") {
		h.ConnectionTokens = append(h.ConnectionTokens, connectionTokens(v)...)
	}
	if h.HasConnectionToken("close") {
		h.Close = true
	}
}
