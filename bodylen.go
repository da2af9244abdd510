package tkhttp

import (
	"strconv"
	"strings"

	"github.com/swindon-rs/tk-http-sub000/hdr"
)

// DetermineRequestBodyLength applies the RFC 7230 §3.3.3 length algorithm
// as restricted to request messages: a Transfer-Encoding naming "chunked"
// wins over Content-Length; otherwise a single numeric Content-Length
// applies; otherwise the request has no body. Both headers present is
// tolerated but the caller must force close=true.
func DetermineRequestBodyLength(h *hdr.List) (body BodyKind, both bool, err error) {
	chunked := h.HasToken("Transfer-Encoding", "chunked")
	n, hasLen, err := contentLength(h)
	if err != nil {
		return BodyKind{}, false, err
	}
	switch {
	case chunked && hasLen:
		return Chunked(), true, nil
	case chunked:
		return Chunked(), false, nil
	case hasLen:
		return Fixed(n), false, nil
	default:
		return Empty(), false, nil
	}
}

// DetermineResponseBodyLength applies the client-side variant of the
// algorithm: HEAD requests and bodyless status codes always carry
// Fixed(0); otherwise chunked beats Content-Length beats read-to-EOF.
func DetermineResponseBodyLength(isHead bool, statusCode int, h *hdr.List) (BodyKind, error) {
	if isHead || !HasBody(statusCode) {
		return Fixed(0), nil
	}
	if h.HasToken("Transfer-Encoding", "chunked") {
		return Chunked(), nil
	}
	n, hasLen, err := contentLength(h)
	if err != nil {
		return BodyKind{}, err
	}
	if hasLen {
		return Fixed(n), nil
	}
	return EOF(), nil
}

// contentLength returns the message's Content-Length, erroring on a
// malformed value or on any repeated Content-Length field, even when
// the repeated values are equal.
func contentLength(h *hdr.List) (n uint64, ok bool, err error) {
	if h.Count("Content-Length") > 1 {
		return 0, false, ErrInvalidContentLen
	}
	v, present := h.Get("Content-Length")
	if !present {
		return 0, false, nil
	}
	v = strings.TrimSpace(v)
	n, perr := strconv.ParseUint(v, 10, 64)
	if perr != nil {
		return 0, false, ErrInvalidContentLen
	}
	return n, true, nil
}
