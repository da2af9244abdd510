package server

import (
	"strings"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/hdr"
)

// headerBufInline is the inline capacity of the header list allocated per
// request before it falls back to ordinary slice growth.
const headerBufInline = 16

// findHeaderEnd returns the index right after the blank line terminating
// the header block (the offset of the byte following "\r\n\r\n"), or -1
// if buf does not yet contain one.
func findHeaderEnd(buf []byte) int {
	for i := 0; i+3 < len(buf); i++ {
		if buf[i] == '\r' && buf[i+1] == '\n' && buf[i+2] == '\r' && buf[i+3] == '\n' {
			return i + 4
		}
	}
	return -1
}

// parseRequestHead parses a complete request line + header block out of
// buf[:headEnd] (headEnd as returned by findHeaderEnd) into a *tkhttp.Head.
// Line/field splitting is hand-rolled rather than pulled from a parser
// library; each field name and value is copied out of buf into a string.
func parseRequestHead(buf []byte, headEnd int, maxFields int) (*tkhttp.Head, error) {
	head := buf[:headEnd]
	lineEnd := indexCRLF(head)
	if lineEnd == -1 {
		return nil, errMalformedRequestLine // unreachable: headEnd implies a CRLF exists
	}
	requestLine := string(head[:lineEnd])
	parts := strings.SplitN(requestLine, " ", 3)
	if len(parts) != 3 {
		return nil, errMalformedRequestLine
	}
	method := tkhttp.ParseMethod(parts[0])
	target, ok := tkhttp.ParseRequestTarget(parts[1])
	if !ok {
		return nil, errMalformedRequestLine
	}
	version, ok := parseHTTPVersion(parts[2])
	if !ok {
		return nil, errMalformedRequestLine
	}

	headers := hdr.NewList(headerBufInline)
	rest := head[lineEnd+2 : headEnd-2] // strip request line's CRLF and the final CRLF
	for len(rest) > 0 {
		if headers.Len() >= maxFields {
			return nil, tkhttp.ErrTooManyHeaders
		}
		nl := indexCRLF(rest)
		var line []byte
		if nl == -1 {
			line, rest = rest, nil
		} else {
			line, rest = rest[:nl], rest[nl+2:]
		}
		colon := indexByte(line, ':')
		if colon == -1 {
			return nil, errMalformedRequestLine
		}
		name := strings.TrimSpace(string(line[:colon]))
		value := strings.TrimSpace(string(line[colon+1:]))
		if err := headers.Add(name, value); err != nil {
			return nil, err
		}
	}

	h := &tkhttp.Head{
		Method:  method,
		Target:  target,
		Version: version,
		Headers: headers,
	}
	h.AccumulateConnectionTokens()
	if version == tkhttp.HTTP10 && !headers.HasToken("Connection", "keep-alive") {
		h.Close = true
	}

	if headers.Count("Host") > 1 {
		return nil, tkhttp.ErrDuplicateHost
	}
	hostHeader, _ := headers.Get("Host")
	switch {
	case target.Form == tkhttp.TargetAbsolute && target.Authority != "":
		h.Host = target.Authority
		if hostHeader != "" && !strings.EqualFold(hostHeader, target.Authority) {
			h.ConflictingHost = true
		}
	default:
		h.Host = hostHeader
	}

	if v, _ := headers.Get("Expect"); strings.EqualFold(strings.TrimSpace(v), "100-continue") {
		h.ExpectContinue = true
	}

	body, both, err := tkhttp.DetermineRequestBodyLength(headers)
	if err != nil {
		return nil, err
	}
	h.Body = body
	if both {
		h.Close = true
	}

	return h, nil
}

func indexCRLF(b []byte) int {
	for i := 0; i+1 < len(b); i++ {
		if b[i] == '\r' && b[i+1] == '\n' {
			return i
		}
	}
	return -1
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func parseHTTPVersion(s string) (tkhttp.Version, bool) {
	switch s {
	case "HTTP/1.1":
		return tkhttp.HTTP11, true
	case "HTTP/1.0":
		return tkhttp.HTTP10, true
	default:
		return 0, false
	}
}
