package client

import (
	"strconv"
	"strings"

	tkhttp "github.com/swindon-rs/tk-http-sub000"
	"github.com/swindon-rs/tk-http-sub000/hdr"
)

const headerBufInline = 16

// findHeaderEnd mirrors server.findHeaderEnd; duplicated rather than
// exported across packages since both are a handful of lines tied to
// their own package's byte-slice helpers.
func findHeaderEnd(buf []byte) int {
	for i := 0; i+3 < len(buf); i++ {
		if buf[i] == '\r' && buf[i+1] == '\n' && buf[i+2] == '\r' && buf[i+3] == '\n' {
			return i + 4
		}
	}
	return -1
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

// parseResponseHead parses a status line + header block, applying the
// client-side body-length algorithm. isHead comes from the matching
// request's Encoder.
func parseResponseHead(buf []byte, headEnd int, isHead bool, maxFields int) (*tkhttp.Head, error) {
	head := buf[:headEnd]
	lineEnd := indexCRLF(head)
	if lineEnd == -1 {
		return nil, errMalformedStatusLine
	}
	statusLine := string(head[:lineEnd])
	parts := strings.SplitN(statusLine, " ", 3)
	if len(parts) < 2 {
		return nil, errMalformedStatusLine
	}
	version, ok := parseHTTPVersion(parts[0])
	if !ok {
		return nil, errMalformedStatusLine
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, errMalformedStatusLine
	}
	reason := ""
	if len(parts) == 3 {
		reason = parts[2]
	}

	headers := hdr.NewList(headerBufInline)
	rest := head[lineEnd+2 : headEnd-2]
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
			return nil, errMalformedStatusLine
		}
		name := strings.TrimSpace(string(line[:colon]))
		value := strings.TrimSpace(string(line[colon+1:]))
		if err := headers.Add(name, value); err != nil {
			return nil, err
		}
	}

	h := &tkhttp.Head{
		Version:    version,
		Headers:    headers,
		StatusCode: code,
		Reason:     reason,
	}
	h.AccumulateConnectionTokens()
	if version == tkhttp.HTTP10 && !headers.HasToken("Connection", "keep-alive") {
		h.Close = true
	}

	body, err := tkhttp.DetermineResponseBodyLength(isHead, code, headers)
	if err != nil {
		return nil, err
	}
	h.Body = body
	return h, nil
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
