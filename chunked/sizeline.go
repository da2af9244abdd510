package chunked

import (
	"github.com/swindon-rs/tk-http-sub000"
)

// parseChunkSizeLine looks for a complete "<hex-size>[;ext...]\r\n" line at
// the front of buf. It returns the number of bytes the line occupies
// (including the trailing CRLF), the decoded size, and ok=false if buf
// doesn't yet contain a full line.
//
// A chunk extension after the size is recognized and discarded, never
// validated.
func parseChunkSizeLine(buf []byte) (n int, size int, ok bool, err error) {
	nl := indexByte(buf, '\n')
	if nl == -1 {
		if len(buf) > maxChunkSizeLine {
			return 0, 0, false, tkhttp.ErrInvalidChunkSize
		}
		return 0, 0, false, nil
	}
	line := buf[:nl+1]
	raw := line[:len(line)-1]
	if len(raw) > 0 && raw[len(raw)-1] == '\r' {
		raw = raw[:len(raw)-1]
	}
	if semi := indexByte(raw, ';'); semi != -1 {
		raw = raw[:semi]
	}
	v, err := parseHexUint(raw)
	if err != nil {
		return 0, 0, false, tkhttp.ErrInvalidChunkSize
	}
	if v > maxChunkSize {
		return 0, 0, false, tkhttp.ErrInvalidChunkSize
	}
	return len(line), int(v), true, nil
}

const (
	maxChunkSizeLine = 64 // bytes, generous bound on hex digits + extension
	maxChunkSize     = 1 << 32
)

func parseHexUint(v []byte) (uint64, error) {
	if len(v) == 0 {
		return 0, tkhttp.ErrInvalidChunkSize
	}
	var n uint64
	for i, b := range v {
		var d byte
		switch {
		case '0' <= b && b <= '9':
			d = b - '0'
		case 'a' <= b && b <= 'f':
			d = b - 'a' + 10
		case 'A' <= b && b <= 'F':
			d = b - 'A' + 10
		default:
			return 0, tkhttp.ErrInvalidChunkSize
		}
		if i == 16 {
			return 0, tkhttp.ErrInvalidChunkSize
		}
		n <<= 4
		n |= uint64(d)
	}
	return n, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
