package server

import "errors"

var (
	// errMalformedRequestLine covers any request-line/header-block shape
	// the parser doesn't recognize.
	errMalformedRequestLine = errors.New("server: malformed request line or header field")

	// ErrRequestTooLong is the policy error for a request whose head (or,
	// in BufferedUpfront mode, body) exceeds the configured cap.
	ErrRequestTooLong = errors.New("server: request exceeds configured size limit")

	// ErrConnectionClosed names a connection that has already closed.
	// Proto itself does not return it.
	ErrConnectionClosed = errors.New("server: connection closed")
)
