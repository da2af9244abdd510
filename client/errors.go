package client

import "errors"

var (
	errMalformedStatusLine = errors.New("client: malformed status line or header field")

	// ErrResetOnResponseHeaders is the failure reported when the
	// connection is reset before any response bytes arrive.
	ErrResetOnResponseHeaders = errors.New("client: connection reset before response headers")

	// ErrResetOnResponseBody is reported when the connection resets mid-
	// body for a response whose length was not EOF-delimited.
	ErrResetOnResponseBody = errors.New("client: connection reset during response body")
)
