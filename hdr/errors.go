package hdr

import "errors"

var (
	// ErrInvalidFieldName is returned by Add when name is not a valid
	// RFC 7230 token.
	ErrInvalidFieldName = errors.New("hdr: invalid header field name")
	// ErrInvalidFieldValue is returned by Add when value contains bytes
	// forbidden in a header field value.
	ErrInvalidFieldValue = errors.New("hdr: invalid header field value")
)
