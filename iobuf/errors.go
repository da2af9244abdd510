package iobuf

import "errors"

// ErrReadLimitExceeded is returned by Stream.FillOnce when the
// caller-configured read limit (SetReadLimit) would be exceeded.
var ErrReadLimitExceeded = errors.New("iobuf: read limit exceeded")
