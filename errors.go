package tkhttp

import "errors"

// Serializer errors — returned by Message's header-building methods.
var (
	ErrDuplicateContentLength             = errors.New("tkhttp: Content-Length is added twice")
	ErrDuplicateTransferEncoding          = errors.New("tkhttp: Transfer-Encoding is added twice")
	ErrTransferEncodingAfterLength        = errors.New("tkhttp: Transfer-Encoding added when Content-Length is already specified")
	ErrContentLengthAfterTransferEncoding = errors.New("tkhttp: Content-Length added after Transfer-Encoding")
	ErrCantDetermineBodySize              = errors.New("tkhttp: neither Content-Length nor Transfer-Encoding is present")
	ErrBodyLengthHeader                   = errors.New("tkhttp: Content-Length and Transfer-Encoding must be set using add_length/add_chunked")
	ErrRequireBodyless                    = errors.New("tkhttp: message must not declare a body length")
)

// Semantic / parse errors shared between server and client.
var (
	ErrDuplicateHost       = errors.New("tkhttp: duplicate Host header")
	ErrConflictingHost     = errors.New("tkhttp: Host header conflicts with absolute-form request-target")
	ErrInvalidContentLen   = errors.New("tkhttp: invalid Content-Length value")
	ErrTooManyHeaders      = errors.New("tkhttp: too many header fields")
	ErrInvalidChunkSize    = errors.New("tkhttp: invalid chunk size line")
	ErrTrailerNotSupported = errors.New("tkhttp: chunk trailers are not supported")
	ErrInvalidUTF8         = errors.New("tkhttp: invalid UTF-8")
	ErrUnsupportedBody     = errors.New("tkhttp: method requires Hijack (CONNECT/TRACE)")
	ErrHijacked            = errors.New("tkhttp: connection has been hijacked")
	ErrTimeout             = errors.New("tkhttp: timed out")
)
