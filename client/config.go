package client

import "time"

// Config carries the client-side tunables: timeouts, header limits, and
// how many requests may be pipelined at once.
type Config struct {
	// InflightRequestLimit bounds how many requests may be written but
	// not yet fully responded to at once — the capacity of the
	// awaiting-response FIFO.
	InflightRequestLimit    int
	InflightRequestPrealloc int

	KeepAliveTimeout    time.Duration
	SafePipelineTimeout time.Duration
	MaxRequestTimeout   time.Duration

	// MaxHeaderFields caps the number of response header fields read
	// before ErrTooManyHeaders is raised.
	MaxHeaderFields int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		InflightRequestLimit:    1,
		InflightRequestPrealloc: 1,
		KeepAliveTimeout:        4 * time.Second,
		SafePipelineTimeout:     300 * time.Millisecond,
		MaxRequestTimeout:       15 * time.Second,
		MaxHeaderFields:         256,
	}
}
