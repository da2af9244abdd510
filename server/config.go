package server

import "time"

// Config carries the server-side tunables: timeouts, header limits, and
// how deep the pipelining queue runs.
type Config struct {
	// InflightRequestLimit bounds how many parsed-but-not-yet-fully-
	// written requests may be outstanding at once; it is the capacity of
	// the pipelining FIFO of (codec, state-flag) pairs.
	InflightRequestLimit int
	// InflightRequestPrealloc hints how much FIFO capacity to preallocate
	// up front; purely a performance knob.
	InflightRequestPrealloc int

	FirstByteTimeout       time.Duration
	KeepAliveTimeout       time.Duration
	HeadersTimeout         time.Duration
	InputBodyByteTimeout   time.Duration
	InputBodyWholeTimeout  time.Duration
	OutputBodyByteTimeout  time.Duration
	OutputBodyWholeTimeout time.Duration

	// MaxHeaderFields caps the number of header fields read from one
	// request before ErrTooManyHeaders is raised.
	MaxHeaderFields int
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		InflightRequestLimit:    2,
		InflightRequestPrealloc: 2,
		FirstByteTimeout:        5 * time.Second,
		KeepAliveTimeout:        90 * time.Second,
		HeadersTimeout:          10 * time.Second,
		InputBodyByteTimeout:    15 * time.Second,
		InputBodyWholeTimeout:   3600 * time.Second,
		OutputBodyByteTimeout:   15 * time.Second,
		OutputBodyWholeTimeout:  300 * time.Second,
		MaxHeaderFields:         256,
	}
}
