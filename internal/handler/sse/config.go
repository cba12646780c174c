package sse

import "time"

// Config tunes upload progress streams
type Config struct {
	// KeepAliveInterval is how often a comment line is sent while no chunk
	// has advanced the upload, e.g. during a slow client send
	KeepAliveInterval time.Duration

	// RetryInterval is announced in the stream's retry field. A client that
	// loses the stream reconnects after it and receives the current status first.
	RetryInterval time.Duration
}

// DefaultConfig returns the configuration used for upload streams
func DefaultConfig() *Config {
	return &Config{
		KeepAliveInterval: 15 * time.Second,
		RetryInterval:     2 * time.Second,
	}
}
