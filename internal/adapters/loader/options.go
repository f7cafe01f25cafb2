package loader

import (
	"net/http"
	"time"
)

// Option applies a configuration option to an HTTP loader.
type Option func(*HTTPLoader)

// WithClient sets the HTTP client used for fetches.
func WithClient(c *http.Client) Option {
	return func(l *HTTPLoader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithTimeout bounds each fetch. Zero keeps the client's own setting.
func WithTimeout(d time.Duration) Option {
	return func(l *HTTPLoader) {
		if d > 0 {
			l.timeout = d
		}
	}
}
