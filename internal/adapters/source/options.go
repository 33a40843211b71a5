package source

import (
	"net/http"
	"time"

	"github.com/okian/workhours/pkg/logger"
)

// Option applies a configuration option to the HTTPSource.
type Option func(*HTTPSource)

// WithTimeout bounds the whole request, body included.
func WithTimeout(d time.Duration) Option {
	return func(s *HTTPSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying client. Its own Timeout is left alone.
func WithHTTPClient(c *http.Client) Option {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithSkipDeleted drops entries that carry a DeletedOn timestamp.
func WithSkipDeleted(skip bool) Option {
	return func(s *HTTPSource) {
		s.skipDeleted = skip
	}
}

// WithMaxBodyBytes caps the accepted response size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *HTTPSource) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithRequestID sets the X-Request-ID header sent with the request.
func WithRequestID(id string) Option {
	return func(s *HTTPSource) {
		s.requestID = id
	}
}

// WithLogger sets a custom logger for the source.
func WithLogger(l logger.Logger) Option {
	return func(s *HTTPSource) {
		if l != nil {
			s.logger = l
		}
	}
}
