// Package source retrieves raw time entries from the time-tracking endpoint.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/okian/workhours/internal/domain/model"
	"github.com/okian/workhours/pkg/logger"
	"github.com/okian/workhours/pkg/metrics"
)

// Default source configuration constants.
const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 32 << 20
	requestIDHeader     = "X-Request-ID"
)

// Source yields the full set of time entries for one run.
type Source interface {
	Fetch(ctx context.Context) ([]model.TimeEntry, error)
}

// HTTPSource performs a single GET against a fixed URL and decodes a JSON array.
type HTTPSource struct {
	url          string
	client       *http.Client
	timeout      time.Duration
	skipDeleted  bool
	maxBodyBytes int64
	requestID    string
	logger       logger.Logger
}

// NewHTTPSource creates a source for url.
func NewHTTPSource(url string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		url:          url,
		client:       http.DefaultClient,
		timeout:      defaultTimeout,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.requestID == "" {
		s.requestID = uuid.NewString()
	}
	return s
}

// Fetch retrieves and decodes every entry. A non-2xx status is returned as
// ErrUnexpectedStatus without attempting to decode the body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]model.TimeEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordFetchDuration(float64(time.Since(start).Milliseconds()))
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, s.requestID)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrRequest, err)
	}
	if int64(len(body)) > s.maxBodyBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, s.maxBodyBytes)
	}

	entries, skipped, err := decodeEntries(body, s.skipDeleted)
	if err != nil {
		return nil, err
	}
	metrics.RecordEntriesFetched(len(entries))
	if s.logger != nil {
		s.logger.Debug(ctx, "fetched time entries",
			logger.Int("entries", len(entries)),
			logger.Int("skippedDeleted", skipped),
			logger.Int("bytes", len(body)),
			logger.String("requestID", s.requestID),
		)
	}
	return entries, nil
}
