package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultMaxBytes bounds the body of a remote CSV when no limit is given.
const DefaultMaxBytes = 10 << 20

// StatusError reports a non-2xx response from a remote source.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Code)
}

// Temporary reports whether the same request may succeed later.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// HTTPSource reads a weather CSV from an HTTP(S) URL.
type HTTPSource struct {
	url      string
	maxBytes int64
	client   *http.Client
	backoff  Backoff
	circuit  *gobreaker.CircuitBreaker
}

// NewHTTPSource creates a source for url. maxBytes <= 0 selects DefaultMaxBytes.
func NewHTTPSource(client *http.Client, url string, maxBytes int64) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        url,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPSource{
		url:      url,
		maxBytes: maxBytes,
		client:   client,
		backoff: Backoff{
			MaxRetries: 3,
			Initial:    500 * time.Millisecond,
			Max:        5 * time.Second,
		},
		circuit: cb,
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

// Open fetches the CSV. Reading past maxBytes fails with *http.MaxBytesError.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := retry(ctx, s.backoff, s.circuit, func() (*http.Response, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return http.MaxBytesReader(nil, resp.Body, s.maxBytes), nil
}

func (s *HTTPSource) fetch(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &StatusError{URL: s.url, Code: resp.StatusCode}
	}
	return resp, nil
}
