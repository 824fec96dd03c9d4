package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrBadStatus is returned when the source host answers with a non-2xx
// status.
var ErrBadStatus = errors.New("unexpected response status")

// ErrTooLarge is returned when the source body exceeds the configured
// byte limit.
var ErrTooLarge = errors.New("source image too large")

// Fetcher downloads source images over HTTP. Every fetch is bounded by
// the configured timeout and byte limit; retry policy belongs to callers.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// NewFetcher creates a Fetcher with the given per-request timeout and
// maximum response size.
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		client:   &http.Client{},
		timeout:  timeout,
		maxBytes: maxBytes,
	}
}

// Fetch performs a GET of url and returns the response body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrBadStatus, url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", url, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, url, f.maxBytes)
	}

	return data, nil
}
