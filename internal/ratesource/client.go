// Package ratesource fetches the daily currency document from the external
// rate provider and turns it into per-unit conversion factors.
package ratesource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
)

// maxDocumentSize bounds how much of the response body is read.
const maxDocumentSize = 5 << 20

// Source is anything that can produce the raw rate document.
// The HTTP Client is the production implementation; tests substitute a mock.
type Source interface {
	FetchDocument(ctx context.Context) ([]byte, error)
}

// Client fetches the rate document over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a Client for the given endpoint.
// A zero timeout leaves the request bounded only by the caller's context.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// FetchDocument performs a single GET against the configured endpoint.
// Transport errors and non-2xx responses are reported as ErrSourceUnreachable.
// No retries are attempted.
func (c *Client) FetchDocument(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSourceUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrSourceUnreachable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", apperrors.ErrSourceUnreachable, err)
	}

	return data, nil
}
