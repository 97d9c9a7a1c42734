package testutil

import (
	"context"
	"sync"
	"sync/atomic"
)

// MockRateSource is a ratesource.Source that serves a fixed body or error
// instead of calling the provider.
type MockRateSource struct {
	mu   sync.Mutex
	body []byte
	err  error

	// fetches counts FetchDocument calls, including failed ones
	fetches atomic.Int32
}

// NewMockRateSource creates a mock serving a complete primary-tab document.
func NewMockRateSource() *MockRateSource {
	return &MockRateSource{body: RateDocument(DefaultQuotes())}
}

// FetchDocument returns the configured body, or the configured error.
func (m *MockRateSource) FetchDocument(ctx context.Context) ([]byte, error) {
	m.fetches.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]byte(nil), m.body...), nil
}

// WithBody configures the mock to serve body and clears any error.
func (m *MockRateSource) WithBody(body []byte) *MockRateSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.body = body
	m.err = nil
	return m
}

// WithError configures the mock to fail every fetch with err.
func (m *MockRateSource) WithError(err error) *MockRateSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// FetchCount returns how many times FetchDocument was called.
func (m *MockRateSource) FetchCount() int {
	return int(m.fetches.Load())
}
