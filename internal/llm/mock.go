package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one queued reply of a MockProvider.
type MockResponse struct {
	Content   json.RawMessage
	Usage     Usage
	Truncated bool
	Err       error
}

// MockProvider replays queued replies in order and records every request.
// It applies the same schema checks as the real adapters.
type MockProvider struct {
	mu       sync.Mutex
	queue    []MockResponse
	requests []Request
}

// NewMockProvider queues replies.
func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{queue: replies}
}

// Generate pops the next reply. An empty queue reads as an unavailable
// provider.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if len(m.queue) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, &Response{
		Content:   next.Content,
		Usage:     next.Usage,
		Model:     "mock",
		Truncated: next.Truncated,
	})
}

func (m *MockProvider) ModelID() string { return "mock" }

// Requests returns a copy of the requests seen so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// CallCount returns how many times Generate was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
