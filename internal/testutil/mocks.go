package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/lingopal/internal/ai"
)

// MockBackend is a scripted ai.Backend for testing. Responses are
// consumed in order; once exhausted, Generate returns the last response
// again. Every request is recorded for inspection.
type MockBackend struct {
	mu        sync.Mutex
	Responses []string
	Errs      []error
	Requests  []ai.Request

	Vision      bool
	Unavailable error
}

// NewMockBackend creates a backend that answers every request with the
// given responses in order.
func NewMockBackend(responses ...string) *MockBackend {
	return &MockBackend{Responses: responses, Vision: true}
}

// FailingBackend creates a backend whose Generate always fails
func FailingBackend(err error) *MockBackend {
	return &MockBackend{Errs: []error{err}, Vision: true}
}

// Generate records the request and returns the next scripted response
func (m *MockBackend) Generate(_ context.Context, req ai.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := len(m.Requests)
	m.Requests = append(m.Requests, req)

	if len(m.Errs) > 0 {
		i := call
		if i >= len(m.Errs) {
			i = len(m.Errs) - 1
		}
		if err := m.Errs[i]; err != nil {
			return "", err
		}
	}
	if len(m.Responses) == 0 {
		return "", fmt.Errorf("no scripted response for request %d", call)
	}
	i := call
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	return m.Responses[i], nil
}

// Name returns the backend name
func (m *MockBackend) Name() string { return "mock" }

// IsAvailable reports the scripted availability error, if any
func (m *MockBackend) IsAvailable() error { return m.Unavailable }

// SupportsVision reports whether the mock accepts binary parts
func (m *MockBackend) SupportsVision() bool { return m.Vision }

// CallCount returns how many requests Generate has seen
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// LastRequest returns the most recent request, or a zero request when
// Generate was never called.
func (m *MockBackend) LastRequest() ai.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return ai.Request{}
	}
	return m.Requests[len(m.Requests)-1]
}
