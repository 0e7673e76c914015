package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// TransportCall records one request seen by the mock
type TransportCall struct {
	Method string
	Path   string
	Body   any
}

// MockTransport is a scripted Transport for testing. Responses are registered
// per (method, path); every call is recorded so tests can assert call counts.
type MockTransport struct {
	mu       sync.Mutex
	handlers map[string]func(body, out any) error
	calls    []TransportCall
}

// NewMockTransport creates a new MockTransport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		handlers: make(map[string]func(body, out any) error),
	}
}

// Handle registers a handler for method and path
func (m *MockTransport) Handle(method, path string, fn func(body, out any) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method+" "+path] = fn
}

// Respond registers a fixed JSON payload for method and path
func (m *MockTransport) Respond(method, path string, payload any) {
	m.Handle(method, path, func(_, out any) error {
		if out == nil {
			return nil
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, out)
	})
}

// Fail registers an error for method and path
func (m *MockTransport) Fail(method, path string, err error) {
	m.Handle(method, path, func(_, _ any) error {
		return err
	})
}

func (m *MockTransport) Do(ctx context.Context, method, path string, body, out any) error {
	m.mu.Lock()
	m.calls = append(m.calls, TransportCall{Method: method, Path: path, Body: body})
	fn, ok := m.handlers[method+" "+path]
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("mock transport: no handler for %s %s", method, path)
	}
	return fn(body, out)
}

// Calls returns a copy of all recorded calls
func (m *MockTransport) Calls() []TransportCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]TransportCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns how many calls matched method and path
func (m *MockTransport) CallCount(method, path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// TotalCalls returns the number of calls seen
func (m *MockTransport) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
