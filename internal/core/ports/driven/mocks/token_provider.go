package mocks

import (
	"context"
	"sync"
)

// MockTokenProvider is a mock implementation of TokenProvider for testing
type MockTokenProvider struct {
	mu    sync.Mutex
	token string
	err   error
	calls int
}

// NewMockTokenProvider creates a provider that always returns token
func NewMockTokenProvider(token string) *MockTokenProvider {
	return &MockTokenProvider{token: token}
}

// SetError makes subsequent GetAccessToken calls fail with err
func (m *MockTokenProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockTokenProvider) GetAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func (m *MockTokenProvider) IsValid(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err == nil
}

// Calls returns how many times GetAccessToken was invoked
func (m *MockTokenProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
