package mocks

import (
	"context"
	"sync"
	"time"
)

// MockRunLock is a mock implementation of RunLock for testing
type MockRunLock struct {
	mu       sync.Mutex
	held     map[string]bool
	Acquires int
	Releases int
}

// NewMockRunLock creates a new MockRunLock
func NewMockRunLock() *MockRunLock {
	return &MockRunLock{held: make(map[string]bool)}
}

func (m *MockRunLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Acquires++
	if m.held[name] {
		return false, nil
	}
	m.held[name] = true
	return true, nil
}

func (m *MockRunLock) Release(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Releases++
	delete(m.held, name)
	return nil
}

func (m *MockRunLock) Ping(ctx context.Context) error {
	return nil
}

// Held reports whether name is currently locked
func (m *MockRunLock) Held(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held[name]
}
