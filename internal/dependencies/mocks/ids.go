package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/quintrical/internal/dependencies/ids"
)

// MockIDs replays queued identifiers, then falls back to "id-<n>"
type MockIDs struct {
	mu     sync.Mutex
	queue  []string
	issued int
}

var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// New returns the next queued identifier
func (m *MockIDs) New() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
	if len(m.queue) == 0 {
		return fmt.Sprintf("id-%d", m.issued)
	}
	id := m.queue[0]
	m.queue = m.queue[1:]
	return id
}

// Queue adds identifiers to be returned by New
func (m *MockIDs) Queue(values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, values...)
}
