package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// MockAnswerCache is an in-memory mock of AnswerCache for testing
type MockAnswerCache struct {
	mu      sync.Mutex
	entries map[string]*domain.AnswerResult
	getErr  error
	setErr  error

	GetCalls int
	SetCalls int
}

// NewMockAnswerCache creates a new MockAnswerCache
func NewMockAnswerCache() *MockAnswerCache {
	return &MockAnswerCache{
		entries: make(map[string]*domain.AnswerResult),
	}
}

func (m *MockAnswerCache) Get(ctx context.Context, query string) (*domain.AnswerResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	result, ok := m.entries[query]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return result, nil
}

func (m *MockAnswerCache) Set(ctx context.Context, query string, result *domain.AnswerResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[query] = result
	return nil
}

// Helper methods for testing

func (m *MockAnswerCache) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

func (m *MockAnswerCache) SetSetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}
