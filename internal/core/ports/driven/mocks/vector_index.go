package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// MockVectorIndex is a mock implementation of VectorIndex for testing
type MockVectorIndex struct {
	mu         sync.Mutex
	candidates []*domain.SourceCandidate
	searchErr  error
	healthErr  error

	// Call tracking
	SearchCalls []string
	LastK       int
}

// NewMockVectorIndex creates a new MockVectorIndex
func NewMockVectorIndex() *MockVectorIndex {
	return &MockVectorIndex{}
}

func (m *MockVectorIndex) Search(ctx context.Context, query string, k int) ([]*domain.SourceCandidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SearchCalls = append(m.SearchCalls, query)
	m.LastK = k

	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if len(m.candidates) > k {
		return m.candidates[:k], nil
	}
	return m.candidates, nil
}

func (m *MockVectorIndex) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthErr
}

// Helper methods for testing

func (m *MockVectorIndex) SetCandidates(candidates []*domain.SourceCandidate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidates = candidates
}

func (m *MockVectorIndex) SetSearchError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchErr = err
}

func (m *MockVectorIndex) SetHealthError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthErr = err
}
