package mocks

import "fmt"

// MockIDGenerator produces predictable sequential identifiers for testing
type MockIDGenerator struct {
	next int
}

// NewMockIDGenerator creates a new MockIDGenerator
func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) NewID() string {
	m.next++
	return fmt.Sprintf("test-id-%d", m.next)
}
