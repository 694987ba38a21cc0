package mocks

import (
	"context"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// MockDetectionService is a mock implementation of DetectionService for testing
type MockDetectionService struct {
	result domain.DetectedLanguage
	err    error

	DetectCalls []string
}

// NewMockDetectionService creates a new MockDetectionService
func NewMockDetectionService() *MockDetectionService {
	return &MockDetectionService{
		result: domain.DetectedLanguage{Tag: "en", Confidence: 0.99},
	}
}

func (m *MockDetectionService) Detect(ctx context.Context, text string) (domain.DetectedLanguage, error) {
	m.DetectCalls = append(m.DetectCalls, text)
	if m.err != nil {
		return domain.Unknown(), m.err
	}
	return m.result, nil
}

// Helper methods for testing

func (m *MockDetectionService) SetResult(result domain.DetectedLanguage) {
	m.result = result
}

func (m *MockDetectionService) SetError(err error) {
	m.err = err
}
