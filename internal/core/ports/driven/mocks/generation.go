package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/respona-core/internal/core/domain"
	"github.com/custodia-labs/respona-core/internal/core/ports/driven"
)

// MockGenerationService is a mock implementation of GenerationService for
// testing. By default it answers immediately; tests can make it stream
// configured fragments, fail partway, or block until the context is
// cancelled.
type MockGenerationService struct {
	mu sync.Mutex

	answer    string
	fragments []string
	model     string

	generateErr  error
	streamErr    error
	failAfter    int  // emit this many fragments, then fail (-1 = never)
	noStreaming  bool
	blockOnCtx   bool // if set, Generate and GenerateStream block until ctx is done
	released     bool // set when a blocked or streaming call observed ctx cancellation
	GenerateReqs []*domain.GenerationRequest
}

// NewMockGenerationService creates a new MockGenerationService
func NewMockGenerationService() *MockGenerationService {
	return &MockGenerationService{
		answer:    "mock answer",
		fragments: []string{"mock ", "answer"},
		model:     "mock-generation-model",
		failAfter: -1,
	}
}

func (m *MockGenerationService) Generate(ctx context.Context, req *domain.GenerationRequest) (string, error) {
	m.mu.Lock()
	m.GenerateReqs = append(m.GenerateReqs, req)
	blockOnCtx := m.blockOnCtx
	answer := m.answer
	err := m.generateErr
	m.mu.Unlock()

	if blockOnCtx {
		<-ctx.Done()
		m.setReleased()
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	return answer, nil
}

func (m *MockGenerationService) GenerateStream(ctx context.Context, req *domain.GenerationRequest) (<-chan driven.Fragment, error) {
	m.mu.Lock()
	m.GenerateReqs = append(m.GenerateReqs, req)
	noStreaming := m.noStreaming
	streamErr := m.streamErr
	fragments := m.fragments
	failAfter := m.failAfter
	blockOnCtx := m.blockOnCtx
	m.mu.Unlock()

	if noStreaming {
		return nil, domain.ErrStreamingUnsupported
	}
	if streamErr != nil {
		return nil, streamErr
	}

	out := make(chan driven.Fragment)
	go func() {
		defer close(out)
		if blockOnCtx {
			<-ctx.Done()
			m.setReleased()
			return
		}
		for i, f := range fragments {
			if failAfter >= 0 && i == failAfter {
				select {
				case out <- driven.Fragment{Err: domain.ErrGenerationFailed}:
				case <-ctx.Done():
					m.setReleased()
				}
				return
			}
			select {
			case out <- driven.Fragment{Text: f}:
			case <-ctx.Done():
				m.setReleased()
				return
			}
		}
	}()
	return out, nil
}

func (m *MockGenerationService) SupportsStreaming() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.noStreaming
}

func (m *MockGenerationService) Model() string {
	return m.model
}

func (m *MockGenerationService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockGenerationService) Close() error {
	return nil
}

func (m *MockGenerationService) setReleased() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released = true
}

// Helper methods for testing

func (m *MockGenerationService) SetAnswer(answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answer = answer
}

func (m *MockGenerationService) SetFragments(fragments []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fragments = fragments
}

func (m *MockGenerationService) SetGenerateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generateErr = err
}

func (m *MockGenerationService) SetStreamError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streamErr = err
}

// SetFailAfter makes the stream emit n fragments, then a failed one
func (m *MockGenerationService) SetFailAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAfter = n
}

func (m *MockGenerationService) SetNoStreaming(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noStreaming = v
}

// SetBlockOnContext makes Generate and GenerateStream hang until the
// context is cancelled
func (m *MockGenerationService) SetBlockOnContext(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blockOnCtx = v
}

// Released reports whether a blocked or streaming call observed cancellation
func (m *MockGenerationService) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}
