package driven

import (
	"context"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// Fragment is one incremental piece of a streamed generation. A non-nil Err
// terminates the stream; no further fragments follow it.
type Fragment struct {
	Text string
	Err  error
}

// GenerationService produces natural-language answers from assembled prompts
type GenerationService interface {
	// Generate produces the complete answer in one call
	Generate(ctx context.Context, req *domain.GenerationRequest) (string, error)

	// GenerateStream produces the answer incrementally. The returned channel
	// is closed after the final fragment. Cancelling ctx releases the
	// underlying generation session.
	GenerateStream(ctx context.Context, req *domain.GenerationRequest) (<-chan Fragment, error)

	// SupportsStreaming reports whether GenerateStream is usable
	SupportsStreaming() bool

	// Model returns the model name being used
	Model() string

	// Ping verifies the generation service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the generation service
	Close() error
}
