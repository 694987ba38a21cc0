package driving

import (
	"context"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// QueryService runs the full question-answering pipeline
type QueryService interface {
	// Answer runs the pipeline and returns the complete result
	Answer(ctx context.Context, query string) (*domain.AnswerResult, error)

	// AnswerStream runs the pipeline and emits events incrementally. The
	// returned channel always ends with a done or error event and is then
	// closed. Returns domain.ErrStreamingUnsupported before any event when
	// the generation service has no incremental mode.
	AnswerStream(ctx context.Context, query string) (<-chan domain.StreamEvent, error)
}
