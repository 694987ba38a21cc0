package driven

import (
	"context"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// AnswerCache stores completed answers keyed by normalized query text.
// Single-turn only: entries carry no conversation state.
type AnswerCache interface {
	// Get returns the cached result for query, or domain.ErrNotFound on miss
	Get(ctx context.Context, query string) (*domain.AnswerResult, error)

	// Set stores a completed result for query
	Set(ctx context.Context, query string, result *domain.AnswerResult) error
}
