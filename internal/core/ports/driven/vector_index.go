package driven

import (
	"context"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// VectorIndex retrieves passages relevant to a query by vector similarity.
// Implementations own query embedding internally; callers pass raw text.
type VectorIndex interface {
	// Search returns up to k candidates ordered by descending relevance.
	// An empty result is not an error.
	Search(ctx context.Context, query string, k int) ([]*domain.SourceCandidate, error)

	// HealthCheck verifies the index is reachable
	HealthCheck(ctx context.Context) error
}
