package driven

import (
	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// SourceProcessor transforms the retrieved source list in the ranking stage.
// Processors are pure: they never mutate input elements, only reorder or drop.
type SourceProcessor interface {
	// Process transforms the source list
	Process(sources []*domain.Source) []*domain.Source

	// Name returns a unique identifier for this processor
	Name() string

	// Order determines processing sequence (lower = earlier)
	Order() int
}

// SourcePipeline chains source processors to turn raw retrieval candidates
// into the deduplicated, ordered citation list
type SourcePipeline interface {
	// Process runs all processors over the candidates
	Process(candidates []*domain.SourceCandidate) []*domain.Source

	// List returns processor names in registration order
	List() []string
}
