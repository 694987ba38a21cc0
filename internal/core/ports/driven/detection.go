package driven

import (
	"context"

	"github.com/custodia-labs/respona-core/internal/core/domain"
)

// DetectionService classifies the language of a query
type DetectionService interface {
	// Detect returns the most likely language of text. When no language
	// reaches the configured confidence floor it returns domain.Unknown()
	// together with domain.ErrDetectionInconclusive.
	Detect(ctx context.Context, text string) (domain.DetectedLanguage, error)
}
