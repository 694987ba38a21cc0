package detect

import (
	"context"
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/custodia-labs/respona-core/internal/core/domain"
	"github.com/custodia-labs/respona-core/internal/core/ports/driven"
)

// Ensure LinguaDetector implements DetectionService
var _ driven.DetectionService = (*LinguaDetector)(nil)

// defaultLanguages covers the corpus languages. Restricting the set keeps
// detection accurate on short queries.
var defaultLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
}

// LinguaDetector implements DetectionService using statistical n-gram models.
// Detection is in-process and deterministic for a given input.
type LinguaDetector struct {
	detector      lingua.LanguageDetector
	minConfidence float64
}

// NewLinguaDetector creates a detector over the default language set.
// Classifications below minConfidence are reported as inconclusive.
func NewLinguaDetector(minConfidence float64) *LinguaDetector {
	if minConfidence <= 0 {
		minConfidence = 0.6
	}
	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(defaultLanguages...).
			Build(),
		minConfidence: minConfidence,
	}
}

// Detect returns the most likely language of text
func (d *LinguaDetector) Detect(_ context.Context, text string) (domain.DetectedLanguage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Unknown(), fmt.Errorf("%w: empty text", domain.ErrDetectionInconclusive)
	}

	values := d.detector.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 {
		return domain.Unknown(), domain.ErrDetectionInconclusive
	}

	// Values are sorted by descending confidence
	best := values[0]
	if best.Value() < d.minConfidence {
		return domain.Unknown(), fmt.Errorf("%w: best guess %s at %.2f",
			domain.ErrDetectionInconclusive, best.Language(), best.Value())
	}

	return domain.DetectedLanguage{
		Tag:        strings.ToLower(best.Language().IsoCode639_1().String()),
		Confidence: best.Value(),
	}, nil
}
