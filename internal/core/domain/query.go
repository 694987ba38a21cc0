package domain

import "time"

// Language tags use ISO 639-1 codes. "und" (undetermined) marks queries the
// detector could not classify; the pipeline continues with the default
// language instead of failing.
const (
	LanguageUnknown = "und"
	LanguageDefault = "en"
)

// Query is a single natural-language question against the corpus.
// Immutable once created; owned by the orchestrator for the duration of one
// request and discarded afterwards.
type Query struct {
	Text       string
	ReceivedAt time.Time
}

// NewQuery creates a Query stamped with the current time
func NewQuery(text string) *Query {
	return &Query{
		Text:       text,
		ReceivedAt: time.Now(),
	}
}

// DetectedLanguage is the classification result for a query's language
type DetectedLanguage struct {
	Tag        string  `json:"tag"`
	Confidence float64 `json:"confidence"`
}

// Unknown returns the sentinel value used when detection is inconclusive
func Unknown() DetectedLanguage {
	return DetectedLanguage{Tag: LanguageUnknown}
}

// Known reports whether the detector produced a usable classification
func (l DetectedLanguage) Known() bool {
	return l.Tag != "" && l.Tag != LanguageUnknown
}

// GenerationRequest is the assembled prompt context handed to the generation
// capability. Created once per request by the prompt assembler and consumed
// exactly once.
type GenerationRequest struct {
	Prompt    string
	QueryText string
	Language  DetectedLanguage
	Sources   []*Source

	// TruncatedSources counts the lowest-ranked sources dropped to fit the
	// context budget. Exposed so truncation is observable in tests and logs.
	TruncatedSources int
}

// AnswerMetadata accompanies every completed answer. Sources evicted from
// the prompt by the context budget are still cited, so TruncatedSources
// tells clients how many of them the model never saw.
type AnswerMetadata struct {
	ProcessingTime   time.Duration `json:"processing_time" swaggertype:"integer" example:"1500000"`
	Language         string        `json:"language" example:"en"`
	SourceCount      int           `json:"source_count" example:"3"`
	TruncatedSources int           `json:"truncated_sources,omitempty"`
	Model            string        `json:"model,omitempty" example:"qwen3:4b"`
	Cached           bool          `json:"cached,omitempty"`
}

// AnswerResult is the outcome of a non-streaming query
type AnswerResult struct {
	Answer   string         `json:"answer"`
	Sources  []*Source      `json:"sources"`
	Metadata AnswerMetadata `json:"metadata"`
}
