package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the request body or query is malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrDetectionInconclusive indicates the language detector could not
	// classify the query. Non-fatal: the pipeline degrades to the default
	// language.
	ErrDetectionInconclusive = errors.New("language detection inconclusive")

	// ErrRetrievalUnavailable indicates the vector index could not be
	// reached. Non-fatal: the pipeline continues with no sources.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")

	// ErrGenerationFailed indicates the generation capability failed.
	// Fatal to the current request; no automatic retry.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrTimeout indicates the request exceeded its pipeline deadline
	ErrTimeout = errors.New("request timed out")

	// ErrStreamingUnsupported indicates the configured generation service
	// has no incremental mode. Callers should retry non-streaming.
	ErrStreamingUnsupported = errors.New("streaming not supported")

	// ErrServiceUnavailable indicates a required AI service is not configured
	ErrServiceUnavailable = errors.New("service unavailable")
)
