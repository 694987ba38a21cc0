package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/respona-core/internal/core/domain"
	"github.com/custodia-labs/respona-core/internal/core/ports/driven"
	"github.com/custodia-labs/respona-core/internal/core/ports/driving"
	"github.com/custodia-labs/respona-core/internal/prompt"
	"github.com/custodia-labs/respona-core/internal/runtime"
)

// Ensure queryService implements QueryService
var _ driving.QueryService = (*queryService)(nil)

// thinkBlock matches reasoning traces some models wrap in think tags.
// Stripped from complete answers only; streamed fragments pass through as-is.
var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// queryService implements the QueryService interface.
// It runs the pipeline: detect language, retrieve, rank, assemble, generate.
type queryService struct {
	index     driven.VectorIndex
	detector  driven.DetectionService
	pipeline  driven.SourcePipeline
	assembler *prompt.Assembler
	cache     driven.AnswerCache // optional, may be nil
	idgen     driven.IDGenerator
	services  *runtime.Services // Dynamic AI services
	logger    *slog.Logger

	topK    int
	timeout time.Duration
}

// QueryServiceConfig holds dependencies for the query service.
type QueryServiceConfig struct {
	Index     driven.VectorIndex
	Detector  driven.DetectionService
	Pipeline  driven.SourcePipeline
	Assembler *prompt.Assembler
	Cache     driven.AnswerCache
	IDGen     driven.IDGenerator
	Services  *runtime.Services
	Logger    *slog.Logger

	// TopK is the number of sources retrieved per query
	TopK int

	// Timeout bounds the whole pipeline per request
	Timeout time.Duration
}

// NewQueryService creates a new QueryService.
// The generation service is accessed dynamically via runtime.Services.
func NewQueryService(cfg QueryServiceConfig) driving.QueryService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &queryService{
		index:     cfg.Index,
		detector:  cfg.Detector,
		pipeline:  cfg.Pipeline,
		assembler: cfg.Assembler,
		cache:     cfg.Cache,
		idgen:     cfg.IDGen,
		services:  cfg.Services,
		logger:    logger,
		topK:      cfg.TopK,
		timeout:   cfg.Timeout,
	}
}

// Answer runs the pipeline and returns the complete result
func (s *queryService) Answer(ctx context.Context, query string) (*domain.AnswerResult, error) {
	q, err := s.validate(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if cached := s.cacheGet(ctx, q.Text); cached != nil {
		return cached, nil
	}

	gen := s.services.GenerationService()
	if gen == nil {
		return nil, domain.ErrServiceUnavailable
	}

	lang, sources := s.prepare(ctx, q)
	req := s.assembler.Assemble(q, lang, sources)

	answer, err := gen.Generate(ctx, req)
	if err != nil {
		return nil, s.classify(ctx, err)
	}
	answer = strings.TrimSpace(thinkBlock.ReplaceAllString(answer, ""))

	result := &domain.AnswerResult{
		Answer:  answer,
		Sources: sources,
		Metadata: domain.AnswerMetadata{
			ProcessingTime:   time.Since(q.ReceivedAt),
			Language:         req.Language.Tag,
			SourceCount:      len(sources),
			TruncatedSources: req.TruncatedSources,
			Model:            gen.Model(),
		},
	}

	s.cacheSet(ctx, q.Text, result)
	return result, nil
}

// AnswerStream runs the pipeline and emits events incrementally.
// Fails fast with ErrStreamingUnsupported before emitting anything when the
// generation service has no incremental mode; after the first event every
// failure surfaces as a terminal error event instead.
func (s *queryService) AnswerStream(ctx context.Context, query string) (<-chan domain.StreamEvent, error) {
	q, err := s.validate(query)
	if err != nil {
		return nil, err
	}

	gen := s.services.GenerationService()
	if gen == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if !gen.SupportsStreaming() {
		return nil, domain.ErrStreamingUnsupported
	}

	events := make(chan domain.StreamEvent)
	go func() {
		defer close(events)

		// The deadline bounds pipeline work only. Events are delivered over
		// the request context, so a stream whose deadline fired still gets
		// its terminal error while the client is connected.
		runCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		if !s.emit(ctx, events, domain.StartEvent(s.idgen.NewID())) {
			return
		}

		if cached := s.cacheGet(runCtx, q.Text); cached != nil {
			s.emitCached(ctx, events, cached)
			return
		}

		lang, sources := s.prepare(runCtx, q)
		if !s.emit(ctx, events, domain.SourcesEvent(sources)) {
			return
		}

		req := s.assembler.Assemble(q, lang, sources)

		fragments, err := gen.GenerateStream(runCtx, req)
		if err != nil {
			s.emit(ctx, events, domain.ErrorEvent(s.classify(runCtx, err).Error()))
			return
		}

		var answer strings.Builder
		for fragment := range fragments {
			if fragment.Err != nil {
				s.emit(ctx, events, domain.ErrorEvent(s.classify(runCtx, fragment.Err).Error()))
				return
			}
			answer.WriteString(fragment.Text)
			if !s.emit(ctx, events, domain.ContentEvent(fragment.Text)) {
				return
			}
		}
		if err := runCtx.Err(); err != nil {
			s.emit(ctx, events, domain.ErrorEvent(s.classify(runCtx, err).Error()))
			return
		}

		result := &domain.AnswerResult{
			Answer:  strings.TrimSpace(thinkBlock.ReplaceAllString(answer.String(), "")),
			Sources: sources,
			Metadata: domain.AnswerMetadata{
				ProcessingTime:   time.Since(q.ReceivedAt),
				Language:         req.Language.Tag,
				SourceCount:      len(sources),
				TruncatedSources: req.TruncatedSources,
				Model:            gen.Model(),
			},
		}
		s.cacheSet(runCtx, q.Text, result)

		if !s.emit(ctx, events, domain.MetadataEvent(&result.Metadata)) {
			return
		}
		s.emit(ctx, events, domain.DoneEvent())
	}()

	return events, nil
}

// validate rejects blank queries before any work is done
func (s *queryService) validate(query string) (*domain.Query, error) {
	text := strings.TrimSpace(query)
	if text == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	return domain.NewQuery(text), nil
}

// prepare runs the fault-tolerant stages: language detection and retrieval.
// Both degrade instead of failing the request.
func (s *queryService) prepare(ctx context.Context, q *domain.Query) (domain.DetectedLanguage, []*domain.Source) {
	lang, err := s.detector.Detect(ctx, q.Text)
	if err != nil {
		s.logger.Debug("language detection inconclusive", "error", err)
		lang = domain.Unknown()
	}

	candidates, err := s.index.Search(ctx, q.Text, s.topK)
	if err != nil {
		s.logger.Warn("retrieval failed, answering without sources", "error", err)
		candidates = nil
	}

	return lang, s.pipeline.Process(candidates)
}

// classify maps low-level failures onto the domain error taxonomy
func (s *queryService) classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w after %s", domain.ErrTimeout, s.timeout)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, domain.ErrGenerationFailed):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
}

// emit delivers one event unless the consumer is gone. ctx is the request
// context, not the pipeline deadline: delivery only stops when the client
// disconnects. Returns false when ctx was cancelled before delivery.
func (s *queryService) emit(ctx context.Context, events chan<- domain.StreamEvent, e domain.StreamEvent) bool {
	select {
	case events <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

// emitCached replays a cached result as a complete event sequence
func (s *queryService) emitCached(ctx context.Context, events chan<- domain.StreamEvent, cached *domain.AnswerResult) {
	if !s.emit(ctx, events, domain.SourcesEvent(cached.Sources)) {
		return
	}
	if !s.emit(ctx, events, domain.ContentEvent(cached.Answer)) {
		return
	}
	md := cached.Metadata
	if !s.emit(ctx, events, domain.MetadataEvent(&md)) {
		return
	}
	s.emit(ctx, events, domain.DoneEvent())
}

// cacheGet returns a cached result marked as such, or nil
func (s *queryService) cacheGet(ctx context.Context, query string) *domain.AnswerResult {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, query)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("answer cache read failed", "error", err)
		}
		return nil
	}
	cached.Metadata.Cached = true
	return cached
}

// cacheSet stores a completed result; failures are logged, never surfaced
func (s *queryService) cacheSet(ctx context.Context, query string, result *domain.AnswerResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, query, result); err != nil {
		s.logger.Warn("answer cache write failed", "error", err)
	}
}
