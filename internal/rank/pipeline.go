package rank

import (
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/respona-core/internal/core/domain"
	"github.com/custodia-labs/respona-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SourcePipeline = (*Pipeline)(nil)

// Pipeline implements SourcePipeline.
// It chains source processors in Order() sequence over the retrieval output.
type Pipeline struct {
	mu         sync.RWMutex
	processors []driven.SourceProcessor
	sorted     bool
}

// NewPipeline creates a new source pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		processors: make([]driven.SourceProcessor, 0),
	}
}

// Add adds a processor to the pipeline.
// Processors are sorted by Order() before processing.
func (p *Pipeline) Add(processor driven.SourceProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processors = append(p.processors, processor)
	p.sorted = false
}

// Process converts candidates to sources and applies all processors in order.
func (p *Pipeline) Process(candidates []*domain.SourceCandidate) []*domain.Source {
	p.mu.Lock()
	if !p.sorted {
		sort.SliceStable(p.processors, func(i, j int) bool {
			return p.processors[i].Order() < p.processors[j].Order()
		})
		p.sorted = true
	}
	p.mu.Unlock()

	p.mu.RLock()
	processors := make([]driven.SourceProcessor, len(p.processors))
	copy(processors, p.processors)
	p.mu.RUnlock()

	sources := make([]*domain.Source, 0, len(candidates))
	for _, c := range candidates {
		sources = append(sources, c.ToSource())
	}

	for _, proc := range processors {
		sources = proc.Process(sources)
	}

	return sources
}

// List returns processor names in order.
func (p *Pipeline) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, len(p.processors))
	for i, proc := range p.processors {
		names[i] = proc.Name()
	}
	return names
}

// DefaultPipeline creates a pipeline with the default processors.
func DefaultPipeline() *Pipeline {
	p := NewPipeline()
	p.Add(NewScoreSorter())
	p.Add(NewHeadingDeduplicator())
	return p
}

// ScoreSorter orders sources by descending retrieval score.
// The sort is stable so equal-score sources keep retrieval order.
type ScoreSorter struct{}

// Verify interface compliance
var _ driven.SourceProcessor = (*ScoreSorter)(nil)

// NewScoreSorter creates a new score sorter.
func NewScoreSorter() *ScoreSorter {
	return &ScoreSorter{}
}

// Process sorts sources by score, highest first.
func (s *ScoreSorter) Process(sources []*domain.Source) []*domain.Source {
	result := make([]*domain.Source, len(sources))
	copy(result, sources)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}

// Name returns the processor name.
func (s *ScoreSorter) Name() string {
	return "score-sorter"
}

// Order returns 0 - sorting runs before deduplication so the highest-scored
// occurrence of each heading survives.
func (s *ScoreSorter) Order() int {
	return 0
}

// HeadingDeduplicator collapses sources sharing a heading, keeping the first
// occurrence. Headings compare case-insensitively after trimming whitespace;
// two sources with the same heading collapse even when their URLs differ,
// and the same URL under different headings stays distinct.
type HeadingDeduplicator struct{}

// Verify interface compliance
var _ driven.SourceProcessor = (*HeadingDeduplicator)(nil)

// NewHeadingDeduplicator creates a new heading deduplicator.
func NewHeadingDeduplicator() *HeadingDeduplicator {
	return &HeadingDeduplicator{}
}

// Process removes sources whose heading was already seen.
func (d *HeadingDeduplicator) Process(sources []*domain.Source) []*domain.Source {
	if len(sources) <= 1 {
		return sources
	}

	seen := make(map[string]bool, len(sources))
	result := make([]*domain.Source, 0, len(sources))

	for _, src := range sources {
		key := strings.ToLower(strings.TrimSpace(src.Heading))
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, src)
	}

	return result
}

// Name returns the processor name.
func (d *HeadingDeduplicator) Name() string {
	return "heading-deduplicator"
}

// Order returns 10 - deduplication runs after sorting.
func (d *HeadingDeduplicator) Order() int {
	return 10
}
