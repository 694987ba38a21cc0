package domain

import "sync"

// RuntimeConfig tracks which capabilities are available at runtime.
// Determined at startup and updated when AI services change.
// Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	CacheBackend string // "redis" or "none"

	// Dynamic capability flags
	embeddingAvailable  bool
	generationAvailable bool
	streamingAvailable  bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(cacheBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		CacheBackend: cacheBackend,
	}
}

// EmbeddingAvailable returns whether an embedding service is available
func (c *RuntimeConfig) EmbeddingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable
}

// GenerationAvailable returns whether a generation service is available
func (c *RuntimeConfig) GenerationAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generationAvailable
}

// StreamingAvailable returns whether the generation service supports
// incremental output
func (c *RuntimeConfig) StreamingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.streamingAvailable
}

// SetEmbeddingAvailable updates the embedding availability flag
func (c *RuntimeConfig) SetEmbeddingAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddingAvailable = available
}

// SetGenerationAvailable updates the generation availability flags
func (c *RuntimeConfig) SetGenerationAvailable(available, streaming bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generationAvailable = available
	c.streamingAvailable = available && streaming
}

// CanAnswer returns true if grounded answering is possible at all
func (c *RuntimeConfig) CanAnswer() bool {
	return c.GenerationAvailable()
}
