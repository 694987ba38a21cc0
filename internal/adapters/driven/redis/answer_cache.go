package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/respona-core/internal/core/domain"
	"github.com/custodia-labs/respona-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AnswerCache = (*AnswerCache)(nil)

// Key prefix for cached answers
const answerPrefix = "answer:"

// AnswerCache implements driven.AnswerCache using Redis.
// Entries expire via Redis TTL; keys are hashes of the normalized query so
// trivially different spellings of the same question share an entry.
type AnswerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnswerCache creates a new Redis-backed AnswerCache
func NewAnswerCache(client *redis.Client, ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AnswerCache{client: client, ttl: ttl}
}

// Get retrieves a cached result, or domain.ErrNotFound on miss
func (c *AnswerCache) Get(ctx context.Context, query string) (*domain.AnswerResult, error) {
	data, err := c.client.Get(ctx, cacheKey(query)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached answer: %w", err)
	}

	var result domain.AnswerResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached answer: %w", err)
	}
	return &result, nil
}

// Set stores a completed result with the configured TTL
func (c *AnswerCache) Set(ctx context.Context, query string, result *domain.AnswerResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(query), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache answer: %w", err)
	}
	return nil
}

// cacheKey normalizes the query and hashes it into a fixed-size key
func cacheKey(query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return answerPrefix + hex.EncodeToString(sum[:])
}
