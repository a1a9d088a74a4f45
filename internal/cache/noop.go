package cache

import (
	"context"
	"time"
)

// NoOpCache is a cache implementation that does nothing.
// Used as a fallback when Redis is unavailable or caching is disabled - all
// operations succeed but no actual caching occurs (always cache miss).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// GetEmbeddings always returns nil (cache miss)
func (c *NoOpCache) GetEmbeddings(ctx context.Context, key string) (*EmbedResult, error) {
	return nil, nil
}

// SetEmbeddings does nothing and always succeeds
func (c *NoOpCache) SetEmbeddings(ctx context.Context, key string, result *EmbedResult, ttl time.Duration) error {
	return nil
}

// Close does nothing and always succeeds
func (c *NoOpCache) Close() error {
	return nil
}
