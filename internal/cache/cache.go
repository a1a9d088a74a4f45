package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"embed-api/internal/embeddings"
)

// Cache stores embedding results at the request level: one entry per exact
// batch of texts, never per text, so a miss still sends the whole batch to
// the provider in a single call.
type Cache interface {
	// GetEmbeddings retrieves a cached result by key.
	// Returns nil if not found
	GetEmbeddings(ctx context.Context, key string) (*EmbedResult, error)

	// SetEmbeddings stores a result with TTL
	SetEmbeddings(ctx context.Context, key string, result *EmbedResult, ttl time.Duration) error

	// Close closes the cache connection
	Close() error
}

// EmbedResult is a cached embed response.
type EmbedResult struct {
	Model      string              `json:"model"`
	Embeddings []embeddings.Vector `json:"embeddings"`
}

// GenerateCacheKey derives a deterministic key from the model and the exact
// text batch. Order matters: a reordered batch is a different request.
func GenerateCacheKey(model string, texts []string) string {
	h := sha256.New()
	h.Write([]byte(model))
	for _, t := range texts {
		h.Write([]byte{0})
		h.Write([]byte(t))
	}
	return hex.EncodeToString(h.Sum(nil))
}
