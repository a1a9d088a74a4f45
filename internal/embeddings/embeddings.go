package embeddings

import "context"

// Vector is a simple float32 slice wrapper.
type Vector []float32

// Embedder defines the embedding interface. Implementations encode the whole
// batch in a single provider call and preserve input order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([]Vector, error)
	ModelName() string
}
