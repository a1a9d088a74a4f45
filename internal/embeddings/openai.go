package embeddings

import (
	"context"
	"fmt"
	"sort"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Compile-time interface check
var _ Embedder = (*OpenAIEmbedder)(nil)

// embeddingsAPI is the slice of the OpenAI client the embedder depends on.
// Narrow on purpose so tests can substitute a fake.
type embeddingsAPI interface {
	New(ctx context.Context, params openai.EmbeddingNewParams, opts ...option.RequestOption) (*openai.CreateEmbeddingResponse, error)
}

// OpenAIEmbedder calls OpenAI's embeddings API.
type OpenAIEmbedder struct {
	model openai.EmbeddingModel
	api   embeddingsAPI
}

// NewOpenAIEmbedder creates a new OpenAI embedder. An empty baseURL uses the
// default OpenAI endpoint; set it to point at any compatible server.
func NewOpenAIEmbedder(apiKey, baseURL string, model openai.EmbeddingModel) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = openai.EmbeddingModelTextEmbedding3Small
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	cli := openai.NewClient(opts...)
	return &OpenAIEmbedder{
		model: model,
		api:   &cli.Embeddings,
	}, nil
}

// EmbedBatch encodes all texts in one API call. No retries, no partial
// results: a provider failure fails the whole batch.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]Vector, error) {
	if len(texts) == 0 {
		return []Vector{}, nil
	}
	resp, err := e.api.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Data))
	}
	return toVectors(resp.Data)
}

// ModelName returns the embedding model identifier.
func (e *OpenAIEmbedder) ModelName() string {
	return string(e.model)
}

// toVectors converts the provider response into Vectors ordered by Index.
// The response must be rectangular: every vector the same length.
func toVectors(data []openai.Embedding) ([]Vector, error) {
	sort.Slice(data, func(i, j int) bool {
		return data[i].Index < data[j].Index
	})

	vecs := make([]Vector, len(data))
	dim := -1
	for i, d := range data {
		if dim == -1 {
			dim = len(d.Embedding)
		} else if len(d.Embedding) != dim {
			return nil, fmt.Errorf("ragged embedding response: vector %d has %d dims, expected %d", d.Index, len(d.Embedding), dim)
		}
		vec := make(Vector, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vecs[i] = vec
	}
	return vecs, nil
}
