package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"embed-api/internal/cache"
	"embed-api/internal/config"
	"embed-api/internal/embeddings"
	"embed-api/internal/logger"
	"embed-api/internal/retry"
)

// Deps bundles common runtime dependencies for the service. The embedder is
// constructed once here and shared read-only by every handler.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Embedder embeddings.Embedder
	Cache    cache.Cache
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	embedder, err := buildEmbedder(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize embedder: %w", err)
	}
	return Deps{
		Config:   cfg,
		Log:      log,
		Embedder: embedder,
		Cache:    buildCache(cfg, log),
	}, nil
}

func buildEmbedder(cfg config.Config, log *slog.Logger) (embeddings.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when EMBEDDING_PROVIDER=openai")
		}
		embedder, err := embeddings.NewOpenAIEmbedder(cfg.OpenAIKey, cfg.OpenAIBaseURL, openai.EmbeddingModel(cfg.EmbeddingModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI embedder: %w", err)
		}
		log.Info("using OpenAI embedder", "model", cfg.EmbeddingModel)
		return embedder, nil
	default:
		return nil, fmt.Errorf("invalid EMBEDDING_PROVIDER: %s (valid option: openai)", cfg.EmbeddingProvider)
	}
}

// buildCache never fails the boot: an unreachable Redis degrades to the no-op
// cache so the service can still serve requests.
func buildCache(cfg config.Config, log *slog.Logger) cache.Cache {
	switch cfg.CacheProvider {
	case "redis":
		var c cache.Cache
		err := retry.Do(context.Background(), 3, 500*time.Millisecond, func() error {
			rc, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
			if err != nil {
				return err
			}
			c = rc
			return nil
		})
		if err != nil {
			log.Warn("redis unavailable, caching disabled", "addr", cfg.RedisAddr, "err", err)
			return cache.NewNoOpCache()
		}
		log.Info("using redis cache", "addr", cfg.RedisAddr)
		return c
	default:
		return cache.NewNoOpCache()
	}
}
