package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	// Clear env to test defaults
	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"EmbeddingProvider", cfg.EmbeddingProvider, "openai"},
		{"EmbeddingModel", cfg.EmbeddingModel, "text-embedding-3-small"},
		{"MaxBatchSize", cfg.MaxBatchSize, 2048},
		{"CacheProvider", cfg.CacheProvider, "none"},
		{"RedisAddr", cfg.RedisAddr, "localhost:6379"},
		{"CacheTTL", cfg.CacheTTL, 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	// Save and restore env
	originalPort := os.Getenv("PORT")
	originalModel := os.Getenv("EMBEDDING_MODEL")
	originalBatch := os.Getenv("MAX_BATCH_SIZE")
	defer func() {
		os.Setenv("PORT", originalPort)
		os.Setenv("EMBEDDING_MODEL", originalModel)
		os.Setenv("MAX_BATCH_SIZE", originalBatch)
	}()

	os.Setenv("PORT", "9090")
	os.Setenv("EMBEDDING_MODEL", "text-embedding-3-large")
	os.Setenv("MAX_BATCH_SIZE", "0")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("expected model override, got %s", cfg.EmbeddingModel)
	}
	if cfg.MaxBatchSize != 0 {
		t.Errorf("expected batch cap disabled, got %d", cfg.MaxBatchSize)
	}
}
