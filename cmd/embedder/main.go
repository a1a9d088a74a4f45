package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"embed-api/internal/app"
	"embed-api/internal/cache"
	"embed-api/internal/embeddings"
	"embed-api/internal/httputil"
)

type embedRequest struct {
	Texts []string `json:"texts" validate:"required"`
}

type embedResponse struct {
	Embeddings []embeddings.Vector `json:"embeddings"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Get("/health", healthHandler(deps))
	r.Post("/embed", embedHandler(deps))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("embedder listening", "addr", addr, "model", deps.Embedder.ModelName())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		if err := deps.Cache.Close(); err != nil {
			deps.Log.Warn("cache close failed", "err", err)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func healthHandler(deps app.Deps) http.HandlerFunc {
	model := deps.Embedder.ModelName()

	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"model":  model,
		})
	}
}

func embedHandler(deps app.Deps) http.HandlerFunc {
	model := deps.Embedder.ModelName()
	maxBatch := deps.Config.MaxBatchSize
	cacheTTL := time.Duration(deps.Config.CacheTTL) * time.Second

	return func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}

		// Validate request: `texts` must be present, an empty list is fine
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if maxBatch > 0 && len(req.Texts) > maxBatch {
			httputil.Fail(deps.Log, w, fmt.Sprintf("too many texts (max %d)", maxBatch), nil, http.StatusBadRequest)
			return
		}
		if len(req.Texts) == 0 {
			httputil.WriteJSON(w, http.StatusOK, embedResponse{Embeddings: []embeddings.Vector{}})
			return
		}

		ctx := r.Context()

		// Check cache first; a cache error is just a miss
		cacheKey := cache.GenerateCacheKey(model, req.Texts)
		cached, err := deps.Cache.GetEmbeddings(ctx, cacheKey)
		if err != nil {
			deps.Log.Warn("cache read failed", "err", err)
		}
		if cached != nil {
			deps.Log.Info("cache hit", "texts", len(req.Texts))
			httputil.WriteJSON(w, http.StatusOK, embedResponse{Embeddings: cached.Embeddings})
			return
		}

		// One provider call for the whole batch; all-or-nothing
		vecs, err := deps.Embedder.EmbedBatch(ctx, req.Texts)
		if err != nil {
			httputil.Fail(deps.Log, w, "embedding failed", err, http.StatusInternalServerError)
			return
		}

		result := cache.EmbedResult{Model: model, Embeddings: vecs}
		if err := deps.Cache.SetEmbeddings(ctx, cacheKey, &result, cacheTTL); err != nil {
			// Log cache write failure but don't fail the request
			deps.Log.Warn("failed to cache embeddings", "err", err)
		}

		httputil.WriteJSON(w, http.StatusOK, embedResponse{Embeddings: vecs})
	}
}
