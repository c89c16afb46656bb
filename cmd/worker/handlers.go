package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"wookie-books-backend/internal/infrastructure/queue"
	"wookie-books-backend/internal/infrastructure/storage"
	"wookie-books-backend/pkg/cache"
	"wookie-books-backend/pkg/container"
)

// handlerRegistry owns the task handlers and their dependencies.
type handlerRegistry struct {
	cache   cache.Cache
	storage storage.ObjectStorage
}

func newHandlerRegistry(c *container.Container) *handlerRegistry {
	return &handlerRegistry{
		cache:   c.Cache,
		storage: c.Storage,
	}
}

func (r *handlerRegistry) registerHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeCoverDelete, r.handleCoverDelete)
	mux.HandleFunc(queue.TypeCachePurge, r.handleCachePurge)
}

// handleCoverDelete removes a replaced cover object from storage.
func (r *handlerRegistry) handleCoverDelete(ctx context.Context, task *asynq.Task) error {
	var payload queue.CoverDeletePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("book_id", payload.BookID).
		Str("object_key", payload.ObjectKey).
		Msg("Deleting replaced cover object")

	if err := r.storage.Delete(ctx, payload.ObjectKey); err != nil {
		return fmt.Errorf("delete cover object: %w", err)
	}

	return nil
}

// handleCachePurge drops cache entries matching the given patterns.
func (r *handlerRegistry) handleCachePurge(ctx context.Context, task *asynq.Task) error {
	var payload queue.CachePurgePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	for _, pattern := range payload.Patterns {
		if err := r.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("purge cache pattern %s: %w", pattern, err)
		}
	}

	log.Info().
		Strs("patterns", payload.Patterns).
		Msg("Cache purged")

	return nil
}
