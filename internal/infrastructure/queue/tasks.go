package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task types consumed by cmd/worker.
const (
	TypeCoverDelete = "cover:delete"
	TypeCachePurge  = "cache:purge"
)

// CoverDeletePayload asks the worker to remove a replaced cover object
// from object storage.
type CoverDeletePayload struct {
	BookID    string `json:"book_id"`
	ObjectKey string `json:"object_key"`
}

// CachePurgePayload asks the worker to drop cache entries matching
// the given patterns, e.g. after an account deletion cascaded into books.
type CachePurgePayload struct {
	Patterns []string `json:"patterns"`
}

// NewCoverDeleteTask builds a cover-deletion task.
func NewCoverDeleteTask(bookID, objectKey string) (*asynq.Task, error) {
	payload, err := json.Marshal(CoverDeletePayload{BookID: bookID, ObjectKey: objectKey})
	if err != nil {
		return nil, fmt.Errorf("marshal cover delete payload: %w", err)
	}
	return asynq.NewTask(TypeCoverDelete, payload), nil
}

// NewCachePurgeTask builds a cache-purge task.
func NewCachePurgeTask(patterns ...string) (*asynq.Task, error) {
	payload, err := json.Marshal(CachePurgePayload{Patterns: patterns})
	if err != nil {
		return nil, fmt.Errorf("marshal cache purge payload: %w", err)
	}
	return asynq.NewTask(TypeCachePurge, payload), nil
}
