package queue

import (
	"context"

	"github.com/hibiken/asynq"

	"wookie-books-backend/pkg/logger"
)

// Enqueuer is what services see. Enqueueing is best effort: a broken
// queue must never fail the request that triggered the task.
type Enqueuer interface {
	EnqueueCoverDelete(ctx context.Context, bookID, objectKey string)
	EnqueueCachePurge(ctx context.Context, patterns ...string)
}

// Client wraps the asynq client.
type Client struct {
	client *asynq.Client
}

// NewClient creates the asynq producer.
func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

var _ Enqueuer = (*Client)(nil)

func (c *Client) EnqueueCoverDelete(ctx context.Context, bookID, objectKey string) {
	task, err := NewCoverDeleteTask(bookID, objectKey)
	if err != nil {
		logger.Error("build cover delete task", err)
		return
	}
	c.enqueue(ctx, task)
}

func (c *Client) EnqueueCachePurge(ctx context.Context, patterns ...string) {
	task, err := NewCachePurgeTask(patterns...)
	if err != nil {
		logger.Error("build cache purge task", err)
		return
	}
	c.enqueue(ctx, task)
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task) {
	info, err := c.client.EnqueueContext(ctx, task, asynq.Queue("low"))
	if err != nil {
		logger.Error("enqueue task "+task.Type(), err)
		return
	}
	logger.Debug("enqueued task " + task.Type() + " id=" + info.ID)
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// NopEnqueuer drops every task. Used when the queue is disabled and in tests.
type NopEnqueuer struct{}

func (NopEnqueuer) EnqueueCoverDelete(context.Context, string, string) {}
func (NopEnqueuer) EnqueueCachePurge(context.Context, ...string)       {}
