package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"wookie-books-backend/internal/config"
)

// asynqServer wraps asynq.Server with shutdown handling.
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates the task server and starts it in the
// background.
func setupAsynqServer(cfg *config.Config, handlers *handlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.registerHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				"default": 10,
				"low":     5,
			},
			Concurrency: 10,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] task failed - type: %s, error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown drains in-flight tasks before stopping.
func (s *asynqServer) Shutdown() {
	log.Println("[Worker] shutting down...")
	s.Server.Shutdown()
}
