package container

import (
	"context"
	"fmt"
	"time"

	"wookie-books-backend/internal/config"
	infraCache "wookie-books-backend/internal/infrastructure/cache"
	"wookie-books-backend/internal/infrastructure/database"
	"wookie-books-backend/internal/infrastructure/queue"
	"wookie-books-backend/internal/infrastructure/storage"
	"wookie-books-backend/pkg/cache"
	"wookie-books-backend/pkg/jwt"
	"wookie-books-backend/pkg/logger"

	"wookie-books-backend/internal/domains/book"
	bookHandler "wookie-books-backend/internal/domains/book/handler"
	bookRepo "wookie-books-backend/internal/domains/book/repository"
	bookService "wookie-books-backend/internal/domains/book/service"
	"wookie-books-backend/internal/domains/user"
	userHandler "wookie-books-backend/internal/domains/user/handler"
	userRepo "wookie-books-backend/internal/domains/user/repository"
	userService "wookie-books-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton wired at startup; construction order is config → infra →
// repositories → services → handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Queue      *queue.Client
	Storage    storage.ObjectStorage

	// Repositories
	UserRepo user.Repository
	BookRepo book.Repository

	// Services
	UserService user.Service
	BookService book.Service

	// Handlers
	UserHandler *userHandler.UserHandler
	BookHandler *bookHandler.BookHandler

	redisCache *infraCache.RedisCache
}

// NewContainer builds and initializes the whole dependency graph.
func NewContainer() (*Container, error) {
	c := &Container{}

	// Config first; everything depends on it.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)

	// Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// Cache. A dead Redis is degraded service, not a startup failure.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		logger.Warn("redis connection failed (non-critical)", map[string]interface{}{"error": err.Error()})
	}
	c.redisCache = redisCache
	c.Cache = redisCache

	// Token manager
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// Task queue producer
	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	// Object storage
	objectStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = objectStorage

	// Repositories
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool, c.Cache)

	// Services
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Queue)
	c.BookService = bookService.NewBookService(c.BookRepo, c.UserRepo, c.Storage, c.Queue)

	// Handlers
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)

	return c, nil
}

// Cleanup releases every owned resource. Safe to call on a partially
// built container.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("close queue client", err)
		}
	}
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			logger.Error("close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
