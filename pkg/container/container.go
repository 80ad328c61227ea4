package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/config"
	bookHandler "bookstore-catalog/internal/domains/book/handler"
	bookRepo "bookstore-catalog/internal/domains/book/repository"
	bookService "bookstore-catalog/internal/domains/book/service"
	infraCache "bookstore-catalog/internal/infrastructure/cache"
	"bookstore-catalog/internal/infrastructure/database"
	"bookstore-catalog/internal/infrastructure/queue"
	"bookstore-catalog/internal/infrastructure/storage"
	"bookstore-catalog/internal/shared/middleware"
	"bookstore-catalog/pkg/cache"
	"bookstore-catalog/pkg/logger"
)

const connectTimeout = 30 * time.Second

// Container holds every dependency of the application.
// Built once at startup by cmd/api and cmd/worker.
type Container struct {
	// ========================================
	// INFRASTRUCTURE
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB  // nil with the memory driver
	Cache       cache.Cache           // nil when caching is disabled
	Storage     *storage.MinIOStorage // nil when MINIO_ENDPOINT is empty
	Images      *storage.ImageProcessor
	AsynqClient *asynq.Client // nil when jobs are disabled
	Tasks       queue.TaskEnqueuer

	// ========================================
	// REPOSITORY
	// ========================================
	BookRepo bookRepo.BookRepository

	// ========================================
	// SERVICE
	// ========================================
	BookService  bookService.BookService
	CoverService bookService.CoverService // nil without object storage

	// ========================================
	// HANDLER
	// ========================================
	BookHandler *bookHandler.Handler
	RateLimiter *middleware.RateLimiter
}

// NewContainer loads config from the environment and builds the container.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	return New(ctx, cfg)
}

// New builds the container from an already loaded config.
// On error every resource opened so far is released.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		Images: storage.NewImageProcessor(),
	}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"database", c.initDatabase},
		{"cache", c.initCache},
		{"object storage", c.initStorage},
		{"task queue", c.initQueue},
		{"repositories", c.initRepositories},
		{"services", c.initServices},
		{"handlers", c.initHandlers},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			c.Cleanup()
			return nil, fmt.Errorf("failed to init %s: %w", step.name, err)
		}
	}

	log.Info().
		Str("storage_driver", cfg.Storage.Driver).
		Bool("cache", c.Cache != nil).
		Bool("covers", c.CoverService != nil).
		Bool("jobs", c.AsynqClient != nil).
		Msg("DI container initialized")

	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase(ctx context.Context) error {
	if c.Config.Storage.Driver != config.StorageDriverPostgres {
		return nil
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	log.Info().Str("host", dbConfig.Host).Str("db", dbConfig.DBName).Msg("Database connected")
	return nil
}

// initCache connects Redis. A failed connection is not fatal: the catalog
// keeps serving straight from the repository.
func (c *Container) initCache(ctx context.Context) error {
	if !c.Config.Cache.Enabled {
		return nil
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), caching disabled")
		_ = rc.Close()
		return nil
	}

	c.Cache = rc
	return nil
}

func (c *Container) initStorage(ctx context.Context) error {
	if c.Config.MinIO.Endpoint == "" {
		log.Warn().Msg("MINIO_ENDPOINT is empty, cover uploads disabled")
		return nil
	}

	objects, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return err
	}

	c.Storage = objects
	return nil
}

func (c *Container) initQueue(_ context.Context) error {
	if !c.Config.Jobs.Enabled {
		c.Tasks = queue.NoopEnqueuer{}
		return nil
	}

	c.AsynqClient = asynq.NewClient(c.RedisClientOpt())
	c.Tasks = queue.NewAsynqEnqueuer(c.AsynqClient)
	return nil
}

func (c *Container) initRepositories(ctx context.Context) error {
	var repo bookRepo.BookRepository

	switch c.Config.Storage.Driver {
	case config.StorageDriverPostgres:
		repo = bookRepo.NewPostgresRepository(c.DB.Pool)
	case config.StorageDriverMemory:
		memory := bookRepo.NewMemoryRepository()
		if err := bookRepo.SeedDemoCatalog(ctx, memory); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
		repo = memory
	default:
		return fmt.Errorf("unknown storage driver %q", c.Config.Storage.Driver)
	}

	if c.Cache != nil {
		repo = bookRepo.NewCachedRepository(repo, c.Cache, c.Config.Cache.TTL)
	}

	c.BookRepo = repo
	return nil
}

func (c *Container) initServices(_ context.Context) error {
	c.BookService = bookService.NewBookService(c.BookRepo, c.Tasks)

	if c.Storage != nil {
		c.CoverService = bookService.NewCoverService(c.BookRepo, c.Storage, c.Images, c.Tasks)
	}
	return nil
}

func (c *Container) initHandlers(_ context.Context) error {
	c.BookHandler = bookHandler.NewHandler(c.BookService, c.CoverService)
	c.RateLimiter = middleware.NewRateLimiter(c.Config.RateLimit.RPS, c.Config.RateLimit.Burst)
	return nil
}

// ========================================
// HELPER METHODS
// ========================================

// RedisClientOpt is the asynq connection shared by the API client and the worker server.
func (c *Container) RedisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// Cleanup releases the pool, Redis and the asynq client.
// Safe to call on a partially built container.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
		c.AsynqClient = nil
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
		c.Cache = nil
	}

	if c.DB != nil {
		c.DB.Close()
		c.DB = nil
	}

	log.Info().Msg("Container cleanup completed")
}
