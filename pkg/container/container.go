package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/config"
	infracache "book-catalog/internal/infrastructure/cache"
	"book-catalog/internal/infrastructure/database"
	"book-catalog/internal/infrastructure/sms"
	"book-catalog/internal/infrastructure/storage"
	"book-catalog/pkg/cache"

	authorHandler "book-catalog/internal/domains/author/handler"
	authorRepo "book-catalog/internal/domains/author/repository"
	authorService "book-catalog/internal/domains/author/service"
	bookHandler "book-catalog/internal/domains/book/handler"
	bookRepo "book-catalog/internal/domains/book/repository"
	bookService "book-catalog/internal/domains/book/service"
	"book-catalog/internal/domains/notification"
	reportHandler "book-catalog/internal/domains/report/handler"
	reportRepo "book-catalog/internal/domains/report/repository"
	reportService "book-catalog/internal/domains/report/service"
	subscriptionHandler "book-catalog/internal/domains/subscription/handler"
	subscriptionRepo "book-catalog/internal/domains/subscription/repository"
	subscriptionService "book-catalog/internal/domains/subscription/service"
)

// Container holds the application's dependency graph. Everything in it is
// a singleton built once at startup; if any required dependency fails to
// initialize, the application does not start.
type Container struct {
	Config  *config.Config
	DB      *database.PostgresDB
	Cache   cache.Cache
	Storage *storage.Gateway

	AuthorRepo       authorRepo.RepositoryInterface
	BookRepo         bookRepo.RepositoryInterface
	SubscriptionRepo subscriptionRepo.RepositoryInterface
	ReportRepo       reportRepo.RepositoryInterface

	Dispatcher *notification.Dispatcher

	AuthorService       authorService.ServiceInterface
	BookService         bookService.ServiceInterface
	SubscriptionService subscriptionService.ServiceInterface
	ReportService       reportService.ServiceInterface

	AuthorHandler       *authorHandler.AuthorHandler
	BookHandler         *bookHandler.BookHandler
	SubscriptionHandler *subscriptionHandler.SubscriptionHandler
	ReportHandler       *reportHandler.ReportHandler
}

// NewContainer builds the dependency graph in order: config, then
// infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initDomains()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(&c.Config.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	redisCache := infracache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	gateway, err := c.buildStorageGateway()
	if err != nil {
		return err
	}
	c.Storage = gateway

	return nil
}

// buildStorageGateway assembles the two-tier cover storage. A failed MinIO
// init is not fatal: the gateway starts degraded and serves uploads from
// the local filesystem.
func (c *Container) buildStorageGateway() (*storage.Gateway, error) {
	fallback, err := storage.NewLocalBackend(c.Config.Local)
	if err != nil {
		return nil, fmt.Errorf("failed to init local storage: %w", err)
	}

	var primary storage.Backend
	minioBackend, err := storage.NewMinIOBackend(c.Config.MinIO)
	if err != nil {
		log.Error().Err(err).Msg("minio unavailable, starting in degraded storage mode")
	} else {
		primary = minioBackend
	}

	return storage.NewGateway(primary, fallback), nil
}

func (c *Container) initDomains() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.Cache)
	c.SubscriptionRepo = subscriptionRepo.NewPostgresRepository(pool)
	c.ReportRepo = reportRepo.NewPostgresRepository(pool, c.Cache)

	c.Dispatcher = notification.NewDispatcher(c.SubscriptionRepo, c.buildSMSChannel())

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.Storage, c.Dispatcher)
	c.SubscriptionService = subscriptionService.NewSubscriptionService(c.SubscriptionRepo, c.AuthorRepo)
	c.ReportService = reportService.NewReportService(c.ReportRepo)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.SubscriptionHandler = subscriptionHandler.NewSubscriptionHandler(c.SubscriptionService)
	c.ReportHandler = reportHandler.NewReportHandler(c.ReportService)
}

func (c *Container) buildSMSChannel() notification.Channel {
	if c.Config.SMS.APIKey == "" {
		log.Warn().Msg("SMS_API_KEY not set, using mock SMS service")
		return sms.NewMockSMSService()
	}
	return sms.NewSmsPilotService(c.Config.SMS)
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if redisCache, ok := c.Cache.(*infracache.RedisCache); ok {
		if err := redisCache.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis connection")
		}
	}
}
