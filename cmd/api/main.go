package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/portfolio/backend/config"
	"github.com/pageza/portfolio/backend/internal/database"
	"github.com/pageza/portfolio/backend/internal/middleware"
	"github.com/pageza/portfolio/backend/internal/router"
	"github.com/pageza/portfolio/backend/internal/server"
	"github.com/pageza/portfolio/backend/internal/service"
	"github.com/pageza/portfolio/backend/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	gin.SetMode(cfg.Env.GinMode())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	store := storage.NewDatabaseStorage(db)
	if err := store.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize services
	authService := service.NewAuthService(store, cfg.JWTSecret)
	if err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	fileStore, staticDir, err := newFileStore(ctx, cfg)
	if err != nil {
		return err
	}

	rdb := connectRedis(cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	r := router.SetupRouter(router.Dependencies{
		Config:         cfg,
		Store:          store,
		Auth:           authService,
		Uploads:        service.NewUploadService(fileStore, config.MaxUploadSize),
		Cache:          middleware.NewResponseCache(rdb, cfg.CacheTTL),
		ContactLimiter: middleware.NewContactRateLimiter(rdb, cfg.ContactRateLimit),
		Notifier:       service.NewEmailService(cfg),
		StaticDir:      staticDir,
	})

	log.Printf("Starting server in %s mode...", cfg.Env)
	return server.New(cfg, r).Run(ctx)
}

// connectRedis returns nil when Redis is not configured or unreachable, which
// disables response caching and rate limiting.
func connectRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		log.Println("REDIS_URL not set, response cache and rate limiting disabled")
		return nil
	}
	rdb, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Printf("Redis unavailable, response cache and rate limiting disabled: %v", err)
		return nil
	}
	return rdb
}

// newFileStore builds the upload backend. The returned directory is served
// statically and is empty for remote backends.
func newFileStore(ctx context.Context, cfg *config.Config) (service.FileStore, string, error) {
	if cfg.UploadBackend == config.UploadBackendS3 {
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		log.Printf("Storing uploads in S3 bucket %s", s3Cfg.BucketName)
		return service.NewS3Store(s3Cfg), "", nil
	}

	log.Printf("Storing uploads in %s", cfg.UploadDir)
	return service.NewLocalStore(cfg.UploadDir), cfg.UploadDir, nil
}
