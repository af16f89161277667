package di

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-management-api/cmd/api/infrastructure"
	"user-management-api/internal/adapter/db/postgres"
	ginhandler "user-management-api/internal/adapter/gin/handler"
	"user-management-api/internal/adapter/gin/middleware"
	"user-management-api/internal/config"
	"user-management-api/internal/usecase/user"
	"user-management-api/pkg/metrics"
	redisclient "user-management-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client // nil when Redis is disabled
	UserUC      user.UserUsecase
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Metrics // nil when metrics are disabled
	GinHandler  *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (_ *Container, err error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}
	// release whatever was opened before a failure
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	// Initialize database
	c.DB, err = infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.DB.AutoMigrate {
		if err := infrastructure.MigrateDatabase(ctx, c.DB, cfg.DB.Driver, l); err != nil {
			return nil, err
		}
	}

	// Initialize Redis client
	c.RedisClient, err = infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	// Initialize repository and use case
	repo := postgres.NewUserRepoPG(c.DB, l)
	c.UserUC = user.New(repo, l)

	// Initialize rate limiter; it stays inert without Redis
	limiterCfg := middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstCapacity:     cfg.RateLimit.BurstCapacity,
		Enabled:           cfg.RateLimit.Enabled && c.RedisClient != nil,
	}
	if c.RedisClient != nil {
		c.RateLimiter = middleware.NewRateLimiter(c.RedisClient.Client, limiterCfg, l)
	} else {
		c.RateLimiter = middleware.NewRateLimiter(nil, limiterCfg, l)
	}

	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New(cfg.Metrics.Namespace)
	}

	// Initialize Gin handler
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
