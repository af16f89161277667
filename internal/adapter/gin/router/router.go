package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-management-api/api"
	"user-management-api/internal/adapter/gin/handler"
	"user-management-api/internal/adapter/gin/middleware"
	"user-management-api/internal/adapter/webui"
	"user-management-api/pkg/logger"
	"user-management-api/pkg/metrics"
	redisclient "user-management-api/pkg/redis"
)

const healthTimeout = 2 * time.Second

// Options carries the non-handler settings the router needs.
type Options struct {
	ServiceName    string
	AllowedOrigins []string
	UIEnabled      bool
	APIBaseURL     string
}

// Deps are the collaborators the router mounts or checks.
// Redis, RateLimiter and Metrics are optional.
type Deps struct {
	UserHandler *handler.UserHandler
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Metrics
	DB          *gorm.DB
	Redis       *redisclient.Client
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(opts Options, deps Deps, log *zap.Logger) (*gin.Engine, error) {
	router := gin.New()

	// Global middleware
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics(deps.Metrics))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(deps.RateLimiter.Handler())

	router.GET("/health", healthHandler(opts.ServiceName, deps, log))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// API docs
	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", api.OpenAPI)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/openapi.json"),
	)))

	users := router.Group("/api/users")
	{
		users.GET("", deps.UserHandler.ListUsers)
		users.POST("", deps.UserHandler.CreateUser)
		users.GET("/:id", deps.UserHandler.GetUser)
		users.PUT("/:id", deps.UserHandler.UpdateUser)
		users.DELETE("/:id", deps.UserHandler.DeleteUser)
	}

	if opts.UIEnabled {
		if err := webui.Register(router, opts.APIBaseURL); err != nil {
			return nil, fmt.Errorf("failed to mount web ui: %w", err)
		}
	}

	return router, nil
}

func healthHandler(service string, deps Deps, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status, code := "healthy", http.StatusOK
		checks := gin.H{"database": "ok", "redis": "disabled"}

		if err := pingDB(ctx, deps.DB); err != nil {
			logger.WithContext(ctx, log).Warn("health: database unreachable", zap.Error(err))
			checks["database"] = err.Error()
			status, code = "unhealthy", http.StatusServiceUnavailable
		}

		if deps.Redis != nil {
			checks["redis"] = "ok"
			if err := deps.Redis.Check(ctx); err != nil {
				logger.WithContext(ctx, log).Warn("health: redis unreachable", zap.Error(err))
				checks["redis"] = err.Error()
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":  status,
			"service": service,
			"checks":  checks,
		})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not configured")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
