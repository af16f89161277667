package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-management-api/cmd/api/di"
	ginrouter "user-management-api/internal/adapter/gin/router"
	"user-management-api/internal/config"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(cfg *config.Config, c *di.Container, addr string, l *zap.Logger) (*http.Server, error) {
	if cfg.App.GinMode != "" {
		gin.SetMode(cfg.App.GinMode)
	}

	router, err := ginrouter.SetupRouter(
		ginrouter.Options{
			ServiceName:    cfg.Logger.ServiceName,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			UIEnabled:      cfg.UI.Enabled,
			APIBaseURL:     cfg.UI.APIBaseURL,
		},
		ginrouter.Deps{
			UserHandler: c.GinHandler,
			RateLimiter: c.RateLimiter,
			Metrics:     c.Metrics,
			DB:          c.DB,
			Redis:       c.RedisClient,
		},
		l,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	l.Info("Gin REST API configured",
		zap.String("address", addr),
		zap.Bool("ui", cfg.UI.Enabled),
		zap.Bool("metrics", c.Metrics != nil),
		zap.Strings("cors_origins", cfg.CORS.AllowedOrigins),
	)

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}, nil
}
