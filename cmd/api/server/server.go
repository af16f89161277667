package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	"user-management-api/cmd/api/di"
	"user-management-api/internal/config"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, c *di.Container) (*Server, error) {
	httpServer, err := SetupGinServer(cfg, c, ":"+cfg.App.HTTPPort, l)
	if err != nil {
		return nil, err
	}

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP:   httpServer,
	}, nil
}

// Serve serves on an existing listener until Shutdown.
// It returns nil after a graceful shutdown.
func (s *Server) Serve(lis net.Listener) error {
	s.Logger.Info("HTTP server listening", zap.String("address", lis.Addr().String()))

	if err := s.HTTP.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("shutting down HTTP server...")
	return s.HTTP.Shutdown(ctx)
}
