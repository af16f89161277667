package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-management-api/internal/config"
	"user-management-api/internal/usecase/user"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DB: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			SQLitePath:   filepath.Join(t.TempDir(), "users.db"),
			MaxOpenConns: 1,
			AutoMigrate:  true,
		},
		App:    config.AppConfig{HTTPPort: "0", ShutdownTimeoutSeconds: 1},
		Logger: config.LoggerConfig{Level: "warn"},
	}
}

func TestNewContainer(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.Metrics)
	assert.NotNil(t, c.RateLimiter)
	assert.NotNil(t, c.GinHandler)

	created, err := c.UserUC.CreateUser(ctx, user.CreateUserRequest{Name: "Alice", Email: "a@x.io"})
	require.NoError(t, err)

	got, err := c.UserUC.GetUser(ctx, user.GetUserRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.User, got.User)

	assert.NoError(t, c.Close())
}

func TestNewContainer_Metrics(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics = config.MetricsConfig{Enabled: true, Namespace: "users"}

	c, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.NotNil(t, c.Metrics)
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Driver = "oracle"

	_, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "config validation failed")
}

func TestNewContainer_RedisUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1", PoolSize: 1}

	_, err := NewContainer(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "failed to initialize Redis")
}
