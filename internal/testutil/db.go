// Package testutil builds real backing stores for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-management-api/internal/adapter/db/migrations"
	"user-management-api/internal/adapter/db/postgres"
	"user-management-api/pkg/logger"
)

// NewSQLiteDB opens a file-backed SQLite database in a temp dir with all
// migrations applied. It is closed when the test ends.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users.db")
	log := zaptest.NewLogger(t)
	db, err := gorm.Open(sqlite.Open(path), postgres.GormConfig(logger.NewGormLogger(log, 0.2, "warn")))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrations.SetLogger(log)
	t.Cleanup(func() { migrations.SetLogger(zap.NewNop()) })
	require.NoError(t, migrations.Up(context.Background(), sqlDB, "sqlite"))

	// serialise writers; SQLite allows one at a time
	sqlDB.SetMaxOpenConns(1)

	return db
}
