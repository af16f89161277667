// Package migrations holds the embedded SQL schema migrations and runs them with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed *.sql
var FS embed.FS

// goose keeps its dialect and filesystem in package globals.
var mu sync.Mutex

// SetLogger routes goose's progress output through l.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	goose.SetLogger(gooseLogger{l.WithOptions(zap.AddCallerSkip(1)).Sugar()})
}

type gooseLogger struct {
	s *zap.SugaredLogger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.s.Infof(strings.TrimRight(format, "\n"), v...)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.s.Fatalf(strings.TrimRight(format, "\n"), v...)
}

// Dialect maps a configured driver name to its goose dialect.
func Dialect(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "postgres", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no migration dialect for driver %q", driver)
	}
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	return run(driver, func() error {
		return goose.UpContext(ctx, db, ".")
	})
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, driver string) error {
	return run(driver, func() error {
		return goose.DownContext(ctx, db, ".")
	})
}

// Status prints the state of every migration through goose's logger.
func Status(ctx context.Context, db *sql.DB, driver string) error {
	return run(driver, func() error {
		return goose.StatusContext(ctx, db, ".")
	})
}

// Version returns the current schema version.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	var version int64
	err := run(driver, func() error {
		var err error
		version, err = goose.GetDBVersionContext(ctx, db)
		return err
	})
	return version, err
}

func run(driver string, fn func() error) error {
	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := fn(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
