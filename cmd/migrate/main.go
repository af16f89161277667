// Command migrate applies or rolls back the users schema.
//
//	migrate [-config dir] up|down|status|version
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"user-management-api/cmd/api/infrastructure"
	"user-management-api/internal/adapter/db/migrations"
	"user-management-api/internal/config"
	"user-management-api/pkg/logger"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "."), "directory containing app.env")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config dir] up|down|status|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), *configPath, flag.Arg(0)); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func run(ctx context.Context, configPath, command string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	l, err := logger.NewWithConfig(logger.Config{
		Level:       cfg.Logger.Level,
		Format:      cfg.Logger.Format,
		OutputPath:  "stderr",
		ServiceName: "migrate",
		Environment: cfg.App.Env,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return err
	}
	defer func() { _ = infrastructure.CloseDatabase(db) }()

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	migrations.SetLogger(l)
	driver := cfg.DB.Driver

	switch command {
	case "up":
		err = migrations.Up(ctx, sqlDB, driver)
	case "down":
		err = migrations.Down(ctx, sqlDB, driver)
	case "status":
		err = migrations.Status(ctx, sqlDB, driver)
	case "version":
		var version int64
		if version, err = migrations.Version(ctx, sqlDB, driver); err == nil {
			l.Info("schema version", zap.Int64("version", version))
		}
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
