// Command createdb provisions the contacts table in the configured database.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/vizitka/card-scanner/internal/common"
	"github.com/vizitka/card-scanner/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		logger.Error("DB_URL env var is required")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sqlDB, err := store.OpenDB(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	}()

	if err := store.EnsureSchema(ctx, sqlDB, logger); err != nil {
		logger.Error("create contacts table", "error", err)
		os.Exit(1)
	}
	logger.Info("contacts table is ready")
}
