// Command migrate applies pending schema migrations to the durable store.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/adapter/postgres"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/app"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.Database.DSN == "" {
		logger.Error("database.dsn is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	versions, err := postgres.MigrateUp(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("migrations applied", slog.Int("count", len(versions)), slog.Any("versions", versions))
}
