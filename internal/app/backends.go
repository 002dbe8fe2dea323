package app

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/adapter/memory"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/adapter/postgres"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/config"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store"
)

// Backends holds the two stores the application runs on.
type Backends struct {
	// Durable is nil when no DSN is configured.
	Durable store.Backend
	Mirror  *memory.Store

	pool *pgxpool.Pool
}

// OpenBackends creates the mirror and, when a DSN is configured, the durable
// store. A database that is unreachable at startup is not an error: every
// operation falls back to the mirror until it comes back.
func OpenBackends(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backends, error) {
	b := &Backends{Mirror: memory.New()}

	if path := cfg.Storage.SnapshotPath; path != "" {
		loaded, err := b.Mirror.LoadFile(path, cfg.Storage.SnapshotKey)
		if err != nil {
			return nil, err
		}
		logger.Info("mirror snapshot", slog.String("path", path), slog.Bool("loaded", loaded))
	}

	if cfg.Database.DSN == "" {
		logger.Warn("no database configured, serving from the mirror only")
		return b, nil
	}

	if cfg.Database.AutoMigrate {
		versions, err := postgres.MigrateUp(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Warn("auto-migrate skipped", slog.String("error", err.Error()))
		} else {
			logger.Info("migrations applied", slog.Int("count", len(versions)))
		}
	}

	pool, err := postgres.OpenPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Warn("database unreachable at startup", slog.String("error", err.Error()))
	}

	b.pool = pool
	b.Durable = postgres.New(pool)
	return b, nil
}

// Close saves the mirror snapshot when a path is configured and closes
// the pool.
func (b *Backends) Close(cfg config.StorageConfig, logger *slog.Logger) {
	if cfg.SnapshotPath != "" {
		if err := b.Mirror.SaveFile(cfg.SnapshotPath, cfg.SnapshotKey); err != nil {
			logger.Error("save mirror snapshot", slog.String("error", err.Error()))
		} else {
			logger.Info("mirror snapshot saved", slog.String("path", cfg.SnapshotPath))
		}
	}
	if b.pool != nil {
		b.pool.Close()
	}
}
