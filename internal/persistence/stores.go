package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/team-organiser/internal/config"
	"github.com/spec-kit/team-organiser/internal/repository"
)

// Stores bundles the repositories backing the configured storage backend.
type Stores struct {
	Backend string
	Slots   repository.SlotRepository
	Pending repository.PendingImportRepository

	postgres *Postgres
	redis    *Redis
}

// OpenStores connects to the backend named by cfg.Storage.Backend.
func OpenStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	stores := &Stores{Backend: cfg.Storage.Backend}
	prefix := cfg.Storage.KeyPrefix

	switch cfg.Storage.Backend {
	case config.StorageMemory:
		stores.Slots = repository.NewMemorySlotRepository()
	case config.StorageFile:
		slots, err := repository.NewFileSlotRepository(cfg.Storage.FileDir)
		if err != nil {
			return nil, err
		}
		stores.Slots = slots
	case config.StorageRedis:
		rdb, err := OpenRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		stores.redis = rdb
		stores.Slots = repository.NewRedisSlotRepository(rdb.Client(), prefix)
		stores.Pending = repository.NewRedisPendingImportRepository(rdb.Client(), prefix)
	case config.StoragePostgres:
		pg, err := OpenPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		stores.postgres = pg
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.Pool(), cfg.Postgres.MigrationsDir, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		stores.Slots = repository.NewPostgresSlotRepository(pg.Pool(), prefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if stores.Pending == nil {
		stores.Pending = repository.NewMemoryPendingImportRepository()
	}
	logger.Info("storage ready", zap.String("backend", stores.Backend))
	return stores, nil
}

// Ping checks the slot backend.
func (s *Stores) Ping(ctx context.Context) error {
	return s.Slots.Ping(ctx)
}

// Close releases any open connections.
func (s *Stores) Close() {
	if s == nil {
		return
	}
	s.redis.Close()
	s.postgres.Close()
}
