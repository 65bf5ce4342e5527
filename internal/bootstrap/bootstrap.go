// Package bootstrap assembles the organiser runtime shared by the API server,
// the CLI and the terminal board.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/team-organiser/internal/config"
	"github.com/spec-kit/team-organiser/internal/events"
	"github.com/spec-kit/team-organiser/internal/identity"
	"github.com/spec-kit/team-organiser/internal/ingest"
	"github.com/spec-kit/team-organiser/internal/observability"
	"github.com/spec-kit/team-organiser/internal/persistence"
	"github.com/spec-kit/team-organiser/internal/service"
	"github.com/spec-kit/team-organiser/internal/worker"
)

// Runtime holds the wired services.
type Runtime struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Stores     *persistence.Stores
	Dispatcher events.Dispatcher
	Organiser  *service.OrganiserService
	Auth       *service.OperatorAuthService
}

// Open connects storage, loads the persisted roster and starts the
// persistence and activity workers.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Runtime, error) {
	stores, err := persistence.OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	adapter := persistence.NewAdapter(stores.Slots, logger)
	initial, err := adapter.Load(ctx)
	if err != nil {
		stores.Close()
		return nil, fmt.Errorf("load roster: %w", err)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartPersistenceWorker(dispatcher, adapter, logger)
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger, metrics))

	organiser := service.NewOrganiserService(service.OrganiserDependencies{
		Initial: initial,
		IDs:     identity.NewUUIDGenerator(),
		Ingest: ingest.Options{
			Delimiter:         cfg.Ingest.DelimiterRune(),
			DedupeWithinBatch: cfg.Ingest.DedupeWithinBatch,
		},
		Pending:    stores.Pending,
		PendingTTL: cfg.Import.PendingTTL(),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	return &Runtime{
		Config:     cfg,
		Logger:     logger,
		Metrics:    metrics,
		Stores:     stores,
		Dispatcher: dispatcher,
		Organiser:  organiser,
		Auth:       service.NewOperatorAuthService(cfg.Auth),
	}, nil
}

// Close releases storage connections.
func (r *Runtime) Close() {
	if r == nil {
		return
	}
	r.Stores.Close()
}
