package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/team-organiser/internal/events"
	"github.com/spec-kit/team-organiser/internal/persistence"
	"github.com/spec-kit/team-organiser/internal/roster"
	"github.com/spec-kit/team-organiser/internal/service"
)

// StartActivityWorker registers activity logging handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}

// StartPersistenceWorker writes the changed slots of every roster event.
func StartPersistenceWorker(dispatcher events.Dispatcher, adapter *persistence.Adapter, logger *zap.Logger) {
	if dispatcher == nil || adapter == nil {
		return
	}
	dispatcher.SubscribeAll(func(ctx context.Context, event events.Event) error {
		if event.Changed == roster.SliceNone {
			return nil
		}
		if err := adapter.Save(ctx, event.State, event.Changed); err != nil {
			logger.Error("persist roster",
				zap.String("event_id", event.ID),
				zap.Strings("changed", event.Changed.Names()),
				zap.Error(err))
			return err
		}
		return nil
	})
}
