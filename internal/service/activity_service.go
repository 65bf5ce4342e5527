package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/team-organiser/internal/events"
	"github.com/spec-kit/team-organiser/internal/observability"
	"github.com/spec-kit/team-organiser/internal/roster"
)

// ActivityService logs roster events and keeps roster gauges current.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventDragStarted, a.handleDragStarted)
	a.dispatcher.SubscribeAll(a.handleRosterChanged)
}

func (a *ActivityService) handleDragStarted(_ context.Context, event events.Event) error {
	a.logger.Debug("DragStarted", zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) handleRosterChanged(_ context.Context, event events.Event) error {
	if event.Changed == roster.SliceNone {
		return nil
	}
	state := event.State
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.Strings("changed", event.Changed.Names()),
		zap.Any("payload", event.Payload))
	a.metrics.RecordRosterEvent(string(event.Type), len(state.People()), len(state.Teams()), len(state.Unassigned()))
	return nil
}
