package worker

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/team-organiser/internal/events"
	"github.com/spec-kit/team-organiser/internal/persistence"
	"github.com/spec-kit/team-organiser/internal/repository"
	"github.com/spec-kit/team-organiser/internal/roster"
	"github.com/spec-kit/team-organiser/internal/service"
)

func TestPersistenceWorkerWritesEachChange(t *testing.T) {
	ctx := context.Background()
	slots := repository.NewMemorySlotRepository()
	dispatcher := events.NewInMemoryDispatcher()
	StartPersistenceWorker(dispatcher, persistence.NewAdapter(slots, zap.NewNop()), zap.NewNop())

	svc := service.NewOrganiserService(service.OrganiserDependencies{
		Initial:    roster.Empty(),
		Dispatcher: dispatcher,
	})
	team, err := svc.CreateTeam(ctx, "Platform")
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if _, err := slots.Get(ctx, persistence.KeyPeople); err == nil {
		t.Fatalf("people slot must not be written by CreateTeam")
	}

	if _, err := svc.IngestCSV(ctx, "Ann,Dev"); err != nil {
		t.Fatal(err)
	}
	person := svc.State().People()[0]
	if _, err := svc.CompleteDrop(ctx, person.ID, team.ID, ""); err != nil {
		t.Fatal(err)
	}

	reloaded, err := persistence.NewAdapter(slots, zap.NewNop()).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	order := reloaded.EffectiveOrder(team.ID)
	if len(order) != 1 || order[0] != person.ID {
		t.Fatalf("persisted order %v", order)
	}
}

func TestPersistenceWorkerSkipsInformationalEvents(t *testing.T) {
	ctx := context.Background()
	slots := repository.NewMemorySlotRepository()
	dispatcher := events.NewInMemoryDispatcher()
	StartPersistenceWorker(dispatcher, persistence.NewAdapter(slots, zap.NewNop()), zap.NewNop())

	err := dispatcher.Publish(ctx, events.Event{Type: events.EventDragStarted, State: roster.Empty()})
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{persistence.KeyPeople, persistence.KeyTeams, persistence.KeyOrder} {
		if _, err := slots.Get(ctx, key); err == nil {
			t.Fatalf("%s written for an informational event", key)
		}
	}
}
