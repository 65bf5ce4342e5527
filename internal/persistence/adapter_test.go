package persistence

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/team-organiser/internal/config"
	"github.com/spec-kit/team-organiser/internal/domain"
	"github.com/spec-kit/team-organiser/internal/repository"
	"github.com/spec-kit/team-organiser/internal/roster"
)

func TestLoadDefaultsWhenSlotsMissing(t *testing.T) {
	adapter := NewAdapter(repository.NewMemorySlotRepository(), nil)
	state, err := adapter.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state.People()) != 0 || len(state.Teams()) != 0 || len(state.Order()) != 0 {
		t.Fatalf("expected empty state, got %+v", state.Snapshot())
	}
}

func TestLoadDiscardsUnparsableSlot(t *testing.T) {
	ctx := context.Background()
	slots := repository.NewMemorySlotRepository()
	_ = slots.Put(ctx, KeyPeople, []byte(`not json`))
	_ = slots.Put(ctx, KeyTeams, []byte(`[{"id":"t1","name":"Core"}]`))

	state, err := NewAdapter(slots, nil).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state.People()) != 0 {
		t.Fatalf("corrupt people slot should load as empty")
	}
	if _, ok := state.Team("t1"); !ok {
		t.Fatalf("valid teams slot should still load")
	}
}

func TestLoadDiscardsMistypedSlot(t *testing.T) {
	ctx := context.Background()
	slots := repository.NewMemorySlotRepository()
	_ = slots.Put(ctx, KeyPeople, []byte(`[{"id":"p1","name":"A","role":"R","teamId":5}]`))
	_ = slots.Put(ctx, KeyTeams, []byte(`[{"id":"t1","name":"Core"}]`))
	_ = slots.Put(ctx, KeyOrder, []byte(`{"t1":["p1"],"t2":7}`))

	state, err := NewAdapter(slots, nil).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n := len(state.People()); n != 0 {
		t.Fatalf("mistyped people slot should load as empty, got %d people", n)
	}
	if n := len(state.Order()); n != 0 {
		t.Fatalf("mistyped order slot should load as empty, got %d entries", n)
	}
	if _, ok := state.Team("t1"); !ok {
		t.Fatalf("valid teams slot should still load")
	}
}

// countingSlots records writes per key.
type countingSlots struct {
	repository.SlotRepository
	writes map[string]int
}

func (c *countingSlots) Put(ctx context.Context, key string, value []byte) error {
	c.writes[key]++
	return c.SlotRepository.Put(ctx, key, value)
}

func TestSaveWritesOnlyChangedSlices(t *testing.T) {
	ctx := context.Background()
	slots := &countingSlots{SlotRepository: repository.NewMemorySlotRepository(), writes: map[string]int{}}
	adapter := NewAdapter(slots, nil)

	state, changed, err := roster.Apply(roster.Empty(), roster.CreateTeam{ID: "t1", Name: "Core"})
	if err != nil {
		t.Fatal(err)
	}
	if err := adapter.Save(ctx, state, changed); err != nil {
		t.Fatalf("save: %v", err)
	}
	if slots.writes[KeyTeams] != 1 || slots.writes[KeyPeople] != 0 || slots.writes[KeyOrder] != 0 {
		t.Fatalf("unexpected writes %v", slots.writes)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	slots := repository.NewMemorySlotRepository()
	adapter := NewAdapter(slots, nil)

	team := "t1"
	state := roster.New(
		[]domain.Person{{ID: "p1", Name: "Ann", Role: "Dev", TeamID: &team}, {ID: "p2", Name: "Bo", Role: "QA"}},
		[]domain.Team{{ID: "t1", Name: "Core"}},
		domain.OrderIndex{"t1": {"p1"}},
	)
	if err := adapter.Save(ctx, state, roster.SliceAll); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.EffectiveOrder("t1"); len(got) != 1 || got[0] != "p1" {
		t.Fatalf("unexpected order %v", got)
	}
	if p, _ := loaded.Person("p2"); p.Assigned() {
		t.Fatalf("p2 should stay unassigned")
	}
}

func TestOpenStoresMemoryAndFile(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Storage: config.StorageConfig{Backend: config.StorageMemory}}
	stores, err := OpenStores(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if stores.Slots == nil || stores.Pending == nil {
		t.Fatalf("memory backend must provide both repositories")
	}
	stores.Close()

	cfg.Storage = config.StorageConfig{Backend: config.StorageFile, FileDir: t.TempDir()}
	stores, err = OpenStores(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if err := stores.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	stores.Close()
}

func TestOpenStoresPostgresRequiresDSN(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: config.StoragePostgres}}
	stores, err := OpenStores(context.Background(), cfg, zap.NewNop())
	if !errors.Is(err, ErrMissingDSN) {
		t.Fatalf("expected ErrMissingDSN, got %v", err)
	}
	if stores != nil {
		t.Fatalf("no stores should be returned without a pool")
	}
}

func TestOpenPostgresRejectsMalformedDSN(t *testing.T) {
	_, err := OpenPostgres(context.Background(), config.PostgresConfig{DSN: "postgres://%zz"}, zap.NewNop())
	if err == nil || errors.Is(err, ErrMissingDSN) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}

func TestOpenStoresRedisFailsWhenUnreachable(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Backend: config.StorageRedis},
		Redis:   config.RedisConfig{Addr: "127.0.0.1:1"},
	}
	stores, err := OpenStores(context.Background(), cfg, zap.NewNop())
	if err == nil {
		stores.Close()
		t.Fatalf("unreachable redis must fail startup")
	}
}
