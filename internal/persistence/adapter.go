package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/team-organiser/internal/domain"
	"github.com/spec-kit/team-organiser/internal/repository"
	"github.com/spec-kit/team-organiser/internal/roster"
)

// Slot keys, one per independently stored slice of the roster.
const (
	KeyPeople = "teamOrganiserPeople"
	KeyTeams  = "teamOrganiserTeams"
	KeyOrder  = "teamOrganiserMemberOrder"
)

// Adapter maps roster state onto three slots of a SlotRepository.
type Adapter struct {
	slots  repository.SlotRepository
	logger *zap.Logger
}

// NewAdapter constructs an Adapter.
func NewAdapter(slots repository.SlotRepository, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{slots: slots, logger: logger}
}

// Load reads all three slots. A missing or unparsable slot falls back to its
// empty default; only storage failures are returned.
func (a *Adapter) Load(ctx context.Context) (roster.State, error) {
	people, err := loadSlot[[]domain.Person](ctx, a, KeyPeople)
	if err != nil {
		return roster.State{}, err
	}
	teams, err := loadSlot[[]domain.Team](ctx, a, KeyTeams)
	if err != nil {
		return roster.State{}, err
	}
	order, err := loadSlot[domain.OrderIndex](ctx, a, KeyOrder)
	if err != nil {
		return roster.State{}, err
	}
	state := roster.New(people, teams, order)
	a.logger.Info("roster loaded",
		zap.Int("people", len(people)),
		zap.Int("teams", len(teams)),
		zap.Int("order_entries", len(order)),
	)
	return state, nil
}

// loadSlot decodes key into a fresh T. A slot that fails to decode yields the
// zero T, never a partially filled one.
func loadSlot[T any](ctx context.Context, a *Adapter, key string) (T, error) {
	var empty T
	data, err := a.slots.Get(ctx, key)
	if errors.Is(err, repository.ErrSlotNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("load %s: %w", key, err)
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		a.logger.Warn("discarding unparsable slot", zap.String("key", key), zap.Error(err))
		return empty, nil
	}
	return decoded, nil
}

// Save writes the full value of every slice named in changed.
func (a *Adapter) Save(ctx context.Context, state roster.State, changed roster.Slice) error {
	if changed.Has(roster.SlicePeople) {
		if err := a.saveSlot(ctx, KeyPeople, state.People()); err != nil {
			return err
		}
	}
	if changed.Has(roster.SliceTeams) {
		if err := a.saveSlot(ctx, KeyTeams, state.Teams()); err != nil {
			return err
		}
	}
	if changed.Has(roster.SliceOrder) {
		if err := a.saveSlot(ctx, KeyOrder, state.Order()); err != nil {
			return err
		}
	}
	return nil
}

func (a *Adapter) saveSlot(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.slots.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
