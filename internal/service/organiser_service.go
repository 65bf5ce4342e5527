package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/team-organiser/internal/domain"
	"github.com/spec-kit/team-organiser/internal/events"
	"github.com/spec-kit/team-organiser/internal/identity"
	"github.com/spec-kit/team-organiser/internal/ingest"
	"github.com/spec-kit/team-organiser/internal/repository"
	"github.com/spec-kit/team-organiser/internal/roster"
	"github.com/spec-kit/team-organiser/internal/snapshot"
	apperrors "github.com/spec-kit/team-organiser/pkg/util/errorutil"
)

// User-facing import messages.
const (
	ImportConfirmPrompt  = "Importing this file will overwrite current people and teams. Continue?"
	ImportSuccessMessage = "Data imported successfully!"
)

// OrganiserService owns the live roster and serialises every mutation
// through roster.Apply, publishing an event for each effective change.
type OrganiserService struct {
	mu       sync.Mutex
	state    roster.State
	dragging string

	parser     *ingest.Parser
	ids        identity.Generator
	pending    repository.PendingImportRepository
	pendingTTL time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// OrganiserDependencies bundles collaborators for the organiser service.
type OrganiserDependencies struct {
	Initial    roster.State
	IDs        identity.Generator
	Ingest     ingest.Options
	Pending    repository.PendingImportRepository
	PendingTTL time.Duration
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewOrganiserService creates the service.
func NewOrganiserService(deps OrganiserDependencies) *OrganiserService {
	ids := deps.IDs
	if ids == nil {
		ids = identity.NewUUIDGenerator()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pending := deps.Pending
	if pending == nil {
		pending = repository.NewMemoryPendingImportRepository()
	}
	ttl := deps.PendingTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OrganiserService{
		state:      deps.Initial,
		parser:     ingest.NewParser(deps.Ingest, ids),
		ids:        ids,
		pending:    pending,
		pendingTTL: ttl,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// State returns the current roster.
func (s *OrganiserService) State() roster.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IngestCSV parses pasted "name,role" lines and adds every person not already
// on the roster. It returns the people actually added.
func (s *OrganiserService) IngestCSV(ctx context.Context, text string) ([]domain.Person, error) {
	candidates := s.parser.Parse(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.state.People())
	next, _, err := s.commit(ctx, roster.AddPeople{Candidates: candidates}, func(next roster.State) (events.EventType, interface{}) {
		return events.EventPeopleIngested, events.PeopleIngestedPayload{
			Parsed: len(candidates),
			Added:  len(next.People()) - before,
		}
	})
	if err != nil {
		return nil, err
	}
	added := next.People()[before:]
	s.logger.Debug("csv ingested", zap.Int("parsed", len(candidates)), zap.Int("added", len(added)))
	return added, nil
}

// CreateTeam adds a team. Blank names and case-insensitive duplicates are rejected.
func (s *OrganiserService) CreateTeam(ctx context.Context, name string) (domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutation := roster.CreateTeam{ID: s.ids.TeamID(strings.TrimSpace(name)), Name: name}
	next, _, err := s.commit(ctx, mutation, func(next roster.State) (events.EventType, interface{}) {
		return events.EventTeamCreated, events.TeamCreatedPayload{TeamID: mutation.ID, Name: strings.TrimSpace(name)}
	})
	if err != nil {
		return domain.Team{}, err
	}
	team, _ := next.Team(mutation.ID)
	return team, nil
}

// BeginDrag records that a person was picked up. It never changes the roster.
func (s *OrganiserService) BeginDrag(ctx context.Context, personID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Person(personID); !ok {
		return apperrors.NewNotFound("person", map[string]any{"person_id": personID})
	}
	s.dragging = personID
	s.publish(ctx, events.EventDragStarted, events.DragStartedPayload{PersonID: personID}, roster.SliceNone, s.state)
	return nil
}

// Dragging returns the id passed to the last BeginDrag not yet completed.
func (s *OrganiserService) Dragging() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging, s.dragging != ""
}

// CompleteDrop moves a person into targetTeamID. It reports whether the
// roster changed; unknown ids are a silent no-op.
func (s *OrganiserService) CompleteDrop(ctx context.Context, personID, targetTeamID, sourceTeamID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = ""

	mutation := roster.AssignToTeam{PersonID: personID, TargetTeamID: targetTeamID, SourceTeamID: sourceTeamID}
	_, changed, err := s.commit(ctx, mutation, func(roster.State) (events.EventType, interface{}) {
		return events.EventPersonAssigned, events.PersonAssignedPayload{
			PersonID:     personID,
			TeamID:       targetTeamID,
			SourceTeamID: sourceTeamID,
		}
	})
	return changed != roster.SliceNone, err
}

// RemoveFromTeam returns a person to the unassigned pool.
func (s *OrganiserService) RemoveFromTeam(ctx context.Context, personID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var previous string
	if person, ok := s.state.Person(personID); ok {
		previous = person.CurrentTeam()
	}
	_, changed, err := s.commit(ctx, roster.RemoveFromTeam{PersonID: personID}, func(roster.State) (events.EventType, interface{}) {
		return events.EventPersonUnassigned, events.PersonUnassignedPayload{PersonID: personID, TeamID: previous}
	})
	return changed != roster.SliceNone, err
}

// CompleteReorder moves the member at from to position to within a team.
// Out-of-range indices return *domain.IndexOutOfRangeError and change nothing.
func (s *OrganiserService) CompleteReorder(ctx context.Context, teamID string, from, to int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutation := roster.ReorderWithinTeam{TeamID: teamID, From: from, To: to}
	_, changed, err := s.commit(ctx, mutation, func(roster.State) (events.EventType, interface{}) {
		return events.EventTeamReordered, events.TeamReorderedPayload{TeamID: teamID, FromIndex: from, ToIndex: to}
	})
	var outOfRange *domain.IndexOutOfRangeError
	if errors.As(err, &outOfRange) {
		s.logger.Warn("reorder ignored",
			zap.String("team_id", teamID),
			zap.Int("from", from),
			zap.Int("to", to),
			zap.Int("length", outOfRange.Length))
	}
	return changed != roster.SliceNone, err
}

// Export renders the current roster and the file name to save it under.
func (s *OrganiserService) Export() ([]byte, string, error) {
	state := s.State()
	data, err := snapshot.Export(state)
	if err != nil {
		return nil, "", err
	}
	return data, snapshot.Filename(s.now()), nil
}

// ImportSummary describes a validated import payload.
type ImportSummary struct {
	People        int
	Teams         int
	Reconstructed bool
}

// StagedImport is an import waiting for confirmation.
type StagedImport struct {
	Token     string
	ExpiresAt time.Time
	Summary   ImportSummary
}

// StageImport validates data and parks it until ConfirmImport or CancelImport.
// Nothing is applied yet.
func (s *OrganiserService) StageImport(ctx context.Context, data []byte) (*StagedImport, error) {
	decoded, err := snapshot.Decode(data)
	if err != nil {
		return nil, err
	}
	pending := &repository.PendingImport{
		Token:     uuid.NewString(),
		Payload:   append([]byte(nil), data...),
		ExpiresAt: s.now().Add(s.pendingTTL),
	}
	if err := s.pending.Create(ctx, pending); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &StagedImport{Token: pending.Token, ExpiresAt: pending.ExpiresAt, Summary: summarize(decoded)}, nil
}

// ConfirmImport replaces the whole roster with a staged payload.
func (s *OrganiserService) ConfirmImport(ctx context.Context, token string) (ImportSummary, error) {
	pending, err := s.pending.Take(ctx, token)
	if errors.Is(err, repository.ErrPendingImportNotFound) {
		return ImportSummary{}, apperrors.NewNotFound("pending import", map[string]any{"token": token})
	}
	if err != nil {
		return ImportSummary{}, apperrors.NewInternalError(err)
	}
	decoded, err := snapshot.Decode(pending.Payload)
	if err != nil {
		return ImportSummary{}, err
	}
	return s.replace(ctx, decoded), nil
}

// CancelImport discards a staged payload.
func (s *OrganiserService) CancelImport(ctx context.Context, token string) error {
	err := s.pending.Delete(ctx, token)
	if errors.Is(err, repository.ErrPendingImportNotFound) {
		return apperrors.NewNotFound("pending import", map[string]any{"token": token})
	}
	return err
}

// Import validates data, asks confirm, and replaces the roster when it agrees.
// A malformed payload never reaches confirm.
func (s *OrganiserService) Import(ctx context.Context, data []byte, confirm func(ImportSummary) bool) (ImportSummary, bool, error) {
	decoded, err := snapshot.Decode(data)
	if err != nil {
		return ImportSummary{}, false, err
	}
	summary := summarize(decoded)
	if confirm != nil && !confirm(summary) {
		return summary, false, nil
	}
	return s.replace(ctx, decoded), true, nil
}

func (s *OrganiserService) replace(ctx context.Context, decoded snapshot.Decoded) ImportSummary {
	summary := summarize(decoded)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = ""
	// ReplaceAll cannot fail
	_, _, _ = s.commit(ctx, roster.ReplaceAll{Snapshot: decoded.Snapshot}, func(roster.State) (events.EventType, interface{}) {
		return events.EventSnapshotImported, events.SnapshotImportedPayload{
			People:        summary.People,
			Teams:         summary.Teams,
			Reconstructed: summary.Reconstructed,
		}
	})
	s.logger.Info("snapshot imported",
		zap.Int("people", summary.People),
		zap.Int("teams", summary.Teams),
		zap.Bool("reconstructed", summary.Reconstructed))
	return summary
}

func summarize(decoded snapshot.Decoded) ImportSummary {
	return ImportSummary{
		People:        len(decoded.Snapshot.People),
		Teams:         len(decoded.Snapshot.Teams),
		Reconstructed: decoded.Reconstructed,
	}
}

// commit applies m and publishes an event when it changed something.
// Callers must hold s.mu so events are published in mutation order.
func (s *OrganiserService) commit(ctx context.Context, m roster.Mutation, describe func(roster.State) (events.EventType, interface{})) (roster.State, roster.Slice, error) {
	next, changed, err := roster.Apply(s.state, m)
	if err != nil {
		return s.state, roster.SliceNone, err
	}
	if changed == roster.SliceNone {
		return s.state, changed, nil
	}
	s.state = next
	eventType, payload := describe(next)
	s.publish(ctx, eventType, payload, changed, next)
	return next, changed, nil
}

func (s *OrganiserService) publish(ctx context.Context, eventType events.EventType, payload interface{}, changed roster.Slice, state roster.State) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: s.now(),
		Payload:   payload,
		Changed:   changed,
		State:     state,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Error("event handlers failed",
			zap.String("event_type", string(eventType)),
			zap.Strings("changed", changed.Names()),
			zap.Error(err))
	}
}
