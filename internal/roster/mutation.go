package roster

import (
	"strings"

	"github.com/spec-kit/team-organiser/internal/domain"
	"github.com/spec-kit/team-organiser/internal/ingest"
)

// Mutation is one discrete change to the roster. The set of mutations is closed:
// membership and order can only change together through Apply.
type Mutation interface {
	apply(State) (State, Slice, error)
}

// Apply runs m against s and returns the resulting state plus the slices that
// changed. On error, or when nothing changed, the returned state is s itself
// and the slice set is SliceNone.
func Apply(s State, m Mutation) (State, Slice, error) {
	next, changed, err := m.apply(s)
	if err != nil {
		return s, SliceNone, err
	}
	if changed == SliceNone {
		return s, SliceNone, nil
	}
	return next, changed, nil
}

// AddPeople merges ingestion candidates into the roster, skipping any whose
// (name, role) already exists.
type AddPeople struct {
	Candidates []domain.Person
}

func (m AddPeople) apply(s State) (State, Slice, error) {
	accepted := ingest.Dedupe(s.people, m.Candidates)
	if len(accepted) == 0 {
		return s, SliceNone, nil
	}
	next := s
	next.people = append(clonePeople(s.people), accepted...)
	return next, SlicePeople, nil
}

// CreateTeam appends a team named Name with the given id.
type CreateTeam struct {
	ID   string
	Name string
}

func (m CreateTeam) apply(s State) (State, Slice, error) {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return s, SliceNone, domain.ErrEmptyTeamName
	}
	if existing, ok := s.TeamByName(name); ok {
		return s, SliceNone, &domain.DuplicateTeamError{Name: name, Existing: existing}
	}
	next := s
	next.teams = append(s.Teams(), domain.Team{ID: m.ID, Name: name})
	return next, SliceTeams, nil
}

// ReplaceAll swaps the whole state for an imported snapshot.
type ReplaceAll struct {
	Snapshot domain.Snapshot
}

func (m ReplaceAll) apply(State) (State, Slice, error) {
	return FromSnapshot(m.Snapshot), SliceAll, nil
}
