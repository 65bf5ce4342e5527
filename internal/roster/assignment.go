package roster

import (
	"slices"

	"github.com/spec-kit/team-organiser/internal/domain"
)

// AssignToTeam moves a person into TargetTeamID. SourceTeamID is the team the
// drag started from, or "" when it started in the unassigned list.
//
// Unknown people and unknown target teams are ignored. Dropping a person onto
// the team they already belong to keeps their display position.
type AssignToTeam struct {
	PersonID     string
	TargetTeamID string
	SourceTeamID string
}

func (m AssignToTeam) apply(s State) (State, Slice, error) {
	idx := s.personIndex(m.PersonID)
	if idx < 0 || m.TargetTeamID == "" {
		return s, SliceNone, nil
	}
	if _, ok := s.Team(m.TargetTeamID); !ok {
		return s, SliceNone, nil
	}

	var changed Slice
	next := s
	previousTeam := s.people[idx].CurrentTeam()
	if previousTeam != m.TargetTeamID {
		next.people = clonePeople(s.people)
		next.people[idx] = next.people[idx].WithTeam(m.TargetTeamID)
		changed |= SlicePeople
	}

	order := s.order
	if m.SourceTeamID != "" && m.SourceTeamID != m.TargetTeamID {
		order = order.Without(m.SourceTeamID, m.PersonID)
	}
	if previousTeam != m.TargetTeamID {
		if previousTeam != "" {
			order = order.Without(previousTeam, m.PersonID)
		}
		if _, ok := order[m.TargetTeamID]; !ok {
			order = order.WithEntry(m.TargetTeamID, s.seedOrder(m.TargetTeamID, m.PersonID))
		}
		order = order.Appended(m.TargetTeamID, m.PersonID)
	}
	if !order.Equal(s.order) {
		next.order = order
		changed |= SliceOrder
	}
	return next, changed, nil
}

// seedOrder is the natural membership of teamID before personID joins it.
func (s State) seedOrder(teamID, personID string) []string {
	seed := []string{}
	for _, id := range s.naturalOrder(teamID) {
		if id != personID {
			seed = append(seed, id)
		}
	}
	return seed
}

// RemoveFromTeam unassigns a person and prunes them from their team's order
// entry. Unknown or already unassigned people are ignored.
type RemoveFromTeam struct {
	PersonID string
}

func (m RemoveFromTeam) apply(s State) (State, Slice, error) {
	idx := s.personIndex(m.PersonID)
	if idx < 0 || !s.people[idx].Assigned() {
		return s, SliceNone, nil
	}
	teamID := s.people[idx].CurrentTeam()

	next := s
	next.people = clonePeople(s.people)
	next.people[idx] = next.people[idx].WithTeam("")
	changed := SlicePeople

	if s.order.Has(teamID, m.PersonID) {
		next.order = s.order.Without(teamID, m.PersonID)
		changed |= SliceOrder
	}
	return next, changed, nil
}

// ReorderWithinTeam moves the member at From to To within the team's effective
// order and stores the result as the team's order entry.
type ReorderWithinTeam struct {
	TeamID string
	From   int
	To     int
}

func (m ReorderWithinTeam) apply(s State) (State, Slice, error) {
	if m.From == m.To {
		return s, SliceNone, nil
	}
	if _, ok := s.Team(m.TeamID); !ok {
		return s, SliceNone, nil
	}
	current := s.EffectiveOrder(m.TeamID)
	if m.From < 0 || m.From >= len(current) || m.To < 0 || m.To >= len(current) {
		return s, SliceNone, &domain.IndexOutOfRangeError{
			TeamID: m.TeamID,
			From:   m.From,
			To:     m.To,
			Length: len(current),
		}
	}
	reordered := moveItem(current, m.From, m.To)
	if stored, ok := s.order.Entry(m.TeamID); ok && slices.Equal(stored, reordered) {
		return s, SliceNone, nil
	}
	next := s
	next.order = s.order.WithEntry(m.TeamID, reordered)
	return next, SliceOrder, nil
}
