package roster

import (
	"slices"

	"github.com/spec-kit/team-organiser/internal/domain"
)

// EffectiveOrder returns the display order of teamID's members.
//
// A non-empty stored entry is filtered down to ids whose person is still in
// the team, keeping relative order and dropping repeats. Members missing from
// the entry are not appended. Without an entry the natural membership order is
// used. The stored entry is never modified.
func (s State) EffectiveOrder(teamID string) []string {
	entry := s.order[teamID]
	if len(entry) == 0 {
		return s.naturalOrder(teamID)
	}
	members := make(map[string]struct{})
	for _, person := range s.people {
		if person.InTeam(teamID) {
			members[person.ID] = struct{}{}
		}
	}
	ordered := make([]string, 0, len(entry))
	seen := make(map[string]struct{}, len(entry))
	for _, id := range entry {
		if _, ok := members[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	return ordered
}

// EffectiveMembers resolves EffectiveOrder to person records.
func (s State) EffectiveMembers(teamID string) []domain.Person {
	ids := s.EffectiveOrder(teamID)
	members := make([]domain.Person, 0, len(ids))
	for _, id := range ids {
		if person, ok := s.Person(id); ok {
			members = append(members, person)
		}
	}
	return members
}

func (s State) naturalOrder(teamID string) []string {
	ids := []string{}
	for _, person := range s.people {
		if person.InTeam(teamID) {
			ids = append(ids, person.ID)
		}
	}
	return ids
}

// moveItem removes the element at from and reinserts it at to.
func moveItem(ids []string, from, to int) []string {
	item := ids[from]
	out := slices.Delete(slices.Clone(ids), from, from+1)
	return slices.Insert(out, to, item)
}

// ReconstructOrder rebuilds an order index from people in array order,
// grouping each assigned person under its team exactly once.
func ReconstructOrder(people []domain.Person) domain.OrderIndex {
	order := domain.OrderIndex{}
	for _, person := range people {
		if !person.Assigned() {
			continue
		}
		teamID := person.CurrentTeam()
		if slices.Contains(order[teamID], person.ID) {
			continue
		}
		order[teamID] = append(order[teamID], person.ID)
	}
	return order
}
