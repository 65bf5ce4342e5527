// Package roster holds the people/teams/order aggregate and the reducer that
// mutates it. A State value is immutable: every mutation returns a new State.
package roster

import (
	"github.com/spec-kit/team-organiser/internal/domain"
)

// Slice names one independently persisted part of the state.
type Slice uint8

const (
	SlicePeople Slice = 1 << iota
	SliceTeams
	SliceOrder

	SliceNone Slice = 0
	SliceAll        = SlicePeople | SliceTeams | SliceOrder
)

// Has reports whether s includes other.
func (s Slice) Has(other Slice) bool {
	return s&other != 0
}

// Names lists the slices in s, for logging.
func (s Slice) Names() []string {
	var names []string
	if s.Has(SlicePeople) {
		names = append(names, "people")
	}
	if s.Has(SliceTeams) {
		names = append(names, "teams")
	}
	if s.Has(SliceOrder) {
		names = append(names, "order")
	}
	return names
}

// State is the roster aggregate: people, teams and the per-team display order.
type State struct {
	people []domain.Person
	teams  []domain.Team
	order  domain.OrderIndex
}

// Empty returns a state with no people, teams or order entries.
func Empty() State {
	return State{people: []domain.Person{}, teams: []domain.Team{}, order: domain.OrderIndex{}}
}

// New builds a state from copies of the given slices.
func New(people []domain.Person, teams []domain.Team, order domain.OrderIndex) State {
	return State{
		people: clonePeople(people),
		teams:  append([]domain.Team{}, teams...),
		order:  order.Clone(),
	}
}

// FromSnapshot builds a state holding the snapshot's contents.
func FromSnapshot(s domain.Snapshot) State {
	return New(s.People, s.Teams, s.TeamMemberOrder)
}

// Snapshot returns a copy of the whole state in exchange form.
func (s State) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		People:          s.People(),
		Teams:           s.Teams(),
		TeamMemberOrder: s.Order(),
	}
}

// People returns a copy of every person in insertion order.
func (s State) People() []domain.Person {
	return clonePeople(s.people)
}

// Teams returns a copy of every team in creation order.
func (s State) Teams() []domain.Team {
	return append([]domain.Team{}, s.teams...)
}

// Order returns a copy of the stored order index.
func (s State) Order() domain.OrderIndex {
	return s.order.Clone()
}

// Person looks up a person by id.
func (s State) Person(id string) (domain.Person, bool) {
	if i := s.personIndex(id); i >= 0 {
		return clonePerson(s.people[i]), true
	}
	return domain.Person{}, false
}

// Team looks up a team by id.
func (s State) Team(id string) (domain.Team, bool) {
	for _, team := range s.teams {
		if team.ID == id {
			return team, true
		}
	}
	return domain.Team{}, false
}

// TeamByName finds a team whose name matches case-insensitively after trimming.
func (s State) TeamByName(name string) (domain.Team, bool) {
	for _, team := range s.teams {
		if team.NameMatches(name) {
			return team, true
		}
	}
	return domain.Team{}, false
}

// Members returns the people in teamID in natural (insertion) order.
func (s State) Members(teamID string) []domain.Person {
	var members []domain.Person
	for _, person := range s.people {
		if person.InTeam(teamID) {
			members = append(members, clonePerson(person))
		}
	}
	return members
}

// Unassigned returns the people without a team in insertion order.
func (s State) Unassigned() []domain.Person {
	var out []domain.Person
	for _, person := range s.people {
		if !person.Assigned() {
			out = append(out, clonePerson(person))
		}
	}
	return out
}

func (s State) personIndex(id string) int {
	for i, person := range s.people {
		if person.ID == id {
			return i
		}
	}
	return -1
}

func clonePeople(people []domain.Person) []domain.Person {
	out := make([]domain.Person, len(people))
	for i, person := range people {
		out[i] = clonePerson(person)
	}
	return out
}

func clonePerson(p domain.Person) domain.Person {
	if p.TeamID != nil {
		return p.WithTeam(*p.TeamID)
	}
	return p
}
