package roster

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spec-kit/team-organiser/internal/domain"
)

func strPtr(s string) *string { return &s }

func person(id, teamID string) domain.Person {
	p := domain.Person{ID: id, Name: "name-" + id, Role: "role"}
	return p.WithTeam(teamID)
}

func mustApply(t *testing.T, s State, m Mutation) (State, Slice) {
	t.Helper()
	next, changed, err := Apply(s, m)
	if err != nil {
		t.Fatalf("apply %T: %v", m, err)
	}
	return next, changed
}

func baseState() State {
	return New(
		[]domain.Person{person("p1", ""), person("p2", ""), person("p3", "")},
		[]domain.Team{{ID: "team1", Name: "Engineering"}, {ID: "team2", Name: "Design"}},
		nil,
	)
}

func TestAddPeopleDeduplicatesAgainstRoster(t *testing.T) {
	s := Empty()
	first := []domain.Person{{ID: "a1", Name: "Alice", Role: "Developer"}}
	s, changed := mustApply(t, s, AddPeople{Candidates: first})
	if changed != SlicePeople {
		t.Fatalf("expected people slice changed, got %v", changed.Names())
	}
	second := []domain.Person{{ID: "a2", Name: "Alice", Role: "Developer"}}
	s, changed = mustApply(t, s, AddPeople{Candidates: second})
	if changed != SliceNone {
		t.Fatalf("duplicate ingestion must not change state")
	}
	if got := len(s.People()); got != 1 {
		t.Fatalf("expected one Alice/Developer, got %d people", got)
	}
}

func TestCreateTeamRejectsCaseInsensitiveDuplicate(t *testing.T) {
	s, _ := mustApply(t, Empty(), CreateTeam{ID: "t1", Name: " Design Team "})
	_, changed, err := Apply(s, CreateTeam{ID: "t2", Name: "design team"})
	var dup *domain.DuplicateTeamError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTeamError, got %v", err)
	}
	if changed != SliceNone {
		t.Fatalf("failed create must not report changes")
	}
	teams := s.Teams()
	if len(teams) != 1 || teams[0].Name != "Design Team" {
		t.Fatalf("expected single trimmed team, got %+v", teams)
	}
	if len(s.Order()) != 0 {
		t.Fatalf("team creation must not touch the order index")
	}
}

func TestCreateTeamRejectsBlankName(t *testing.T) {
	_, _, err := Apply(Empty(), CreateTeam{ID: "t1", Name: "   "})
	if !errors.Is(err, domain.ErrEmptyTeamName) {
		t.Fatalf("expected ErrEmptyTeamName, got %v", err)
	}
}

func TestAssignThenRemoveRestoresUnassigned(t *testing.T) {
	s := baseState()
	s, changed := mustApply(t, s, AssignToTeam{PersonID: "p1", TargetTeamID: "team1"})
	if changed != SlicePeople|SliceOrder {
		t.Fatalf("expected people+order changed, got %v", changed.Names())
	}
	if entry, _ := s.Order().Entry("team1"); !reflect.DeepEqual(entry, []string{"p1"}) {
		t.Fatalf("expected [p1], got %v", entry)
	}

	s, _ = mustApply(t, s, RemoveFromTeam{PersonID: "p1"})
	p1, _ := s.Person("p1")
	if p1.Assigned() {
		t.Fatalf("p1 should be unassigned")
	}
	if s.Order().Has("team1", "p1") {
		t.Fatalf("p1 should be pruned from team1 order")
	}
	if _, ok := s.Order().Entry("team1"); !ok {
		t.Fatalf("pruning must keep the (now empty) entry")
	}
}

func TestAssignMovesBetweenTeams(t *testing.T) {
	s := baseState()
	s, _ = mustApply(t, s, AssignToTeam{PersonID: "p1", TargetTeamID: "team1"})
	s, _ = mustApply(t, s, AssignToTeam{PersonID: "p2", TargetTeamID: "team1"})
	s, _ = mustApply(t, s, AssignToTeam{PersonID: "p1", TargetTeamID: "team2", SourceTeamID: "team1"})

	if got := s.EffectiveOrder("team1"); !reflect.DeepEqual(got, []string{"p2"}) {
		t.Fatalf("team1 order: %v", got)
	}
	if got := s.EffectiveOrder("team2"); !reflect.DeepEqual(got, []string{"p1"}) {
		t.Fatalf("team2 order: %v", got)
	}
}

func TestAssignPrunesActualTeamWhenSourceIsStale(t *testing.T) {
	s := baseState()
	s, _ = mustApply(t, s, AssignToTeam{PersonID: "p1", TargetTeamID: "team1"})
	s, _ = mustApply(t, s, AssignToTeam{PersonID: "p1", TargetTeamID: "team2"})
	if s.Order().Has("team1", "p1") {
		t.Fatalf("stale source must not leave p1 in team1's entry")
	}
}

func TestAssignSeedsEntryFromMembership(t *testing.T) {
	s := New(
		[]domain.Person{person("p1", "team1"), person("p2", "team1"), person("p3", "")},
		[]domain.Team{{ID: "team1", Name: "Engineering"}},
		nil,
	)
	s, _ = mustApply(t, s, AssignToTeam{PersonID: "p3", TargetTeamID: "team1"})
	want := []string{"p1", "p2", "p3"}
	if entry, _ := s.Order().Entry("team1"); !reflect.DeepEqual(entry, want) {
		t.Fatalf("expected seeded entry %v, got %v", want, entry)
	}
}

func TestAssignIgnoresUnknownIDs(t *testing.T) {
	s := baseState()
	cases := []AssignToTeam{
		{PersonID: "ghost", TargetTeamID: "team1"},
		{PersonID: "p1", TargetTeamID: "no-such-team"},
		{PersonID: "p1", TargetTeamID: ""},
	}
	for _, m := range cases {
		next, changed := mustApply(t, s, m)
		if changed != SliceNone || !reflect.DeepEqual(next.Snapshot(), s.Snapshot()) {
			t.Fatalf("%+v should be a no-op", m)
		}
	}
}

func TestAssignSameTeamLeavesOrder(t *testing.T) {
	s := baseState()
	s, _ = mustApply(t, s, AssignToTeam{PersonID: "p1", TargetTeamID: "team1"})
	_, changed := mustApply(t, s, AssignToTeam{PersonID: "p1", TargetTeamID: "team1", SourceTeamID: "team1"})
	if changed != SliceNone {
		t.Fatalf("drop onto own team should not change anything, got %v", changed.Names())
	}
}

func TestAssignOntoCurrentTeamKeepsNaturalPosition(t *testing.T) {
	s := New(
		[]domain.Person{person("p1", "team1"), person("p2", "team1"), person("p3", "team1")},
		[]domain.Team{{ID: "team1", Name: "Engineering"}},
		nil,
	)
	for _, source := range []string{"", "team2"} {
		next, changed := mustApply(t, s, AssignToTeam{PersonID: "p1", TargetTeamID: "team1", SourceTeamID: source})
		if changed != SliceNone {
			t.Fatalf("source %q: expected no change, got %v", source, changed.Names())
		}
		if got := next.EffectiveOrder("team1"); !reflect.DeepEqual(got, []string{"p1", "p2", "p3"}) {
			t.Fatalf("source %q: order moved to %v", source, got)
		}
	}
}

func TestAssignWithSourceEqualToTargetStillJoins(t *testing.T) {
	s := baseState()
	s, _ = mustApply(t, s, AssignToTeam{PersonID: "p2", TargetTeamID: "team1"})
	s, changed := mustApply(t, s, AssignToTeam{PersonID: "p1", TargetTeamID: "team1", SourceTeamID: "team1"})
	if !changed.Has(SlicePeople) || !changed.Has(SliceOrder) {
		t.Fatalf("expected people and order to change, got %v", changed.Names())
	}
	if got := s.EffectiveOrder("team1"); !reflect.DeepEqual(got, []string{"p2", "p1"}) {
		t.Fatalf("team1 order: %v", got)
	}
}

func TestRemoveIgnoresUnknownAndUnassigned(t *testing.T) {
	s := baseState()
	for _, id := range []string{"ghost", "p1"} {
		if _, changed := mustApply(t, s, RemoveFromTeam{PersonID: id}); changed != SliceNone {
			t.Fatalf("remove %s should be a no-op", id)
		}
	}
}

func reorderState(t *testing.T) State {
	s := baseState()
	for _, id := range []string{"p1", "p2", "p3"} {
		s, _ = mustApply(t, s, AssignToTeam{PersonID: id, TargetTeamID: "team1"})
	}
	return s
}

func TestReorderMovesItem(t *testing.T) {
	s := reorderState(t)
	s, changed := mustApply(t, s, ReorderWithinTeam{TeamID: "team1", From: 0, To: 2})
	if changed != SliceOrder {
		t.Fatalf("expected order changed")
	}
	want := []string{"p2", "p3", "p1"}
	if got := s.EffectiveOrder("team1"); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	next, changed := mustApply(t, s, ReorderWithinTeam{TeamID: "team1", From: 2, To: 2})
	if changed != SliceNone || !reflect.DeepEqual(next.EffectiveOrder("team1"), want) {
		t.Fatalf("same-index reorder should be a no-op")
	}
}

func TestReorderCreatesEntryFromNaturalOrder(t *testing.T) {
	s := New(
		[]domain.Person{person("p1", "team1"), person("p2", "team1")},
		[]domain.Team{{ID: "team1", Name: "Engineering"}},
		nil,
	)
	s, _ = mustApply(t, s, ReorderWithinTeam{TeamID: "team1", From: 1, To: 0})
	if entry, ok := s.Order().Entry("team1"); !ok || !reflect.DeepEqual(entry, []string{"p2", "p1"}) {
		t.Fatalf("expected entry [p2 p1], got %v (present=%v)", entry, ok)
	}
}

func TestReorderOutOfRange(t *testing.T) {
	s := reorderState(t)
	cases := []ReorderWithinTeam{
		{TeamID: "team1", From: -1, To: 0},
		{TeamID: "team1", From: 0, To: 3},
		{TeamID: "team1", From: 5, To: 1},
	}
	for _, m := range cases {
		next, changed, err := Apply(s, m)
		var oor *domain.IndexOutOfRangeError
		if !errors.As(err, &oor) {
			t.Fatalf("%+v: expected IndexOutOfRangeError, got %v", m, err)
		}
		if oor.Length != 3 {
			t.Fatalf("expected length 3, got %d", oor.Length)
		}
		if changed != SliceNone || !reflect.DeepEqual(next.Snapshot(), s.Snapshot()) {
			t.Fatalf("%+v must not mutate", m)
		}
	}
}

func TestReorderUnknownTeamIsNoop(t *testing.T) {
	s := reorderState(t)
	if _, changed, err := Apply(s, ReorderWithinTeam{TeamID: "ghost", From: 0, To: 1}); err != nil || changed != SliceNone {
		t.Fatalf("expected silent no-op, got changed=%v err=%v", changed.Names(), err)
	}
}

func TestEffectiveOrderFiltersStaleIDs(t *testing.T) {
	s := New(
		[]domain.Person{person("p1", "team1"), person("p2", "team2"), person("p3", "team1")},
		[]domain.Team{{ID: "team1", Name: "A"}, {ID: "team2", Name: "B"}},
		domain.OrderIndex{"team1": {"p3", "p2", "gone", "p1", "p3"}},
	)
	want := []string{"p3", "p1"}
	if got := s.EffectiveOrder("team1"); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if entry, _ := s.Order().Entry("team1"); len(entry) != 5 {
		t.Fatalf("read path must not rewrite the stored entry: %v", entry)
	}
	if got := s.EffectiveOrder("team2"); !reflect.DeepEqual(got, []string{"p2"}) {
		t.Fatalf("team without entry should use natural order, got %v", got)
	}
	if got := s.EffectiveOrder("nobody"); len(got) != 0 {
		t.Fatalf("unknown team should have empty order, got %v", got)
	}
}

func TestEffectiveOrderDoesNotAppendMissingMembers(t *testing.T) {
	s := New(
		[]domain.Person{person("p1", "team1"), person("p2", "team1")},
		[]domain.Team{{ID: "team1", Name: "A"}},
		domain.OrderIndex{"team1": {"p2"}},
	)
	if got := s.EffectiveOrder("team1"); !reflect.DeepEqual(got, []string{"p2"}) {
		t.Fatalf("got %v", got)
	}
}

func TestReconstructOrder(t *testing.T) {
	people := []domain.Person{
		{ID: "p1", TeamID: strPtr("t1")},
		{ID: "p2"},
		{ID: "p3", TeamID: strPtr("t2")},
		{ID: "p4", TeamID: strPtr("t1")},
		{ID: "p1", TeamID: strPtr("t1")},
	}
	want := domain.OrderIndex{"t1": {"p1", "p4"}, "t2": {"p3"}}
	if got := ReconstructOrder(people); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestStateAccessorsReturnCopies(t *testing.T) {
	s := reorderState(t)
	people := s.People()
	people[0] = people[0].WithTeam("team2")
	if p, _ := s.Person(people[0].ID); !p.InTeam("team1") {
		t.Fatalf("mutating People() result leaked into state")
	}
	order := s.Order()
	order["team1"][0] = "zzz"
	if s.EffectiveOrder("team1")[0] == "zzz" {
		t.Fatalf("mutating Order() result leaked into state")
	}
}
