package identity

import (
	"strings"
	"testing"
)

func TestUUIDGeneratorIDsAreUnique(t *testing.T) {
	gen := NewUUIDGenerator()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := gen.PersonID()
		if !strings.HasPrefix(id, "person-") {
			t.Fatalf("unexpected person id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestUUIDGeneratorTeamSlug(t *testing.T) {
	id := NewUUIDGenerator().TeamID("  Design   Team ")
	if !strings.HasPrefix(id, "team-Design-Team-") {
		t.Fatalf("unexpected team id %q", id)
	}
	if id := NewUUIDGenerator().TeamID("   "); strings.HasPrefix(id, "team--") {
		t.Fatalf("blank name should not leave an empty slug: %q", id)
	}
}
