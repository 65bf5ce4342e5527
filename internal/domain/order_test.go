package domain

import (
	"reflect"
	"testing"
)

func TestOrderIndexAppendedGuardsDuplicates(t *testing.T) {
	idx := OrderIndex{"t1": {"p1"}}
	got := idx.Appended("t1", "p1")
	if !reflect.DeepEqual(got["t1"], []string{"p1"}) {
		t.Fatalf("expected single p1, got %v", got["t1"])
	}
	got = idx.Appended("t2", "p2")
	if !reflect.DeepEqual(got["t2"], []string{"p2"}) {
		t.Fatalf("expected new entry for t2, got %v", got["t2"])
	}
	if _, ok := idx["t2"]; ok {
		t.Fatalf("original index must not change")
	}
}

func TestOrderIndexWithoutLeavesMissingEntriesAbsent(t *testing.T) {
	idx := OrderIndex{"t1": {"p1", "p2"}}
	got := idx.Without("t1", "p1")
	if !reflect.DeepEqual(got["t1"], []string{"p2"}) {
		t.Fatalf("expected [p2], got %v", got["t1"])
	}
	if !reflect.DeepEqual(idx["t1"], []string{"p1", "p2"}) {
		t.Fatalf("original entry mutated: %v", idx["t1"])
	}
	if _, ok := idx.Without("t9", "p1")["t9"]; ok {
		t.Fatalf("pruning must not create an entry")
	}
}

func TestOrderIndexCloneAndEqual(t *testing.T) {
	var nilIdx OrderIndex
	if c := nilIdx.Clone(); c == nil || len(c) != 0 {
		t.Fatalf("nil index should clone to empty map, got %#v", c)
	}
	idx := OrderIndex{"t1": {"a", "b"}}
	c := idx.Clone()
	c["t1"][0] = "z"
	if idx["t1"][0] != "a" {
		t.Fatalf("clone shares backing array")
	}
	if idx.Equal(c) {
		t.Fatalf("expected indexes to differ")
	}
	if !idx.Equal(OrderIndex{"t1": {"a", "b"}}) {
		t.Fatalf("expected equal indexes")
	}
}

func TestPersonWithTeam(t *testing.T) {
	p := Person{ID: "p1", Name: "Alice", Role: "Developer"}
	assigned := p.WithTeam("t1")
	if !assigned.InTeam("t1") || p.Assigned() {
		t.Fatalf("WithTeam must copy: original=%+v assigned=%+v", p, assigned)
	}
	if assigned.WithTeam("").Assigned() {
		t.Fatalf("empty team should unassign")
	}
}
