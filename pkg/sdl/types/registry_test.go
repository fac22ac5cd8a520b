package types

import "testing"

type fakeNamed string

func (f fakeNamed) TypeName() string { return string(f) }

func TestRegistryAssignsIncreasingIDsWithinKind(t *testing.T) {
	r := NewRegistry()
	//
	first := r.Register(KindItem, fakeNamed("a"))
	second := r.Register(KindItem, fakeNamed("b"))
	//
	if first < ItemMin {
		t.Errorf("first ITEM id %d below ItemMin %d", first, ItemMin)
	}
	//
	if second <= first {
		t.Errorf("second id %d did not increase past first id %d", second, first)
	}
}

func TestRegistryRangesAreDisjoint(t *testing.T) {
	r := NewRegistry()
	//
	declID := r.Register(KindDeclare, fakeNamed("D"))
	itemID := r.Register(KindItem, fakeNamed("I"))
	aggID := r.Register(KindAggregate, fakeNamed("A"))
	enumID := r.Register(KindEnum, fakeNamed("E"))
	//
	if !IsDeclare(declID) || IsItem(declID) || IsAggregate(declID) || IsEnum(declID) {
		t.Errorf("DECLARE id %d not uniquely in the DECLARE range", declID)
	}
	//
	if !IsItem(itemID) || IsDeclare(itemID) || IsAggregate(itemID) || IsEnum(itemID) {
		t.Errorf("ITEM id %d not uniquely in the ITEM range", itemID)
	}
	//
	if !IsAggregate(aggID) || IsDeclare(aggID) || IsItem(aggID) || IsEnum(aggID) {
		t.Errorf("AGGREGATE id %d not uniquely in the AGGREGATE range", aggID)
	}
	//
	if !IsEnum(enumID) || IsDeclare(enumID) || IsItem(enumID) || IsAggregate(enumID) {
		t.Errorf("ENUM id %d not uniquely in the ENUM range", enumID)
	}
}

func TestRegistryLookupByNameAndByID(t *testing.T) {
	r := NewRegistry()
	id := r.Register(KindItem, fakeNamed("widget"))
	//
	got, ok := r.LookupByName(KindItem, "widget")
	if !ok || got != id {
		t.Fatalf("LookupByName = (%d, %v), want (%d, true)", got, ok, id)
	}
	//
	if _, ok := r.LookupByName(KindItem, "missing"); ok {
		t.Error("LookupByName found a name that was never registered")
	}
	//
	rec, ok := r.LookupByID(id)
	if !ok || rec.TypeName() != "widget" {
		t.Fatalf("LookupByID = (%v, %v), want widget record", rec, ok)
	}
}

func TestRegistryResolveTriesEachKindInOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(KindAggregate, fakeNamed("shared"))
	//
	if got := r.Resolve("shared"); got == NoneID {
		t.Fatal("Resolve failed to find a name registered under AGGREGATE")
	}
	//
	if got := r.Resolve("nope"); got != NoneID {
		t.Errorf("Resolve(%q) = %d, want NoneID", "nope", got)
	}
}

func TestRegisterUniqueRejectsDuplicateNames(t *testing.T) {
	r := NewRegistry()
	//
	if _, err := r.RegisterUnique(KindItem, fakeNamed("dup")); err != nil {
		t.Fatalf("first RegisterUnique failed: %v", err)
	}
	//
	if _, err := r.RegisterUnique(KindItem, fakeNamed("dup")); err == nil {
		t.Error("second RegisterUnique with the same name did not error")
	}
}
