package structure

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/heap"
)

func TestDeriveSharedReusesUniquePredecessorTable(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	root, err := NewUnique(space, mustRoot(t, space))
	if err != nil {
		t.Fatalf("NewUnique: %v", err)
	}

	withX, _, err := AddPropertyTransition(space, root, syms.Intern("x"), DefaultDataAttrs())
	if err != nil {
		t.Fatalf("AddPropertyTransition: %v", err)
	}

	next, err := Derive(space, withX, true)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	nextStruct := mustStructure(t, next)
	withXStruct := mustStructure(t, withX)

	if !heap.SameCell(nextStruct.table, withXStruct.table) {
		t.Fatalf("Derive(unique, from unique) should reuse the predecessor's table")
	}
}

func TestFromTableStartsWithGivenTable(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	table := NewPropertyTable()
	table.Set(syms.Intern("x"), MapEntry{Offset: 0, Attrs: DefaultDataAttrs()})

	tableManaged, err := heap.Alloc[PropertyTable, *PropertyTable](space, TableTypeID, table)
	if err != nil {
		t.Fatalf("Alloc table: %v", err)
	}

	ref, err := FromTable(space, tableManaged.AsRef(), heap.Ref{}, true, false)
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}

	if got := mustStructure(t, ref).SlotsSize(); got != 1 {
		t.Fatalf("expected 1 pre-populated slot, got %d", got)
	}
}

func TestFromPairsBuildsPrePopulatedStructure(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	ref, err := FromPairs(space, []Pair{
		{Name: syms.Intern("a"), Entry: MapEntry{Offset: 0, Attrs: DefaultDataAttrs()}},
		{Name: syms.Intern("b"), Entry: MapEntry{Offset: 1, Attrs: DefaultDataAttrs()}},
	})
	if err != nil {
		t.Fatalf("FromPairs: %v", err)
	}

	s := mustStructure(t, ref)
	if s.SlotsSize() != 2 {
		t.Fatalf("expected 2 slots, got %d", s.SlotsSize())
	}

	entry, err := Get(space, ref, syms.Intern("a"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if entry.IsNotFound() || entry.Offset != 0 {
		t.Fatalf("expected pair 'a' at offset 0, got %+v", entry)
	}
}

func TestFromPointForksUniqueAndPassesSharedThrough(t *testing.T) {
	space := newTestSpace(t)

	shared, err := Root(space, heap.Ref{}, false, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	passedThrough, err := FromPoint(space, shared)
	if err != nil {
		t.Fatalf("FromPoint (shared): %v", err)
	}

	if !heap.SameCell(shared, passedThrough) {
		t.Fatalf("FromPoint on a shared structure must pass it through unchanged")
	}

	unique, err := NewUnique(space, shared)
	if err != nil {
		t.Fatalf("NewUnique: %v", err)
	}

	forked, err := FromPoint(space, unique)
	if err != nil {
		t.Fatalf("FromPoint (unique): %v", err)
	}

	if heap.SameCell(unique, forked) {
		t.Fatalf("FromPoint on an already-unique structure must fork a further successor")
	}

	if !mustStructure(t, forked).IsUnique() {
		t.Fatalf("FromPoint's forked successor must itself be unique")
	}
}

func mustRoot(t *testing.T, space heap.Space) heap.Ref {
	t.Helper()

	ref, err := Root(space, heap.Ref{}, false, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	return ref
}
