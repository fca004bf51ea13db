package structure

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/heap"
)

func TestAddPropertyTransitionCaching(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	root, err := Root(space, heap.Ref{}, false, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	x := syms.Intern("x")

	first, offset1, err := AddPropertyTransition(space, root, x, DefaultDataAttrs())
	if err != nil {
		t.Fatalf("AddPropertyTransition: %v", err)
	}

	second, offset2, err := AddPropertyTransition(space, root, x, DefaultDataAttrs())
	if err != nil {
		t.Fatalf("AddPropertyTransition (repeat): %v", err)
	}

	if !heap.SameCell(first, second) {
		t.Fatalf("adding the same (name, attrs) twice from the same structure should reuse the cached transition")
	}

	if offset1 != offset2 {
		t.Fatalf("cached transition should report the same offset: %d vs %d", offset1, offset2)
	}
}

func TestAddPropertyTransitionDistinctNamesDiverge(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	root, err := Root(space, heap.Ref{}, false, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	x := syms.Intern("x")
	y := syms.Intern("y")

	withX, _, err := AddPropertyTransition(space, root, x, DefaultDataAttrs())
	if err != nil {
		t.Fatalf("add x: %v", err)
	}

	withY, _, err := AddPropertyTransition(space, root, y, DefaultDataAttrs())
	if err != nil {
		t.Fatalf("add y: %v", err)
	}

	if heap.SameCell(withX, withY) {
		t.Fatalf("adding distinct properties from the same root should diverge to different structures")
	}
}

func TestDeletePropertyTransitionRecyclesOffset(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	root, err := Root(space, heap.Ref{}, false, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	x := syms.Intern("x")
	y := syms.Intern("y")

	withX, _, err := AddPropertyTransition(space, root, x, DefaultDataAttrs())
	if err != nil {
		t.Fatalf("add x: %v", err)
	}

	withXY, offsetY, err := AddPropertyTransition(space, withX, y, DefaultDataAttrs())
	if err != nil {
		t.Fatalf("add y: %v", err)
	}

	afterDelete, err := DeletePropertyTransition(space, withXY, y)
	if err != nil {
		t.Fatalf("DeletePropertyTransition: %v", err)
	}

	z := syms.Intern("z")

	_, offsetZ, err := AddPropertyTransition(space, afterDelete, z, DefaultDataAttrs())
	if err != nil {
		t.Fatalf("add z: %v", err)
	}

	if offsetZ != offsetY {
		t.Fatalf("expected z to recycle y's freed offset %d, got %d", offsetY, offsetZ)
	}
}

func TestAddPropertyTransitionEscapesAfterCap(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	current, err := Root(space, heap.Ref{}, false, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	var sharedResults []heap.Ref

	for i := 0; i < 33; i++ {
		name := syms.Intern(string(rune('a' + i)))

		next, _, err := AddPropertyTransition(space, current, name, DefaultDataAttrs())
		if err != nil {
			t.Fatalf("add property %d: %v", i, err)
		}

		sharedResults = append(sharedResults, next)
		current = next
	}

	for i, ref := range sharedResults[:32] {
		s := mustStructure(t, ref)
		if s.IsUnique() {
			t.Fatalf("the first 32 transitions should stay shared, but #%d is unique", i)
		}
	}

	last := mustStructure(t, sharedResults[32])
	if !last.IsUnique() {
		t.Fatalf("the 33rd transition should escape to a unique structure")
	}
}

func TestChangePrototypeTransitionMaterialisesNewStructure(t *testing.T) {
	space := newTestSpace(t)

	root, err := Root(space, heap.Ref{}, false, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	proto, err := Root(space, heap.Ref{}, true, false)
	if err != nil {
		t.Fatalf("Root (proto): %v", err)
	}

	changed, err := ChangePrototypeTransition(space, root, proto)
	if err != nil {
		t.Fatalf("ChangePrototypeTransition: %v", err)
	}

	if heap.SameCell(changed, root) {
		t.Fatalf("changing prototype on a shared structure must not mutate it in place")
	}

	s := mustStructure(t, changed)
	if !heap.SameCell(s.Prototype(), proto) {
		t.Fatalf("new structure does not carry the new prototype")
	}

	if !s.IsUnique() {
		t.Fatalf("a change-prototype transition result must be unique")
	}
}

func TestAllocateTableFiveDeep(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	pairs := []Pair{
		{Name: syms.Intern("base1"), Entry: MapEntry{Offset: 0, Attrs: DefaultDataAttrs()}},
		{Name: syms.Intern("base2"), Entry: MapEntry{Offset: 1, Attrs: DefaultDataAttrs()}},
	}

	ancestor, err := FromPairs(space, pairs)
	if err != nil {
		t.Fatalf("FromPairs: %v", err)
	}

	current := ancestor

	var added []Symbol
	for i := 0; i < 5; i++ {
		name := syms.Intern(string(rune('p' + i)))
		added = append(added, name)

		next, err := Derive(space, current, false)
		if err != nil {
			t.Fatalf("Derive %d: %v", i, err)
		}

		nextS := mustStructure(t, next)
		nextS.addedName = name
		nextS.addedEntry = MapEntry{Offset: nextS.SlotsSize(), Attrs: DefaultDataAttrs()}
		nextS.calculatedSize = nextS.addedEntry.Offset + 1

		current = next
	}

	if err := AllocateTable(space, current); err != nil {
		t.Fatalf("AllocateTable: %v", err)
	}

	final := mustStructure(t, current)
	if !final.previous.IsNil() {
		t.Fatalf("AllocateTable should clear the previous link")
	}

	tbl, err := heap.Downcast[PropertyTable, *PropertyTable](final.table, TableTypeID)
	if err != nil {
		t.Fatalf("downcast table: %v", err)
	}

	for _, name := range append([]Symbol{pairs[0].Name, pairs[1].Name}, added...) {
		if tbl.Get().Get(name).IsNotFound() {
			t.Fatalf("expected materialised table to contain symbol %d", name)
		}
	}
}
