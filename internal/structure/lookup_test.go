package structure

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/heap"
)

func TestGetFindsAddedDeltaWithoutMaterialising(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	root, err := Root(space, heap.Ref{}, false, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	x := syms.Intern("x")

	withX, offset, err := AddPropertyTransition(space, root, x, DefaultDataAttrs())
	if err != nil {
		t.Fatalf("AddPropertyTransition: %v", err)
	}

	entry, err := Get(space, withX, x)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if entry.IsNotFound() || entry.Offset != offset {
		t.Fatalf("Get did not return the freshly added property at offset %d: %+v", offset, entry)
	}
}

func TestGetOnEmptyRootReportsNotFound(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	root, err := Root(space, heap.Ref{}, false, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	entry, err := Get(space, root, syms.Intern("missing"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if !entry.IsNotFound() {
		t.Fatalf("expected not-found on an empty root structure")
	}
}

func TestGetOwnPropertyNamesRespectsEnumerable(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	b := NewStructureBuilder(heap.Ref{})
	visible := syms.Intern("visible")
	hidden := syms.Intern("hidden")

	b.Add(visible, DefaultDataAttrs())
	b.Add(hidden, NewDataAttrs(true, false, true))

	ref, err := b.Build(space, true, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var enumerableOnly []Symbol
	if err := GetOwnPropertyNames(space, ref, false, func(name Symbol, offset uint32) {
		enumerableOnly = append(enumerableOnly, name)
	}); err != nil {
		t.Fatalf("GetOwnPropertyNames: %v", err)
	}

	if len(enumerableOnly) != 1 || enumerableOnly[0] != visible {
		t.Fatalf("expected only the enumerable property, got %v", enumerableOnly)
	}

	var all []Symbol
	if err := GetOwnPropertyNames(space, ref, true, func(name Symbol, offset uint32) {
		all = append(all, name)
	}); err != nil {
		t.Fatalf("GetOwnPropertyNames (include all): %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("expected both properties when include=true, got %v", all)
	}
}
