package structure

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/heap"
)

func TestStructureBuilderAssignsSequentialOffsets(t *testing.T) {
	syms := NewSymbolTable()
	b := NewStructureBuilder(heap.Ref{})

	x := b.Add(syms.Intern("x"), DefaultDataAttrs())
	y := b.Add(syms.Intern("y"), DefaultDataAttrs())

	if x.Offset != 0 || y.Offset != 1 {
		t.Fatalf("expected sequential offsets 0,1; got %d,%d", x.Offset, y.Offset)
	}
}

func TestStructureBuilderAddDuplicatePanics(t *testing.T) {
	syms := NewSymbolTable()
	b := NewStructureBuilder(heap.Ref{})

	name := syms.Intern("x")
	b.Add(name, DefaultDataAttrs())

	defer func() {
		if recover() == nil {
			t.Fatalf("adding the same symbol twice should panic")
		}
	}()

	b.Add(name, DefaultDataAttrs())
}

func TestStructureBuilderBuild(t *testing.T) {
	space := newTestSpace(t)
	syms := NewSymbolTable()

	b := NewStructureBuilder(heap.Ref{})
	b.Add(syms.Intern("x"), DefaultDataAttrs())
	b.Add(syms.Intern("y"), DefaultDataAttrs())

	ref, err := b.Build(space, true, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	s := mustStructure(t, ref)
	if s.SlotsSize() != 2 {
		t.Fatalf("expected 2 slots, got %d", s.SlotsSize())
	}
}

func TestStructureBuilderOverrideProperty(t *testing.T) {
	syms := NewSymbolTable()
	b := NewStructureBuilder(heap.Ref{})

	name := syms.Intern("x")
	b.Add(name, DefaultDataAttrs())
	b.OverrideProperty(name, MapEntry{Offset: 9, Attrs: NewDataAttrs(false, false, false)})

	got := b.Find(name)
	if got.Offset != 9 {
		t.Fatalf("OverrideProperty did not take effect, got offset %d", got.Offset)
	}
}
