package structure

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/heap"
)

func TestRootStructureIsShapedAndEmpty(t *testing.T) {
	space := newTestSpace(t)

	root, err := Root(space, heap.Ref{}, true, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	s := mustStructure(t, root)
	if s.SlotsSize() != 0 {
		t.Fatalf("fresh root should have zero slots")
	}

	if s.StorageCapacity() != 0 {
		t.Fatalf("fresh root should need zero storage capacity")
	}
}

func TestStorageCapacityRounding(t *testing.T) {
	cases := []struct {
		slots uint32
		want  uint32
	}{
		{0, 0},
		{1, 8},
		{7, 8},
		{8, 8},
		{9, 16},
		{17, 32},
	}

	for _, c := range cases {
		s := &Structure{calculatedSize: c.slots}
		if got := s.StorageCapacity(); got != c.want {
			t.Fatalf("StorageCapacity(%d): got %d, want %d", c.slots, got, c.want)
		}
	}
}

func TestChangePrototypeWithNoTransitionMutatesInPlace(t *testing.T) {
	space := newTestSpace(t)

	root, err := Root(space, heap.Ref{}, true, false)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}

	protoHolder, err := Root(space, heap.Ref{}, true, false)
	if err != nil {
		t.Fatalf("Root (proto): %v", err)
	}

	s := mustStructure(t, root)
	s.ChangePrototypeWithNoTransition(protoHolder)

	if !heap.SameCell(s.Prototype(), protoHolder) {
		t.Fatalf("prototype was not updated in place")
	}
}
