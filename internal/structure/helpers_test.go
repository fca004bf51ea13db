package structure

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/heap"
)

func newTestSpace(t *testing.T) heap.Space {
	t.Helper()

	space, err := heap.NewArenaSpace(256*1024, 8)
	if err != nil {
		t.Fatalf("NewArenaSpace: %v", err)
	}

	return space
}

func mustStructure(t *testing.T, ref heap.Ref) *Structure {
	t.Helper()

	managed, err := heap.Downcast[Structure, *Structure](ref, StructureTypeID)
	if err != nil {
		t.Fatalf("downcast structure: %v", err)
	}

	return managed.Get()
}
