package heap

import "testing"

func TestAllocatorSpaceAlloc(t *testing.T) {
	space, err := NewArenaSpace(4096, 8)
	if err != nil {
		t.Fatalf("NewArenaSpace failed: %v", err)
	}

	ptr, err := space.Alloc(64, 8)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}

	if ptr == nil {
		t.Fatal("Alloc returned a nil pointer")
	}

	if uintptr(ptr)%8 != 0 {
		t.Errorf("pointer %p is not 8-byte aligned", ptr)
	}
}

func TestAllocatorSpaceStats(t *testing.T) {
	space, err := NewArenaSpace(4096, 8)
	if err != nil {
		t.Fatalf("NewArenaSpace failed: %v", err)
	}

	if _, err := space.Alloc(128, 8); err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}

	stats := space.Stats()
	if stats.TotalAllocated == 0 {
		t.Error("expected nonzero TotalAllocated after an allocation")
	}
}

func TestAllocatorSpaceOutOfMemory(t *testing.T) {
	space, err := NewArenaSpace(16, 8)
	if err != nil {
		t.Fatalf("NewArenaSpace failed: %v", err)
	}

	if _, err := space.Alloc(1<<20, 8); err == nil {
		t.Error("expected an error allocating more than the arena's capacity")
	}
}
