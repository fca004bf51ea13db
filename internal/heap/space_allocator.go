package heap

import (
	"unsafe"

	"github.com/orizon-lang/orizon/internal/allocator"
	"github.com/orizon-lang/orizon/internal/errors"
)

// AllocatorSpace adapts the runtime's own allocator.Allocator (the
// bump/arena allocator used everywhere else in this tree for manual
// memory layout) into the Space contract this package consumes. It is
// the concrete backing for structure/table construction in
// non-test code; reusing the runtime's own arena rather than
// inventing a parallel one keeps a single allocation story across the
// runtime.
type AllocatorSpace struct {
	alloc allocator.Allocator
}

// NewAllocatorSpace wraps an existing allocator.Allocator (typically
// an *allocator.ArenaAllocatorImpl) as a Space.
func NewAllocatorSpace(alloc allocator.Allocator) *AllocatorSpace {
	return &AllocatorSpace{alloc: alloc}
}

// NewArenaSpace is a convenience constructor building a fresh arena of
// the given size, configured for align-byte alignment, and wrapping
// it as a Space.
func NewArenaSpace(size, align uintptr) (*AllocatorSpace, error) {
	arena, err := allocator.NewArenaAllocator(size, &allocator.Config{
		ArenaSize:     size,
		AlignmentSize: align,
	})
	if err != nil {
		return nil, err
	}

	return NewAllocatorSpace(arena), nil
}

// aligningAllocator is implemented by allocator.ArenaAllocatorImpl but
// is not part of the allocator.Allocator interface itself; when the
// wrapped allocator supports it, Alloc uses it to honor a per-call
// alignment instead of only the arena's configured default.
type aligningAllocator interface {
	AllocAligned(size, alignment uintptr) unsafe.Pointer
}

// Alloc satisfies Space by delegating to the wrapped allocator.
func (s *AllocatorSpace) Alloc(size, align uintptr) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer

	if aligning, ok := s.alloc.(aligningAllocator); ok {
		ptr = aligning.AllocAligned(size, align)
	} else {
		ptr = s.alloc.Alloc(size)
	}

	if ptr == nil {
		return nil, errors.NewStandardError(errors.CategoryMemory,
			"OUT_OF_MEMORY", "space allocation failed",
			map[string]interface{}{"size": size, "align": align})
	}

	if uintptr(ptr)%align != 0 {
		return nil, errors.PointerArithmetic("allocator returned misaligned memory for requested alignment")
	}

	return ptr, nil
}

// Stats exposes the wrapped allocator's bookkeeping, useful for tests
// and the demo command to report how much of the arena a scenario
// consumed.
func (s *AllocatorSpace) Stats() allocator.AllocatorStats {
	return s.alloc.Stats()
}
