package heap

import "testing"

// newTestSpace builds a small arena-backed Space for unit tests,
// exercising the same AllocatorSpace production code uses rather than
// a bespoke test fake.
func newTestSpace(t *testing.T) Space {
	t.Helper()

	space, err := NewArenaSpace(64*1024, 8)
	if err != nil {
		t.Fatalf("NewArenaSpace failed: %v", err)
	}

	return space
}

// visitorFunc adapts a plain function to the Visitor interface.
type visitorFunc func(h *Header)

func (f visitorFunc) Visit(h *Header) { f(h) }
