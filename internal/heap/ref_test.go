package heap

import (
	"testing"
	"unsafe"
)

// intCell is a minimal Cell payload used to exercise Alloc/Downcast.
type intCell struct {
	value int
	kids  []Ref
}

func (c *intCell) Trace(v Visitor) {
	for _, k := range c.kids {
		TraceRef(k, v)
	}
}

func (c *intCell) ComputeSize() uintptr { return unsafe.Sizeof(*c) }

var intCellType = RegisterCellType[intCell, *intCell]("intCell")

func TestAllocAndGet(t *testing.T) {
	space := newTestSpace(t)

	m, err := Alloc[intCell, *intCell](space, intCellType, intCell{value: 42})
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}

	if got := m.Get().value; got != 42 {
		t.Errorf("value = %d, want 42", got)
	}

	if !m.Header().IsLive() {
		t.Error("freshly allocated cell should be live")
	}

	if m.Header().Color() != White {
		t.Errorf("color = %v, want White", m.Header().Color())
	}
}

func TestManagedEqual(t *testing.T) {
	space := newTestSpace(t)

	a, _ := Alloc[intCell, *intCell](space, intCellType, intCell{value: 1})
	b, _ := Alloc[intCell, *intCell](space, intCellType, intCell{value: 2})

	if a.Equal(b) {
		t.Error("distinct cells should not be Equal")
	}

	if !a.Equal(a) {
		t.Error("a cell should Equal itself")
	}

	if !SameCell(a.AsRef(), a.AsRef()) {
		t.Error("SameCell should hold for the same underlying cell")
	}

	if SameCell(a.AsRef(), b.AsRef()) {
		t.Error("SameCell should not hold across distinct cells")
	}
}

func TestDowncast(t *testing.T) {
	space := newTestSpace(t)

	m, _ := Alloc[intCell, *intCell](space, intCellType, intCell{value: 7})
	ref := m.AsRef()

	got, err := Downcast[intCell, *intCell](ref, intCellType)
	if err != nil {
		t.Fatalf("Downcast failed: %v", err)
	}

	if got.Get().value != 7 {
		t.Errorf("value = %d, want 7", got.Get().value)
	}

	otherType := RegisterCellType[struct{ x int }, *struct{ x int }]("other")
	if _, err := Downcast[struct{ x int }, *struct{ x int }](ref, otherType); err == nil {
		t.Error("Downcast to an unrelated type should fail")
	}
}

func TestDowncastNilRef(t *testing.T) {
	if _, err := Downcast[intCell, *intCell](Ref{}, intCellType); err == nil {
		t.Error("Downcast of a nil Ref should fail")
	}
}

func TestZap(t *testing.T) {
	space := newTestSpace(t)

	m, _ := Alloc[intCell, *intCell](space, intCellType, intCell{value: 3})
	m.Header().Zap()

	if m.Header().IsLive() {
		t.Error("zapped cell should not be live")
	}

	if m.Header().TypeID() != 0 {
		t.Error("zapped cell's TypeID should be 0")
	}
}

func TestTraceChildrenVisitsOwnedRefs(t *testing.T) {
	space := newTestSpace(t)

	child, _ := Alloc[intCell, *intCell](space, intCellType, intCell{value: 1})
	parent, _ := Alloc[intCell, *intCell](space, intCellType, intCell{
		value: 2,
		kids:  []Ref{child.AsRef()},
	})

	var visited []*Header

	collector := visitorFunc(func(h *Header) { visited = append(visited, h) })
	parent.AsRef().TraceChildren(collector)

	if len(visited) != 1 || visited[0] != child.Header() {
		t.Errorf("TraceChildren visited %v, want [child header]", visited)
	}
}

func TestTraceChildrenNoopOnZappedCell(t *testing.T) {
	space := newTestSpace(t)

	child, _ := Alloc[intCell, *intCell](space, intCellType, intCell{value: 1})
	parent, _ := Alloc[intCell, *intCell](space, intCellType, intCell{
		value: 2,
		kids:  []Ref{child.AsRef()},
	})
	parent.Header().Zap()

	visited := 0
	collector := visitorFunc(func(h *Header) { visited++ })
	parent.AsRef().TraceChildren(collector)

	if visited != 0 {
		t.Errorf("TraceChildren on a zapped cell visited %d refs, want 0", visited)
	}
}
