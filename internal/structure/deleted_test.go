package structure

import "testing"

func TestDeletedSlotsPushPop(t *testing.T) {
	space := newTestSpace(t)

	var d DeletedSlots
	if !d.Empty() {
		t.Fatalf("fresh DeletedSlots should be empty")
	}

	if err := d.Push(space, 4); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if err := d.Push(space, 7); err != nil {
		t.Fatalf("Push: %v", err)
	}

	if d.Size() != 2 {
		t.Fatalf("expected size 2, got %d", d.Size())
	}

	if got := d.Pop(); got != 7 {
		t.Fatalf("expected LIFO pop to return 7, got %d", got)
	}

	if got := d.Pop(); got != 4 {
		t.Fatalf("expected next pop to return 4, got %d", got)
	}

	if !d.Empty() {
		t.Fatalf("DeletedSlots should be empty after popping every entry")
	}
}

func TestDeletedSlotsPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Pop on an empty stack should panic")
		}
	}()

	var d DeletedSlots
	d.Pop()
}
