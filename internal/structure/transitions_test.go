package structure

import (
	"testing"

	"github.com/orizon-lang/orizon/internal/heap"
)

func fakeSuccessor(t *testing.T, space heap.Space) heap.Ref {
	t.Helper()

	managed, err := heap.Alloc[PropertyTable, *PropertyTable](space, TableTypeID, NewPropertyTable())
	if err != nil {
		t.Fatalf("alloc fake successor: %v", err)
	}

	return managed.AsRef()
}

func TestTransitionStoreEmptyFind(t *testing.T) {
	store := NewTransitionStore(true, false)

	if got := store.Find(Symbol(1), DefaultDataAttrs()); !got.IsNil() {
		t.Fatalf("empty store should find nothing")
	}
}

func TestTransitionStoreSinglePair(t *testing.T) {
	space := newTestSpace(t)
	store := NewTransitionStore(true, false)

	succ := fakeSuccessor(t, space)
	store.Insert(Symbol(1), DefaultDataAttrs(), succ)

	got := store.Find(Symbol(1), DefaultDataAttrs())
	if got.IsNil() || !heap.SameCell(got, succ) {
		t.Fatalf("expected to find the single inserted pair")
	}

	if got := store.Find(Symbol(2), DefaultDataAttrs()); !got.IsNil() {
		t.Fatalf("unrelated key should not be found in single-pair mode")
	}
}

func TestTransitionStorePromotesToTableAndPreservesFlags(t *testing.T) {
	space := newTestSpace(t)
	store := NewTransitionStore(true, false)
	store.SetIndexed(true)
	store.EnableUniqueTransition()

	first := fakeSuccessor(t, space)
	second := fakeSuccessor(t, space)

	store.Insert(Symbol(1), DefaultDataAttrs(), first)
	store.Insert(Symbol(2), DefaultDataAttrs(), second)

	if !store.IsEnabled() {
		t.Fatalf("promoting to table must not clear the enabled flag")
	}

	if !store.IsIndexed() {
		t.Fatalf("promoting to table must not clear the indexed flag")
	}

	if !store.IsEnabledUniqueTransition() {
		t.Fatalf("promoting to table must not clear the unique-transition flag")
	}

	got1 := store.Find(Symbol(1), DefaultDataAttrs())
	got2 := store.Find(Symbol(2), DefaultDataAttrs())

	if got1.IsNil() || !heap.SameCell(got1, first) {
		t.Fatalf("lost the first entry after promotion to table")
	}

	if got2.IsNil() || !heap.SameCell(got2, second) {
		t.Fatalf("lost the second entry after promotion to table")
	}
}

func TestTransitionStoreThirdInsertStaysInTable(t *testing.T) {
	space := newTestSpace(t)
	store := NewTransitionStore(true, false)

	a := fakeSuccessor(t, space)
	b := fakeSuccessor(t, space)
	c := fakeSuccessor(t, space)

	store.Insert(Symbol(1), DefaultDataAttrs(), a)
	store.Insert(Symbol(2), DefaultDataAttrs(), b)
	store.Insert(Symbol(3), DefaultDataAttrs(), c)

	for i, ref := range []heap.Ref{a, b, c} {
		got := store.Find(Symbol(i+1), DefaultDataAttrs())
		if got.IsNil() || !heap.SameCell(got, ref) {
			t.Fatalf("entry %d missing after a third distinct insert", i+1)
		}
	}
}
