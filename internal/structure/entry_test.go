package structure

import "testing"

func TestMapEntryNotFound(t *testing.T) {
	e := MapEntryNotFound()

	if !e.IsNotFound() {
		t.Fatalf("MapEntryNotFound should report IsNotFound")
	}

	if e.Offset != notFoundOffset {
		t.Fatalf("expected sentinel offset %d, got %d", notFoundOffset, e.Offset)
	}
}

func TestMapEntryFound(t *testing.T) {
	e := MapEntry{Offset: 3, Attrs: DefaultDataAttrs()}

	if e.IsNotFound() {
		t.Fatalf("a real entry must not report IsNotFound")
	}
}
