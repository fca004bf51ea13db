package structure

import (
	"github.com/orizon-lang/orizon/internal/heap"
)

// PropertyTable is the materialised Map<Symbol, MapEntry> — the
// complete property map of a structure, once flattened. It is
// allocated through heap.Space like any other managed payload: its
// entries carry no managed references of their own (symbols are plain
// interned values here, not GC references), so Trace is a no-op.
type PropertyTable struct {
	entries map[Symbol]MapEntry
}

// TypeID is the discriminator PropertyTable is registered under.
var TableTypeID = heap.RegisterCellType[PropertyTable, *PropertyTable]("structure.PropertyTable")

// NewPropertyTable builds an empty table.
func NewPropertyTable() PropertyTable {
	return PropertyTable{entries: make(map[Symbol]MapEntry)}
}

// ClonePropertyTable makes an independent copy of src, the Go
// equivalent of the original's `(**cur.table...).clone()` during table
// materialisation.
func ClonePropertyTable(src *PropertyTable) PropertyTable {
	cloned := make(map[Symbol]MapEntry, len(src.entries))
	for k, v := range src.entries {
		cloned[k] = v
	}

	return PropertyTable{entries: cloned}
}

// Len returns the number of live entries.
func (t *PropertyTable) Len() int { return len(t.entries) }

// Get looks up name, returning the not-found sentinel on a miss.
func (t *PropertyTable) Get(name Symbol) MapEntry {
	if e, ok := t.entries[name]; ok {
		return e
	}

	return MapEntryNotFound()
}

// Set inserts or overwrites name's entry.
func (t *PropertyTable) Set(name Symbol, entry MapEntry) {
	t.entries[name] = entry
}

// Delete removes name's entry, returning it and whether it was
// present.
func (t *PropertyTable) Delete(name Symbol) (MapEntry, bool) {
	e, ok := t.entries[name]
	if ok {
		delete(t.entries, name)
	}

	return e, ok
}

// Each calls fn once per live (name, entry) pair, in unspecified
// order — used to enumerate an object's own property names.
func (t *PropertyTable) Each(fn func(name Symbol, entry MapEntry)) {
	for name, entry := range t.entries {
		fn(name, entry)
	}
}

// Trace is a no-op: the table's (Symbol, MapEntry) pairs carry no
// managed references at this layer.
func (t *PropertyTable) Trace(heap.Visitor) {}

// ComputeSize reports an approximate byte footprint for the backing
// map — a Go map has no static size of its own, so this estimates
// rather than reporting an exact figure.
func (t *PropertyTable) ComputeSize() uintptr {
	const approxBytesPerEntry = 48 // map bucket overhead + Symbol + MapEntry

	return uintptr(len(t.entries)) * approxBytesPerEntry
}
