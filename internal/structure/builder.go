package structure

import (
	"github.com/orizon-lang/orizon/internal/errors"
	"github.com/orizon-lang/orizon/internal/heap"
)

// StructureBuilder accumulates a fixed property table in memory
// before committing it to a single managed structure, instead of
// forking a fresh transition for each property the way one-at-a-time
// addition does. Useful for building the shape of an object literal
// or a class's instance fields in one shot.
type StructureBuilder struct {
	prototype heap.Ref
	table     PropertyTable
}

// NewStructureBuilder starts an empty builder for the given prototype.
func NewStructureBuilder(prototype heap.Ref) *StructureBuilder {
	return &StructureBuilder{
		prototype: prototype,
		table:     NewPropertyTable(),
	}
}

// Find looks up symbol's current entry, or the not-found sentinel.
func (b *StructureBuilder) Find(symbol Symbol) MapEntry {
	return b.table.Get(symbol)
}

// Add appends symbol at the next free offset, assigning attrs. It
// panics if symbol is already present — callers are expected to check
// Find first.
func (b *StructureBuilder) Add(symbol Symbol, attrs AttrSafe) MapEntry {
	if !b.Find(symbol).IsNotFound() {
		panic(errors.NewStandardError(errors.CategoryValidation,
			"DUPLICATE_PROPERTY", "builder already has an entry for this symbol", nil))
	}

	entry := MapEntry{Offset: uint32(b.table.Len()), Attrs: attrs}
	b.table.Set(symbol, entry)

	return entry
}

// AddWithIndex is Add but at an explicit offset, for callers that
// must control slot layout directly (e.g. mirroring argument
// positions).
func (b *StructureBuilder) AddWithIndex(symbol Symbol, index uint32, attrs AttrSafe) {
	if !b.Find(symbol).IsNotFound() {
		panic(errors.NewStandardError(errors.CategoryValidation,
			"DUPLICATE_PROPERTY", "builder already has an entry for this symbol", nil))
	}

	b.table.Set(symbol, MapEntry{Offset: index, Attrs: attrs})
}

// OverrideProperty replaces symbol's entry outright, including for a
// symbol not previously added.
func (b *StructureBuilder) OverrideProperty(symbol Symbol, entry MapEntry) {
	b.table.Set(symbol, entry)
}

// Build commits the accumulated table to a new root structure.
func (b *StructureBuilder) Build(space heap.Space, unique, indexed bool) (heap.Ref, error) {
	tableManaged, err := heap.Alloc[PropertyTable, *PropertyTable](space, TableTypeID, b.table)
	if err != nil {
		return heap.Ref{}, err
	}

	return FromTable(space, tableManaged.AsRef(), b.prototype, unique, indexed)
}
