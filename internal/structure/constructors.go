package structure

import "github.com/orizon-lang/orizon/internal/heap"

// Derive allocates a new structure one step past previous in the
// transition tree: same prototype, same deleted-slot stack, and
// (when not unique and the previous structure was unique) the
// previous structure's own table reused rather than re-walked. This
// is the workhorse every transition operation below builds on.
func Derive(space heap.Space, previous heap.Ref, unique bool) (heap.Ref, error) {
	prevManaged, err := resolveStructure(previous)
	if err != nil {
		return heap.Ref{}, err
	}

	prev := prevManaged.Get()

	table := heap.Ref{}
	if unique && prev.IsUnique() {
		table = prev.table
	}

	next := Structure{
		previous:    previous,
		prototype:   prev.prototype,
		table:       table,
		transitions: NewTransitionStore(!unique, prev.transitions.IsIndexed()),
		deleted:     prev.deleted,
		addedName:   DummySymbol,
		addedEntry:  MapEntryNotFound(),
	}

	managed, err := heap.Alloc[Structure, *Structure](space, StructureTypeID, next)
	if err != nil {
		return heap.Ref{}, err
	}

	managed.Get().calculatedSize = managed.Get().SlotsSize()

	return managed.AsRef(), nil
}

// Root allocates a structure with no predecessor: the structure every
// brand-new, property-less object starts from.
func Root(space heap.Space, prototype heap.Ref, unique, indexed bool) (heap.Ref, error) {
	next := Structure{
		prototype:   prototype,
		transitions: NewTransitionStore(!unique, indexed),
		addedName:   DummySymbol,
		addedEntry:  MapEntryNotFound(),
	}

	managed, err := heap.Alloc[Structure, *Structure](space, StructureTypeID, next)
	if err != nil {
		return heap.Ref{}, err
	}

	return managed.AsRef(), nil
}

// FromTable allocates a root structure with a pre-existing property
// table (table may be the zero Ref, meaning none yet).
func FromTable(space heap.Space, table, prototype heap.Ref, unique, indexed bool) (heap.Ref, error) {
	ref, err := Root(space, prototype, unique, indexed)
	if err != nil {
		return heap.Ref{}, err
	}

	managed, err := resolveStructure(ref)
	if err != nil {
		return heap.Ref{}, err
	}

	managed.Get().table = table
	managed.Get().calculatedSize = managed.Get().SlotsSize()

	return ref, nil
}

// Pair is one (name, entry) association fed to FromPairs.
type Pair struct {
	Name  Symbol
	Entry MapEntry
}

// FromPairs allocates a root, shared, non-indexed structure whose
// table is pre-populated from pairs — used to build the structure for
// object literals and similar fixed-shape values in one step.
func FromPairs(space heap.Space, pairs []Pair) (heap.Ref, error) {
	table := NewPropertyTable()
	for _, p := range pairs {
		table.Set(p.Name, p.Entry)
	}

	tableManaged, err := heap.Alloc[PropertyTable, *PropertyTable](space, TableTypeID, table)
	if err != nil {
		return heap.Ref{}, err
	}

	next := Structure{
		table:       tableManaged.AsRef(),
		transitions: NewTransitionStore(true, false),
		addedName:   DummySymbol,
		addedEntry:  MapEntryNotFound(),
	}

	managed, err := heap.Alloc[Structure, *Structure](space, StructureTypeID, next)
	if err != nil {
		return heap.Ref{}, err
	}

	managed.Get().calculatedSize = managed.Get().SlotsSize()

	return managed.AsRef(), nil
}

// New allocates a shared (non-unique) successor to previous.
func New(space heap.Space, previous heap.Ref) (heap.Ref, error) {
	return Derive(space, previous, false)
}

// NewUnique allocates a unique successor to previous.
func NewUnique(space heap.Space, previous heap.Ref) (heap.Ref, error) {
	return Derive(space, previous, true)
}

// NewUniqueWithPrototype allocates a unique root structure with the
// given prototype.
func NewUniqueWithPrototype(space heap.Space, prototype heap.Ref, indexed bool) (heap.Ref, error) {
	return Root(space, prototype, true, indexed)
}

// NewIndexed allocates a shared root structure with indexed elements.
func NewIndexed(space heap.Space, prototype heap.Ref, indexed bool) (heap.Ref, error) {
	return Root(space, prototype, false, indexed)
}

// NewUniqueIndexed allocates a unique root structure with indexed
// elements.
func NewUniqueIndexed(space heap.Space, prototype heap.Ref, indexed bool) (heap.Ref, error) {
	return Root(space, prototype, true, indexed)
}

// FromPoint returns self unchanged if it is already shared, or a
// fresh unique successor otherwise — the entry point used whenever
// code is about to mutate a structure in place and needs to guarantee
// it is not observed by any other object first.
func FromPoint(space heap.Space, self heap.Ref) (heap.Ref, error) {
	managed, err := resolveStructure(self)
	if err != nil {
		return heap.Ref{}, err
	}

	if managed.Get().IsUnique() {
		return NewUnique(space, self)
	}

	return self, nil
}
