package structure

import (
	"math/bits"
	"unsafe"

	"github.com/orizon-lang/orizon/internal/errors"
	"github.com/orizon-lang/orizon/internal/heap"
)

// StructureID names a structure independent of its storage address;
// callers that cache inline-cache entries key them off this rather
// than a raw pointer.
type StructureID uint32

// Structure is a hidden class: the property map, transition edges,
// prototype link, and deleted-slot free list shared by every JS
// object with the same shape. Adding, deleting, or re-attributing a
// property walks to a neighboring Structure rather than mutating this
// one in place, the same way V8 shapes or SpiderMonkey shapes work.
//
// Structure is itself a managed cell: every reference to one is a
// heap.Ref, and StructureTypeID is the discriminator used to recover
// a typed handle via heap.Downcast.
type Structure struct {
	id             StructureID
	transitions    TransitionStore
	table          heap.Ref // optional PropertyTable; IsNil() means "not yet materialised"
	deleted        DeletedSlots
	addedName      Symbol
	addedEntry     MapEntry
	previous       heap.Ref // optional Structure; IsNil() means root
	prototype      heap.Ref // opaque object reference; IsNil() means no prototype
	calculatedSize uint32
	transitCount   uint32
}

// StructureTypeID is the discriminator Structure is registered under.
var StructureTypeID = heap.RegisterCellType[Structure, *Structure]("structure.Structure")

// maxTransitionCount is the number of single-property transitions a
// shared structure tolerates before escaping to a unique structure on
// the next add; beyond this the transition tree stops growing wider.
const maxTransitionCount = 32

func resolveStructure(ref heap.Ref) (heap.Managed[Structure], error) {
	if ref.IsNil() {
		return heap.Managed[Structure]{}, errors.NewStandardError(errors.CategoryMemory,
			"NULL_STRUCTURE_REF", "structure operation on a nil structure reference", nil)
	}

	return heap.Downcast[Structure, *Structure](ref, StructureTypeID)
}

// ID returns the structure's identity.
func (s *Structure) ID() StructureID { return s.id }

// SetID reassigns the structure's identity. Changing a live
// structure's ID can desynchronize inline caches keyed on it; callers
// must know none exist yet.
func (s *Structure) SetID(id StructureID) { s.id = id }

func (s *Structure) isAddingMap() bool { return s.addedName != DummySymbol }

func (s *Structure) hasTable() bool { return !s.table.IsNil() }

// IsIndexed reports whether the owning object has integer-keyed
// elements.
func (s *Structure) IsIndexed() bool { return s.transitions.IsIndexed() }

// IsUnique reports whether this structure is not shared: property
// changes on a unique structure mutate forward without caching a
// transition edge other objects could reuse.
func (s *Structure) IsUnique() bool { return !s.transitions.IsEnabled() }

// IsShaped reports whether this structure's identity can be used as a
// cache key for property lookups.
func (s *Structure) IsShaped() bool {
	return !s.IsUnique() || s.transitions.IsEnabled()
}

// Prototype returns the structure's prototype reference, or the zero
// Ref if it has none.
func (s *Structure) Prototype() heap.Ref { return s.prototype }

// Flatten latches the unique-transition flag if this structure is
// unique, marking that it has now been forked at least once.
func (s *Structure) Flatten() {
	if s.IsUnique() {
		s.transitions.EnableUniqueTransition()
	}
}

// SlotsSize returns the number of property slots this structure's
// objects need, accounting for recycled deleted slots once a table
// has been materialised.
func (s *Structure) SlotsSize() uint32 {
	if s.hasTable() {
		tbl, err := heap.Downcast[PropertyTable, *PropertyTable](s.table, TableTypeID)
		if err != nil {
			panic(err)
		}

		return uint32(tbl.Get().Len()) + s.deleted.Size()
	}

	return s.calculatedSize
}

// clp2 rounds n up to the next power of two, with clp2(0) == 0.
func clp2(n uint32) uint32 {
	if n == 0 {
		return 0
	}

	return 1 << bits.Len32(n-1)
}

// StorageCapacity returns the slot-array capacity an object with this
// structure should allocate: 0 for an empty structure, at least 8
// slots otherwise, rounded up to a power of two.
func (s *Structure) StorageCapacity() uint32 {
	sz := s.SlotsSize()
	if sz == 0 {
		return 0
	}

	if sz < 8 {
		return 8
	}

	return clp2(sz)
}

// ChangePrototypeWithNoTransition mutates prototype in place without
// creating a new structure. Callers must only use this on a structure
// known not to be shared by any other live object.
func (s *Structure) ChangePrototypeWithNoTransition(prototype heap.Ref) {
	s.prototype = prototype
}

// Get looks up name. It consults the added-but-not-yet-materialised
// delta before falling back to the full table, materialising the
// table on demand if this structure has ancestors to walk.
func Get(space heap.Space, self heap.Ref, name Symbol) (MapEntry, error) {
	managed, err := resolveStructure(self)
	if err != nil {
		return MapEntry{}, err
	}

	s := managed.Get()

	if !s.hasTable() {
		if s.previous.IsNil() {
			return MapEntryNotFound(), nil
		}

		if s.isAddingMap() && s.addedName == name {
			return s.addedEntry, nil
		}

		if err := AllocateTable(space, self); err != nil {
			return MapEntry{}, err
		}
	}

	tbl, err := heap.Downcast[PropertyTable, *PropertyTable](s.table, TableTypeID)
	if err != nil {
		return MapEntry{}, err
	}

	return tbl.Get().Get(name), nil
}

// Trace visits every managed reference this structure owns.
func (s *Structure) Trace(v heap.Visitor) {
	s.transitions.Trace(v)
	heap.TraceRef(s.table, v)
	heap.TraceRef(s.prototype, v)
	s.deleted.Trace(v)
	heap.TraceRef(s.previous, v)
}

// ComputeSize reports the payload's static size.
func (s *Structure) ComputeSize() uintptr {
	return unsafe.Sizeof(*s)
}
