package structure

import (
	"unsafe"

	"github.com/orizon-lang/orizon/internal/errors"
	"github.com/orizon-lang/orizon/internal/heap"
)

// DeletedEntry is one node of the deleted-slot stack: a singly-linked
// list of freed slot offsets, living in the managed heap like
// everything else a Structure owns.
type DeletedEntry struct {
	prev   heap.Ref
	offset uint32
}

// DeletedEntryTypeID is the discriminator DeletedEntry is registered
// under.
var DeletedEntryTypeID = heap.RegisterCellType[DeletedEntry, *DeletedEntry]("structure.DeletedEntry")

// Trace visits the previous node in the chain, if any.
func (e *DeletedEntry) Trace(v heap.Visitor) { heap.TraceRef(e.prev, v) }

// ComputeSize reports the payload's static size.
func (e *DeletedEntry) ComputeSize() uintptr { return unsafe.Sizeof(*e) }

// DeletedSlots is the free-list holder embedded in every Structure: a
// cached size plus a pointer to the top of the stack. It is a small
// value type, copied by value whenever a Structure is copied.
type DeletedSlots struct {
	top  heap.Ref
	size uint32
}

// Size returns the number of recyclable offsets.
func (d DeletedSlots) Size() uint32 { return d.size }

// Empty reports whether the stack is empty.
func (d DeletedSlots) Empty() bool { return d.size == 0 }

// Push records offset as reclaimable, allocating a new DeletedEntry
// node in space.
func (d *DeletedSlots) Push(space heap.Space, offset uint32) error {
	entry, err := heap.Alloc[DeletedEntry, *DeletedEntry](space, DeletedEntryTypeID, DeletedEntry{
		prev:   d.top,
		offset: offset,
	})
	if err != nil {
		return err
	}

	d.top = entry.AsRef()
	d.size++

	return nil
}

// Pop removes and returns the most recently pushed offset. Calling
// Pop on an empty stack is an assertion failure: an internal
// invariant breach is a programmer error, not a recoverable not-found
// condition.
func (d *DeletedSlots) Pop() uint32 {
	if d.size == 0 {
		panic(errors.NewStandardError(errors.CategoryValidation,
			"DELETED_STACK_EMPTY", "Pop called on an empty deleted-slot stack", nil))
	}

	entry, err := heap.Downcast[DeletedEntry, *DeletedEntry](d.top, DeletedEntryTypeID)
	if err != nil {
		panic(err)
	}

	offset := entry.Get().offset
	d.top = entry.Get().prev
	d.size--

	return offset
}

// Trace visits the top of the chain, if any; the chain beneath it is
// reached by following DeletedEntry.Trace transitively during the
// collector's own worklist walk.
func (d DeletedSlots) Trace(v heap.Visitor) { heap.TraceRef(d.top, v) }
