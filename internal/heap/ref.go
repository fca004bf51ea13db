package heap

import (
	"unsafe"

	"github.com/orizon-lang/orizon/internal/errors"
)

// cellBox wraps a payload with its Header. Header is the first field,
// so a *cellBox[T] and a *Header carved from it share the same
// address — "the payload begins immediately after the header" falls
// directly out of Go's struct layout rule instead of manual offset
// arithmetic.
type cellBox[T any] struct {
	Header
	payload T
}

// Managed is a one-word handle to a cell's header, typed to its
// payload. Copying a Managed is shallow: both copies name the same
// cell.
type Managed[T any] struct {
	box *cellBox[T]
}

// Ref is the untyped form of Managed: a managed reference whose
// payload type is recovered only through Downcast, by comparing the
// header's TypeID.
type Ref struct {
	header *Header
}

// IsNil reports whether m is the zero Managed[T], i.e. not backed by
// any cell.
func (m Managed[T]) IsNil() bool { return m.box == nil }

// IsNil reports whether r is the zero Ref.
func (r Ref) IsNil() bool { return r.header == nil }

// Header returns the cell's header.
func (m Managed[T]) Header() *Header { return &m.box.Header }

// Header returns the cell's header.
func (r Ref) Header() *Header { return r.header }

// Get dereferences the managed reference, yielding the payload.
func (m Managed[T]) Get() *T { return &m.box.payload }

// AsRef erases m's static type, yielding an untyped managed reference
// to the same cell.
func (m Managed[T]) AsRef() Ref {
	if m.box == nil {
		return Ref{}
	}

	return Ref{header: &m.box.Header}
}

// Equal reports whether two managed references point at the same
// header.
func (m Managed[T]) Equal(other Managed[T]) bool { return m.box == other.box }

// SameCell reports whether two untyped managed references point at
// the same header. This is the reference-identity helper the original
// engine exposes as Gc::ptr_eq (see SPEC_FULL.md Supplemented Features).
func SameCell(a, b Ref) bool { return a.header == b.header }

// Alloc allocates a T-payload cell in s, stamps its header with id
// (obtained once from RegisterCellType[T, P]) and White color, and
// returns a typed managed reference to it.
func Alloc[T any, P interface {
	*T
	Cell
}](s Space, id TypeID, value T) (Managed[T], error) {
	var zero cellBox[T]

	raw, err := s.Alloc(unsafe.Sizeof(zero), unsafe.Alignof(zero))
	if err != nil {
		return Managed[T]{}, err
	}

	box := (*cellBox[T])(raw)
	box.Header.initDiscriminator(id)
	box.payload = value

	return Managed[T]{box: box}, nil
}

// Downcast attempts to recover a Managed[T] from an untyped Ref,
// comparing r's header TypeID against the id registered for T. It
// fails with a type-mismatch error rather than panicking: succeed on
// equality, otherwise report what was found instead.
func Downcast[T any, P interface {
	*T
	Cell
}](r Ref, id TypeID) (Managed[T], error) {
	if r.header == nil {
		return Managed[T]{}, errors.NewStandardError(errors.CategoryMemory,
			"NULL_MANAGED_REF", "downcast of a nil managed reference", nil)
	}

	if r.header.TypeID() != id {
		return Managed[T]{}, errors.NewStandardError(errors.CategoryValidation,
			"TYPE_MISMATCH",
			"managed reference does not hold the requested payload type",
			map[string]interface{}{
				"have": TypeName(r.header.TypeID()),
				"want": TypeName(id),
			})
	}

	return Managed[T]{box: (*cellBox[T])(unsafe.Pointer(r.header))}, nil
}

// TraceChildren dispatches to the registered Trace function for r's
// payload type, invoking the payload's own Trace(v) so it can visit
// whatever it owns in turn. This is what a collector calls while
// scanning a Gray cell off its worklist; it is a no-op if r is nil,
// zapped, or unregistered — a zapped cell must never be traced. A
// Cell that merely *owns* a Ref field should call heap.TraceRef on
// that field instead of TraceChildren — owning a reference means
// visiting its header once, not eagerly recursing into what it points
// to.
func (r Ref) TraceChildren(v Visitor) {
	if r.header == nil || !r.header.IsLive() {
		return
	}

	entry, ok := lookup(r.header.TypeID())
	if !ok {
		return
	}

	entry.trace(r.header, v)
}

// ComputeSize dispatches to the registered ComputeSize function for
// r's payload type, or returns 0 if r is nil or unregistered.
func (r Ref) ComputeSize() uintptr {
	if r.header == nil || !r.header.IsLive() {
		return 0
	}

	entry, ok := lookup(r.header.TypeID())
	if !ok {
		return 0
	}

	return entry.computeSize(r.header)
}

