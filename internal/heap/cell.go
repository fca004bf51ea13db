package heap

// Visitor is driven by a collector over one cell's owned references
// during the mark phase. Every reference a Cell directly owns must be
// passed to Visit exactly once; forgetting one leaves a dangling
// pointer after sweep.
type Visitor interface {
	Visit(h *Header)
}

// Cell is the capability every managed payload type implements.
// Primitive payloads trace as no-ops (see TraceNoop); containers
// delegate to their elements' Trace.
type Cell interface {
	// Trace invokes visitor.Visit for every managed reference this
	// payload directly owns.
	Trace(v Visitor)
	// ComputeSize returns the byte size of this payload. It may exceed
	// the static size of the Go type for trailing-array-style payloads
	// that choose to report a larger logical size.
	ComputeSize() uintptr
}

// ClassDescriptor is the opaque JS "class" tag a payload may expose.
// The object model core does not define what a class contains; it
// only carries the pointer.
type ClassDescriptor struct {
	Name string
}

// ClassAware is implemented by payloads that expose a JS class
// descriptor. Payloads that don't implement it are treated as having
// no class.
type ClassAware interface {
	ClassValue() (ClassDescriptor, bool)
}

// StructureAware is implemented by payloads that represent JS objects
// and therefore carry a current structure (hidden class). Payloads
// that don't implement it are treated as having no structure.
type StructureAware interface {
	StructureValue() (Ref, bool)
	SetStructureValue(Ref)
}

// Named is implemented by payloads that want to report a typename
// other than their registered Go type name.
type Named interface {
	TypeName() string
}

// TraceNoop is a ready-made Trace for primitive payloads (bool, the
// fixed-width integers, floats, the empty struct) that own no managed
// references.
func TraceNoop(Visitor) {}
