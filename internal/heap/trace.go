package heap

// Tracer is anything whose owned managed references can be visited.
// Structure fields of this package's own types (Ref, Managed[T], and
// the containers below) all implement it, so callers compose bigger
// Trace methods out of smaller ones the same way the original engine
// composes trait impls.
type Tracer interface {
	Trace(v Visitor)
}

// TraceRef visits ref's own header (if live) and nothing else — the
// base case every Trace method bottoms out at for a field that is
// itself a managed reference.
func TraceRef(ref Ref, v Visitor) {
	if ref.header != nil && ref.header.IsLive() {
		v.Visit(ref.header)
	}
}

// TraceSlice traces an ordered sequence of Tracer elements by
// delegating to each one in turn.
func TraceSlice[T Tracer](elems []T, v Visitor) {
	for _, e := range elems {
		e.Trace(v)
	}
}

// TraceMap traces a mapping keyed by a managed type by delegating to
// every key and value.
func TraceMap[K comparable, V Tracer](m map[K]V, v Visitor) {
	for _, val := range m {
		val.Trace(v)
	}
}

// TraceOptional traces a pointer-shaped optional field: a no-op if
// absent, delegating to elem's own Trace otherwise.
func TraceOptional[T Tracer](elem *T, v Visitor) {
	if elem != nil {
		(*elem).Trace(v)
	}
}
