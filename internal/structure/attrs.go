package structure

// AttrSafe is an opaque 32-bit property attribute word with total
// equality and the predicates IsNotFound/IsEnumerable/IsData/
// IsSimpleData/Raw. The bit-flag layout is a standalone minimal
// implementation of that contract, styled after the FLAG_* bit
// constants used elsewhere in this object model for compact per-slot
// attributes.
type AttrSafe uint32

const (
	attrWritable     AttrSafe = 1 << 0
	attrEnumerable   AttrSafe = 1 << 1
	attrConfigurable AttrSafe = 1 << 2
	attrAccessor     AttrSafe = 1 << 3 // set: accessor (getter/setter) property; clear: data property
	attrNotFound     AttrSafe = 1 << 31
)

// NotFoundAttrs is the sentinel attribute word carried by MapEntry's
// NotFound value. It is preserved bit-exactly: IsNotFound checks this
// exact bit rather than "is the word zero."
func NotFoundAttrs() AttrSafe { return attrNotFound }

// NewDataAttrs builds the attribute word for a plain data property.
func NewDataAttrs(writable, enumerable, configurable bool) AttrSafe {
	var a AttrSafe
	if writable {
		a |= attrWritable
	}

	if enumerable {
		a |= attrEnumerable
	}

	if configurable {
		a |= attrConfigurable
	}

	return a
}

// NewAccessorAttrs builds the attribute word for a getter/setter
// property.
func NewAccessorAttrs(enumerable, configurable bool) AttrSafe {
	a := attrAccessor
	if enumerable {
		a |= attrEnumerable
	}

	if configurable {
		a |= attrConfigurable
	}

	return a
}

// DefaultDataAttrs is writable+enumerable+configurable, the attribute
// word ordinary object-literal properties get.
func DefaultDataAttrs() AttrSafe { return NewDataAttrs(true, true, true) }

// IsNotFound reports whether a is the not-found sentinel.
func (a AttrSafe) IsNotFound() bool { return a&attrNotFound != 0 }

// IsEnumerable reports whether a describes an enumerable property.
func (a AttrSafe) IsEnumerable() bool { return !a.IsNotFound() && a&attrEnumerable != 0 }

// IsWritable reports whether a describes a writable property.
func (a AttrSafe) IsWritable() bool { return !a.IsNotFound() && a&attrWritable != 0 }

// IsConfigurable reports whether a describes a configurable property.
func (a AttrSafe) IsConfigurable() bool { return !a.IsNotFound() && a&attrConfigurable != 0 }

// IsData reports whether a describes a data (non-accessor) property.
func (a AttrSafe) IsData() bool { return !a.IsNotFound() && a&attrAccessor == 0 }

// IsSimpleData reports whether a describes a plain writable,
// configurable data property — the common case for object-literal
// properties.
func (a AttrSafe) IsSimpleData() bool {
	return a.IsData() && a.IsWritable() && a.IsConfigurable()
}

// Raw returns the bit-exact underlying word.
func (a AttrSafe) Raw() uint32 { return uint32(a) }
