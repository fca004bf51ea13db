package structure

import "math"

// notFoundOffset is the distinguished offset value MapEntryNotFound
// carries: offset = max uint32, attrs = the not-found sentinel,
// meaning no such property.
const notFoundOffset = uint32(math.MaxUint32)

// MapEntry records a property's slot offset and attribute word.
type MapEntry struct {
	Offset uint32
	Attrs  AttrSafe
}

// MapEntryNotFound is the sentinel MapEntry returned by a failed
// lookup.
func MapEntryNotFound() MapEntry {
	return MapEntry{Offset: notFoundOffset, Attrs: NotFoundAttrs()}
}

// IsNotFound reports whether e is the not-found sentinel.
func (e MapEntry) IsNotFound() bool { return e.Attrs.IsNotFound() }
