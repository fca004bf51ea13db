package structure

import "github.com/orizon-lang/orizon/internal/heap"

// TransitionKey pairs a property name with the attribute word it was
// added under: two structures only share a transition edge if both
// the name and the attributes match.
type TransitionKey struct {
	name  Symbol
	attrs uint32
}

const (
	maskEnabled          uint8 = 1 << 0
	maskUniqueTransition uint8 = 1 << 1
	maskHoldSingle       uint8 = 1 << 2
	maskHoldTable        uint8 = 1 << 3
	maskIndexed          uint8 = 1 << 4
)

// TransitionStore is the outgoing-edge set of a structure's transition
// tree. It starts empty, promotes to a single cached (key, successor)
// pair on the first insert, and promotes again to a hash table once a
// second distinct key arrives. enabled/unique/indexed are independent
// flags packed into the same byte as the two "which variant is live"
// bits, mirroring the original engine's bit-packed layout (it unions
// pair/table storage too; Go has no unsafe union, so both shapes keep
// their own fields and the flag bits say which one is meaningful).
type TransitionStore struct {
	flags uint8

	pairKey TransitionKey
	pairVal heap.Ref

	table map[TransitionKey]heap.Ref
}

// NewTransitionStore builds an empty store with the given enabled and
// indexed flags.
func NewTransitionStore(enabled, indexed bool) TransitionStore {
	var s TransitionStore

	s.SetEnabled(enabled)
	s.SetIndexed(indexed)

	return s
}

// SetIndexed updates the indexed flag.
func (s *TransitionStore) SetIndexed(indexed bool) {
	if indexed {
		s.flags |= maskIndexed
	} else {
		s.flags &^= maskIndexed
	}
}

// SetEnabled updates the enabled flag (false means the owning
// structure is unique, not shared).
func (s *TransitionStore) SetEnabled(enabled bool) {
	if enabled {
		s.flags |= maskEnabled
	} else {
		s.flags &^= maskEnabled
	}
}

// IsEnabled reports whether the owning structure participates in
// sharing.
func (s *TransitionStore) IsEnabled() bool { return s.flags&maskEnabled != 0 }

// IsIndexed reports whether the owning object has integer-keyed
// elements.
func (s *TransitionStore) IsIndexed() bool { return s.flags&maskIndexed != 0 }

// IsEnabledUniqueTransition reports whether this unique structure has
// already been forked into at least one child once.
func (s *TransitionStore) IsEnabledUniqueTransition() bool {
	return s.flags&maskUniqueTransition != 0
}

// EnableUniqueTransition latches the unique-transition flag. It is
// never cleared.
func (s *TransitionStore) EnableUniqueTransition() {
	s.flags |= maskUniqueTransition
}

// Insert records that adding (name, attrs) to the owning structure
// transitions to successor, promoting the store's internal
// representation as needed.
//
// Promoting from single-pair to table must turn off the "holding a
// single pair" bit and turn on "holding a table" bit — a single wrong
// operator here (AND instead of OR when setting MASK_HOLD_TABLE) would
// silently clear every other flag bit sharing that byte, including
// enabled/indexed/unique. The two statements below are intentionally
// two independent read-modify-write operations rather than one
// combined mask, exactly to avoid that failure mode.
func (s *TransitionStore) Insert(name Symbol, attrs AttrSafe, successor heap.Ref) {
	key := TransitionKey{name: name, attrs: attrs.Raw()}

	if s.flags&maskHoldSingle != 0 {
		s.table = map[TransitionKey]heap.Ref{s.pairKey: s.pairVal}
		s.flags &^= maskHoldSingle
		s.flags |= maskHoldTable
	}

	if s.flags&maskHoldTable != 0 {
		s.table[key] = successor
	} else {
		s.pairKey = key
		s.pairVal = successor
		s.flags |= maskHoldSingle
	}
}

// Find looks up the successor structure for (name, attrs), returning
// the zero Ref if no such transition has been recorded.
func (s *TransitionStore) Find(name Symbol, attrs AttrSafe) heap.Ref {
	key := TransitionKey{name: name, attrs: attrs.Raw()}

	if s.flags&maskHoldTable != 0 {
		return s.table[key]
	}

	if s.flags&maskHoldSingle != 0 && s.pairKey == key {
		return s.pairVal
	}

	return heap.Ref{}
}

// Trace visits every successor this store holds.
func (s *TransitionStore) Trace(v heap.Visitor) {
	if s.flags&maskHoldTable != 0 {
		for _, ref := range s.table {
			heap.TraceRef(ref, v)
		}

		return
	}

	if s.flags&maskHoldSingle != 0 {
		heap.TraceRef(s.pairVal, v)
	}
}
