package structure

import "github.com/orizon-lang/orizon/internal/heap"

// AllocateTable materialises self's property table by walking its
// previous-chain: the nearest ancestor that already has a table is
// cloned (or, if none does, a fresh empty table is allocated at the
// root), and every added-but-not-yet-materialised delta between self
// and that ancestor is replayed into it, farthest ancestor first and
// self's own delta last, so self wins any symbol collision. Once
// done, self no longer needs its previous link to answer Get.
func AllocateTable(space heap.Space, self heap.Ref) error {
	selfManaged, err := resolveStructure(self)
	if err != nil {
		return err
	}

	s := selfManaged.Get()

	var pending []heap.Ref
	if s.isAddingMap() {
		pending = append(pending, self)
	}

	var newTable heap.Ref

	current := s.previous

	for {
		if current.IsNil() {
			fresh, err := heap.Alloc[PropertyTable, *PropertyTable](space, TableTypeID, NewPropertyTable())
			if err != nil {
				return err
			}

			newTable = fresh.AsRef()

			break
		}

		curManaged, err := resolveStructure(current)
		if err != nil {
			return err
		}

		cur := curManaged.Get()

		if cur.hasTable() {
			curTable, err := heap.Downcast[PropertyTable, *PropertyTable](cur.table, TableTypeID)
			if err != nil {
				return err
			}

			cloned := ClonePropertyTable(curTable.Get())

			fresh, err := heap.Alloc[PropertyTable, *PropertyTable](space, TableTypeID, cloned)
			if err != nil {
				return err
			}

			newTable = fresh.AsRef()

			break
		}

		if cur.isAddingMap() {
			pending = append(pending, current)
		}

		current = cur.previous
	}

	tableManaged, err := heap.Downcast[PropertyTable, *PropertyTable](newTable, TableTypeID)
	if err != nil {
		return err
	}

	// pending was built nearest-ancestor-first (self, if adding, pushed
	// before any older ancestor); applying it in reverse means the
	// farthest delta lands first and self's own delta is applied last,
	// so self wins if two deltas ever named the same symbol.
	for i := len(pending) - 1; i >= 0; i-- {
		entryManaged, err := resolveStructure(pending[i])
		if err != nil {
			return err
		}

		tableManaged.Get().Set(entryManaged.Get().addedName, entryManaged.Get().addedEntry)
	}

	s.table = newTable
	s.previous = heap.Ref{}

	return nil
}

// AllocateTableIfNeeded materialises self's table if it has none and
// has ancestors to walk, reporting whether self now has one.
func AllocateTableIfNeeded(space heap.Space, self heap.Ref) (bool, error) {
	managed, err := resolveStructure(self)
	if err != nil {
		return false, err
	}

	s := managed.Get()
	if s.hasTable() {
		return true, nil
	}

	if s.previous.IsNil() {
		return false, nil
	}

	if err := AllocateTable(space, self); err != nil {
		return false, err
	}

	return true, nil
}

// DeletePropertyTransition removes name from self, returning the new
// (always unique) structure that reflects the deletion. The freed
// slot offset is pushed onto the deleted-slot stack for the next add
// to recycle.
func DeletePropertyTransition(space heap.Space, self heap.Ref, name Symbol) (heap.Ref, error) {
	next, err := NewUnique(space, self)
	if err != nil {
		return heap.Ref{}, err
	}

	nextManaged, err := resolveStructure(next)
	if err != nil {
		return heap.Ref{}, err
	}

	if !nextManaged.Get().hasTable() {
		if err := AllocateTable(space, next); err != nil {
			return heap.Ref{}, err
		}
	}

	tbl, err := heap.Downcast[PropertyTable, *PropertyTable](nextManaged.Get().table, TableTypeID)
	if err != nil {
		return heap.Ref{}, err
	}

	entry, ok := tbl.Get().Delete(name)
	if ok {
		nextManaged.Get().deleted.Push(space, entry.Offset)
	}

	return next, nil
}

// ChangeAttributesTransition forks self into a unique structure with
// name's attribute word replaced.
func ChangeAttributesTransition(space heap.Space, self heap.Ref, name Symbol, attrs AttrSafe) (heap.Ref, error) {
	next, err := NewUnique(space, self)
	if err != nil {
		return heap.Ref{}, err
	}

	nextManaged, err := resolveStructure(next)
	if err != nil {
		return heap.Ref{}, err
	}

	if !nextManaged.Get().hasTable() {
		if err := AllocateTable(space, next); err != nil {
			return heap.Ref{}, err
		}
	}

	tbl, err := heap.Downcast[PropertyTable, *PropertyTable](nextManaged.Get().table, TableTypeID)
	if err != nil {
		return heap.Ref{}, err
	}

	entry := tbl.Get().Get(name)
	entry.Attrs = attrs
	tbl.Get().Set(name, entry)

	return next, nil
}

// ChangeIndexedTransition marks self (or a unique fork of it) as
// having integer-keyed elements.
func ChangeIndexedTransition(space heap.Space, self heap.Ref) (heap.Ref, error) {
	managed, err := resolveStructure(self)
	if err != nil {
		return heap.Ref{}, err
	}

	if !managed.Get().IsUnique() {
		next, err := NewUnique(space, self)
		if err != nil {
			return heap.Ref{}, err
		}

		return ChangeIndexedTransition(space, next)
	}

	var target heap.Ref
	if managed.Get().transitions.IsEnabledUniqueTransition() {
		forked, err := NewUnique(space, self)
		if err != nil {
			return heap.Ref{}, err
		}

		target = forked
	} else {
		target = self
	}

	targetManaged, err := resolveStructure(target)
	if err != nil {
		return heap.Ref{}, err
	}

	targetManaged.Get().transitions.SetIndexed(true)

	return target, nil
}

// ChangePrototypeTransition forks (as needed) and rewrites self's
// prototype link.
func ChangePrototypeTransition(space heap.Space, self, prototype heap.Ref) (heap.Ref, error) {
	managed, err := resolveStructure(self)
	if err != nil {
		return heap.Ref{}, err
	}

	if !managed.Get().IsUnique() {
		next, err := NewUnique(space, self)
		if err != nil {
			return heap.Ref{}, err
		}

		return ChangePrototypeTransition(space, next, prototype)
	}

	var target heap.Ref
	if managed.Get().transitions.IsEnabledUniqueTransition() {
		forked, err := NewUnique(space, self)
		if err != nil {
			return heap.Ref{}, err
		}

		target = forked
	} else {
		target = self
	}

	targetManaged, err := resolveStructure(target)
	if err != nil {
		return heap.Ref{}, err
	}

	targetManaged.Get().prototype = prototype

	return target, nil
}

// ChangeExtensibleTransition always forks into a brand-new unique
// structure. It does not itself track an extensible/non-extensible
// bit; callers that need to prevent further property addition enforce
// that at a layer above this one, this transition only guarantees the
// result shares no transition edge with self.
func ChangeExtensibleTransition(space heap.Space, self heap.Ref) (heap.Ref, error) {
	return NewUnique(space, self)
}

// AddPropertyTransition records that name/attrs was just added to
// self, returning the successor structure and the slot offset the new
// property landed at.
//
// A unique structure mutates forward in place (after forking once more
// if it had already been flattened): recycling a deleted slot when one
// is available, otherwise extending past the current slot count. A
// shared structure first checks whether this exact (name, attrs) edge
// already exists in its transition store, reusing it on a hit; on a
// miss it allocates a new successor and records the edge, unless the
// chain has grown past the transition-count cap, in which case it
// escapes to a unique structure and retries there instead of growing
// the shared tree any wider.
func AddPropertyTransition(space heap.Space, self heap.Ref, name Symbol, attrs AttrSafe) (heap.Ref, uint32, error) {
	managed, err := resolveStructure(self)
	if err != nil {
		return heap.Ref{}, 0, err
	}

	s := managed.Get()

	if s.IsUnique() {
		if !s.hasTable() {
			if err := AllocateTable(space, self); err != nil {
				return heap.Ref{}, 0, err
			}
		}

		var target heap.Ref
		if s.transitions.IsEnabledUniqueTransition() {
			forked, err := NewUnique(space, self)
			if err != nil {
				return heap.Ref{}, 0, err
			}

			target = forked
		} else {
			target = self
		}

		targetManaged, err := resolveStructure(target)
		if err != nil {
			return heap.Ref{}, 0, err
		}

		t := targetManaged.Get()

		var offset uint32
		if !t.deleted.Empty() {
			offset = t.deleted.Pop()
		} else {
			offset = s.SlotsSize()
		}

		tbl, err := heap.Downcast[PropertyTable, *PropertyTable](t.table, TableTypeID)
		if err != nil {
			return heap.Ref{}, 0, err
		}

		tbl.Get().Set(name, MapEntry{Offset: offset, Attrs: attrs})

		return target, offset, nil
	}

	if existing := s.transitions.Find(name, attrs); !existing.IsNil() {
		existingManaged, err := resolveStructure(existing)
		if err != nil {
			return heap.Ref{}, 0, err
		}

		return existing, existingManaged.Get().addedEntry.Offset, nil
	}

	if s.transitCount > maxTransitionCount {
		unique, err := NewUnique(space, self)
		if err != nil {
			return heap.Ref{}, 0, err
		}

		return AddPropertyTransition(space, unique, name, attrs)
	}

	next, err := New(space, self)
	if err != nil {
		return heap.Ref{}, 0, err
	}

	nextManaged, err := resolveStructure(next)
	if err != nil {
		return heap.Ref{}, 0, err
	}

	n := nextManaged.Get()

	var offset uint32
	if !n.deleted.Empty() {
		offset = n.deleted.Pop()
		n.calculatedSize = s.SlotsSize()
	} else {
		offset = s.SlotsSize()
		n.calculatedSize = s.SlotsSize() + 1
	}

	n.addedName = name
	n.addedEntry = MapEntry{Offset: offset, Attrs: attrs}
	n.transitCount = s.transitCount + 1

	s.transitions.Insert(name, attrs, next)

	return next, offset, nil
}

// GetOwnPropertyNames materialises self's table if needed and calls
// collect once per property name, in table order; include selects
// whether non-enumerable properties are reported too.
func GetOwnPropertyNames(space heap.Space, self heap.Ref, include bool, collect func(name Symbol, offset uint32)) error {
	ok, err := AllocateTableIfNeeded(space, self)
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	managed, err := resolveStructure(self)
	if err != nil {
		return err
	}

	tbl, err := heap.Downcast[PropertyTable, *PropertyTable](managed.Get().table, TableTypeID)
	if err != nil {
		return err
	}

	tbl.Get().Each(func(name Symbol, entry MapEntry) {
		if include || entry.Attrs.IsEnumerable() {
			collect(name, entry.Offset)
		}
	})

	return nil
}
