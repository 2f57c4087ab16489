package regtable

import "github.com/Voskan/movingarena/internal/slotstore"

// WeakID names one entry in a WeakTable. Stable for the entry's lifetime.
type WeakID uint64

// weakEntry is either Present with an index, or Collected — a non-owning
// observer of whatever the Root table (or internal edges) keep alive.
type weakEntry struct {
	ix        slotstore.Ix
	collected bool
	refs      int32
}

// WeakTable is the per-arena registry of non-owning external references.
// Disjoint from RootTable by construction: the collector never reads a
// WeakTable entry while seeding reachability, only afterwards, during fixup.
type WeakTable struct {
	entries map[WeakID]*weakEntry
	nextID  WeakID
}

// NewWeakTable constructs an empty table.
func NewWeakTable() *WeakTable {
	return &WeakTable{entries: make(map[WeakID]*weakEntry)}
}

// Insert registers ix as a freshly weak-held slot with refcount 1.
func (t *WeakTable) Insert(ix slotstore.Ix) WeakID {
	t.nextID++
	id := t.nextID
	t.entries[id] = &weakEntry{ix: ix, refs: 1}
	return id
}

// IncRef increments id's refcount, as when a Weak handle is cloned.
func (t *WeakTable) IncRef(id WeakID) {
	e, ok := t.entries[id]
	if !ok {
		panic("regtable: IncRef of unknown weak id")
	}
	e.refs++
}

// DecRef decrements id's refcount and removes the entry at zero. Removal
// never affects the pointee — a Weak going away just stops observing it.
func (t *WeakTable) DecRef(id WeakID) (removed bool) {
	e, ok := t.entries[id]
	if !ok {
		return false
	}
	e.refs--
	if e.refs <= 0 {
		delete(t.entries, id)
		return true
	}
	return false
}

// Ix returns (index, true) if the entry is Present, or (zero, false) if it
// has been marked Collected or no longer exists.
func (t *WeakTable) Ix(id WeakID) (slotstore.Ix, bool) {
	e, ok := t.entries[id]
	if !ok || e.collected {
		return slotstore.Ix{}, false
	}
	return e.ix, true
}

// SetIx rewrites a Present entry's index — used by the collector's fixup
// pass when the pointee survived and moved.
func (t *WeakTable) SetIx(id WeakID, ix slotstore.Ix) {
	if e, ok := t.entries[id]; ok {
		e.ix = ix
	}
}

// MarkCollected transitions an entry to Collected — used by the collector's
// fixup pass when the pointee did not survive.
func (t *WeakTable) MarkCollected(id WeakID) {
	if e, ok := t.entries[id]; ok {
		e.collected = true
		e.ix = slotstore.Ix{}
	}
}

// Len reports the number of live (Present or Collected) weak entries.
func (t *WeakTable) Len() int { return len(t.entries) }

// Each calls fn once per entry, reporting whether it is still Present. The
// callback may call SetIx/MarkCollected but must not Insert or DecRef.
func (t *WeakTable) Each(fn func(id WeakID, ix slotstore.Ix, present bool)) {
	for id, e := range t.entries {
		if e.collected {
			fn(id, slotstore.Ix{}, false)
		} else {
			fn(id, e.ix, true)
		}
	}
}
