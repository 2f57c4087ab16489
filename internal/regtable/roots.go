// Package regtable implements the Root and Weak registries: per-arena tables
// of externally held references that must survive a moving collection. The
// collector walks the Root table to seed reachability and fixes up the Weak
// table afterwards; the two are kept in separate maps so a collector bug can
// never mistake a strong reference for a non-owning one or vice versa.
//
// © 2025 movingarena authors. MIT License.
package regtable

import "github.com/Voskan/movingarena/internal/slotstore"

// RootID names one entry in a RootTable. Stable for the entry's lifetime.
type RootID uint64

// rootEntry is a current index plus a strong refcount shared by every live
// Root handle pointing at it.
type rootEntry struct {
	ix   slotstore.Ix
	refs int32
}

// RootTable is the per-arena registry of externally rooted slots. It is not
// safe for concurrent use; the owning Region serializes all access.
type RootTable struct {
	entries map[RootID]*rootEntry
	nextID  RootID
}

// NewRootTable constructs an empty table.
func NewRootTable() *RootTable {
	return &RootTable{entries: make(map[RootID]*rootEntry)}
}

// Insert registers ix as a freshly rooted slot with refcount 1 and returns
// the new entry's id.
func (t *RootTable) Insert(ix slotstore.Ix) RootID {
	t.nextID++
	id := t.nextID
	t.entries[id] = &rootEntry{ix: ix, refs: 1}
	return id
}

// IncRef increments id's refcount, as when a Root handle is cloned. Panics
// if id is unknown, which would indicate a use-after-release bug upstream.
func (t *RootTable) IncRef(id RootID) {
	e, ok := t.entries[id]
	if !ok {
		panic("regtable: IncRef of unknown root id")
	}
	e.refs++
}

// DecRef decrements id's refcount and removes the entry once it reaches
// zero, reporting whether removal happened.
func (t *RootTable) DecRef(id RootID) (removed bool) {
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

// Ix returns the current index for id and whether the entry still exists.
func (t *RootTable) Ix(id RootID) (slotstore.Ix, bool) {
	e, ok := t.entries[id]
	if !ok {
		return slotstore.Ix{}, false
	}
	return e.ix, true
}

// SetIx overwrites the current index for id — used by the collector to
// install the post-copy position during the forwarding pass.
func (t *RootTable) SetIx(id RootID, ix slotstore.Ix) {
	if e, ok := t.entries[id]; ok {
		e.ix = ix
	}
}

// Len reports the number of live root entries.
func (t *RootTable) Len() int { return len(t.entries) }

// Each calls fn once per live entry. The callback may call SetIx on the
// table (to rewrite ix in place) but must not Insert or DecRef — doing so
// while ranging over the map is undefined per Go's map iteration rules.
func (t *RootTable) Each(fn func(id RootID, ix slotstore.Ix)) {
	for id, e := range t.entries {
		fn(id, e.ix)
	}
}
