package arena

// handles.go implements the three accessor types: the short-lived MutEntry
// an Alloc call returns, and the shared-ownership Root/Weak handles that
// anchor slots across collections.
//
// A *Region[T] embedded in a Root[T] or Weak[T] keeps the Region reachable,
// and hence alive, for as long as the handle exists — ordinary Go reference
// semantics. What that does not give for free is the Root/Weak *table
// entry's* own refcount: cloning a Root must still bump regtable's strong
// count so that dropping one of two clones does not evict the entry out
// from under the other. Clone/Release stay explicit rather than relying on
// finalizers.
//
// © 2025 movingarena authors. MIT License.

import "github.com/Voskan/movingarena/internal/regtable"

// MutEntry is the short-lived accessor Region.Alloc returns. It is valid
// until the next collection touches its slot; callers that need the value
// to survive a collection must call Root before then.
type MutEntry[T any] struct {
	region *Region[T]
	ix     Ix
}

// Ix returns the entry's index.
func (e MutEntry[T]) Ix() Ix { return e.ix }

// Get returns a pointer to the entry's payload.
func (e MutEntry[T]) Get() (*T, error) { return e.region.Get(e.ix) }

// GetMut returns a mutable pointer to the entry's payload.
func (e MutEntry[T]) GetMut() (*T, error) { return e.region.GetMut(e.ix) }

// Root registers the entry's slot in the Root Table and returns a fresh
// Root handle. It does not consume the MutEntry — the caller may keep using
// both.
func (e MutEntry[T]) Root() *Root[T] { return e.region.newRoot(e.ix) }

// Weak registers the entry's slot in the Weak Table and returns a fresh
// Weak handle.
func (e MutEntry[T]) Weak() *Weak[T] { return e.region.newWeak(e.ix) }

// Root is a shared-ownership strong handle to a Root-table entry. As long as
// at least one Root clone is live, the collector treats its slot as
// reachable regardless of any cycle the slot participates in.
type Root[T any] struct {
	region *Region[T]
	id     regtable.RootID
}

// Ix returns the handle's current index, which may change across
// collections as the collector relocates the slot.
func (h *Root[T]) Ix() Ix {
	ix, ok := h.region.roots.Ix(h.id)
	if !ok {
		return NilIx
	}
	return ix
}

// Get returns a pointer to the rooted payload.
func (h *Root[T]) Get() (*T, error) {
	ix := h.Ix()
	if ix.IsNil() {
		return nil, ErrNotLive
	}
	return h.region.Get(ix)
}

// GetMut returns a mutable pointer to the rooted payload.
func (h *Root[T]) GetMut() (*T, error) {
	ix := h.Ix()
	if ix.IsNil() {
		return nil, ErrNotLive
	}
	return h.region.GetMut(ix)
}

// Clone increments the entry's strong refcount and returns a new handle
// sharing it. Both handles must eventually be Released independently.
func (h *Root[T]) Clone() *Root[T] {
	h.region.roots.IncRef(h.id)
	return &Root[T]{region: h.region, id: h.id}
}

// Release decrements the entry's strong refcount, removing it from the
// Root Table once the last clone is released. After Release, this handle
// must not be used again.
func (h *Root[T]) Release() {
	h.region.roots.DecRef(h.id)
}

// Weak is a non-owning observer handle to a Weak-table entry. It never keeps
// its pointee alive; once the pointee is collected, Ix reports absent rather
// than stale data.
type Weak[T any] struct {
	region *Region[T]
	id     regtable.WeakID
}

// Ix returns (index, true) if the pointee is still present, or (NilIx,
// false) if it has been collected.
func (h *Weak[T]) Ix() (Ix, bool) {
	return h.region.weaks.Ix(h.id)
}

// Get returns the pointee if it is still present.
func (h *Weak[T]) Get() (*T, bool, error) {
	ix, ok := h.Ix()
	if !ok {
		return nil, false, nil
	}
	p, err := h.region.Get(ix)
	return p, true, err
}

// Clone increments the entry's refcount and returns a new handle sharing
// it.
func (h *Weak[T]) Clone() *Weak[T] {
	h.region.weaks.IncRef(h.id)
	return &Weak[T]{region: h.region, id: h.id}
}

// Release decrements the entry's refcount, removing it from the Weak Table
// once the last clone is released.
func (h *Weak[T]) Release() {
	h.region.weaks.DecRef(h.id)
}
