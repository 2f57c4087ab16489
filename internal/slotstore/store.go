package slotstore

// Slot is one cell of a Store[T]: a header (state + forwarding word) plus the
// user payload. The payload is only meaningful while State() == Live.
type Slot[T any] struct {
	header
	Payload T
}

// State reports whether the slot is Free, Live, or (mid-collection) Forwarded.
func (s *Slot[T]) State() State { return s.stateOf() }

// IsLive reports whether the slot currently holds a live payload.
func (s *Slot[T]) IsLive() bool { return s.stateOf() == StateLive }

// IsForwarded reports whether the slot has already been relocated by an
// in-progress collection.
func (s *Slot[T]) IsForwarded() bool { return s.stateOf() == StateForwarded }

// IsFree reports whether the slot is on the allocator's free list.
func (s *Slot[T]) IsFree() bool { return s.stateOf() == StateFree }

// Store is the growable, contiguous sequence of slots backing one arena
// generation. It has no notion of roots, weaks, or tracing — those live one
// layer up in pkg/arena — and no locking, because a Region is single-threaded
// by contract.
type Store[T any] struct {
	slots   []Slot[T]
	free    []uint32 // indices of Free slots, LIFO reuse order
	liveCnt int
}

// New allocates a Store with capacity for n slots, all initially Free.
func New[T any](n int) *Store[T] {
	st := &Store[T]{
		slots: make([]Slot[T], n),
		free:  make([]uint32, 0, n),
	}
	for i := n - 1; i >= 0; i-- {
		st.slots[i].setFree()
		st.free = append(st.free, uint32(i))
	}
	return st
}

// Cap returns the total number of slots, live or free.
func (st *Store[T]) Cap() int { return len(st.slots) }

// Len returns the number of Live slots.
func (st *Store[T]) Len() int { return st.liveCnt }

// HasFree reports whether an Alloc call can currently succeed without
// growing the store.
func (st *Store[T]) HasFree() bool { return len(st.free) > 0 }

// Alloc reserves a Free slot, marks it Live, and returns its position. The
// caller is responsible for writing the payload. Panics if the store is at
// capacity — callers must check HasFree (or let Region's growth policy run)
// first.
func (st *Store[T]) Alloc() uint32 {
	n := len(st.free)
	if n == 0 {
		panic("slotstore: Alloc called with no free slots")
	}
	pos := st.free[n-1]
	st.free = st.free[:n-1]
	st.slots[pos].setLive()
	st.liveCnt++
	return pos
}

// At returns a pointer to the slot at pos for direct inspection. Callers
// must check State() before treating Payload as meaningful.
func (st *Store[T]) At(pos uint32) *Slot[T] {
	return &st.slots[pos]
}

// Free releases a Live slot back to the free list without running any
// teardown. The collector does not call it: it abandons the whole from-space
// store after a collection instead of freeing slots one by one.
func (st *Store[T]) Free(pos uint32) {
	st.slots[pos].setFree()
	st.free = append(st.free, pos)
	st.liveCnt--
}

// ForwardTo marks the from-space slot at pos as Forwarded to the to-space
// index target. Used only during collection.
func (st *Store[T]) ForwardTo(pos uint32, target Ix) {
	st.slots[pos].forwardTo(target)
}

// ForwardTarget returns the to-space index a Forwarded slot points to. The
// caller must have already checked State() == Forwarded.
func (st *Store[T]) ForwardTarget(pos uint32) Ix {
	return st.slots[pos].forwardTarget()
}

// EachLive calls fn once for every currently Live slot's position, in
// ascending order. Used by the collector to find the from-space slots that
// were never forwarded and tear them down — never on the hot path.
func (st *Store[T]) EachLive(fn func(pos uint32)) {
	for i := range st.slots {
		if st.slots[i].IsLive() {
			fn(uint32(i))
		}
	}
}
