package arena

// collector.go implements the Cheney-style copying collector. It is
// deliberately free of logging/metrics/config concerns — those are Region's
// job (region.go) — so that the core algorithm reads the same way
// regardless of which knobs the caller set.
//
// The algorithm walks from-space, classifying each slot Live, Forwarded, or
// Free and acting accordingly, and relocates everything reachable from the
// roots into to-space via a breadth-first scan/free cursor pair.
//
// © 2025 movingarena authors. MIT License.

import (
	"github.com/Voskan/movingarena/internal/regtable"
	"github.com/Voskan/movingarena/internal/slotstore"
)

// Teardown is the optional capability a payload may implement to run
// destructor logic when the collector determines it is unreachable. The
// arena only guarantees the call happens — what the payload's teardown
// actually does is the caller's concern.
type Teardown interface {
	Teardown()
}

// collectionResult carries the bookkeeping Region needs after a collection
// completes, without the collector reaching back into Region's own fields.
type collectionResult struct {
	liveCount      int
	collectedCount int
}

// collect runs one full Cheney pass: it copies everything reachable from
// roots (transitively, via trace) out of from into a fresh store of newCap
// slots, rewrites every Root and Weak table entry, tears down whatever did
// not survive, and returns the new store plus result counters. from is left
// untouched by the caller afterwards — it is consumed.
func collect[T any](
	from *slotstore.Store[T],
	roots *regtable.RootTable,
	weaks *regtable.WeakTable,
	trace TraceFunc[T],
	newCap int,
	newGen uint32,
	arenaID uint64,
	onTeardown func(T),
) (*slotstore.Store[T], collectionResult) {
	to := slotstore.New[T](newCap)

	mint := func(pos uint32) slotstore.Ix {
		return slotstore.Ix{Pos: pos, Gen: newGen, ArenaID: arenaID}
	}

	// copyOne relocates the live from-space slot at fromPos into the next
	// free to-space slot, installs forwarding, and returns the new index.
	// Caller guarantees fromPos is currently Live (not yet Forwarded).
	copyOne := func(fromPos uint32) slotstore.Ix {
		toPos := to.Alloc()
		to.At(toPos).Payload = from.At(fromPos).Payload
		newIx := mint(toPos)
		from.ForwardTo(fromPos, newIx)
		return newIx
	}

	// Step 3: seed from the Root table.
	roots.Each(func(id regtable.RootID, ix slotstore.Ix) {
		slot := from.At(ix.Pos)
		var newIx slotstore.Ix
		if slot.IsForwarded() {
			newIx = from.ForwardTarget(ix.Pos)
		} else {
			newIx = copyOne(ix.Pos)
		}
		roots.SetIx(id, newIx)
	})

	// Step 4: breadth-first scavenge between scan and free.
	scan := uint32(0)
	for scan < uint32(to.Len()) {
		// to.Len() grows as we scavenge; re-read it each iteration.
		payload := &to.At(scan).Payload
		trace(payload, func(edge *Ix) {
			if edge.IsNil() {
				return
			}
			slot := from.At(edge.Pos)
			switch {
			case slot.IsForwarded():
				*edge = from.ForwardTarget(edge.Pos)
			case slot.IsLive():
				*edge = copyOne(edge.Pos)
			default:
				// Free from-space slot reached via a stale edge: tracer
				// incompleteness or a pre-existing dangling index. Leave it
				// untouched — undefined in release; the debug-validity build
				// would have already flagged the access that produced this
				// edge.
			}
		})
		scan++
	}

	// Step 5: fix up the Weak table.
	weaks.Each(func(id regtable.WeakID, ix slotstore.Ix, present bool) {
		if !present {
			return
		}
		slot := from.At(ix.Pos)
		if slot.IsForwarded() {
			weaks.SetIx(id, from.ForwardTarget(ix.Pos))
		} else {
			weaks.MarkCollected(id)
		}
	})

	// Step 6: tear down everything left Live in from-space (never forwarded).
	collected := 0
	from.EachLive(func(pos uint32) {
		payload := from.At(pos).Payload
		if td, ok := any(&payload).(Teardown); ok {
			td.Teardown()
		}
		if onTeardown != nil {
			onTeardown(payload)
		}
		collected++
	})

	return to, collectionResult{liveCount: to.Len(), collectedCount: collected}
}
