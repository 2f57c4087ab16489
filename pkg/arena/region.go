package arena

// region.go is the public façade: the piece callers actually import. It owns
// the backing store, the Root/Weak tables, and the generation counter, and
// wires them to the collector in collector.go plus the config/metrics/
// logging layers built out in config.go and metrics.go.
//
// © 2025 movingarena authors. MIT License.

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Voskan/movingarena/internal/regtable"
	"github.com/Voskan/movingarena/internal/slotstore"
)

var nextArenaID atomic.Uint64

// ReadOnlyRegion is the narrow view of a Region passed to an Alloc producer.
// It deliberately has no Alloc or GC method, so a producer trying to
// allocate or collect from within its own Alloc call is a compile error
// rather than a runtime panic.
type ReadOnlyRegion[T any] interface {
	Get(ix Ix) (*T, error)
	Len() int
	Capacity() int
}

// Region is one self-contained, single-threaded moving arena for values of
// type T. It is not safe for concurrent use from more than one goroutine,
// though nothing prevents a program from running many independent Regions
// on separate goroutines.
type Region[T any] struct {
	store *slotstore.Store[T]
	roots *regtable.RootTable
	weaks *regtable.WeakTable
	trace TraceFunc[T]

	generation uint32
	arenaID    uint64 // cheap, comparable identity stamped into every Ix this Region mints
	uuid       string // printable identity for logs/metrics/inspector output only

	cfg     *config[T]
	metrics metricsSink
	logger  *zap.Logger
}

// New constructs an empty Region with the default initial capacity. trace
// must visit every outgoing Ix field of a *T; see TraceFunc.
func New[T any](trace TraceFunc[T], opts ...Option[T]) (*Region[T], error) {
	return WithCapacity(defaultInitialCapacity, trace, opts...)
}

// WithCapacity constructs an empty Region pre-sized for n slots.
func WithCapacity[T any](n int, trace TraceFunc[T], opts ...Option[T]) (*Region[T], error) {
	if n <= 0 {
		return nil, ErrInvalidCapacity
	}

	cfg := defaultConfig[T]()
	applyOptions(cfg, opts)
	if cfg.minCapacity <= 0 {
		return nil, ErrInvalidMin
	}

	id := nextArenaID.Add(1)
	r := &Region[T]{
		store:      slotstore.New[T](n),
		roots:      regtable.NewRootTable(),
		weaks:      regtable.NewWeakTable(),
		trace:      trace,
		generation: 0,
		arenaID:    id,
		uuid:       uuid.New().String(),
		cfg:        cfg,
	}
	r.logger = cfg.logger.With(
		zap.Uint64("arena_seq", id),
		zap.String("arena_uuid", r.uuid),
	)
	r.metrics = newMetricsSink(cfg.registry, r.label())
	r.metrics.setCapacity(n)
	r.metrics.setGeneration(0)
	return r, nil
}

// label is what Prometheus uses to key this Region's metric series, and what
// the arenainspect tool and log greps key off of — the uuid stays stable and
// printable across a process's lifetime, unlike the cheap sequence number
// stamped into every Ix.ArenaID, which exists purely for fast equality
// checks on the hot Get path.
func (r *Region[T]) label() string {
	return r.uuid
}

// Capacity returns the total slot count of the active store.
func (r *Region[T]) Capacity() int { return r.store.Cap() }

// Len returns the number of currently live slots.
func (r *Region[T]) Len() int { return r.store.Len() }

// Generation returns the current generation counter, bumped by every
// collection.
func (r *Region[T]) Generation() uint32 { return r.generation }

// Get returns a pointer to the payload ix addresses. In the default build
// this never fails for a well-formed Ix produced by this Region; the
// debug-validity build (region_checks_debug.go) additionally validates
// arena identity, generation, and liveness, returning ErrArenaMismatch,
// EntryExpired, ErrNotLive, or ErrOutOfRange as appropriate.
//
// Get and GetMut are the same operation in this implementation: Go has no
// way to express the source API's shared/exclusive access distinction
// without either unsafe tricks or a runtime borrow checker, both of which
// would cost more than the distinction is worth for a single-threaded
// region. Callers wanting read-only semantics should simply not write
// through the returned pointer.
func (r *Region[T]) Get(ix Ix) (*T, error) {
	if err := checkIx(r, ix); err != nil {
		return nil, err
	}
	return &r.store.At(ix.Pos).Payload, nil
}

// GetMut returns a mutable pointer to the payload ix addresses. See Get.
func (r *Region[T]) GetMut(ix Ix) (*T, error) {
	return r.Get(ix)
}

// Alloc reserves a slot, runs producer with read-only region access to
// build the payload, installs it, and returns a MutEntry naming the new
// slot. self is the slot's own Ix, handed to producer so that
// self-referencing payloads can be built in one call instead of requiring a
// separate fixup mutation.
//
// May trigger a grow-and-collect if the store has no free slot; the
// producer always runs against the post-growth store, so self is always
// valid by the time producer sees it.
func (r *Region[T]) Alloc(producer func(self Ix, ro ReadOnlyRegion[T]) T) MutEntry[T] {
	if !r.store.HasFree() {
		r.grow()
	}
	pos := r.store.Alloc()
	self := Ix{Pos: pos, Gen: r.generation, ArenaID: r.arenaID}
	r.store.At(pos).Payload = producer(self, r)
	r.metrics.incAlloc()
	return MutEntry[T]{region: r, ix: self}
}

// GC runs one explicit collection. Unlike a growth-triggered collection,
// the resulting store is never larger than the current one; it may be
// smaller if occupancy falls under the shrink threshold.
func (r *Region[T]) GC() {
	r.runCollection(r.store.Cap(), false)
	r.maybeShrink()
}

// grow runs a collection into a store of at least double the current
// capacity.
func (r *Region[T]) grow() {
	newCap := r.store.Cap() * 2
	if newCap == 0 {
		newCap = defaultInitialCapacity
	}
	r.runCollection(newCap, true)
}

// maybeShrink runs a second, cheap collection into a smaller store when the
// one GC just produced is underoccupied. Two passes (compact, then maybe
// shrink) cost one extra collection in the rare case, in exchange for never
// having to guess the post-collection live count before collecting.
func (r *Region[T]) maybeShrink() {
	live := r.store.Len()
	capacity := r.store.Cap()
	if capacity == 0 || float64(live) >= r.cfg.shrinkThreshold*float64(capacity) {
		return
	}
	target := live * 2
	if target < r.cfg.minCapacity {
		target = r.cfg.minCapacity
	}
	if target >= capacity {
		return
	}
	r.runCollection(target, false)
}

// runCollection is the single place that calls collect and updates every
// piece of bookkeeping (generation, metrics, logging) consistently, whether
// the collection was triggered by growth or by an explicit/implicit GC.
func (r *Region[T]) runCollection(newCap int, grown bool) {
	start := time.Now()
	fromCap := r.store.Cap()
	newGen := r.generation + 1

	to, result := collect(r.store, r.roots, r.weaks, r.trace, newCap, newGen, r.arenaID, r.onTeardown)

	r.store = to
	r.generation = newGen
	dur := time.Since(start)

	r.metrics.incCollection()
	r.metrics.observeCollectionSeconds(dur.Seconds())
	r.metrics.incTeardowns(result.collectedCount)
	r.metrics.setLiveSlots(result.liveCount)
	r.metrics.setCapacity(newCap)
	r.metrics.setGeneration(newGen)

	fields := []zap.Field{
		zap.Uint32("generation", newGen),
		zap.Int("from_capacity", fromCap),
		zap.Int("to_capacity", newCap),
		zap.Int("live_count", result.liveCount),
		zap.Int("collected_count", result.collectedCount),
		zap.Duration("duration", dur),
	}
	if grown {
		r.logger.Info("arena grew and collected", fields...)
	} else {
		r.logger.Debug("arena collected", fields...)
	}
}

// onTeardown forwards a collected payload to the configured observer, if
// any. Kept as a bound method (rather than a closure built at call site) so
// collect's signature stays a plain func(T) value.
func (r *Region[T]) onTeardown(payload T) {
	if r.cfg.teardownObserver != nil {
		r.cfg.teardownObserver(payload)
	}
}

// newRoot/newWeak register a fresh table entry for MutEntry.Root/Weak in
// handles.go; the handles themselves then read and refcount their entries
// through r.roots/r.weaks.

func (r *Region[T]) newRoot(ix Ix) *Root[T] {
	id := r.roots.Insert(ix)
	return &Root[T]{region: r, id: id}
}

func (r *Region[T]) newWeak(ix Ix) *Weak[T] {
	id := r.weaks.Insert(ix)
	return &Weak[T]{region: r, id: id}
}
