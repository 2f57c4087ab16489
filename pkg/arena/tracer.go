package arena

import "github.com/Voskan/movingarena/internal/slotstore"

// Ix is a small, copyable value naming a position inside one arena
// generation. It carries no ownership — values may be freely copied, stored
// in payload fields, and compared — but dereferencing one requires a Region.
type Ix = slotstore.Ix

// NilIx is the zero-value sentinel a Weak yields once its pointee has been
// collected.
var NilIx = slotstore.Nil

// TraceFunc is the capability every element type T must supply: given a
// pointer to one payload, invoke visit on every outgoing Ix field it holds.
// The collector uses this single callback to discover and rewrite a
// payload's outgoing edges during a copying collection.
//
// A TraceFunc is supplied once, at Region construction, rather than
// implemented as a method on T, so that T itself stays a plain data type and
// the tracing policy lives alongside the rest of the Region's configuration.
//
// Implementations must:
//   - call visit for every Ix field, including duplicates — omissions cause
//     use-after-collection (tracer incompleteness);
//   - not allocate, collect, or otherwise mutate Region state while running —
//     the collector invokes it mid-collection, before any invariant the
//     Region API assumes is restored;
//   - treat the pointer passed to visit as writable: the collector uses it
//     to install the forwarded index in place.
type TraceFunc[T any] func(payload *T, visit func(*Ix))
