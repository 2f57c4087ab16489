// Package bench provides reproducible micro-benchmarks for movingarena.
// Run via:  go test ./bench -bench=. -benchmem
//
// The benchmarks use a single payload shape so results are comparable
// across versions:
//   - payload – a 64-byte struct plus one outgoing Ix, large enough to
//     matter for copy cost, small enough to keep results cache-friendly.
//
// We measure:
//  1. Alloc       – allocation-only workload; collects only when b.N
//     exceeds the 64Ki initial capacity
//  2. AllocGrowth – sustained allocation that forces repeated growth+GC
//  3. GC          – collection cost over a fixed live/garbage ratio
//  4. Get         – read-only workload against a rooted chain
//
// NOTE: Unit tests live in pkg/arena; this file is only for performance.
//
// © 2025 movingarena authors. MIT License.
package bench

import (
	"testing"

	arena "github.com/Voskan/movingarena/pkg/arena"
)

type payload struct {
	_    [64]byte
	Next arena.Ix
}

func tracePayload(p *payload, visit func(*arena.Ix)) {
	visit(&p.Next)
}

func newTestRegion(cap int) *arena.Region[payload] {
	r, err := arena.WithCapacity[payload](cap, tracePayload)
	if err != nil {
		panic(err)
	}
	return r
}

func BenchmarkAlloc(b *testing.B) {
	r := newTestRegion(1 << 16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Alloc(func(self arena.Ix, ro arena.ReadOnlyRegion[payload]) payload {
			return payload{}
		})
	}
}

func BenchmarkAllocGrowth(b *testing.B) {
	r := newTestRegion(16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := r.Alloc(func(self arena.Ix, ro arena.ReadOnlyRegion[payload]) payload {
			return payload{}
		})
		// Release immediately so growth has garbage to reclaim, exercising
		// the grow-triggers-collect path on every doubling instead of just
		// accumulating live slots forever.
		e.Root().Release()
	}
}

func BenchmarkGC(b *testing.B) {
	const live = 1 << 12
	const garbagePerRound = 1 << 10

	r := newTestRegion(live * 2)
	var roots []*arena.Root[payload]
	for i := 0; i < live; i++ {
		e := r.Alloc(func(self arena.Ix, ro arena.ReadOnlyRegion[payload]) payload {
			return payload{}
		})
		roots = append(roots, e.Root())
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < garbagePerRound; j++ {
			e := r.Alloc(func(self arena.Ix, ro arena.ReadOnlyRegion[payload]) payload {
				return payload{}
			})
			e.Root().Release()
		}
		r.GC()
	}
	b.StopTimer()
	for _, root := range roots {
		root.Release()
	}
}

func BenchmarkGet(b *testing.B) {
	r := newTestRegion(1 << 12)
	var headIx arena.Ix
	for i := 0; i < 1<<10; i++ {
		prev := headIx
		e := r.Alloc(func(self arena.Ix, ro arena.ReadOnlyRegion[payload]) payload {
			return payload{Next: prev}
		})
		headIx = e.Ix()
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Get(headIx)
	}
}
