// Command arenainspect drives a movingarena Region in-process through a
// scripted allocate/root/collect workload and prints (or persists) the
// resulting capacity/occupancy/generation statistics each round.
//
// This library has no network surface of its own, so the inspector builds
// and exercises its own demo Region directly rather than scraping a remote
// process.
//
// Run:
//
//	go run ./cmd/arenainspect -nodes 256 -rounds 10 -history ./history.db -metrics :9090
//
// © 2025 movingarena authors. MIT License.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	arena "github.com/Voskan/movingarena/pkg/arena"
)

// demoNode is the inspector's own scratch payload: a chain link plus a
// little padding so the copy cost of a collection is visible in timing.
type demoNode struct {
	Val  int
	Next arena.Ix
	_    [32]byte
}

func traceDemoNode(n *demoNode, visit func(*arena.Ix)) {
	visit(&n.Next)
}

// snapshot is what gets printed (and, with -history, persisted) after every
// round.
type snapshot struct {
	Round          int     `json:"round"`
	Capacity       int     `json:"capacity"`
	Len            int     `json:"len"`
	Generation     uint32  `json:"generation"`
	CollectedSoFar int     `json:"collected_so_far"`
	DurationMS     float64 `json:"duration_ms"`
}

func main() {
	opts := parseFlags()

	if opts.version {
		fmt.Println(version)
		return
	}

	fmt.Printf("debug-index-validity: %v\n", arena.DebugValidityEnabled())

	var history *badger.DB
	if opts.historyPath != "" {
		db, err := badger.Open(badger.DefaultOptions(opts.historyPath).WithLogger(nil))
		if err != nil {
			fatal(fmt.Errorf("badger: %w", err))
		}
		defer db.Close()
		history = db
	}

	collectedSoFar := 0
	regionOpts := []arena.Option[demoNode]{
		arena.WithTeardownObserver(func(demoNode) { collectedSoFar++ }),
	}

	if opts.metricsAddr != "" {
		registry := prometheus.NewRegistry()
		regionOpts = append(regionOpts, arena.WithMetrics[demoNode](registry))
		serveMetrics(opts.metricsAddr, registry)
	}

	r, err := arena.WithCapacity[demoNode](opts.capacity, traceDemoNode, regionOpts...)
	if err != nil {
		fatal(err)
	}

	for round := 0; round < opts.rounds; round++ {
		start := time.Now()
		runRound(r, round, opts.nodes)
		r.GC()
		dur := time.Since(start)

		snap := snapshot{
			Round:          round,
			Capacity:       r.Capacity(),
			Len:            r.Len(),
			Generation:     r.Generation(),
			CollectedSoFar: collectedSoFar,
			DurationMS:     float64(dur.Microseconds()) / 1000,
		}
		if err := emit(opts, snap); err != nil {
			fatal(err)
		}
		if history != nil {
			if err := persist(history, snap); err != nil {
				fmt.Fprintln(os.Stderr, "history write error:", err)
			}
		}
		if opts.interval > 0 && round < opts.rounds-1 {
			time.Sleep(opts.interval)
		}
	}
}

// runRound allocates a short chain of n nodes and roots only the head,
// leaving everything else reachable only through the chain itself, then
// releases that root before returning.
func runRound(r *arena.Region[demoNode], round, n int) {
	var prev arena.Ix
	var head *arena.Root[demoNode]
	for i := 0; i < n; i++ {
		val := round*n + i
		edge := prev
		e := r.Alloc(func(self arena.Ix, ro arena.ReadOnlyRegion[demoNode]) demoNode {
			return demoNode{Val: val, Next: edge}
		})
		prev = e.Ix()
		if i == n-1 {
			head = e.Root()
		}
	}
	// Drop the round's own root immediately: by construction every round's
	// chain becomes garbage for the GC that main runs right after this
	// round, which is the point of the demo — it exercises reclamation, not
	// retention.
	if head != nil {
		head.Release()
	}
}

func emit(opts *options, snap snapshot) error {
	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(snap)
	}
	fmt.Printf("round=%d capacity=%d len=%d generation=%d collected=%d duration=%.3fms\n",
		snap.Round, snap.Capacity, snap.Len, snap.Generation, snap.CollectedSoFar, snap.DurationMS)
	return nil
}

func persist(db *badger.DB, snap snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("round:%08d", snap.Round)
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// serveMetrics starts a background HTTP server exposing reg's collectors at
// /metrics on addr. It does not block; a failing listener logs and exits the
// process, since a -metrics flag the server can't honor is a usage error,
// not a runtime condition the rest of the inspector should run through.
func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("arenainspect: metrics server: %v", err)
		}
	}()
	fmt.Printf("metrics: serving /metrics on %s\n", addr)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "arenainspect:", err)
	os.Exit(1)
}
