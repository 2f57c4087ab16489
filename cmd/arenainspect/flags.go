package main

// flags.go parses arenainspect's command-line options, kept separate from
// main.go's demo workload and reporting logic.
//
// © 2025 movingarena authors. MIT License.

import (
	"flag"
	"time"
)

type options struct {
	nodes       int
	rounds      int
	capacity    int
	interval    time.Duration
	json        bool
	historyPath string
	metricsAddr string
	version     bool
}

var version = "dev"

func parseFlags() *options {
	opts := &options{}

	flag.IntVar(&opts.nodes, "nodes", 64, "nodes allocated per round")
	flag.IntVar(&opts.rounds, "rounds", 5, "number of alloc/gc rounds to run")
	flag.IntVar(&opts.capacity, "capacity", 16, "initial region capacity")
	flag.DurationVar(&opts.interval, "interval", 0, "pause between rounds (0 = run back-to-back)")
	flag.BoolVar(&opts.json, "json", false, "emit each round's snapshot as JSON instead of text")
	flag.StringVar(&opts.historyPath, "history", "", "optional path to a Badger database recording one entry per round")
	flag.StringVar(&opts.metricsAddr, "metrics", "", "optional address to serve Prometheus /metrics on (e.g. :9090); empty disables metrics")
	flag.BoolVar(&opts.version, "version", false, "print version and exit")
	flag.Parse()

	return opts
}
