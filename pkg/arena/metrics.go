package arena

// metrics.go holds Region's region-level collector counters. Metrics are
// entirely opt-in: Region never pays for a WithLabelValues call on the hot
// allocation/get path unless the caller passed WithMetrics.
//
// ┌───────────────────────────────────┐
// │ Metric                    │ Type  │
// ├────────────────────────────┼───────┤
// │ movingarena_allocations_total  │ Ctr   │
// │ movingarena_collections_total  │ Ctr   │
// │ movingarena_teardowns_total    │ Ctr   │
// │ movingarena_collection_seconds │ Hist  │
// │ movingarena_live_slots         │ Gauge │
// │ movingarena_capacity           │ Gauge │
// │ movingarena_generation         │ Gauge │
// └───────────────────────────────────┘
//
// © 2025 movingarena authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metricsSink abstracts the concrete backend (Prometheus vs noop) away from
// Region.
type metricsSink interface {
	incAlloc()
	incCollection()
	incTeardowns(n int)
	observeCollectionSeconds(s float64)
	setLiveSlots(n int)
	setCapacity(n int)
	setGeneration(g uint32)
}

/* -------------------------------------------------------------------------
   No-op implementation — used whenever WithMetrics is not passed.
   ------------------------------------------------------------------------- */

type noopMetrics struct{}

func (noopMetrics) incAlloc()                        {}
func (noopMetrics) incCollection()                   {}
func (noopMetrics) incTeardowns(int)                 {}
func (noopMetrics) observeCollectionSeconds(float64) {}
func (noopMetrics) setLiveSlots(int)                 {}
func (noopMetrics) setCapacity(int)                  {}
func (noopMetrics) setGeneration(uint32)             {}

/* -------------------------------------------------------------------------
   Prometheus implementation
   ------------------------------------------------------------------------- */

type promMetrics struct {
	allocations *prometheus.CounterVec
	collections *prometheus.CounterVec
	teardowns   *prometheus.CounterVec
	collectDur  *prometheus.HistogramVec
	liveSlots   *prometheus.GaugeVec
	capacity    *prometheus.GaugeVec
	generation  *prometheus.GaugeVec

	label string // arena instance label (its uuid), constant for this sink
}

func newPromMetrics(reg *prometheus.Registry, label string) *promMetrics {
	labels := []string{"arena"}

	pm := &promMetrics{
		label: label,
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "movingarena",
			Name:      "allocations_total",
			Help:      "Number of Region.Alloc calls.",
		}, labels),
		collections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "movingarena",
			Name:      "collections_total",
			Help:      "Number of completed collections.",
		}, labels),
		teardowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "movingarena",
			Name:      "teardowns_total",
			Help:      "Number of payload teardowns run by the collector.",
		}, labels),
		collectDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "movingarena",
			Name:      "collection_seconds",
			Help:      "Wall-clock duration of a single collection.",
			Buckets:   prometheus.DefBuckets,
		}, labels),
		liveSlots: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "movingarena",
			Name:      "live_slots",
			Help:      "Live slots after the most recent collection.",
		}, labels),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "movingarena",
			Name:      "capacity",
			Help:      "Total slot capacity of the active store.",
		}, labels),
		generation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "movingarena",
			Name:      "generation",
			Help:      "Current arena generation counter.",
		}, labels),
	}

	reg.MustRegister(pm.allocations, pm.collections, pm.teardowns,
		pm.collectDur, pm.liveSlots, pm.capacity, pm.generation)
	return pm
}

func (m *promMetrics) incAlloc()      { m.allocations.WithLabelValues(m.label).Inc() }
func (m *promMetrics) incCollection() { m.collections.WithLabelValues(m.label).Inc() }
func (m *promMetrics) incTeardowns(n int) {
	m.teardowns.WithLabelValues(m.label).Add(float64(n))
}
func (m *promMetrics) observeCollectionSeconds(s float64) {
	m.collectDur.WithLabelValues(m.label).Observe(s)
}
func (m *promMetrics) setLiveSlots(n int)     { m.liveSlots.WithLabelValues(m.label).Set(float64(n)) }
func (m *promMetrics) setCapacity(n int)      { m.capacity.WithLabelValues(m.label).Set(float64(n)) }
func (m *promMetrics) setGeneration(g uint32) { m.generation.WithLabelValues(m.label).Set(float64(g)) }

// newMetricsSink builds the concrete sink for a Region: nil registry means
// metrics are disabled.
func newMetricsSink(reg *prometheus.Registry, label string) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg, label)
}
