package arena

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegionMetricsWired(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := WithCapacity[node](4, traceNode, WithMetrics[node](reg))
	require.NoError(t, err)

	require.Equal(t, float64(4), testutil.ToFloat64(r.metrics.(*promMetrics).capacity.WithLabelValues(r.label())))

	e1 := r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node { return node{Val: 1} })
	_ = r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node { return node{Val: 2} }).Root()
	require.Equal(t, float64(2), testutil.ToFloat64(r.metrics.(*promMetrics).allocations.WithLabelValues(r.label())))

	e1.Root().Release()
	r.GC()

	pm := r.metrics.(*promMetrics)
	require.Equal(t, float64(1), testutil.ToFloat64(pm.collections.WithLabelValues(r.label())))
	require.Equal(t, float64(1), testutil.ToFloat64(pm.teardowns.WithLabelValues(r.label())))
	require.Equal(t, float64(1), testutil.ToFloat64(pm.liveSlots.WithLabelValues(r.label())))
	require.Equal(t, float64(1), testutil.ToFloat64(pm.generation.WithLabelValues(r.label())))

	samples, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, samples)
}

func TestNoopMetricsWhenUnset(t *testing.T) {
	r, err := New[node](traceNode)
	require.NoError(t, err)

	_, isNoop := r.metrics.(noopMetrics)
	require.True(t, isNoop)

	// Exercising the no-op sink should never panic even though nothing
	// backs it.
	r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node { return node{} })
	r.GC()
}
