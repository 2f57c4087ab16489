package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// node is the test element type: a value plus zero or more outgoing edges,
// covering both the chain and cyclic-graph seed scenarios below.
type node struct {
	Val   int
	Edges []Ix
}

func traceNode(n *node, visit func(*Ix)) {
	for i := range n.Edges {
		visit(&n.Edges[i])
	}
}

func TestMutualCycleCollection(t *testing.T) {
	var torn []int
	r, err := New[node](traceNode, WithTeardownObserver(func(n node) {
		torn = append(torn, n.Val)
	}))
	require.NoError(t, err)

	eA := r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node { return node{Val: 1} })
	eB := r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node { return node{Val: 2} })
	eC := r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node { return node{Val: 3} })

	pa, err := eA.GetMut()
	require.NoError(t, err)
	pa.Edges = []Ix{eB.Ix()}

	pb, err := eB.GetMut()
	require.NoError(t, err)
	pb.Edges = []Ix{eA.Ix()}

	pc, err := eC.GetMut()
	require.NoError(t, err)
	pc.Edges = []Ix{eC.Ix()}

	rootA := eA.Root()
	rootB := eB.Root()
	rootC := eC.Root()

	rootA.Release()
	rootC.Release()

	r.GC()

	require.Equal(t, 1, r.Len())
	pb2, err := rootB.Get()
	require.NoError(t, err)
	require.Equal(t, 2, pb2.Val)
	require.ElementsMatch(t, []int{1, 3}, torn)
}

func TestForwardingCorrectness(t *testing.T) {
	// Pre-sized so building the unrooted chain never triggers a growth
	// collection, which would reclaim the nodes built so far.
	r, err := WithCapacity[node](100, traceNode)
	require.NoError(t, err)

	var prevIx Ix
	var headEntry MutEntry[node]
	for i := 99; i >= 0; i-- {
		val := i
		prev := prevIx
		e := r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node {
			n := node{Val: val}
			if !prev.IsNil() {
				n.Edges = []Ix{prev}
			}
			return n
		})
		prevIx = e.Ix()
		headEntry = e
	}
	head := headEntry.Root()
	r.GC()

	count := 0
	ix := head.Ix()
	for {
		p, err := r.Get(ix)
		require.NoError(t, err)
		require.Equal(t, count, p.Val)
		count++
		if len(p.Edges) == 0 {
			break
		}
		ix = p.Edges[0]
	}
	require.Equal(t, 100, count)
}

func TestWeakDowngrade(t *testing.T) {
	r, err := New[node](traceNode)
	require.NoError(t, err)

	e := r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node { return node{Val: 7} })
	root := e.Root()
	weak := e.Weak()

	root.Release()
	r.GC()

	_, present := weak.Ix()
	require.False(t, present)
	require.Equal(t, 0, r.Len())
}

func TestGrowthTriggersGC(t *testing.T) {
	r, err := WithCapacity[node](4, traceNode)
	require.NoError(t, err)
	require.Equal(t, 4, r.Capacity())

	for i := 0; i < 5; i++ {
		e := r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node { return node{Val: i} })
		e.Root().Release()
	}

	require.Greater(t, r.Capacity(), 4)
}

func TestSelfCycleCollection(t *testing.T) {
	torn := 0
	r, err := New[node](traceNode, WithTeardownObserver(func(n node) { torn++ }))
	require.NoError(t, err)

	r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node {
		return node{Val: 1, Edges: []Ix{self}}
	})

	r.GC()

	require.Equal(t, 0, r.Len())
	require.Equal(t, 1, torn)
}

func TestIdentifierStability(t *testing.T) {
	r, err := New[node](traceNode)
	require.NoError(t, err)

	var roots []*Root[node]
	seen := map[uint64]bool{}
	for i := 0; i < 10; i++ {
		e := r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node { return node{Val: i} })
		id := e.Ix().Identifier()
		require.False(t, seen[id])
		seen[id] = true
		roots = append(roots, e.Root())
	}

	r.GC()

	seenAfter := map[uint64]bool{}
	for _, root := range roots {
		id := root.Ix().Identifier()
		require.False(t, seenAfter[id])
		seenAfter[id] = true
	}
	require.Equal(t, 10, len(seenAfter))
}

func TestAllocProducerReadsExistingState(t *testing.T) {
	r, err := New[node](traceNode)
	require.NoError(t, err)

	first := r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node { return node{Val: 42} })

	second := r.Alloc(func(self Ix, ro ReadOnlyRegion[node]) node {
		existing, err := ro.Get(first.Ix())
		require.NoError(t, err)
		return node{Val: existing.Val + 1}
	})

	p, err := second.Get()
	require.NoError(t, err)
	require.Equal(t, 43, p.Val)
}
