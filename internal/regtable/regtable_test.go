package regtable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Voskan/movingarena/internal/slotstore"
)

func TestRootTableLifecycle(t *testing.T) {
	rt := NewRootTable()
	id := rt.Insert(slotstore.Ix{Pos: 1, Gen: 0})
	require.Equal(t, 1, rt.Len())

	rt.IncRef(id)
	require.False(t, rt.DecRef(id)) // still one ref left
	require.Equal(t, 1, rt.Len())

	rt.SetIx(id, slotstore.Ix{Pos: 2, Gen: 1})
	ix, ok := rt.Ix(id)
	require.True(t, ok)
	require.Equal(t, uint32(2), ix.Pos)

	require.True(t, rt.DecRef(id))
	require.Equal(t, 0, rt.Len())
	_, ok = rt.Ix(id)
	require.False(t, ok)
}

func TestWeakTableCollection(t *testing.T) {
	wt := NewWeakTable()
	id := wt.Insert(slotstore.Ix{Pos: 5, Gen: 0})

	ix, ok := wt.Ix(id)
	require.True(t, ok)
	require.Equal(t, uint32(5), ix.Pos)

	wt.MarkCollected(id)
	_, ok = wt.Ix(id)
	require.False(t, ok)

	require.True(t, wt.DecRef(id))
}
