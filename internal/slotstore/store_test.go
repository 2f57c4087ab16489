package slotstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreAllocFree(t *testing.T) {
	st := New[int](4)
	require.Equal(t, 4, st.Cap())
	require.Equal(t, 0, st.Len())
	require.True(t, st.HasFree())

	p0 := st.Alloc()
	st.At(p0).Payload = 42
	require.Equal(t, 1, st.Len())
	require.Equal(t, StateLive, st.At(p0).State())
	require.Equal(t, 42, st.At(p0).Payload)

	st.Free(p0)
	require.Equal(t, 0, st.Len())
	require.Equal(t, StateFree, st.At(p0).State())
}

func TestStoreExhaustion(t *testing.T) {
	st := New[int](2)
	st.Alloc()
	st.Alloc()
	require.False(t, st.HasFree())
	require.Panics(t, func() { st.Alloc() })
}

func TestForwarding(t *testing.T) {
	st := New[string](2)
	pos := st.Alloc()
	target := Ix{Pos: 7, Gen: 3}
	st.ForwardTo(pos, target)
	require.Equal(t, StateForwarded, st.At(pos).State())
	require.Equal(t, target, st.ForwardTarget(pos))
}

func TestEachLive(t *testing.T) {
	st := New[int](4)
	a := st.Alloc()
	b := st.Alloc()
	st.Free(a)

	var seen []uint32
	st.EachLive(func(pos uint32) { seen = append(seen, pos) })
	require.Equal(t, []uint32{b}, seen)
}
