package zequal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowbyte/zbytes/internal/store"
	"github.com/arrowbyte/zbytes/internal/zconfig"
)

func heapOf(t *testing.T, b []byte) store.Store {
	t.Helper()
	hs, err := store.NewHeap(b, "owner", false)
	require.NoError(t, err)
	return hs
}

// TestZeroExtensionEquality is S4: {1,2,3,4,5} equals {1,2,3,4,5,0,0,0}.
func TestZeroExtensionEquality(t *testing.T) {
	a := heapOf(t, []byte{1, 2, 3, 4, 5})
	b := heapOf(t, []byte{1, 2, 3, 4, 5, 0, 0, 0})
	require.True(t, Equal(a, b, zconfig.Default()))
	require.True(t, Equal(b, a, zconfig.Default()))
}

func TestNonZeroTailIsNotEqual(t *testing.T) {
	a := heapOf(t, []byte{1, 2, 3, 4, 5})
	b := heapOf(t, []byte{1, 2, 3, 4, 5, 0, 1, 0})
	require.False(t, Equal(a, b, zconfig.Default()))
}

func TestDifferingContentIsNotEqual(t *testing.T) {
	a := heapOf(t, []byte{1, 2, 3, 4})
	b := heapOf(t, []byte{1, 2, 3, 5})
	require.False(t, Equal(a, b, zconfig.Default()))
}

func TestIdenticalLongContentIsEqual(t *testing.T) {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i)
	}
	other := append([]byte(nil), buf...)
	require.True(t, Equal(heapOf(t, buf), heapOf(t, other), zconfig.Default()))
}

func TestNilStoresHandledBothWays(t *testing.T) {
	require.True(t, Equal(nil, nil, zconfig.Default()))
	require.False(t, Equal(heapOf(t, []byte{1}), nil, zconfig.Default()))
}

func TestUncheckedPathIsExercised(t *testing.T) {
	a := heapOf(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	ua, ok := asUnchecked(a)
	require.True(t, ok)

	b := heapOf(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	ub, ok := asUnchecked(b)
	require.True(t, ok)

	require.True(t, uncheckedCompare(ua, ub, 9))

	c := heapOf(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 0})
	uc, ok := asUnchecked(c)
	require.True(t, ok)
	require.False(t, uncheckedCompare(ua, uc, 9))

	// Equal itself must route through the same capability for two heap
	// stores rather than copy through staging buffers.
	require.True(t, Equal(a, b, zconfig.Default()))
}

func TestReleasedStoreIsNeverEqual(t *testing.T) {
	a := heapOf(t, []byte{1, 2, 3})
	hs := a.(*store.HeapStore)
	require.NoError(t, hs.Release("owner"))
	b := heapOf(t, []byte{1, 2, 3})
	require.False(t, Equal(a, b, zconfig.Default()))
}
