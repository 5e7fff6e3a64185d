package zhash

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowbyte/zbytes/internal/store"
)

func heapOf(t *testing.T, b []byte) store.Store {
	t.Helper()
	hs, err := store.NewHeap(b, "owner", false)
	require.NoError(t, err)
	return hs
}

// TestHashIsStableAndSensitive is S6.
func TestHashIsStableAndSensitive(t *testing.T) {
	original := make([]byte, 32)
	for i := range original {
		original[i] = byte(i)
	}

	h1a, err := Hash64(heapOf(t, original))
	require.NoError(t, err)
	h1b, err := Hash64(heapOf(t, original))
	require.NoError(t, err)
	require.Equal(t, h1a, h1b, "hashing the same bytes twice must be stable")

	mutated := append([]byte(nil), original...)
	mutated[17] ^= 0xff
	h2, err := Hash64(heapOf(t, mutated))
	require.NoError(t, err)
	require.NotEqual(t, h1a, h2)

	f32, err := Hash32(heapOf(t, original))
	require.NoError(t, err)
	require.Equal(t, int32(uint32(h1a^(h1a>>32))), f32)
}

func TestHashEmptyIsZero(t *testing.T) {
	h, err := Hash64(heapOf(t, nil))
	require.NoError(t, err)
	require.Equal(t, uint64(0), h)
}

func TestHashShortAndMediumLengths(t *testing.T) {
	for _, n := range []int{1, 4, 7, 8, 9, 15, 16, 17, 31, 32, 33, 63, 64, 65} {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(i*7 + 3)
		}
		h, err := Hash64(heapOf(t, b))
		require.NoError(t, err)
		h2, err := Hash64(heapOf(t, b))
		require.NoError(t, err)
		require.Equal(t, h, h2, "length %d must hash stably", n)
	}
}

func TestHash64NativeMatchesVanilla(t *testing.T) {
	b := make([]byte, 96)
	for i := range b {
		b[i] = byte(i*13 + 1)
	}

	ns, err := store.NewNative(len(b), false, "owner", false)
	require.NoError(t, err)
	defer ns.Release("owner")
	require.NoError(t, ns.Write(0, b, 0, len(b)))

	want, err := Hash64(heapOf(t, b))
	require.NoError(t, err)
	got, err := Hash64Native(ns)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
