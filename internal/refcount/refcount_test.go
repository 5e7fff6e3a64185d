package refcount

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReserveReleaseLifecycle(t *testing.T) {
	zeroed := false
	owner := "owner-a"
	c := New(owner, func() { zeroed = true }, true)

	require.Equal(t, 1, c.RefCount())
	require.NoError(t, c.Reserve("owner-b"))
	require.Equal(t, 2, c.RefCount())

	require.NoError(t, c.Release("owner-b"))
	require.False(t, zeroed)

	require.NoError(t, c.Release(owner))
	require.True(t, zeroed)
	require.Equal(t, 0, c.RefCount())
}

func TestDoubleReleaseFails(t *testing.T) {
	owner := "solo"
	c := New(owner, func() {}, true)
	require.NoError(t, c.Release(owner))
	require.Error(t, c.Release(owner))
}

func TestTryReserveAfterClosedFails(t *testing.T) {
	owner := "solo"
	c := New(owner, func() {}, false)
	require.NoError(t, c.Release(owner))
	require.False(t, c.TryReserve("late"))
}

func TestReleaseLastAssertsTerminal(t *testing.T) {
	owner := "solo"
	c := New(owner, func() {}, false)
	require.NoError(t, c.Reserve("second"))
	require.Error(t, c.ReleaseLast(owner))
	require.NoError(t, c.ReleaseLast("second"))
}
