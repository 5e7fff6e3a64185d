package zconfig

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsFullyChecked(t *testing.T) {
	c := Default()
	require.False(t, c.BoundsCheckDisabled)
	require.False(t, c.VectorizedEqualsDisabled)
	require.False(t, c.LeakCheck)
}

func TestOptionsApplyOverDefault(t *testing.T) {
	c := New(WithBoundsCheckDisabled(true), WithLeakCheck(true))
	require.True(t, c.BoundsCheckDisabled)
	require.True(t, c.LeakCheck)
	require.False(t, c.VectorizedEqualsDisabled)
}

func TestLoadFromEnvReadsBooleans(t *testing.T) {
	os.Setenv("ZBYTES_BOUNDS_CHECK_DISABLE", "true")
	defer os.Unsetenv("ZBYTES_BOUNDS_CHECK_DISABLE")

	c := LoadFromEnv()
	require.True(t, c.BoundsCheckDisabled)
	require.False(t, c.ResourceTracing)
}

func TestLoadFromEnvIgnoresUnparsable(t *testing.T) {
	os.Setenv("ZBYTES_LEAK_CHECK", "not-a-bool")
	defer os.Unsetenv("ZBYTES_LEAK_CHECK")

	c := LoadFromEnv()
	require.False(t, c.LeakCheck)
}
