package fieldgroup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arrowbyte/zbytes/internal/memaccess"
)

type groupRange struct{ Start, Length uintptr }

func rangesOf(l *Layout, groups ...string) map[string]groupRange {
	out := make(map[string]groupRange, len(groups))
	for _, g := range groups {
		out[g] = groupRange{Start: l.StartOf(g), Length: l.LengthOf(g)}
	}
	return out
}

func TestContiguousGroupMerges(t *testing.T) {
	layout := Describe("Frame",
		Field{Name: "headerLen", Group: "header", Kind: memaccess.KindInt, Offset: 0},
		Field{Name: "headerFlags", Group: "header", Kind: memaccess.KindInt, Offset: 4},
		Field{Name: "payloadLen", Group: "payload", Kind: memaccess.KindLong, Offset: 8},
	)

	require.Equal(t, uintptr(0), layout.StartOf("header"))
	require.Equal(t, uintptr(8), layout.LengthOf("header"))
	require.Equal(t, uintptr(8), layout.StartOf("payload"))
	require.Equal(t, uintptr(8), layout.LengthOf("payload"))
}

func TestNonContiguousSameNameDoesNotReopen(t *testing.T) {
	layout := Describe("Frame",
		Field{Name: "a1", Group: "a", Kind: memaccess.KindByte, Offset: 0},
		Field{Name: "b1", Group: "b", Kind: memaccess.KindByte, Offset: 1},
		Field{Name: "a2", Group: "a", Kind: memaccess.KindByte, Offset: 2},
	)

	require.Equal(t, uintptr(2), layout.StartOf("a"))
	require.Equal(t, uintptr(1), layout.LengthOf("a"))
}

func TestFingerprintVariesWithSchema(t *testing.T) {
	layoutA := Describe("A",
		Field{Name: "x", Group: "g", Kind: memaccess.KindLong, Offset: 0},
	)
	layoutB := Describe("B",
		Field{Name: "x", Group: "g", Kind: memaccess.KindByte, Offset: 0},
	)
	require.NotEqual(t, layoutA.Fingerprint(), layoutB.Fingerprint())
}

func TestLayoutGroupRangesMatchExpected(t *testing.T) {
	layout := Describe("Packet",
		Field{Name: "seq", Group: "header", Kind: memaccess.KindLong, Offset: 0},
		Field{Name: "flags", Group: "header", Kind: memaccess.KindInt, Offset: 8},
		Field{Name: "crc", Group: "trailer", Kind: memaccess.KindInt, Offset: 12},
	)

	want := map[string]groupRange{
		"header":  {Start: 0, Length: 12},
		"trailer": {Start: 12, Length: 4},
	}
	got := rangesOf(layout, "header", "trailer")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("group ranges mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownGroupHasZeroRange(t *testing.T) {
	layout := Describe("Empty")
	require.False(t, layout.Has("missing"))
	require.Equal(t, uintptr(0), layout.StartOf("missing"))
	require.Equal(t, uintptr(0), layout.LengthOf("missing"))
}
