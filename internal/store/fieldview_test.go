package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowbyte/zbytes/internal/fieldgroup"
	"github.com/arrowbyte/zbytes/internal/memaccess"
)

func TestNewHeapFieldViewsSubRegion(t *testing.T) {
	layout := fieldgroup.Describe("Frame",
		fieldgroup.Field{Name: "len", Group: "header", Kind: memaccess.KindInt, Offset: 0},
		fieldgroup.Field{Name: "flags", Group: "header", Kind: memaccess.KindInt, Offset: 4},
		fieldgroup.Field{Name: "body", Group: "payload", Kind: memaccess.KindLong, Offset: 8},
	)

	host := make([]byte, 16)
	fs, err := NewHeapField(host, layout, "header", 0, "owner")
	require.NoError(t, err)
	require.Equal(t, 8, fs.Capacity())

	require.NoError(t, fs.WriteInt(0, 42))
	v, err := fs.ReadInt(0)
	require.NoError(t, err)
	require.Equal(t, int32(42), v)
}

func TestNewHeapFieldRejectsUnknownGroup(t *testing.T) {
	layout := fieldgroup.Describe("Frame")
	_, err := NewHeapField(make([]byte, 8), layout, "missing", 0, "owner")
	require.Error(t, err)
}
