package zbytes

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowbyte/zbytes/internal/zconfig"
)

func writeSixPrimitives(t *testing.T, c *HeapCursor) {
	t.Helper()
	require.NoError(t, c.WriteByte(0x7f))
	require.NoError(t, c.WriteShort(-1000))
	require.NoError(t, c.WriteInt(123456))
	require.NoError(t, c.WriteLong(-9876543210))
	require.NoError(t, c.WriteFloat(1.5))
	require.NoError(t, c.WriteDouble(2.25))
}

func readSixPrimitives(t *testing.T, c *HeapCursor) {
	t.Helper()
	b, err := c.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x7f), b)

	sh, err := c.ReadShort()
	require.NoError(t, err)
	require.Equal(t, int16(-1000), sh)

	iv, err := c.ReadInt()
	require.NoError(t, err)
	require.Equal(t, int32(123456), iv)

	lv, err := c.ReadLong()
	require.NoError(t, err)
	require.Equal(t, int64(-9876543210), lv)

	fv, err := c.ReadFloat()
	require.NoError(t, err)
	require.Equal(t, float32(1.5), fv)

	dv, err := c.ReadDouble()
	require.NoError(t, err)
	require.Equal(t, 2.25, dv)
}

// TestHeapRoundTrip writes the six primitive values through a heap
// cursor, rewinds the read position and reads them back sequentially.
func TestHeapRoundTrip(t *testing.T) {
	c, err := Wrap(make([]byte, 64))
	require.NoError(t, err)
	writeSixPrimitives(t, c)
	require.Equal(t, 27, c.WritePosition())

	require.NoError(t, c.SetReadPosition(0))
	readSixPrimitives(t, c)
	require.Equal(t, 27, c.ReadPosition())
}

// TestSequentialCursor is S2.
func TestSequentialCursor(t *testing.T) {
	c, err := Wrap(make([]byte, 64))
	require.NoError(t, err)

	writeSixPrimitives(t, c)
	require.Equal(t, 27, c.WritePosition())
	require.Equal(t, 0, c.ReadPosition())

	readSixPrimitives(t, c)
	require.Equal(t, 27, c.ReadPosition())
}

// TestElasticGrowth is S3: a native cursor starting at 1024 bytes,
// capped at 65536, grows to accommodate a 5000-byte bulk write.
func TestElasticGrowth(t *testing.T) {
	c, err := ElasticBuffer(1024, 65536)
	require.NoError(t, err)
	defer c.Release()

	payload := make([]byte, 5000)
	rand.New(rand.NewSource(1)).Read(payload)

	require.NoError(t, c.WriteBytes(payload))
	require.Equal(t, 5000, c.WritePosition())
	require.GreaterOrEqual(t, c.Store().Size(), 5000)

	require.NoError(t, c.SetReadPosition(0))
	out := make([]byte, 5000)
	n, err := c.ReadWriter(sliceWriter{out}, 5000)
	require.NoError(t, err)
	require.Equal(t, 5000, n)
	require.Equal(t, payload, out)
}

type sliceWriter struct{ buf []byte }

func (w sliceWriter) Write(p []byte) (int, error) {
	return copy(w.buf, p), nil
}

func TestClearResetsPointers(t *testing.T) {
	c, err := Wrap(make([]byte, 16))
	require.NoError(t, err)
	require.NoError(t, c.WriteInt(1))
	require.NoError(t, c.SetReadPosition(0))
	_, err = c.ReadInt()
	require.NoError(t, err)

	c.Clear()
	require.Equal(t, 0, c.ReadPosition())
	require.Equal(t, 0, c.WritePosition())
	require.Equal(t, c.capacityLimit, c.WriteLimit())
}

func TestLenientReadYieldsZero(t *testing.T) {
	c, err := Wrap(make([]byte, 4))
	require.NoError(t, err)
	c.SetLenient(true)
	require.NoError(t, c.SetReadPosition(0))

	v, err := c.ReadLong()
	require.NoError(t, err)
	require.Equal(t, int64(0), v)
}

func TestNonLenientReadFailsOnBounds(t *testing.T) {
	c, err := Wrap(make([]byte, 4))
	require.NoError(t, err)
	require.NoError(t, c.SetReadPosition(0))

	_, err = c.ReadLong()
	require.Error(t, err)
}

func TestNonElasticWriteFailsPastLimit(t *testing.T) {
	c, err := Wrap(make([]byte, 4))
	require.NoError(t, err)
	require.Error(t, c.WriteLong(1))
}

func TestInt24RoundTripSignExtends(t *testing.T) {
	c, err := Wrap(make([]byte, 16))
	require.NoError(t, err)

	require.NoError(t, c.WriteInt24(-1))
	require.NoError(t, c.WriteInt24(0x7fffff))
	require.NoError(t, c.WriteInt24(0x123456))
	require.Equal(t, 9, c.WritePosition())

	require.NoError(t, c.SetReadPosition(0))
	v, err := c.ReadInt24()
	require.NoError(t, err)
	require.Equal(t, int32(-1), v)

	v, err = c.ReadInt24()
	require.NoError(t, err)
	require.Equal(t, int32(0x7fffff), v)

	v, err = c.ReadInt24()
	require.NoError(t, err)
	require.Equal(t, int32(0x123456&0xffffff), v)
}

func TestElasticBufferTraceIDOnlyWhenConfigured(t *testing.T) {
	plain, err := ElasticBuffer(64, 1024)
	require.NoError(t, err)
	defer plain.Release()
	_, ok := plain.TraceID()
	require.False(t, ok)

	traced, err := ElasticBufferWithConfig(64, 1024, zconfig.New(zconfig.WithResourceTracing(true)))
	require.NoError(t, err)
	defer traced.Release()
	id, ok := traced.TraceID()
	require.True(t, ok)
	require.NotEmpty(t, id.String())
}

func TestRoundDownTo8RoundsDown(t *testing.T) {
	require.Equal(t, 32, roundDownTo8(32))
	require.Equal(t, 32, roundDownTo8(39))
	require.Equal(t, 40, roundDownTo8(40))
	require.Equal(t, 0, roundDownTo8(7))
}

func TestRoundedNewSizeStaysAtLeastRequested(t *testing.T) {
	for _, requested := range []int{1, 3, 7, 8, 100, 4096} {
		got := roundedNewSize(requested, 0, growthHeap)
		require.GreaterOrEqual(t, got, requested, "requested=%d", requested)
		require.Zero(t, got%8, "requested=%d got=%d", requested, got)
	}
}

func TestHeapWrapWithConfigHonorsLeakCheck(t *testing.T) {
	hc, err := WrapWithConfig(make([]byte, 8), zconfig.New(zconfig.WithLeakCheck(true)))
	require.NoError(t, err)
	require.NoError(t, hc.WriteLong(1))
	require.NoError(t, hc.SetReadPosition(0))
	v, err := hc.ReadLong()
	require.NoError(t, err)
	require.Equal(t, int64(1), v)

	// "impostor" never held a reference, so leak check rejects its release.
	require.Error(t, hc.Store().Release("impostor"))
}

func TestCursorUncheckedDelegatesToStore(t *testing.T) {
	hc, err := Wrap(make([]byte, 8))
	require.NoError(t, err)
	require.NoError(t, hc.WriteLong(42))

	u, ok := hc.Unchecked()
	require.True(t, ok)
	require.Equal(t, int64(42), u.ReadLongAt(0))
}

func TestInt24KeepsOnlyLow24Bits(t *testing.T) {
	c, err := Wrap(make([]byte, 4))
	require.NoError(t, err)
	// only the low 24 bits of 0x01020304 survive the mask
	require.NoError(t, c.WriteInt24(0x01020304))
	require.NoError(t, c.SetReadPosition(0))
	v, err := c.ReadInt24()
	require.NoError(t, err)
	require.Equal(t, int32(0x020304), v)
}
