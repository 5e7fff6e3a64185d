package store

import (
	"io"
	"runtime"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/arrowbyte/zbytes/internal/memaccess"
	"github.com/arrowbyte/zbytes/internal/refcount"
	"github.com/arrowbyte/zbytes/internal/zconfig"
	"github.com/arrowbyte/zbytes/internal/zerr"
)

// tracingLogger receives finalizer leak warnings for traced native
// stores. SetTracingLogger lets a host application point it at its own
// logger; it defaults to discarding everything.
var tracingLogger log.Logger = log.NewNopLogger()

func SetTracingLogger(l log.Logger) { tracingLogger = l }

// NativeStore is a fixed-capacity view over a raw native address,
// grounded in internal/allocator/allocator.go's systemAlloc/systemFree
// and the pack's fmstephe-memorymanager pointerstore slab bookkeeping.
type NativeStore struct {
	addr          uintptr
	region        Region
	owns          bool
	refs          *refcount.Counter
	released      bool
	disableChecks bool
	traceID       uuid.UUID
	traced        bool
}

// TraceID reports the store's identity for leak diagnostics. Zero
// value when the store was never opted into resource tracing.
func (n *NativeStore) TraceID() uuid.UUID { return n.traceID }

// NewNative allocates n bytes of native memory (zero-filled if
// requested) and wraps it as a NativeStore of size==capacity==n.
func NewNative(n int, zeroFill bool, owner any, disableChecks bool) (*NativeStore, error) {
	return newNative(n, zeroFill, owner, disableChecks, false, false)
}

// NewNativeTraced behaves like NewNative but assigns the store a trace
// id and arms a finalizer that warns through tracingLogger if the
// store is ever collected while still live, i.e. never released.
func NewNativeTraced(n int, zeroFill bool, owner any, disableChecks bool) (*NativeStore, error) {
	return newNative(n, zeroFill, owner, disableChecks, true, false)
}

// NewNativeWithConfig allocates n bytes of native memory honoring both
// cfg.ResourceTracing and cfg.LeakCheck.
func NewNativeWithConfig(n int, zeroFill bool, owner any, cfg *zconfig.Config) (*NativeStore, error) {
	if cfg == nil {
		cfg = zconfig.Default()
	}
	return newNative(n, zeroFill, owner, cfg.BoundsCheckDisabled, cfg.ResourceTracing, cfg.LeakCheck)
}

func newNative(n int, zeroFill bool, owner any, disableChecks, trace, leakCheck bool) (*NativeStore, error) {
	addr, err := memaccess.Allocate(n, zeroFill)
	if err != nil {
		return nil, err
	}
	region, err := NewRegion(n, n)
	if err != nil {
		return nil, err
	}
	ns := &NativeStore{addr: addr, region: region, owns: true, disableChecks: disableChecks}
	ns.refs = refcount.New(owner, ns.onZero, leakCheck)
	if trace {
		ns.traced = true
		ns.traceID = uuid.New()
		armLeakFinalizer(ns)
	}
	return ns, nil
}

func armLeakFinalizer(ns *NativeStore) {
	runtime.SetFinalizer(ns, func(ns *NativeStore) {
		if !ns.released {
			level.Warn(tracingLogger).Log(
				"msg", "native store garbage collected while still live",
				"traceID", ns.traceID, "bytes", ns.region.size)
		}
	})
}

// WrapNative wraps an address the caller already owns (e.g. from a
// direct buffer), without taking ownership of its deallocation.
func WrapNative(addr uintptr, size, capacity int, owner any, disableChecks bool) (*NativeStore, error) {
	region, err := NewRegion(size, capacity)
	if err != nil {
		return nil, err
	}
	ns := &NativeStore{addr: addr, region: region, owns: false, disableChecks: disableChecks}
	ns.refs = refcount.New(owner, ns.onZero, false)
	return ns, nil
}

func (n *NativeStore) onZero() {
	if n.owns {
		memaccess.Free(n.addr, n.region.size)
	}
	n.released = true
	n.addr = 0
}

func (n *NativeStore) IsNative() bool { return true }
func (n *NativeStore) IsHeap() bool   { return false }
func (n *NativeStore) Released() bool { return n.released }
func (n *NativeStore) Size() int      { return n.region.Size() }
func (n *NativeStore) Capacity() int  { return n.region.Capacity() }
func (n *NativeStore) SafeLimit() int { return n.region.Size() }

// Address exposes the raw address for callers (e.g. zhash's optimized
// path) that operate directly on native memory.
func (n *NativeStore) Address() uintptr { return n.addr }

func (n *NativeStore) ensureLive() error {
	if n.released {
		return zerr.Released("native store")
	}
	return nil
}

func (n *NativeStore) check(off, width int) error {
	if err := n.ensureLive(); err != nil {
		return err
	}
	return checkAccess(off, width, n.region.size, n.disableChecks)
}

func (n *NativeStore) ReadByte(off int) (byte, error) {
	if err := n.check(off, 1); err != nil {
		return 0, err
	}
	return memaccess.ReadU8Native(n.addr, off), nil
}

func (n *NativeStore) ReadShort(off int) (int16, error) {
	if err := n.check(off, 2); err != nil {
		return 0, err
	}
	return int16(memaccess.ReadU16Native(n.addr, off)), nil
}

func (n *NativeStore) ReadInt(off int) (int32, error) {
	if err := n.check(off, 4); err != nil {
		return 0, err
	}
	return int32(memaccess.ReadU32Native(n.addr, off)), nil
}

func (n *NativeStore) ReadLong(off int) (int64, error) {
	if err := n.check(off, 8); err != nil {
		return 0, err
	}
	return int64(memaccess.ReadU64Native(n.addr, off)), nil
}

func (n *NativeStore) ReadFloat(off int) (float32, error) {
	v, err := n.ReadInt(off)
	if err != nil {
		return 0, err
	}
	return mathFloat32frombits(uint32(v)), nil
}

func (n *NativeStore) ReadDouble(off int) (float64, error) {
	v, err := n.ReadLong(off)
	if err != nil {
		return 0, err
	}
	return mathFloat64frombits(uint64(v)), nil
}

func (n *NativeStore) ReadIntVolatile(off int) (int32, error) {
	if err := n.check(off, 4); err != nil {
		return 0, err
	}
	return int32(memaccess.ReadU32VolatileNative(n.addr, off)), nil
}

func (n *NativeStore) ReadLongVolatile(off int) (int64, error) {
	if err := n.check(off, 8); err != nil {
		return 0, err
	}
	return int64(memaccess.ReadU64VolatileNative(n.addr, off)), nil
}

func (n *NativeStore) WriteByte(off int, v byte) error {
	if err := n.check(off, 1); err != nil {
		return err
	}
	memaccess.WriteU8Native(n.addr, off, v)
	return nil
}

func (n *NativeStore) WriteShort(off int, v int16) error {
	if err := n.check(off, 2); err != nil {
		return err
	}
	memaccess.WriteU16Native(n.addr, off, uint16(v))
	return nil
}

func (n *NativeStore) WriteInt(off int, v int32) error {
	if err := n.check(off, 4); err != nil {
		return err
	}
	memaccess.WriteU32Native(n.addr, off, uint32(v))
	return nil
}

func (n *NativeStore) WriteLong(off int, v int64) error {
	if err := n.check(off, 8); err != nil {
		return err
	}
	memaccess.WriteU64Native(n.addr, off, uint64(v))
	return nil
}

func (n *NativeStore) WriteFloat(off int, v float32) error {
	return n.WriteInt(off, int32(mathFloat32bits(v)))
}

func (n *NativeStore) WriteDouble(off int, v float64) error {
	return n.WriteLong(off, int64(mathFloat64bits(v)))
}

func (n *NativeStore) WriteIntOrdered(off int, v int32) error {
	return n.WriteIntVolatile(off, v)
}

func (n *NativeStore) WriteLongOrdered(off int, v int64) error {
	return n.WriteLongVolatile(off, v)
}

func (n *NativeStore) WriteIntVolatile(off int, v int32) error {
	if err := n.check(off, 4); err != nil {
		return err
	}
	memaccess.WriteU32VolatileNative(n.addr, off, uint32(v))
	return nil
}

func (n *NativeStore) WriteLongVolatile(off int, v int64) error {
	if err := n.check(off, 8); err != nil {
		return err
	}
	memaccess.WriteU64VolatileNative(n.addr, off, uint64(v))
	return nil
}

func (n *NativeStore) CompareAndSwapInt(off int, expected, value int32) (bool, error) {
	if err := n.check(off, 4); err != nil {
		return false, err
	}
	return memaccess.CompareAndSwapU32Native(n.addr, off, uint32(expected), uint32(value)), nil
}

func (n *NativeStore) CompareAndSwapLong(off int, expected, value int64) (bool, error) {
	if err := n.check(off, 8); err != nil {
		return false, err
	}
	return memaccess.CompareAndSwapU64Native(n.addr, off, uint64(expected), uint64(value)), nil
}

func (n *NativeStore) CompareAndSwapFloat(off int, expected, value float32) (bool, error) {
	return n.CompareAndSwapInt(off, int32(mathFloat32bits(expected)), int32(mathFloat32bits(value)))
}

func (n *NativeStore) CompareAndSwapDouble(off int, expected, value float64) (bool, error) {
	return n.CompareAndSwapLong(off, int64(mathFloat64bits(expected)), int64(mathFloat64bits(value)))
}

func (n *NativeStore) TestAndSetInt(off int, expected, value int32) error {
	if err := n.check(off, 4); err != nil {
		return err
	}
	memaccess.CompareAndSwapU32Native(n.addr, off, uint32(expected), uint32(value))
	return nil
}

func (n *NativeStore) TestAndSetLong(off int, expected, value int64) error {
	if err := n.check(off, 8); err != nil {
		return err
	}
	memaccess.CompareAndSwapU64Native(n.addr, off, uint64(expected), uint64(value))
	return nil
}

func (n *NativeStore) AddAndGet(off int, diff int32) (int32, error) {
	for {
		cur, err := n.ReadIntVolatile(off)
		if err != nil {
			return 0, err
		}
		ok, err := n.CompareAndSwapInt(off, cur, cur+diff)
		if err != nil {
			return 0, err
		}
		if ok {
			return cur + diff, nil
		}
	}
}

func (n *NativeStore) Write(off int, src []byte, srcBegin, l int) error {
	if err := n.check(off, l); err != nil {
		return err
	}
	if srcBegin < 0 || l < 0 || srcBegin+l > len(src) {
		return zerr.Argument("source range out of bounds",
			map[string]any{"srcBegin": srcBegin, "n": l, "len": len(src)})
	}
	memaccess.CopyToNative(n.addr, off, src, srcBegin, l)
	return nil
}

func (n *NativeStore) Read(off int, dst []byte, dstBegin, l int) (int, error) {
	if err := n.ensureLive(); err != nil {
		return 0, err
	}
	avail := n.region.size - off
	if avail <= 0 {
		return -1, nil
	}
	if l > avail {
		l = avail
	}
	if err := checkAccess(off, l, n.region.size, n.disableChecks); err != nil {
		return 0, err
	}
	if dstBegin < 0 || dstBegin+l > len(dst) {
		return 0, zerr.Argument("destination range out of bounds",
			map[string]any{"dstBegin": dstBegin, "n": l, "len": len(dst)})
	}
	memaccess.CopyNative(dst, dstBegin, n.addr, off, l)
	return l, nil
}

func (n *NativeStore) WriteReader(off int, r io.Reader, l int) error {
	if err := n.check(off, l); err != nil {
		return err
	}
	buf := make([]byte, l)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	memaccess.CopyToNative(n.addr, off, buf, 0, l)
	return nil
}

func (n *NativeStore) ReadWriter(off int, w io.Writer, l int) (int, error) {
	if err := n.check(off, l); err != nil {
		return 0, err
	}
	buf := make([]byte, l)
	memaccess.CopyNative(buf, 0, n.addr, off, l)
	return w.Write(buf)
}

func (n *NativeStore) Move(from, to, l int) error {
	if err := n.check(from, l); err != nil {
		return err
	}
	if err := n.check(to, l); err != nil {
		return err
	}
	memaccess.MoveNative(n.addr, from, to, l)
	return nil
}

func (n *NativeStore) ZeroOut(begin, end int) error {
	if err := n.ensureLive(); err != nil {
		return err
	}
	if begin < 0 || end < begin || end > n.region.size {
		return zerr.Argument("invalid zero-out range", map[string]any{"begin": begin, "end": end})
	}
	for i := begin; i < end; i++ {
		memaccess.WriteU8Native(n.addr, i, 0)
	}
	return nil
}

func (n *NativeStore) AddressForRead(off int) (uintptr, error) {
	if err := n.check(off, 0); err != nil {
		return 0, err
	}
	return n.addr + uintptr(off), nil
}

func (n *NativeStore) AddressForWrite(off int) (uintptr, error) {
	return n.AddressForRead(off)
}

func (n *NativeStore) IsInside(off, l int) bool {
	return n.region.inBounds(off, l)
}

func (n *NativeStore) CopyTo(dst []byte) (int, error) {
	if err := n.ensureLive(); err != nil {
		return 0, err
	}
	l := n.region.size
	if l > len(dst) {
		l = len(dst)
	}
	memaccess.CopyNative(dst, 0, n.addr, 0, l)
	return l, nil
}

func (n *NativeStore) Release(owner any) error {
	return n.refs.Release(owner)
}
