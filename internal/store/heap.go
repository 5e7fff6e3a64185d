package store

import (
	"io"

	"github.com/arrowbyte/zbytes/internal/memaccess"
	"github.com/arrowbyte/zbytes/internal/refcount"
	"github.com/arrowbyte/zbytes/internal/zerr"
)

// HeapStore is a fixed-capacity view over an on-heap []byte, grounded
// in internal/allocator/arena.go's bump-pointer-over-[]byte pattern,
// adapted here to a fixed-bounds, reference-counted, bounds-checked
// view rather than a growing bump allocator.
type HeapStore struct {
	buf           []byte
	region        Region
	refs          *refcount.Counter
	released      bool
	disableChecks bool
}

// NewHeap wraps an existing []byte as a HeapStore of size len(buf) and
// capacity cap(buf). owner becomes the first reference holder.
func NewHeap(buf []byte, owner any, disableChecks bool) (*HeapStore, error) {
	return NewHeapWithConfig(buf, owner, disableChecks, false)
}

// NewHeapWithConfig is NewHeap plus leakCheck, which arms the owner-
// tracked double-release diagnostics (zconfig.LeakCheck) on the
// resulting store's reference counter.
func NewHeapWithConfig(buf []byte, owner any, disableChecks, leakCheck bool) (*HeapStore, error) {
	region, err := NewRegion(len(buf), cap(buf))
	if err != nil {
		return nil, err
	}
	hs := &HeapStore{buf: buf, region: region, disableChecks: disableChecks}
	hs.refs = refcount.New(owner, hs.onZero, leakCheck)
	return hs, nil
}

func (h *HeapStore) onZero() {
	h.released = true
	h.buf = nil
}

func (h *HeapStore) IsNative() bool  { return false }
func (h *HeapStore) IsHeap() bool    { return true }
func (h *HeapStore) Released() bool  { return h.released }
func (h *HeapStore) Size() int       { return h.region.Size() }
func (h *HeapStore) Capacity() int   { return h.region.Capacity() }
func (h *HeapStore) SafeLimit() int  { return h.region.Size() }

func (h *HeapStore) ensureLive() error {
	if h.released {
		return zerr.Released("heap store")
	}
	return nil
}

func (h *HeapStore) check(off, width int) error {
	if err := h.ensureLive(); err != nil {
		return err
	}
	return checkAccess(off, width, h.region.size, h.disableChecks)
}

func (h *HeapStore) ReadByte(off int) (byte, error) {
	if err := h.check(off, 1); err != nil {
		return 0, err
	}
	return memaccess.ReadU8(h.buf, off), nil
}

func (h *HeapStore) ReadShort(off int) (int16, error) {
	if err := h.check(off, 2); err != nil {
		return 0, err
	}
	return int16(memaccess.ReadU16(h.buf, off)), nil
}

func (h *HeapStore) ReadInt(off int) (int32, error) {
	if err := h.check(off, 4); err != nil {
		return 0, err
	}
	return int32(memaccess.ReadU32(h.buf, off)), nil
}

func (h *HeapStore) ReadLong(off int) (int64, error) {
	if err := h.check(off, 8); err != nil {
		return 0, err
	}
	return int64(memaccess.ReadU64(h.buf, off)), nil
}

func (h *HeapStore) ReadFloat(off int) (float32, error) {
	if err := h.check(off, 4); err != nil {
		return 0, err
	}
	return memaccess.ReadF32(h.buf, off), nil
}

func (h *HeapStore) ReadDouble(off int) (float64, error) {
	if err := h.check(off, 8); err != nil {
		return 0, err
	}
	return memaccess.ReadF64(h.buf, off), nil
}

func (h *HeapStore) ReadIntVolatile(off int) (int32, error) {
	if err := h.check(off, 4); err != nil {
		return 0, err
	}
	return int32(memaccess.ReadU32Volatile(h.buf, off)), nil
}

func (h *HeapStore) ReadLongVolatile(off int) (int64, error) {
	if err := h.check(off, 8); err != nil {
		return 0, err
	}
	return int64(memaccess.ReadU64Volatile(h.buf, off)), nil
}

func (h *HeapStore) WriteByte(off int, v byte) error {
	if err := h.check(off, 1); err != nil {
		return err
	}
	memaccess.WriteU8(h.buf, off, v)
	return nil
}

func (h *HeapStore) WriteShort(off int, v int16) error {
	if err := h.check(off, 2); err != nil {
		return err
	}
	memaccess.WriteU16(h.buf, off, uint16(v))
	return nil
}

func (h *HeapStore) WriteInt(off int, v int32) error {
	if err := h.check(off, 4); err != nil {
		return err
	}
	memaccess.WriteU32(h.buf, off, uint32(v))
	return nil
}

func (h *HeapStore) WriteLong(off int, v int64) error {
	if err := h.check(off, 8); err != nil {
		return err
	}
	memaccess.WriteU64(h.buf, off, uint64(v))
	return nil
}

func (h *HeapStore) WriteFloat(off int, v float32) error {
	if err := h.check(off, 4); err != nil {
		return err
	}
	memaccess.WriteF32(h.buf, off, v)
	return nil
}

func (h *HeapStore) WriteDouble(off int, v float64) error {
	if err := h.check(off, 8); err != nil {
		return err
	}
	memaccess.WriteF64(h.buf, off, v)
	return nil
}

func (h *HeapStore) WriteIntOrdered(off int, v int32) error {
	if err := h.check(off, 4); err != nil {
		return err
	}
	memaccess.WriteU32Ordered(h.buf, off, uint32(v))
	return nil
}

func (h *HeapStore) WriteLongOrdered(off int, v int64) error {
	if err := h.check(off, 8); err != nil {
		return err
	}
	memaccess.WriteU64Ordered(h.buf, off, uint64(v))
	return nil
}

func (h *HeapStore) WriteIntVolatile(off int, v int32) error {
	if err := h.check(off, 4); err != nil {
		return err
	}
	memaccess.WriteU32Volatile(h.buf, off, uint32(v))
	return nil
}

func (h *HeapStore) WriteLongVolatile(off int, v int64) error {
	if err := h.check(off, 8); err != nil {
		return err
	}
	memaccess.WriteU64Volatile(h.buf, off, uint64(v))
	return nil
}

func (h *HeapStore) CompareAndSwapInt(off int, expected, value int32) (bool, error) {
	if err := h.check(off, 4); err != nil {
		return false, err
	}
	return memaccess.CompareAndSwapU32(h.buf, off, uint32(expected), uint32(value)), nil
}

func (h *HeapStore) CompareAndSwapLong(off int, expected, value int64) (bool, error) {
	if err := h.check(off, 8); err != nil {
		return false, err
	}
	return memaccess.CompareAndSwapU64(h.buf, off, uint64(expected), uint64(value)), nil
}

func (h *HeapStore) CompareAndSwapFloat(off int, expected, value float32) (bool, error) {
	if err := h.check(off, 4); err != nil {
		return false, err
	}
	return memaccess.CompareAndSwapF32(h.buf, off, expected, value), nil
}

func (h *HeapStore) CompareAndSwapDouble(off int, expected, value float64) (bool, error) {
	if err := h.check(off, 8); err != nil {
		return false, err
	}
	return memaccess.CompareAndSwapF64(h.buf, off, expected, value), nil
}

func (h *HeapStore) TestAndSetInt(off int, expected, value int32) error {
	if err := h.check(off, 4); err != nil {
		return err
	}
	memaccess.TestAndSetU32(h.buf, off, uint32(expected), uint32(value))
	return nil
}

func (h *HeapStore) TestAndSetLong(off int, expected, value int64) error {
	if err := h.check(off, 8); err != nil {
		return err
	}
	memaccess.TestAndSetU64(h.buf, off, uint64(expected), uint64(value))
	return nil
}

// AddAndGet spins a CAS loop over a volatile read, per spec.md §4.3/§5.
func (h *HeapStore) AddAndGet(off int, diff int32) (int32, error) {
	for {
		cur, err := h.ReadIntVolatile(off)
		if err != nil {
			return 0, err
		}
		ok, err := h.CompareAndSwapInt(off, cur, cur+diff)
		if err != nil {
			return 0, err
		}
		if ok {
			return cur + diff, nil
		}
	}
}

func (h *HeapStore) Write(off int, src []byte, srcBegin, n int) error {
	if err := h.check(off, n); err != nil {
		return err
	}
	if srcBegin < 0 || n < 0 || srcBegin+n > len(src) {
		return zerr.Argument("source range out of bounds",
			map[string]any{"srcBegin": srcBegin, "n": n, "len": len(src)})
	}
	memaccess.Copy(h.buf, off, src, srcBegin, n)
	return nil
}

func (h *HeapStore) Read(off int, dst []byte, dstBegin, n int) (int, error) {
	if err := h.ensureLive(); err != nil {
		return 0, err
	}
	avail := h.region.size - off
	if avail <= 0 {
		return -1, nil
	}
	if n > avail {
		n = avail
	}
	if err := checkAccess(off, n, h.region.size, h.disableChecks); err != nil {
		return 0, err
	}
	if dstBegin < 0 || dstBegin+n > len(dst) {
		return 0, zerr.Argument("destination range out of bounds",
			map[string]any{"dstBegin": dstBegin, "n": n, "len": len(dst)})
	}
	memaccess.Copy(dst, dstBegin, h.buf, off, n)
	return n, nil
}

func (h *HeapStore) WriteReader(off int, r io.Reader, n int) error {
	if err := h.check(off, n); err != nil {
		return err
	}
	_, err := io.ReadFull(r, h.buf[off:off+n])
	return err
}

func (h *HeapStore) ReadWriter(off int, w io.Writer, n int) (int, error) {
	if err := h.check(off, n); err != nil {
		return 0, err
	}
	return w.Write(h.buf[off : off+n])
}

func (h *HeapStore) Move(from, to, n int) error {
	if err := h.check(from, n); err != nil {
		return err
	}
	if err := h.check(to, n); err != nil {
		return err
	}
	copy(h.buf[to:to+n], h.buf[from:from+n])
	return nil
}

func (h *HeapStore) ZeroOut(begin, end int) error {
	if err := h.ensureLive(); err != nil {
		return err
	}
	if begin < 0 || end < begin || end > h.region.size {
		return zerr.Argument("invalid zero-out range", map[string]any{"begin": begin, "end": end})
	}
	memaccess.Set(h.buf, begin, end-begin, 0)
	return nil
}

func (h *HeapStore) AddressForRead(int) (uintptr, error) {
	return 0, zerr.Unsupported("addressForRead on heap store")
}

func (h *HeapStore) AddressForWrite(int) (uintptr, error) {
	return 0, zerr.Unsupported("addressForWrite on heap store")
}

func (h *HeapStore) IsInside(off, n int) bool {
	return h.region.inBounds(off, n)
}

func (h *HeapStore) CopyTo(dst []byte) (int, error) {
	if err := h.ensureLive(); err != nil {
		return 0, err
	}
	n := copy(dst, h.buf[:h.region.size])
	return n, nil
}

func (h *HeapStore) Release(owner any) error {
	return h.refs.Release(owner)
}
