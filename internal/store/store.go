package store

import (
	"io"

	"github.com/arrowbyte/zbytes/internal/zerr"
)

// Store is the byte-store contract (spec.md §4.3): fixed-extent random
// access, atomics, and bulk moves over store-local logical offsets,
// where 0 means start.
type Store interface {
	IsNative() bool
	IsHeap() bool
	Released() bool

	Size() int
	Capacity() int
	SafeLimit() int

	ReadByte(off int) (byte, error)
	ReadShort(off int) (int16, error)
	ReadInt(off int) (int32, error)
	ReadLong(off int) (int64, error)
	ReadFloat(off int) (float32, error)
	ReadDouble(off int) (float64, error)

	ReadIntVolatile(off int) (int32, error)
	ReadLongVolatile(off int) (int64, error)

	WriteByte(off int, v byte) error
	WriteShort(off int, v int16) error
	WriteInt(off int, v int32) error
	WriteLong(off int, v int64) error
	WriteFloat(off int, v float32) error
	WriteDouble(off int, v float64) error

	WriteIntOrdered(off int, v int32) error
	WriteLongOrdered(off int, v int64) error
	WriteIntVolatile(off int, v int32) error
	WriteLongVolatile(off int, v int64) error

	CompareAndSwapInt(off int, expected, value int32) (bool, error)
	CompareAndSwapLong(off int, expected, value int64) (bool, error)
	CompareAndSwapFloat(off int, expected, value float32) (bool, error)
	CompareAndSwapDouble(off int, expected, value float64) (bool, error)

	TestAndSetInt(off int, expected, value int32) error
	TestAndSetLong(off int, expected, value int64) error

	// AddAndGet atomically adds diff to the int32 at off and returns the
	// post-value, spinning a CAS loop over a volatile read per spec.md
	// §4.3.
	AddAndGet(off int, diff int32) (int32, error)

	Write(off int, src []byte, srcBegin, n int) error
	Read(off int, dst []byte, dstBegin, n int) (int, error)
	WriteReader(off int, r io.Reader, n int) error
	ReadWriter(off int, w io.Writer, n int) (int, error)

	Move(from, to, n int) error
	ZeroOut(begin, end int) error

	AddressForRead(off int) (uintptr, error)
	AddressForWrite(off int) (uintptr, error)

	IsInside(off int, n int) bool
	CopyTo(dst []byte) (int, error)

	// Release drops the caller's reference to the store, invoking the
	// deallocation hook exactly once when the last reference goes away.
	Release(owner any) error
}

func errInvalidRegion(size, capacity int) error {
	return zerr.Argument("invalid region: size must be in [0, capacity]",
		map[string]any{"size": size, "capacity": capacity})
}

func boundsErr(off, width, size int) error {
	return zerr.Bounds(off, width, 0, size)
}

// checkAccess validates [off, off+width) against size, honoring
// disableChecks (spec.md §4.3 "A flag... may disable checks for
// benchmarked hot paths").
func checkAccess(off, width, size int, disableChecks bool) error {
	if disableChecks {
		return nil
	}
	if off < 0 || width < 0 || off+width > size {
		return boundsErr(off, width, size)
	}
	return nil
}
