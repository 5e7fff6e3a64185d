package store

import (
	"io"

	"github.com/arrowbyte/zbytes/internal/zerr"
)

// nullByteStore is the process-wide immortal singleton (spec.md C7):
// every memory op fails "unsupported"; reference-count ops are no-ops;
// declared neither heap nor native.
type nullByteStore struct{}

var nullInstance = &nullByteStore{}

// Null returns the zero-capacity sentinel store.
func Null() Store { return nullInstance }

func (nullByteStore) IsNative() bool { return false }
func (nullByteStore) IsHeap() bool   { return false }
func (nullByteStore) Released() bool { return false }
func (nullByteStore) Size() int      { return 0 }
func (nullByteStore) Capacity() int  { return 0 }
func (nullByteStore) SafeLimit() int { return 0 }

func (nullByteStore) ReadByte(int) (byte, error)      { return 0, errUnsupported("readByte") }
func (nullByteStore) ReadShort(int) (int16, error)    { return 0, errUnsupported("readShort") }
func (nullByteStore) ReadInt(int) (int32, error)      { return 0, errUnsupported("readInt") }
func (nullByteStore) ReadLong(int) (int64, error)     { return 0, errUnsupported("readLong") }
func (nullByteStore) ReadFloat(int) (float32, error)  { return 0, errUnsupported("readFloat") }
func (nullByteStore) ReadDouble(int) (float64, error) { return 0, errUnsupported("readDouble") }

func (nullByteStore) ReadIntVolatile(int) (int32, error)  { return 0, errUnsupported("readIntVolatile") }
func (nullByteStore) ReadLongVolatile(int) (int64, error) { return 0, errUnsupported("readLongVolatile") }

func (nullByteStore) WriteByte(int, byte) error      { return errUnsupported("writeByte") }
func (nullByteStore) WriteShort(int, int16) error    { return errUnsupported("writeShort") }
func (nullByteStore) WriteInt(int, int32) error      { return errUnsupported("writeInt") }
func (nullByteStore) WriteLong(int, int64) error     { return errUnsupported("writeLong") }
func (nullByteStore) WriteFloat(int, float32) error  { return errUnsupported("writeFloat") }
func (nullByteStore) WriteDouble(int, float64) error { return errUnsupported("writeDouble") }

func (nullByteStore) WriteIntOrdered(int, int32) error   { return errUnsupported("writeIntOrdered") }
func (nullByteStore) WriteLongOrdered(int, int64) error  { return errUnsupported("writeLongOrdered") }
func (nullByteStore) WriteIntVolatile(int, int32) error  { return errUnsupported("writeIntVolatile") }
func (nullByteStore) WriteLongVolatile(int, int64) error { return errUnsupported("writeLongVolatile") }

func (nullByteStore) CompareAndSwapInt(int, int32, int32) (bool, error) {
	return false, errUnsupported("compareAndSwapInt")
}

func (nullByteStore) CompareAndSwapLong(int, int64, int64) (bool, error) {
	return false, errUnsupported("compareAndSwapLong")
}

func (nullByteStore) CompareAndSwapFloat(int, float32, float32) (bool, error) {
	return false, errUnsupported("compareAndSwapFloat")
}

func (nullByteStore) CompareAndSwapDouble(int, float64, float64) (bool, error) {
	return false, errUnsupported("compareAndSwapDouble")
}

func (nullByteStore) TestAndSetInt(int, int32, int32) error   { return errUnsupported("testAndSetInt") }
func (nullByteStore) TestAndSetLong(int, int64, int64) error  { return errUnsupported("testAndSetLong") }
func (nullByteStore) AddAndGet(int, int32) (int32, error)     { return 0, errUnsupported("addAndGet") }

func (nullByteStore) Write(int, []byte, int, int) error { return errUnsupported("write") }
func (nullByteStore) Read(int, []byte, int, int) (int, error) {
	return 0, errUnsupported("read")
}
func (nullByteStore) WriteReader(int, io.Reader, int) error { return errUnsupported("writeReader") }
func (nullByteStore) ReadWriter(int, io.Writer, int) (int, error) {
	return 0, errUnsupported("readWriter")
}

func (nullByteStore) Move(int, int, int) error      { return errUnsupported("move") }
func (nullByteStore) ZeroOut(int, int) error         { return errUnsupported("zeroOut") }
func (nullByteStore) AddressForRead(int) (uintptr, error)  { return 0, errUnsupported("addressForRead") }
func (nullByteStore) AddressForWrite(int) (uintptr, error) { return 0, errUnsupported("addressForWrite") }
func (nullByteStore) IsInside(int, int) bool         { return false }
func (nullByteStore) CopyTo([]byte) (int, error)     { return 0, nil }
func (nullByteStore) Release(any) error              { return nil }

func errUnsupported(op string) error {
	return zerr.Unsupported(op)
}
