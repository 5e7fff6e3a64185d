package store

import "github.com/arrowbyte/zbytes/internal/memaccess"

// UncheckedInput is the unchecked random-read view of spec.md §4.4.2:
// used exclusively by hot inner loops (e.g. content-equality) that have
// already validated their own range and want to skip the per-call
// checkAccess cost.
type UncheckedInput interface {
	ReadByteAt(off int) byte
	ReadIntAt(off int) int32
	ReadLongAt(off int) int64
}

type uncheckedHeap struct{ buf []byte }

func (u uncheckedHeap) ReadByteAt(off int) byte  { return u.buf[off] }
func (u uncheckedHeap) ReadIntAt(off int) int32  { return int32(memaccess.ReadU32(u.buf, off)) }
func (u uncheckedHeap) ReadLongAt(off int) int64 { return int64(memaccess.ReadU64(u.buf, off)) }

// Unchecked exposes h's backing buffer for direct indexed access
// without the per-call checkAccess validation.
func (h *HeapStore) Unchecked() (UncheckedInput, bool) {
	if h.released {
		return nil, false
	}
	return uncheckedHeap{buf: h.buf}, true
}

type uncheckedNative struct{ addr uintptr }

func (u uncheckedNative) ReadByteAt(off int) byte  { return memaccess.ReadU8Native(u.addr, off) }
func (u uncheckedNative) ReadIntAt(off int) int32  { return int32(memaccess.ReadU32Native(u.addr, off)) }
func (u uncheckedNative) ReadLongAt(off int) int64 { return int64(memaccess.ReadU64Native(u.addr, off)) }

// Unchecked exposes n's raw address for direct reads bypassing
// checkAccess.
func (n *NativeStore) Unchecked() (UncheckedInput, bool) {
	if n.released {
		return nil, false
	}
	return uncheckedNative{addr: n.addr}, true
}
