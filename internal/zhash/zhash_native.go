package zhash

import (
	"github.com/arrowbyte/zbytes/internal/memaccess"
	"github.com/arrowbyte/zbytes/internal/store"
)

// nativeWords reads straight off a raw address via memaccess's native
// primitives, skipping the staging-buffer copy Hash64 performs.
type nativeWords struct {
	addr uintptr
	n    int
}

func (w nativeWords) len() int { return w.n }

func (w nativeWords) long(off int) uint64 {
	return memaccess.ReadU64Native(w.addr, off)
}

func (w nativeWords) hi(off int) uint32 {
	if memaccess.IsLittleEndian {
		return memaccess.ReadU32Native(w.addr, off+4)
	}
	return memaccess.ReadU32Native(w.addr, off)
}

func (w nativeWords) incompleteLong(off, avail int) uint64 {
	var out uint64
	for i := 0; i < avail; i++ {
		out |= uint64(memaccess.ReadU8Native(w.addr, off+i)) << (8 * uint(i))
	}
	return out
}

// Hash64Native is the optimized specialization of spec.md §4.5: it
// operates directly on the address returned by AddressForRead instead
// of copying the store's content into a staging buffer.
func Hash64Native(ns *store.NativeStore) (uint64, error) {
	addr, err := ns.AddressForRead(0)
	if err != nil && ns.Size() > 0 {
		return 0, err
	}
	return mix(nativeWords{addr: addr, n: ns.Size()}), nil
}
