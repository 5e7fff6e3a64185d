// Package zhash computes the engine's 64-bit content hash (spec.md
// C5/§4.5): a length-conditioned mixer over four accumulators, with a
// vanilla path that walks any store.Store by offset and an optimized
// path that reads straight off a native address.
package zhash

import (
	"math/bits"

	"github.com/arrowbyte/zbytes/internal/memaccess"
	"github.com/arrowbyte/zbytes/internal/store"
)

// Key and mix constants (spec.md §4.5: "values fixed by the literals
// in the source"). Chosen as odd 64-bit constants with good avalanche
// under rotate-xor; this is a bespoke mixer, not an ecosystem hash, so
// there is no external constant set to match.
const (
	k0 uint64 = 0x9E3779B185EBCA87
	k1 uint64 = 0xC2B2AE3D27D4EB4F
	k2 uint64 = 0x165667B19E3779F9
	k3 uint64 = 0x27D4EB2F165667C5

	m0 uint64 = 0xFF51AFD7ED558CCD
	m1 uint64 = 0xC4CEB9FE1A85EC53
	m2 uint64 = 0x9E3779B97F4A7C15
	m3 uint64 = 0xBF58476D1CE4E5B9
)

func agitate(x uint64) uint64 {
	return x ^ bits.RotateLeft64(x, 26) ^ bits.RotateLeft64(x, -17)
}

// wordReader abstracts the byte source the mixer walks, letting the
// same algorithm serve both the vanilla store-offset path and the
// optimized native-address path.
type wordReader interface {
	len() int
	long(off int) uint64
	hi(off int) uint32
	incompleteLong(off, avail int) uint64
}

func mix(r wordReader) uint64 {
	n := r.len()
	if n == 0 {
		return 0
	}
	if n <= 8 {
		l := r.incompleteLong(0, n)
		return agitate(l*k0 + (l>>32)*k1)
	}

	h0 := uint64(n) * k0
	var h1, h2, h3 uint64
	first := true

	off := 0
	for n-off >= 32 {
		l0, l1, l2, l3 := r.long(off), r.long(off+8), r.long(off+16), r.long(off+24)
		hi0, hi1, hi2, hi3 := r.hi(off), r.hi(off+8), r.hi(off+16), r.hi(off+24)
		if !first {
			h0 *= k0
			h1 *= k1
			h2 *= k2
			h3 *= k3
		}
		h0 += (l0 + uint64(hi1) - uint64(hi2)) * m0
		h1 += (l1 + uint64(hi2) - uint64(hi3)) * m1
		h2 += (l2 + uint64(hi3) - uint64(hi0)) * m2
		h3 += (l3 + uint64(hi0) - uint64(hi1)) * m3
		first = false
		off += 32
	}

	if off < n {
		readWord := func(base int) (uint64, uint32) {
			avail := n - base
			if avail <= 0 {
				return 0, 0
			}
			if avail >= 8 {
				return r.long(base), r.hi(base)
			}
			return r.incompleteLong(base, avail), 0
		}
		l0, hi0 := readWord(off)
		l1, hi1 := readWord(off + 8)
		l2, hi2 := readWord(off + 16)
		l3, hi3 := readWord(off + 24)
		if !first {
			h0 *= k0
			h1 *= k1
			h2 *= k2
			h3 *= k3
		}
		h0 += (l0 + uint64(hi1) - uint64(hi2)) * m0
		h1 += (l1 + uint64(hi2) - uint64(hi3)) * m1
		h2 += (l2 + uint64(hi3) - uint64(hi0)) * m2
		h3 += (l3 + uint64(hi0) - uint64(hi1)) * m3
	}

	return agitate(h0) ^ agitate(h1) ^ agitate(h2) ^ agitate(h3)
}

// --- byte-slice wordReader: backs the vanilla store.Store path ---

type byteWords struct{ b []byte }

func (w byteWords) len() int { return len(w.b) }

func (w byteWords) long(off int) uint64 {
	return memaccess.ReadU64(w.b, off)
}

// hi reads the endian-dependent "top half" of the long at off: the
// high-order 32 bits regardless of host layout, i.e. bytes [off+4,
// off+8) on little-endian hosts and [off, off+4) on big-endian hosts.
func (w byteWords) hi(off int) uint32 {
	if memaccess.IsLittleEndian {
		return memaccess.ReadU32(w.b, off+4)
	}
	return memaccess.ReadU32(w.b, off)
}

func (w byteWords) incompleteLong(off, avail int) uint64 {
	var out uint64
	for i := 0; i < avail; i++ {
		out |= uint64(w.b[off+i]) << (8 * uint(i))
	}
	return out
}

// Hash64 computes the vanilla content hash of a store's full logical
// extent by copying it into a staging buffer and walking that, per
// spec.md §4.5 "operates against any store through its logical offset
// API".
func Hash64(s store.Store) (uint64, error) {
	n := s.Size()
	buf := make([]byte, n)
	if n > 0 {
		if _, err := s.Read(0, buf, 0, n); err != nil {
			return 0, err
		}
	}
	return mix(byteWords{b: buf}), nil
}

// Hash32 folds the 64-bit hash into 32 bits, per spec.md §4.5.
func Hash32(s store.Store) (int32, error) {
	h, err := Hash64(s)
	if err != nil {
		return 0, err
	}
	return int32(uint32(h ^ (h >> 32))), nil
}
