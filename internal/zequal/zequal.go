// Package zequal implements content equality between two byte-stores
// (spec.md C6/§4.6): released/nil handling, a length compare, an
// optional vectorized fast path, and a word/byte-stride fallback with
// zero-extension tail semantics.
package zequal

import (
	"math"

	"github.com/arrowbyte/zbytes/internal/memaccess"
	"github.com/arrowbyte/zbytes/internal/store"
	"github.com/arrowbyte/zbytes/internal/zconfig"
)

// Equal reports whether a and b hold the same content, per spec.md
// §4.6. A nil store argument is treated as "not equal" unless both are
// nil.
func Equal(a, b store.Store, cfg *zconfig.Config) bool {
	if cfg == nil {
		cfg = zconfig.Default()
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Released() || b.Released() {
		return false
	}

	la, lb := a.Size(), b.Size()
	shorter, longer := a, b
	shortLen, longLen := la, lb
	if lb < la {
		shorter, longer = b, a
		shortLen, longLen = lb, la
	}

	if !cfg.VectorizedEqualsDisabled && shortLen == longLen && shortLen > 7 && shortLen <= math.MaxInt32 {
		if eq, ok := tryVectorized(a, b, shortLen); ok {
			return eq
		}
	}

	if ua, ok := asUnchecked(shorter); ok {
		if ub, ok := asUnchecked(longer); ok {
			if !uncheckedCompare(ua, ub, shortLen) {
				return false
			}
			return tailIsZero(longer, shortLen, longLen)
		}
	}

	shortHead := make([]byte, shortLen)
	longHead := make([]byte, shortLen)
	if shortLen > 0 {
		if _, err := shorter.Read(0, shortHead, 0, shortLen); err != nil {
			return false
		}
		if _, err := longer.Read(0, longHead, 0, shortLen); err != nil {
			return false
		}
	}
	if !wordCompare(shortHead, longHead) {
		return false
	}

	return tailIsZero(longer, shortLen, longLen)
}

// tailIsZero checks spec.md §4.6's zero-extension rule: the longer
// store's remainder, past the shorter store's length, must be all zero
// bytes.
func tailIsZero(longer store.Store, shortLen, longLen int) bool {
	tailLen := longLen - shortLen
	if tailLen == 0 {
		return true
	}
	tail := make([]byte, tailLen)
	if _, err := longer.Read(shortLen, tail, 0, tailLen); err != nil {
		return false
	}
	for _, v := range tail {
		if v != 0 {
			return false
		}
	}
	return true
}

// asUnchecked reports whether s exposes the unchecked random-read view,
// returning it when so.
func asUnchecked(s store.Store) (store.UncheckedInput, bool) {
	type uncheckedCapable interface {
		Unchecked() (store.UncheckedInput, bool)
	}
	u, ok := s.(uncheckedCapable)
	if !ok {
		return nil, false
	}
	return u.Unchecked()
}

// uncheckedCompare is zequal's hot inner loop per spec.md §4.4.2: when
// both stores expose the unchecked random input capability, compare
// their shared prefix without per-call bounds validation.
func uncheckedCompare(a, b store.UncheckedInput, n int) bool {
	i := 0
	for ; n-i >= 8; i += 8 {
		if a.ReadLongAt(i) != b.ReadLongAt(i) {
			return false
		}
	}
	for ; i < n; i++ {
		if a.ReadByteAt(i) != b.ReadByteAt(i) {
			return false
		}
	}
	return true
}

// wordCompare compares two equal-length slices 8 bytes at a time, then
// byte-at-a-time for the remainder.
func wordCompare(a, b []byte) bool {
	n := len(a)
	i := 0
	for ; n-i >= 8; i += 8 {
		if memaccess.ReadU64(a, i) != memaccess.ReadU64(b, i) {
			return false
		}
	}
	for ; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// tryVectorized attempts the CPU-feature-gated fast compare when both
// stores are native; see vectorized.go for the feature gate itself.
func tryVectorized(a, b store.Store, n int) (equal bool, attempted bool) {
	na, ok1 := a.(*store.NativeStore)
	nb, ok2 := b.(*store.NativeStore)
	if !ok1 || !ok2 {
		return false, false
	}
	if !vectorizedAvailable() {
		return false, false
	}
	addrA, err := na.AddressForRead(0)
	if err != nil {
		return false, false
	}
	addrB, err := nb.AddressForRead(0)
	if err != nil {
		return false, false
	}
	return memaccess.CompareNative(addrA, addrB, n), true
}
