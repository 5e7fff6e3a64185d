package zbytes

import (
	"github.com/go-kit/log/level"

	"github.com/arrowbyte/zbytes/internal/memaccess"
	"github.com/arrowbyte/zbytes/internal/store"
	"github.com/arrowbyte/zbytes/internal/zerr"
)

// growthLogThreshold is the delta, in bytes, above which a resize logs
// a warning (spec.md §4.4.1 step 7).
const growthLogThreshold = 128 * 1024

// grow implements the elastic growth protocol of spec.md §4.4.1.
// The no-op-if-big-enough and over-capacity checks are made by the
// caller in ensureWritable; grow itself rejects negative and
// over-capacity requests and otherwise always performs an actual resize.
func (c *cursor) grow(requested int) error {
	if requested < 0 {
		return zerr.Argument("negative growth request", map[string]any{"requested": requested})
	}
	if requested > c.capacityLimit {
		return zerr.Overflow(requested, c.capacityLimit)
	}

	oldSize := c.st.Size()
	newSize := roundedNewSize(requested, oldSize, c.kind)
	if newSize > c.capacityLimit {
		newSize = c.capacityLimit
	}

	newStore, err := c.allocate(newSize)
	if err != nil {
		return zerr.TransientGrow("failed to allocate grown store",
			map[string]any{"oldSize": oldSize, "newSize": newSize})
	}

	if oldSize > 0 {
		if err := copyStore(newStore, c.st, oldSize); err != nil {
			_ = newStore.Release(c.owner)
			return zerr.TransientGrow("failed to copy payload into grown store",
				map[string]any{"oldSize": oldSize, "newSize": newSize})
		}
	}

	old := c.st
	c.st = newStore
	if delta := newSize - oldSize; delta >= growthLogThreshold {
		level.Warn(c.logger).Log("msg", "zbytes cursor grew past threshold",
			"oldSize", oldSize, "newSize", newSize, "delta", delta)
	}
	return old.Release(c.owner)
}

// roundedNewSize computes spec.md §4.4.1 step 4: max(requested+7,
// size*1.5+32), then rounded up to the OS page size for native/
// oversized-heap growth, or down to an 8-byte multiple otherwise.
func roundedNewSize(requested, size int, kind growthKind) int {
	grown := size + size/2 + 32
	base := requested + 7
	if grown > base {
		base = grown
	}
	if kind == growthNative || base > store.HeapMaxSize/4 {
		return roundUpToPage(base)
	}
	return roundDownTo8(base)
}

func roundUpToPage(n int) int {
	p := memaccess.PageSize
	return ((n + p - 1) / p) * p
}

func roundDownTo8(n int) int {
	return (n / 8) * 8
}

func (c *cursor) allocate(n int) (store.Store, error) {
	switch c.kind {
	case growthNative:
		return store.FixedCapacity(n, false, c.owner)
	default:
		if n > store.HeapMaxSize {
			return store.FixedCapacity(n, false, c.owner)
		}
		return store.Wrap(make([]byte, n), c.owner)
	}
}

// copyStore moves n bytes from src to dst via a staging buffer; this
// is the generic path used on every grow since src and dst may be
// different store kinds (heap<->native).
func copyStore(dst, src store.Store, n int) error {
	buf := make([]byte, n)
	if _, err := src.Read(0, buf, 0, n); err != nil {
		return err
	}
	return dst.Write(0, buf, 0, n)
}
