// Package refcount implements the reference-count capability spec.md
// treats as an external collaborator (C2, §1 "Out of scope"): a minimal
// owner-tracked counter with a release hook, grounded in the counting
// style of internal/allocator/allocator.go's EnableLeakCheck bookkeeping
// and the pack's fmstephe-memorymanager pointerstore Store (atomic
// counters guarded only where cross-goroutine visibility matters).
package refcount

import (
	"sync"
	"sync/atomic"

	"github.com/arrowbyte/zbytes/internal/zerr"
)

// Owner is an opaque token identifying a reference holder. Any distinct
// pointer value suffices — spec.md §4.2 only requires it support
// double-release diagnostics, not any particular identity scheme.
type Owner any

// Counter is a thread-safe reference count with an exclusive release
// hook, invoked exactly once when the count reaches zero.
type Counter struct {
	count   atomic.Int64
	onZero  func()
	closed  atomic.Bool
	debug   bool
	mu      sync.Mutex
	holders map[Owner]int
}

// New creates a Counter starting at one reference, already held by
// initialOwner, with the given release hook. debug enables the
// owner-tracked double-release diagnostics (zconfig.LeakCheck).
func New(initialOwner Owner, onZero func(), debug bool) *Counter {
	c := &Counter{onZero: onZero, debug: debug}
	c.count.Store(1)
	if debug {
		c.holders = map[Owner]int{initialOwner: 1}
	}
	return c
}

// RefCount returns the current outstanding reference count.
func (c *Counter) RefCount() int {
	return int(c.count.Load())
}

// Reserve increments the count on behalf of owner. It fails if the
// count has already reached zero.
func (c *Counter) Reserve(owner Owner) error {
	if !c.TryReserve(owner) {
		return zerr.Released("reference count")
	}
	return nil
}

// TryReserve increments the count on behalf of owner, returning false if
// the counter is already closed (count at zero).
func (c *Counter) TryReserve(owner Owner) bool {
	for {
		cur := c.count.Load()
		if cur <= 0 {
			return false
		}
		if c.count.CompareAndSwap(cur, cur+1) {
			break
		}
	}
	if c.debug {
		c.mu.Lock()
		c.holders[owner]++
		c.mu.Unlock()
	}
	return true
}

// Release decrements the count on behalf of owner. When the count
// reaches zero, the release hook runs exactly once.
func (c *Counter) Release(owner Owner) error {
	if c.debug {
		c.mu.Lock()
		n := c.holders[owner]
		if n <= 0 {
			c.mu.Unlock()
			return zerr.Argument("double release", map[string]any{"owner": owner})
		}
		if n == 1 {
			delete(c.holders, owner)
		} else {
			c.holders[owner] = n - 1
		}
		c.mu.Unlock()
	}

	remaining := c.count.Add(-1)
	if remaining < 0 {
		return zerr.Argument("release past zero", map[string]any{"owner": owner})
	}
	if remaining == 0 && c.closed.CompareAndSwap(false, true) {
		if c.onZero != nil {
			c.onZero()
		}
	}
	return nil
}

// ReleaseLast asserts this call is the terminal release — it fails if
// the count does not reach zero.
func (c *Counter) ReleaseLast(owner Owner) error {
	if err := c.Release(owner); err != nil {
		return err
	}
	if c.count.Load() != 0 {
		return zerr.Argument("ReleaseLast called but references remain",
			map[string]any{"remaining": c.count.Load()})
	}
	return nil
}
