package memaccess

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/arrowbyte/zbytes/internal/zerr"
)

// PageSize is queried once at process start, grounding spec.md §4.4.1's
// "round up to OS page size" growth rule. See alloc_unix.go/alloc_windows.go
// for the platform-specific query, following the teacher's convention of
// splitting OS-specific memory code by build tag (internal/runtime/asyncio).
var PageSize = queryPageSize()

// allocation pins a native allocation's backing Go slice so the garbage
// collector cannot reclaim memory a raw uintptr still points at —
// exactly the role runtime.KeepAlive plays in the teacher's systemAlloc.
type allocation struct {
	slice []byte
}

// pinned keeps every outstanding native allocation's backing slice alive.
// Deleting the entry on Free lets the slice (and so the memory) become
// collectible again, mirroring SystemAllocatorImpl.allocatedSlices.
var (
	pinned   = map[uintptr]*allocation{}
	pinnedMu sync.Mutex
)

// Allocate reserves n bytes of native memory and returns its address.
// zeroFill forces an explicit zero pass; blocks of n >= 128KiB are
// assumed already zero by Go's allocator (spec.md §4.3), so zeroFill
// only pays its cost below that threshold.
func Allocate(n int, zeroFill bool) (uintptr, error) {
	if n < 0 {
		return 0, zerr.Argument("negative allocation size", map[string]any{"size": n})
	}
	if n == 0 {
		return 0, nil
	}

	slice := make([]byte, n)
	if len(slice) != n {
		return 0, zerr.Allocator("short allocation", n)
	}

	if zeroFill && n < 128*1024 {
		for i := range slice {
			slice[i] = 0
		}
	}

	addr := uintptr(unsafe.Pointer(&slice[0]))
	runtime.KeepAlive(slice)

	pinnedMu.Lock()
	pinned[addr] = &allocation{slice: slice}
	pinnedMu.Unlock()

	return addr, nil
}

// Free releases a native allocation obtained from Allocate.
func Free(addr uintptr, n int) {
	if addr == 0 {
		return
	}
	pinnedMu.Lock()
	delete(pinned, addr)
	pinnedMu.Unlock()
}

// CopyNative copies n bytes from a native address range into dst.
func CopyNative(dst []byte, dstOff int, srcAddr uintptr, srcOff, n int) {
	if n == 0 {
		return
	}
	src := unsafe.Slice((*byte)(nativePtr(srcAddr, srcOff)), n)
	copy(dst[dstOff:dstOff+n], src)
}

// CopyToNative copies n bytes from src into a native address range.
func CopyToNative(dstAddr uintptr, dstOff int, src []byte, srcOff, n int) {
	if n == 0 {
		return
	}
	dst := unsafe.Slice((*byte)(nativePtr(dstAddr, dstOff)), n)
	copy(dst, src[srcOff:srcOff+n])
}

// MoveNative performs an overlap-safe move of n bytes within the same
// native allocation, from "from" to "to".
func MoveNative(addr uintptr, from, to, n int) {
	if n == 0 || from == to {
		return
	}
	src := unsafe.Slice((*byte)(nativePtr(addr, from)), n)
	dst := unsafe.Slice((*byte)(nativePtr(addr, to)), n)
	if to > from && to < from+n {
		for i := n - 1; i >= 0; i-- {
			dst[i] = src[i]
		}
		return
	}
	copy(dst, src)
}
