package store

import "github.com/arrowbyte/zbytes/internal/zconfig"

// Wrap builds a HeapStore directly over an existing slice, reserving
// owner as its first reference holder. Bounds checks stay enabled.
func Wrap(b []byte, owner any) (*HeapStore, error) {
	return NewHeap(b, owner, false)
}

// WrapWithConfig is Wrap plus cfg.LeakCheck: when set, the returned
// store's reference counter tracks per-owner holds and rejects a
// double release instead of silently going negative.
func WrapWithConfig(b []byte, owner any, cfg *zconfig.Config) (*HeapStore, error) {
	if cfg == nil {
		cfg = zconfig.Default()
	}
	return NewHeapWithConfig(b, owner, cfg.BoundsCheckDisabled, cfg.LeakCheck)
}

// FixedCapacity allocates n bytes of native memory, zero-filling when
// requested, and reserves owner as its first reference holder.
func FixedCapacity(n int, zeroFill bool, owner any) (*NativeStore, error) {
	return NewNative(n, zeroFill, owner, false)
}

// LazyFixedCapacity allocates n bytes of native memory without
// zero-filling, matching the teacher's "lazy" allocator path where the
// caller guarantees every byte is written before being read.
func LazyFixedCapacity(n int, owner any) (*NativeStore, error) {
	return NewNative(n, false, owner, false)
}

// FixedCapacityWithConfig is FixedCapacity plus cfg-driven resource
// tracing: when cfg.ResourceTracing is set, the returned store carries
// a trace id and a finalizer that reports a leak if it is ever
// collected while still live.
func FixedCapacityWithConfig(n int, zeroFill bool, owner any, cfg *zconfig.Config) (*NativeStore, error) {
	return NewNativeWithConfig(n, zeroFill, owner, cfg)
}
