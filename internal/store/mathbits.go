package store

import "math"

// Thin wrappers kept local to store so native.go's float/double paths
// read the same as the heap path's memaccess.ReadF32/WriteF32 calls —
// spec.md §4.1 "Float/double atomics are derived by bit-reinterpretation".
func mathFloat32frombits(b uint32) float32 { return math.Float32frombits(b) }
func mathFloat64frombits(b uint64) float64 { return math.Float64frombits(b) }
func mathFloat32bits(f float32) uint32     { return math.Float32bits(f) }
func mathFloat64bits(f float64) uint64     { return math.Float64bits(f) }
