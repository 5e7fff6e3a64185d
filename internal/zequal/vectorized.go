package zequal

import "golang.org/x/sys/cpu"

// vectorizedAvailable reports whether the host exposes a CPU feature
// this engine is willing to treat as "fast enough to attempt first",
// per spec.md §4.6's "if a vectorized memory-comparison primitive is
// available". Absence just means the fallback word/byte loop runs.
func vectorizedAvailable() bool {
	return cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
}
