// Package zbench holds testing.B benchmarks over the store/zbytes/zhash/
// zequal primitives, grounded in the teacher's internal/types
// optimized_bench_test.go style: a plain b.N loop around the operation
// under measurement, with setup hoisted above b.ResetTimer().
package zbench

import (
	"testing"

	"github.com/arrowbyte/zbytes/internal/store"
	"github.com/arrowbyte/zbytes/internal/zbytes"
	"github.com/arrowbyte/zbytes/internal/zconfig"
	"github.com/arrowbyte/zbytes/internal/zequal"
	"github.com/arrowbyte/zbytes/internal/zhash"
)

// BenchmarkHeapSequentialWrite benchmarks writing a long at increasing
// offsets into a fixed heap store.
func BenchmarkHeapSequentialWrite(b *testing.B) {
	hs, err := store.NewHeap(make([]byte, 64), "bench", false)
	if err != nil {
		b.Fatalf("NewHeap: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := hs.WriteLong((i%8)*8, int64(i)); err != nil {
			b.Fatalf("WriteLong: %v", err)
		}
	}
}

// BenchmarkNativeSequentialWrite is BenchmarkHeapSequentialWrite's
// native-memory counterpart.
func BenchmarkNativeSequentialWrite(b *testing.B) {
	ns, err := store.NewNative(64, true, "bench", false)
	if err != nil {
		b.Fatalf("NewNative: %v", err)
	}
	defer ns.Release("bench")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ns.WriteLong((i%8)*8, int64(i)); err != nil {
			b.Fatalf("WriteLong: %v", err)
		}
	}
}

// BenchmarkElasticGrowth repeatedly grows a fresh 64-byte native cursor
// to fit a single 5000-byte write (one grow-copy-swap per iteration),
// measuring that path's cost.
func BenchmarkElasticGrowth(b *testing.B) {
	payload := make([]byte, 5000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, err := zbytes.ElasticBuffer(64, 1<<20)
		if err != nil {
			b.Fatalf("ElasticBuffer: %v", err)
		}
		if err := c.WriteBytes(payload); err != nil {
			b.Fatalf("WriteBytes: %v", err)
		}
		if err := c.Release(); err != nil {
			b.Fatalf("Release: %v", err)
		}
	}
}

// BenchmarkContentHash measures zhash.Hash64 over a 4KiB store, the size
// class most field-group payloads fall into.
func BenchmarkContentHash(b *testing.B) {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i)
	}
	hs, err := store.NewHeap(buf, "bench", false)
	if err != nil {
		b.Fatalf("NewHeap: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := zhash.Hash64(hs); err != nil {
			b.Fatalf("Hash64: %v", err)
		}
	}
}

// BenchmarkEqualUnchecked measures zequal.Equal's unchecked-input fast
// path between two identical 4KiB heap stores.
func BenchmarkEqualUnchecked(b *testing.B) {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i)
	}
	other := append([]byte(nil), buf...)

	a, err := store.NewHeap(buf, "bench", false)
	if err != nil {
		b.Fatalf("NewHeap: %v", err)
	}
	c, err := store.NewHeap(other, "bench", false)
	if err != nil {
		b.Fatalf("NewHeap: %v", err)
	}
	cfg := zconfig.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !zequal.Equal(a, c, cfg) {
			b.Fatal("expected equal stores")
		}
	}
}
