package nexus

import "testing"

// Benchmark types
type benchConfig struct {
	name string
}

// BenchmarkModuleGet benchmarks the ready fast path of module access.
func BenchmarkModuleGet(b *testing.B) {
	var n ModuleNexus[benchConfig]

	// Warm up the nexus
	_ = n.Get()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = n.Get()
	}
}

// BenchmarkModuleGetLocked benchmarks the locked core's fast path.
func BenchmarkModuleGetLocked(b *testing.B) {
	n := NewModule(WithLockedInit[benchConfig]())

	_ = n.Get()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = n.Get()
	}
}

// BenchmarkModuleGetConcurrent benchmarks contended module access.
func BenchmarkModuleGetConcurrent(b *testing.B) {
	var n ModuleNexus[benchConfig]

	_ = n.Get()

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = n.Get()
		}
	})
}

// BenchmarkThreadGet benchmarks goroutine-confined access, which pays the
// goroutine-ID lookup on every call.
func BenchmarkThreadGet(b *testing.B) {
	var n ThreadNexus[benchConfig]

	_ = n.Get()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = n.Get()
	}
}

// BenchmarkProcessGet benchmarks named process-scope access.
func BenchmarkProcessGet(b *testing.B) {
	n := MustProcess[benchConfig]("bench.process.get")

	_ = n.Get()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = n.Get()
	}
}

// BenchmarkGoroutineID benchmarks the stack-parse identity lookup.
func BenchmarkGoroutineID(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = goroutineID()
	}
}
