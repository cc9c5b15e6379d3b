// xlogger_bench_test.go: Benchmarks for the emit path
//
// XLogger software is published under GPLv2 license
//
// Author : Siarhei Skavarodkin
// email  : komarevsky (at) gmail (dot) com

package xlogger

import (
	"testing"
)

func newBenchLogger(b *testing.B) *Logger {
	b.Helper()
	l := New()
	if err := l.SetupDir(b.TempDir(), "bench.log"); err != nil {
		b.Fatalf("SetupDir failed: %v", err)
	}
	b.Cleanup(func() { _ = l.Close() })
	return l
}

func BenchmarkSendInfo(b *testing.B) {
	l := newBenchLogger(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.SendInfo("benchmark message")
	}
}

// The filtered path must stay cheap: the level gate runs before any stack
// inspection or formatting.
func BenchmarkSendFilteredOut(b *testing.B) {
	l := newBenchLogger(b)
	l.SetLevel(LevelSevere)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.SendFinest("discarded before formatting")
	}
}

func BenchmarkSendInfoParallel(b *testing.B) {
	l := newBenchLogger(b)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.SendInfo("parallel benchmark message")
		}
	})
}

var benchLocation string

func BenchmarkCallerLocation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchLocation, _ = callerLocation()
	}
}
