package cache

import (
	"fmt"
	"testing"
)

func BenchmarkWriteL2(b *testing.B) {
	m := New(WithMaxEntries(L2, 1<<16))
	defer m.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Write(fmt.Sprintf("k%d", i&0xffff), i, L2)
	}
}

func BenchmarkReadHitL1(b *testing.B) {
	m := New()
	defer m.Close()
	_ = m.Write("k", "v", L1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = m.Read("k")
	}
}

func BenchmarkReadCascadeToL3(b *testing.B) {
	m := New(WithPromotionPolicy(PromoteNever))
	defer m.Close()
	_ = m.Write("k", "v", L3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = m.Read("k")
	}
}

func BenchmarkReadMiss(b *testing.B) {
	m := New()
	defer m.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = m.Read("absent")
	}
}

func BenchmarkGenerateKey(b *testing.B) {
	payload := make([]byte, 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GenerateKey("bench", payload)
	}
}

func BenchmarkConcurrentReadWrite(b *testing.B) {
	m := New(WithMaxEntries(L2, 1024))
	defer m.Close()
	for i := 0; i < 1024; i++ {
		_ = m.Write(fmt.Sprintf("k%d", i), i, L2)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := fmt.Sprintf("k%d", i&1023)
			if i&7 == 0 {
				_ = m.Write(key, i, L2)
			} else {
				_, _, _ = m.Read(key)
			}
			i++
		}
	})
}
