package bloom_test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/rag-nar1/bloomcheck/filter"
	"github.com/rag-nar1/bloomcheck/filter/bloom"
)

func mustFilter(b *testing.B, n int, fpRate float64, opts ...bloom.Option) *bloom.BloomFilter {
	b.Helper()
	bf, err := bloom.NewWithEstimates(uint64(n), fpRate, opts...)
	if err != nil {
		b.Fatal(err)
	}
	return bf
}

// BenchmarkPerformance measures Insert and Exist for every hash family
func BenchmarkPerformance(b *testing.B) {
	testData := []byte("performance test data")

	for _, name := range filter.HashNames() {
		fn, _ := filter.HashByName(name)
		bf := mustFilter(b, 100000, 1e-7, bloom.WithHash(fn))
		bf.Insert(testData)

		b.Run(name+"/Insert", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				bf.Insert(testData)
			}
		})

		b.Run(name+"/Exist", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				bf.Exist(testData)
			}
		})
	}
}

// BenchmarkAccuracy measures false positive rate and filter accuracy
func BenchmarkAccuracy(b *testing.B) {
	n := 50000
	fpRate := 0.01
	bf := mustFilter(b, n, fpRate)

	for i := 0; i < n; i++ {
		bf.Insert([]byte(fmt.Sprintf("known_item_%d", i)))
	}

	testItems := make([][]byte, 10000)
	for i := range testItems {
		testItems[i] = []byte(fmt.Sprintf("unknown_item_%d", i))
	}

	falsePositives := 0
	for _, item := range testItems {
		if bf.Exist(item) {
			falsePositives++
		}
	}
	falsePositiveRate := float64(falsePositives) / float64(len(testItems))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		bf.Exist(testItems[i%len(testItems)])
	}

	b.ReportMetric(falsePositiveRate*100, "actual_fpr_%")
	b.ReportMetric(fpRate*100, "theoretical_fpr_%")
	b.ReportMetric(bf.EstimatedFalsePositiveRate()*100, "estimated_fpr_%")
}

// BenchmarkMemoryEfficiency measures memory usage and efficiency
func BenchmarkMemoryEfficiency(b *testing.B) {
	var m1, m2 runtime.MemStats

	runtime.GC()
	runtime.ReadMemStats(&m1)

	n := 100000
	bf := mustFilter(b, n, 0.01)

	for i := 0; i < n; i++ {
		bf.Insert([]byte(fmt.Sprintf("memory_test_item_%d", i)))
	}

	runtime.GC()
	runtime.ReadMemStats(&m2)

	actualMemoryBytes := m2.Alloc - m1.Alloc
	theoreticalMemoryBytes := float64(bf.M) / 8 // bits to bytes
	bitsPerItem := float64(bf.M) / float64(n)

	b.ResetTimer()
	b.ReportAllocs()

	testData := []byte("memory benchmark data")
	for i := 0; i < b.N; i++ {
		bf.Insert(testData)
	}

	b.ReportMetric(float64(actualMemoryBytes)/1024, "actual_memory_KB")
	b.ReportMetric(theoreticalMemoryBytes/1024, "theoretical_memory_KB")
	b.ReportMetric(bitsPerItem, "bits_per_item")
}
