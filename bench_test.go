package hybridcache

import (
	"strconv"
	"testing"
	"time"

	bc "github.com/allegro/bigcache/v3"
	rc "github.com/dgraph-io/ristretto"
)

// Comparative benchmarks against two widely used in-memory caches. The point
// of the hybrid policy is that repeated hits on recently used keys cost a map
// lookup and nothing else; the LRU bookkeeping is paid only by the older half.

const benchKeys = 8192

func benchKey(i int) string { return "key-" + strconv.Itoa(i) }

func newBenchCache(b *testing.B) Cache[[]byte] {
	b.Helper()
	c := New[[]byte](Options[[]byte]{MaxKeys: "8K"})
	c.Preallocate(benchKeys)
	return c
}

func BenchmarkHybridSet(b *testing.B) {
	c := newBenchCache(b)
	val := []byte("value")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(benchKey(i%benchKeys), val)
	}
}

func BenchmarkHybridGetHot(b *testing.B) {
	c := newBenchCache(b)
	val := []byte("value")
	for i := 0; i < benchKeys; i++ {
		c.Set(benchKey(i), val)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Newer half: plain-cache hits, no reordering.
		c.Get(benchKey(benchKeys - 1 - i%(benchKeys/4)))
	}
}

func BenchmarkHybridGetCold(b *testing.B) {
	c := newBenchCache(b)
	val := []byte("value")
	for i := 0; i < benchKeys; i++ {
		c.Set(benchKey(i), val)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Older half: every hit promotes.
		c.Get(benchKey(i % (benchKeys / 4)))
	}
}

func BenchmarkRistrettoSet(b *testing.B) {
	c, err := rc.NewCache(&rc.Config{
		NumCounters: benchKeys * 10,
		MaxCost:     benchKeys,
		BufferItems: 64,
	})
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()
	val := []byte("value")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(benchKey(i%benchKeys), val, 1)
	}
}

func BenchmarkRistrettoGetHot(b *testing.B) {
	c, err := rc.NewCache(&rc.Config{
		NumCounters: benchKeys * 10,
		MaxCost:     benchKeys,
		BufferItems: 64,
	})
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()
	val := []byte("value")
	for i := 0; i < benchKeys; i++ {
		c.Set(benchKey(i), val, 1)
	}
	c.Wait()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(benchKey(benchKeys - 1 - i%(benchKeys/4)))
	}
}

func BenchmarkBigCacheSet(b *testing.B) {
	c, err := bc.NewBigCache(bc.DefaultConfig(10 * time.Minute))
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()
	val := []byte("value")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Set(benchKey(i%benchKeys), val)
	}
}

func BenchmarkBigCacheGetHot(b *testing.B) {
	c, err := bc.NewBigCache(bc.DefaultConfig(10 * time.Minute))
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()
	val := []byte("value")
	for i := 0; i < benchKeys; i++ {
		_ = c.Set(benchKey(i), val)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Get(benchKey(benchKeys - 1 - i%(benchKeys/4)))
	}
}
