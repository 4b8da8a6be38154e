package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRUCache_BasicOperations(t *testing.T) {
	cache := NewLRUCache[string, int](Config{MaxSize: 3})

	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		if v, ok := cache.Get(key); !ok || v != want {
			t.Errorf("Get(%s) = %d, %v; want %d, true", key, v, ok, want)
		}
	}
	if _, ok := cache.Get("d"); ok {
		t.Error("Get(d) should return false")
	}
	if n := cache.Len(); n != 3 {
		t.Errorf("Len() = %d; want 3", n)
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	cache := NewLRUCache[string, int](Config{MaxSize: 2})

	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Put("c", 3) // evicts "a"

	if _, ok := cache.Get("a"); ok {
		t.Error("Get(a) should return false after eviction")
	}

	cache.Get("b")
	cache.Put("d", 4) // evicts "c", now least recently used

	if _, ok := cache.Get("c"); ok {
		t.Error("Get(c) should return false after eviction")
	}
	if v, ok := cache.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = %d, %v; want 2, true", v, ok)
	}
	if s := cache.Stats(); s.Evictions != 2 {
		t.Errorf("Evictions = %d; want 2", s.Evictions)
	}
}

func TestLRUCache_Update(t *testing.T) {
	cache := NewLRUCache[string, int](Config{MaxSize: 2})
	cache.Put("a", 1)
	cache.Put("a", 10)

	if v, _ := cache.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d; want 10", v)
	}
	if n := cache.Len(); n != 1 {
		t.Errorf("Len() = %d; want 1", n)
	}
}

func TestLRUCache_TTL(t *testing.T) {
	c := newLRU[string, int](Config{TTL: time.Minute})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put("a", 1)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) should hit before expiry")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) should miss after expiry")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d; want 0 after expiry", c.Len())
	}
}

func TestLRUCache_RemoveAndClear(t *testing.T) {
	var evicted []string
	cache := NewLRUCache[string, int](Config{
		OnEvict: func(key, _ any) { evicted = append(evicted, key.(string)) },
	})
	cache.Put("a", 1)
	cache.Put("b", 2)
	cache.Remove("a")
	cache.Remove("missing")

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Errorf("evicted = %v; want [a]", evicted)
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after Clear; want 0", cache.Len())
	}
}

func TestStats(t *testing.T) {
	cache := NewLRUCache[string, int](Config{MaxSize: 5})
	cache.Put("a", 1)
	cache.Get("a")
	cache.Get("a")
	cache.Get("z")

	s := cache.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Size != 1 || s.MaxSize != 5 {
		t.Errorf("Stats() = %+v", s)
	}
	if got := s.HitRate(); got < 0.66 || got > 0.67 {
		t.Errorf("HitRate() = %v; want 2/3", got)
	}
	if (Stats{}).HitRate() != 0 {
		t.Error("HitRate() of empty stats should be 0")
	}
}

func TestLRUCache_Concurrent(t *testing.T) {
	cache := NewLRUCache[int, int](Config{MaxSize: 50})
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				cache.Put(g*1000+i, i)
				cache.Get(g*1000 + i/2)
			}
		}()
	}
	wg.Wait()
	if n := cache.Len(); n > 50 {
		t.Errorf("Len() = %d; want at most 50", n)
	}
}

func TestRenderCache_Bytes(t *testing.T) {
	c := NewRenderCache(Config{MaxSize: 2})
	k1, k2, k3 := NewKey("a"), NewKey("b"), NewKey("c")

	c.Put(k1, "hello")
	c.Put(k2, "hi")
	if got := c.Stats().TotalBytes; got != 7 {
		t.Errorf("TotalBytes = %d; want 7", got)
	}

	c.Put(k1, "hey") // replaces 5 bytes with 3
	if got := c.Stats().TotalBytes; got != 5 {
		t.Errorf("TotalBytes after update = %d; want 5", got)
	}

	c.Put(k3, "four") // evicts k2
	if _, ok := c.Get(k2); ok {
		t.Error("k2 should be evicted")
	}
	if got := c.Stats().TotalBytes; got != 7 {
		t.Errorf("TotalBytes after eviction = %d; want 7", got)
	}

	c.Remove(k1)
	if got := c.Stats().TotalBytes; got != 4 {
		t.Errorf("TotalBytes after Remove = %d; want 4", got)
	}
	c.Clear()
	if got := c.Stats().TotalBytes; got != 0 || c.Len() != 0 {
		t.Errorf("after Clear: TotalBytes = %d, Len = %d", got, c.Len())
	}
}

func TestRenderCache_ChainsOnEvict(t *testing.T) {
	var n int
	c := NewRenderCache(Config{MaxSize: 1, OnEvict: func(_, _ any) { n++ }})
	c.Put(NewKey("a"), "1")
	c.Put(NewKey("b"), "2")
	if n != 1 {
		t.Errorf("OnEvict called %d times; want 1", n)
	}
}

func TestNewKey(t *testing.T) {
	if NewKey("ab", "c") == NewKey("a", "bc") {
		t.Error("NewKey does not separate parts")
	}
	if NewKey("html", "x") != NewKey("html", "x") {
		t.Error("NewKey is not deterministic")
	}
	k := NewKey("markdown", "{@b bold}")
	if len(k.String()) != 64 {
		t.Errorf("len(String()) = %d; want 64", len(k.String()))
	}
	back, ok := ParseKey(k.String())
	if !ok || back != k {
		t.Errorf("ParseKey(%s) = %v, %v", k, back, ok)
	}
	for _, bad := range []string{"", "zz", k.String()[:10]} {
		if _, ok := ParseKey(bad); ok {
			t.Errorf("ParseKey(%q) succeeded", bad)
		}
	}
	if k.IsZero() || !(Key{}).IsZero() {
		t.Error("IsZero mismatch")
	}
}

func BenchmarkRenderCache(b *testing.B) {
	c := NewDefaultRenderCache()
	keys := make([]Key, 512)
	for i := range keys {
		keys[i] = NewKey("text", fmt.Sprint(i))
	}
	i := 0
	for b.Loop() {
		k := keys[i%len(keys)]
		if _, ok := c.Get(k); !ok {
			c.Put(k, "rendered")
		}
		i++
	}
}
