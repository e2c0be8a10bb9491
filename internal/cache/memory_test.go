package cache

import (
	"errors"
	"fmt"
	"testing"
)

func TestMemoryCachePutGet(t *testing.T) {
	c := NewMemoryCache(1024)

	if err := c.Put("a", []byte("value-a")); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, ok := c.Get("a")
	if !ok {
		t.Fatal("Get(a) missed")
	}
	if string(got) != "value-a" {
		t.Errorf("Get(a) = %q, want %q", got, "value-a")
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) hit")
	}
}

func TestMemoryCacheUpdateExisting(t *testing.T) {
	c := NewMemoryCache(1024)

	if err := c.Put("a", []byte("old")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := c.Put("a", []byte("newer value")); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, _ := c.Get("a")
	if string(got) != "newer value" {
		t.Errorf("Get(a) = %q, want %q", got, "newer value")
	}
	if stats := c.Stats(); stats.ItemCount != 1 {
		t.Errorf("ItemCount = %d, want 1", stats.ItemCount)
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	// Room for exactly two 10-byte values.
	c := NewMemoryCache(20)

	put := func(key string) {
		t.Helper()
		if err := c.Put(key, []byte("0123456789")); err != nil {
			t.Fatalf("Put(%s) error: %v", key, err)
		}
	}

	put("a")
	put("b")

	// Touch "a" so "b" is the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) missed")
	}

	put("c")

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was evicted despite recent use")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c missing after insert")
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestMemoryCacheRejectsOversized(t *testing.T) {
	c := NewMemoryCache(4)
	err := c.Put("big", []byte("too large to fit"))
	if !errors.Is(err, ErrItemTooLarge) {
		t.Errorf("Put error = %v, want %v", err, ErrItemTooLarge)
	}
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	c := NewMemoryCache(1024)
	for i := 0; i < 3; i++ {
		if err := c.Put(fmt.Sprintf("k%d", i), []byte("v")); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	c.Delete("k1")
	c.Delete("k1") // no-op
	if _, ok := c.Get("k1"); ok {
		t.Error("k1 survived delete")
	}

	c.Clear()
	if stats := c.Stats(); stats.ItemCount != 0 || stats.Size != 0 {
		t.Errorf("stats after clear: %+v", stats)
	}
}

func TestMemoryCacheStats(t *testing.T) {
	c := NewMemoryCache(1024)
	if err := c.Put("a", []byte("xyz")); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	c.Get("a")
	c.Get("a")
	c.Get("nope")

	stats := c.Stats()
	if stats.Hits != 2 {
		t.Errorf("Hits = %d, want 2", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.Size != 3 {
		t.Errorf("Size = %d, want 3", stats.Size)
	}
}
