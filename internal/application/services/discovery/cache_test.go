package discovery

import (
	"testing"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/domain/entities"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestCache_LookupAndExpiry(t *testing.T) {
	clock := newClock()
	cache := NewCache(30 * time.Second)
	cache.SetClock(clock.Now)

	if _, ok := cache.Lookup("a"); ok {
		t.Fatal("empty cache should miss")
	}

	cache.Store("a", []entities.ImageRecord{{ID: "1", Index: 1}})

	clock.Advance(29 * time.Second)
	got, ok := cache.Lookup("a")
	if !ok || len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("Lookup within TTL = %v, %v", got, ok)
	}

	clock.Advance(time.Second)
	if _, ok := cache.Lookup("a"); ok {
		t.Error("entry exactly TTL old should be a miss")
	}
}

func TestCache_LastFolderWins(t *testing.T) {
	clock := newClock()
	cache := NewCache(0)
	cache.SetClock(clock.Now)

	if cache.TTL() != DefaultCacheTTL {
		t.Errorf("TTL() = %v, want default", cache.TTL())
	}

	cache.Store("a", []entities.ImageRecord{{ID: "a1"}})
	if _, ok := cache.Lookup("b"); ok {
		t.Error("different folder id must miss")
	}

	cache.Store("b", []entities.ImageRecord{{ID: "b1"}})
	if _, ok := cache.Lookup("a"); ok {
		t.Error("storing folder b must evict folder a")
	}
	if got, ok := cache.Lookup("b"); !ok || got[0].ID != "b1" {
		t.Errorf("Lookup(b) = %v, %v", got, ok)
	}
}

func TestCache_EmptyResultIsCached(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.Store("empty", nil)

	got, ok := cache.Lookup("empty")
	if !ok {
		t.Fatal("an empty listing should still be cached")
	}
	if len(got) != 0 {
		t.Errorf("Lookup() = %v, want empty", got)
	}
}

func TestCache_StoreCopiesInput(t *testing.T) {
	cache := NewCache(time.Minute)
	images := []entities.ImageRecord{{ID: "orig"}}
	cache.Store("a", images)
	images[0].ID = "mutated"

	got, _ := cache.Lookup("a")
	if got[0].ID != "orig" {
		t.Errorf("cached data changed with caller slice: %q", got[0].ID)
	}
}

func TestCache_Entries(t *testing.T) {
	cache := NewCache(time.Minute)
	if n := cache.Entries(); n != 0 {
		t.Errorf("Entries() on empty cache = %d, want 0", n)
	}

	cache.Store("a", nil)
	if n := cache.Entries(); n != 2 {
		t.Errorf("Entries() with empty data = %d, want 2", n)
	}

	cache.Store("a", []entities.ImageRecord{{ID: "1"}})
	if n := cache.Entries(); n != 3 {
		t.Errorf("Entries() = %d, want 3", n)
	}
}
