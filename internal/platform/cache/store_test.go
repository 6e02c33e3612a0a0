package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set("k", "v")

	got, ok := store.Get("k")
	if !ok || got != "v" {
		t.Fatalf("unexpected get: value=%v ok=%t", got, ok)
	}

	if _, ok := store.Get("missing"); ok {
		t.Fatal("missing key must not be found")
	}
	if _, ok := store.Get(""); ok {
		t.Fatal("empty key must not be found")
	}
}

func TestStore_EntriesExpire(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return current }

	store.Set("k", "v")
	if _, ok := store.Get("k"); !ok {
		t.Fatal("fresh entry must be readable")
	}

	current = current.Add(time.Minute + time.Second)
	if _, ok := store.Get("k"); ok {
		t.Fatal("expired entry must not be returned")
	}
}

func TestStore_Acquire_OnlyOneWinner(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)

	const workers = 16
	var wins atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			if store.Acquire("lock-key") {
				wins.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := wins.Load(); got != 1 {
		t.Fatalf("acquire won %d times, want 1", got)
	}
}

func TestStore_Acquire_ReleasedKeyCanBeRetaken(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	if !store.Acquire("k") {
		t.Fatal("first acquire must win")
	}
	if store.Acquire("k") {
		t.Fatal("held key must not be acquirable")
	}

	store.Release("k")
	if !store.Acquire("k") {
		t.Fatal("released key must be acquirable again")
	}
}

func TestStore_Acquire_ExpiredLockCanBeRetaken(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(5 * time.Minute)
	store.now = func() time.Time { return current }

	if !store.Acquire("k") {
		t.Fatal("first acquire must win")
	}

	// A crashed holder never releases; the TTL frees the key.
	current = current.Add(5*time.Minute + time.Second)
	if !store.Acquire("k") {
		t.Fatal("expired lock must be acquirable")
	}
}
