package optimistic

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Registry hands out live controls (toggles, comment threads) keyed per
// (kind, user, entry), so that concurrent requests from the same user land
// on one in-flight guard instead of racing each other. Backed by a bounded
// LRU: evicting an in-flight control only weakens the guard, the store's
// unique indexes still reject a duplicate relation row.
type Registry[T any] struct {
	mu    sync.Mutex
	cache *lru.Cache[string, T]
}

func NewRegistry[T any](size int) *Registry[T] {
	c, err := lru.New[string, T](size)
	if err != nil {
		panic(err)
	}
	return &Registry[T]{cache: c}
}

// Key builds a registry key for a per-(user, entry) control.
func Key(kind string, userID, entryID uint) string {
	return fmt.Sprintf("%s:%d:%d", kind, userID, entryID)
}

// Get returns the live control for key, seeding a new one from store-known
// state when none is cached. seed runs outside the registry lock; when two
// requests race, the first control stored wins.
func (r *Registry[T]) Get(key string, seed func() T) T {
	if v, ok := r.cache.Get(key); ok {
		return v
	}
	v := seed()
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.cache.Get(key); ok {
		return existing
	}
	r.cache.Add(key, v)
	return v
}

// Forget drops the control for key, forcing a reseed on next use.
func (r *Registry[T]) Forget(key string) {
	r.cache.Remove(key)
}
