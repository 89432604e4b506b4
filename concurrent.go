package lru

import (
	"iter"
	"sync"
)

// Concurrent is a [Bounded] cache that is safe for concurrent use.
// Lookups without promotion and enumeration share a read lock;
// mutation, including the promotion performed by [Concurrent.Get],
// takes the write lock.
// Constructed by [NewConcurrent].
type Concurrent[Key comparable, Item, Cached any] struct {
	mu    sync.RWMutex
	cache *Bounded[Key, Item, Cached]
}

// NewConcurrent creates a [Concurrent] cache.
// A maxSize below the minimum size
// (see [WithMinimumSize] and [DefaultMinimumSize])
// is raised to that minimum.
// Hooks are called while the write lock is held.
func NewConcurrent[Key comparable, Item, Cached any](
	maxSize int, strategy Strategy[Key, Item, Cached],
	options ...Option[Key],
) (*Concurrent[Key, Item, Cached], error) {
	if maxSize <= 0 {
		return nil, maxSizeError(maxSize)
	}
	floor := applyOptions(options).minimumSize
	cache, err := NewBounded(max(maxSize, floor), strategy, options...)
	if err != nil {
		return nil, err
	}
	return &Concurrent[Key, Item, Cached]{cache: cache}, nil
}

// Add inserts item as the most recently used entry.
// See [Bounded.Add].
func (c *Concurrent[Key, Item, Cached]) Add(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(item)
}

// Get returns the item for key and marks it
// as the most recently used entry.
//
// The lookup is done under the read lock first,
// and only a hit takes the write lock to promote the entry.
// The entry is looked up again under the write lock,
// since it may have been evicted in between.
func (c *Concurrent[Key, Item, Cached]) Get(key Key) (Item, bool) {
	if !c.Contains(key) {
		var zero Item
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Get(key)
}

// Peek returns the item for key without changing its recency.
func (c *Concurrent[Key, Item, Cached]) Peek(key Key) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Peek(key)
}

// Lookup calls [Concurrent.Get] if markAsNewest is true,
// and [Concurrent.Peek] otherwise.
func (c *Concurrent[Key, Item, Cached]) Lookup(key Key, markAsNewest bool) (Item, bool) {
	if markAsNewest {
		return c.Get(key)
	}
	return c.Peek(key)
}

// Load returns the cached item for key if present. Otherwise, it calls fetch,
// adds and returns the item on success.
// If fetch returns an error, the item is not cached.
// No lock is held while fetch runs, so concurrent
// callers missing the same key may each call fetch.
func (c *Concurrent[Key, Item, Cached]) Load(key Key, fetch func() (Item, error)) (Item, error) {
	if item, ok := c.Get(key); ok {
		return item, nil
	}
	item, err := fetch()
	if err != nil {
		return item, err
	}
	c.Add(item)
	return item, nil
}

// Contains reports whether key is cached, without changing its recency.
func (c *Concurrent[Key, _, _]) Contains(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Contains(key)
}

// Remove deletes the entry for key, reporting if it was present.
func (c *Concurrent[Key, _, _]) Remove(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Remove(key)
}

// Clear removes every entry.
func (c *Concurrent[_, _, _]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Clear()
}

// Len returns the number of cached entries.
func (c *Concurrent[_, _, _]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Len()
}

// Size returns the total size of the cached entries.
func (c *Concurrent[_, _, _]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache.Size()
}

// MaxSize returns the size the cache is bounded to,
// after the minimum size was applied.
func (c *Concurrent[_, _, _]) MaxSize() int {
	// Immutable after construction.
	return c.cache.MaxSize()
}

// Keys returns an iterator over the cached keys,
// from most to least recently used.
// The read lock is held for the duration of the iteration,
// so the loop body must not modify the cache.
func (c *Concurrent[Key, _, _]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		for key := range c.cache.Keys() {
			if !yield(key) {
				return
			}
		}
	}
}

// All returns an iterator over the cached items,
// from most to least recently used.
// The read lock is held for the duration of the iteration,
// so the loop body must not modify the cache.
func (c *Concurrent[Key, Item, _]) All() iter.Seq2[Key, Item] {
	return func(yield func(Key, Item) bool) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		for key, item := range c.cache.All() {
			if !yield(key, item) {
				return
			}
		}
	}
}
