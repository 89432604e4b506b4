package lru

import (
	"iter"

	"github.com/djdv/go-lru/deque"
)

type (
	entry[Cached any] struct {
		cached Cached
		// size is measured once, on insertion, so that
		// removal subtracts exactly what was added.
		size int
	}
	// Bounded is a least-recently-used cache
	// that keeps the total size of its entries
	// within a maximum.
	// Concurrent access must be guarded by the caller
	// (or use [Concurrent]).
	// Constructed by [NewBounded].
	Bounded[Key comparable, Item, Cached any] struct {
		entries  *deque.Deque[Key, entry[Cached]]
		strategy Strategy[Key, Item, Cached]
		settings[Key]
		size, maxSize int
	}
)

// NewBounded creates a [Bounded] cache which holds at most
// maxSize units, as measured by the strategy's [Sizer].
func NewBounded[Key comparable, Item, Cached any](
	maxSize int, strategy Strategy[Key, Item, Cached],
	options ...Option[Key],
) (*Bounded[Key, Item, Cached], error) {
	if maxSize <= 0 {
		return nil, maxSizeError(maxSize)
	}
	strategy, err := strategy.validate()
	if err != nil {
		return nil, err
	}
	return &Bounded[Key, Item, Cached]{
		entries:  deque.New[Key, entry[Cached]](),
		strategy: strategy,
		settings: applyOptions(options),
		maxSize:  maxSize,
	}, nil
}

// Add inserts item as the most recently used entry,
// replacing any entry with the same key.
// Least recently used entries are then evicted
// until the cache is within its maximum size;
// an item that alone exceeds the maximum is evicted too.
func (c *Bounded[Key, Item, Cached]) Add(item Item) {
	key := c.strategy.Keys.Key(item)
	c.Remove(key)
	var (
		cached = c.strategy.Convert.Encode(item)
		size   = max(c.strategy.Sizes.Size(cached), 0)
	)
	// Key was just removed, so this cannot fail.
	_ = c.entries.AddToTop(key, entry[Cached]{
		cached: cached,
		size:   size,
	})
	c.size += size
	c.evict()
	if debugging {
		assert(c.size <= c.maxSize, "size exceeds maximum after eviction")
		assert(c.entries.Len() > 0 || c.size == 0, "empty cache has a size")
	}
	c.added(key)
}

func (c *Bounded[Key, Item, Cached]) evict() {
	for c.size > c.maxSize && c.entries.Len() > 0 {
		key, evicted, _ := c.entries.PopBottom()
		c.size -= evicted.size
		c.removed(key)
	}
}

// Get returns the item for key and marks it
// as the most recently used entry.
func (c *Bounded[Key, Item, Cached]) Get(key Key) (Item, bool) {
	const markAsNewest = true
	return c.Lookup(key, markAsNewest)
}

// Peek returns the item for key
// without changing its recency.
func (c *Bounded[Key, Item, Cached]) Peek(key Key) (Item, bool) {
	const markAsNewest = false
	return c.Lookup(key, markAsNewest)
}

// Lookup returns the item for key, if present.
// If markAsNewest is true, the entry becomes the most recently used;
// a read counts as a use.
func (c *Bounded[Key, Item, Cached]) Lookup(key Key, markAsNewest bool) (Item, bool) {
	stored, ok := c.entries.Get(key)
	if !ok {
		var zero Item
		return zero, false
	}
	if markAsNewest {
		_ = c.entries.MoveToTop(key)
	}
	return c.strategy.Convert.Decode(stored.cached), true
}

// Load returns the cached item for key if present. Otherwise, it calls fetch,
// adds and returns the item on success.
// If fetch returns an error, the item is not cached.
// fetch should return an item whose key is key.
func (c *Bounded[Key, Item, Cached]) Load(key Key, fetch func() (Item, error)) (Item, error) {
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
func (c *Bounded[Key, _, _]) Contains(key Key) bool {
	return c.entries.Contains(key)
}

// Remove deletes the entry for key, reporting if it was present.
func (c *Bounded[Key, _, _]) Remove(key Key) bool {
	removed, ok := c.entries.Remove(key)
	if !ok {
		return false
	}
	c.size -= removed.size
	c.removed(key)
	return true
}

// Clear removes every entry.
// Only the Cleared hook is called, not ItemRemoved.
func (c *Bounded[_, _, _]) Clear() {
	c.entries.Clear()
	c.size = 0
	c.cleared()
}

// Len returns the number of cached entries.
func (c *Bounded[_, _, _]) Len() int { return c.entries.Len() }

// Size returns the total size of the cached entries.
func (c *Bounded[_, _, _]) Size() int { return c.size }

// MaxSize returns the size the cache is bounded to.
func (c *Bounded[_, _, _]) MaxSize() int { return c.maxSize }

// Keys returns an iterator over the cached keys,
// from most to least recently used.
func (c *Bounded[Key, _, _]) Keys() iter.Seq[Key] {
	return c.entries.Keys()
}

// All returns an iterator over the cached items,
// from most to least recently used.
// Iteration does not change recency.
func (c *Bounded[Key, Item, _]) All() iter.Seq2[Key, Item] {
	return func(yield func(Key, Item) bool) {
		for key, stored := range c.entries.All() {
			if !yield(key, c.strategy.Convert.Decode(stored.cached)) {
				return
			}
		}
	}
}
