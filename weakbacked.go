package lru

import (
	"sync"

	"github.com/djdv/go-lru/weakref"
)

// WeakBacked is a two tier cache.
// A [Bounded] cache holds the most recently used items strongly (hot tier),
// while every added item is also held weakly (cold tier).
// Eviction from the hot tier only demotes an item to the cold tier,
// where it remains available for as long as something else keeps it alive.
// Items leave both tiers only through [WeakBacked.Remove] and [WeakBacked.Clear].
//
// Both tiers are guarded by the same mutex,
// so WeakBacked is safe for concurrent use.
// Hooks observe the hot tier only, and are called with the mutex held.
// Constructed by [NewWeakBacked].
type WeakBacked[Key comparable, T, Cached any] struct {
	mu   sync.Mutex
	hot  *Bounded[Key, *T, Cached]
	cold *weakref.ValueMap[Key, T]
	keys KeyExtractor[*T, Key]
}

// NewWeakBacked creates a [WeakBacked] cache whose hot tier
// holds at most maxSize units.
// See [WithSweepOptions] to configure the cold tier.
func NewWeakBacked[Key comparable, T, Cached any](
	maxSize int, strategy Strategy[Key, *T, Cached],
	options ...Option[Key],
) (*WeakBacked[Key, T, Cached], error) {
	hot, err := NewBounded(maxSize, strategy, options...)
	if err != nil {
		return nil, err
	}
	return &WeakBacked[Key, T, Cached]{
		hot:  hot,
		cold: weakref.NewValueMap[Key, T](hot.sweepOptions...),
		keys: hot.strategy.Keys,
	}, nil
}

// Add inserts item into both tiers,
// as the most recently used entry of the hot tier.
func (c *WeakBacked[Key, T, Cached]) Add(item *T) error {
	if item == nil {
		return nilArgumentError("item")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hot.Add(item)
	c.cold.Store(c.keys.Key(item), item)
	return nil
}

// Get returns the item for key.
// A hot tier hit is marked as the most recently used entry.
// A cold tier hit is re-admitted into the hot tier,
// which may demote other entries.
func (c *WeakBacked[Key, T, Cached]) Get(key Key) (*T, bool) {
	const markAsNewest = true
	return c.Lookup(key, markAsNewest)
}

// Peek returns the item for key from either tier,
// without changing the hot tier.
func (c *WeakBacked[Key, T, Cached]) Peek(key Key) (*T, bool) {
	const markAsNewest = false
	return c.Lookup(key, markAsNewest)
}

// Lookup returns the item for key from either tier.
// If markAsNewest is true, a hot hit is promoted and
// a cold hit is re-admitted into the hot tier.
func (c *WeakBacked[Key, T, Cached]) Lookup(key Key, markAsNewest bool) (*T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item, ok := c.hot.Lookup(key, markAsNewest); ok {
		return item, true
	}
	item, ok := c.cold.Load(key)
	if !ok {
		return nil, false
	}
	if markAsNewest {
		c.hot.Add(item)
	}
	return item, true
}

// Contains reports whether key is held by either tier,
// without changing recency.
func (c *WeakBacked[Key, _, _]) Contains(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hot.Contains(key) || c.cold.Contains(key)
}

// Remove deletes key from both tiers, reporting if either held it.
func (c *WeakBacked[Key, _, _]) Remove(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	var (
		hot  = c.hot.Remove(key)
		cold = c.cold.Delete(key)
	)
	return hot || cold
}

// Clear empties both tiers.
func (c *WeakBacked[_, _, _]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hot.Clear()
	c.cold.Clear()
}

// Sweep drops cold tier slots whose items were collected,
// returning how many were dropped.
func (c *WeakBacked[_, _, _]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cold.Sweep()
}

// Len returns the number of entries in the hot tier.
func (c *WeakBacked[_, _, _]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hot.Len()
}

// WeakLen returns the number of cold tier slots,
// including those not yet swept.
func (c *WeakBacked[_, _, _]) WeakLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cold.Len()
}

// Size returns the total size of the hot tier.
func (c *WeakBacked[_, _, _]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hot.Size()
}

// MaxSize returns the size the hot tier is bounded to.
func (c *WeakBacked[_, _, _]) MaxSize() int { return c.hot.MaxSize() }
