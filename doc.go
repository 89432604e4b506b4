// Package lru implements size-bounded, least recently used item caches.
//
// Every cache here is built on a recency ordered [deque.Deque]
// and a [Strategy] that describes how items are keyed,
// converted for storage, and measured.
//
// The following is a summary (intended for maintainers)
// of how the caches relate to each other.
//
// Caches:
//
//   - [Bounded]
//
//     Single goroutine cache. Entries are ordered by recency;
//     the least recently used entries are evicted until
//     the size total fits within the maximum size.
//
//   - [Concurrent]
//
//     A [Bounded] cache guarded by a read/write lock.
//     Small maximum sizes are raised to a floor (see [WithMinimumSize]).
//
//   - [WeakBacked]
//
//     A [Bounded] "hot" tier backed by a weak "cold" tier.
//     Evicted items remain reachable through the cache
//     for as long as something else holds them.
//
// Glossary and invariants:
//
//   - Top / bottom
//
//     The most / least recently touched entry.
//     Lookups that mark an entry as newest move it to the top,
//     eviction always takes from the bottom.
//
//   - Size
//
//     The sum of each entry's measured size, recorded at insertion.
//     Size ≤ MaxSize after every operation returns.
//     An item larger than MaxSize is inserted and immediately evicted.
//
//   - Re-add
//
//     Adding an item whose key is present replaces the entry.
//     The stale entry is reported as removed before the new one is added.
//
//   - Demotion
//
//     A [WeakBacked] entry evicted from the hot tier.
//     Finding it again re-admits it to the hot tier.
//
// Hooks:
//
// [Hooks] observe the strong tier and run synchronously,
// while any lock the cache holds is still held.
// They must not call back into the cache.
//
// Debugging:
//
// Building with the "lru_debug" tag enables invariant
// assertions after every mutation.
package lru
