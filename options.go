package lru

import "github.com/djdv/go-lru/weakref"

type (
	// Hooks observe changes to a cache's strong (bounded) tier.
	// Hooks are called synchronously, during the operation
	// that triggered them, and must not call back into the cache.
	// Any field may be nil.
	Hooks[Key comparable] struct {
		// ItemAdded is called after an item is added,
		// once the eviction that followed it has finished.
		ItemAdded func(Key)
		// ItemRemoved is called for every entry that leaves the
		// cache, whether by eviction, replacement, or [Bounded.Remove].
		ItemRemoved func(Key)
		// Cleared is called after the cache is cleared.
		Cleared func()
	}
	// Option configures a cache constructor.
	Option[Key comparable] func(*settings[Key])

	settings[Key comparable] struct {
		hooks        []Hooks[Key]
		sweepOptions []weakref.Option
		minimumSize  int
	}
)

// DefaultMinimumSize is the maximum size floor applied by
// [NewConcurrent] when [WithMinimumSize] is not provided.
const DefaultMinimumSize = 16

// WithHooks registers hooks with the cache.
// It may be provided more than once;
// hooks are called in registration order.
func WithHooks[Key comparable](hooks Hooks[Key]) Option[Key] {
	return func(s *settings[Key]) {
		s.hooks = append(s.hooks, hooks)
	}
}

// WithMinimumSize sets the floor that a [Concurrent] cache raises
// small maximum sizes to. Other caches ignore it.
func WithMinimumSize[Key comparable](size int) Option[Key] {
	return func(s *settings[Key]) {
		s.minimumSize = size
	}
}

// WithSweepOptions configures the cold tier of a [WeakBacked] cache.
// Other caches ignore it.
func WithSweepOptions[Key comparable](options ...weakref.Option) Option[Key] {
	return func(s *settings[Key]) {
		s.sweepOptions = append(s.sweepOptions, options...)
	}
}

func applyOptions[Key comparable](options []Option[Key]) settings[Key] {
	s := settings[Key]{minimumSize: DefaultMinimumSize}
	for _, apply := range options {
		apply(&s)
	}
	return s
}

func (s *settings[Key]) added(key Key) {
	for _, hooks := range s.hooks {
		if hooks.ItemAdded != nil {
			hooks.ItemAdded(key)
		}
	}
}

func (s *settings[Key]) removed(key Key) {
	for _, hooks := range s.hooks {
		if hooks.ItemRemoved != nil {
			hooks.ItemRemoved(key)
		}
	}
}

func (s *settings[Key]) cleared() {
	for _, hooks := range s.hooks {
		if hooks.Cleared != nil {
			hooks.Cleared()
		}
	}
}
