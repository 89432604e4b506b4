package weakref

import "iter"

type (
	// Option configures the sweep policy of a weak container.
	Option func(*sweeper)

	sweeper struct {
		operations, threshold int
	}
)

// DefaultSweepThreshold is the number of table slots below which
// automatic sweeps are skipped entirely.
const DefaultSweepThreshold = 1024

// WithSweepThreshold sets the slot count that a table must exceed
// before automatic sweeps run. Negative values are treated as 0.
func WithSweepThreshold(slots int) Option {
	return func(s *sweeper) {
		s.threshold = max(slots, 0)
	}
}

func newSweeper(options []Option) sweeper {
	s := sweeper{threshold: DefaultSweepThreshold}
	for _, apply := range options {
		apply(&s)
	}
	return s
}

// due counts an operation and reports whether
// a table with this many slots should be swept.
func (s *sweeper) due(slots int) bool {
	s.operations++
	if slots <= s.threshold {
		return false
	}
	return s.operations > slots*2
}

func (s *sweeper) reset() { s.operations = 0 }

// sweep deletes every entry whose referent was collected,
// returning the count of deleted entries.
func sweep[Key comparable, Value, SK, SV any](
	entries map[Key]Value, resolve func(Key, Value) (SK, SV, bool),
) int {
	removed := 0
	for key, value := range entries {
		if _, _, alive := resolve(key, value); !alive {
			delete(entries, key)
			removed++
		}
	}
	return removed
}

// live iterates entries, skipping those whose referent was collected.
// Dead entries are not deleted in place; their keys are queued
// and deleted once iteration ends, however it ends.
// An entry replaced by the loop body with a live one is kept.
func live[Key comparable, Value, SK, SV any](
	entries map[Key]Value, resolve func(Key, Value) (SK, SV, bool),
) iter.Seq2[SK, SV] {
	return func(yield func(SK, SV) bool) {
		var queued []Key
		defer func() {
			for _, key := range queued {
				value, ok := entries[key]
				if !ok {
					continue
				}
				if _, _, alive := resolve(key, value); !alive {
					delete(entries, key)
				}
			}
		}()
		for key, value := range entries {
			strongKey, strongValue, alive := resolve(key, value)
			if !alive {
				queued = append(queued, key)
				continue
			}
			if !yield(strongKey, strongValue) {
				return
			}
		}
	}
}
