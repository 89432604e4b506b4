package weakref

import (
	"iter"
	"weak"
)

// ValueMap maps keys to weakly held values.
// The zero value is an empty map using the default sweep threshold.
type ValueMap[Key comparable, T any] struct {
	entries map[Key]weak.Pointer[T]
	sweeper
}

// NewValueMap creates an empty [ValueMap].
func NewValueMap[Key comparable, T any](options ...Option) *ValueMap[Key, T] {
	return &ValueMap[Key, T]{
		entries: make(map[Key]weak.Pointer[T]),
		sweeper: newSweeper(options),
	}
}

func (m *ValueMap[Key, T]) lazyInit() {
	if m.entries == nil {
		m.entries = make(map[Key]weak.Pointer[T])
		if m.threshold == 0 {
			m.threshold = DefaultSweepThreshold
		}
	}
}

// Store maps key to value, replacing any previous value.
// Storing a nil value deletes key.
func (m *ValueMap[Key, T]) Store(key Key, value *T) {
	if value == nil {
		m.Delete(key)
		return
	}
	m.lazyInit()
	m.entries[key] = weak.Make(value)
	m.operation()
}

// Load returns the value for key if it is still reachable.
// A slot whose value was collected is deleted.
func (m *ValueMap[Key, T]) Load(key Key) (*T, bool) {
	ref, ok := m.entries[key]
	if !ok {
		m.operation()
		return nil, false
	}
	value := ref.Value()
	if value == nil {
		delete(m.entries, key)
	}
	m.operation()
	return value, value != nil
}

// Contains reports whether key maps to a reachable value.
func (m *ValueMap[Key, T]) Contains(key Key) bool {
	_, ok := m.Load(key)
	return ok
}

// Delete removes key, reporting if its slot was present
// (whether or not its value was still reachable).
func (m *ValueMap[Key, T]) Delete(key Key) bool {
	_, ok := m.entries[key]
	delete(m.entries, key)
	m.operation()
	return ok
}

// Len returns the number of slots,
// including those whose value was collected but not yet swept.
func (m *ValueMap[_, _]) Len() int { return len(m.entries) }

// Clear removes every slot.
func (m *ValueMap[_, _]) Clear() {
	clear(m.entries)
	m.reset()
}

// Sweep deletes every slot whose value was collected,
// returning how many were deleted.
func (m *ValueMap[_, _]) Sweep() int {
	m.reset()
	return sweep(m.entries, m.resolve)
}

// All returns an iterator over the reachable entries, in no particular order.
// Entries found dead are deleted after iteration ends.
func (m *ValueMap[Key, T]) All() iter.Seq2[Key, *T] {
	return live(m.entries, m.resolve)
}

func (m *ValueMap[Key, T]) resolve(key Key, ref weak.Pointer[T]) (Key, *T, bool) {
	value := ref.Value()
	return key, value, value != nil
}

func (m *ValueMap[_, _]) operation() {
	if m.due(len(m.entries)) {
		m.Sweep()
	}
}
