package weakref

import (
	"iter"
	"weak"
)

// KeyMap maps weakly held keys to strongly held values.
// Keys are compared by pointer identity.
//
// A value must not reference its own key,
// otherwise the key is always reachable and is never collected.
//
// The zero value is an empty map using the default sweep threshold.
type KeyMap[K any, V any] struct {
	entries map[weak.Pointer[K]]V
	sweeper
}

// NewKeyMap creates an empty [KeyMap].
func NewKeyMap[K any, V any](options ...Option) *KeyMap[K, V] {
	return &KeyMap[K, V]{
		entries: make(map[weak.Pointer[K]]V),
		sweeper: newSweeper(options),
	}
}

func (m *KeyMap[K, V]) lazyInit() {
	if m.entries == nil {
		m.entries = make(map[weak.Pointer[K]]V)
		if m.threshold == 0 {
			m.threshold = DefaultSweepThreshold
		}
	}
}

// Store maps key to value, replacing any previous value.
// A nil key is ignored.
func (m *KeyMap[K, V]) Store(key *K, value V) {
	if key == nil {
		return
	}
	m.lazyInit()
	m.entries[weak.Make(key)] = value
	m.operation()
}

// Load returns the value stored for key.
func (m *KeyMap[K, V]) Load(key *K) (V, bool) {
	value, ok := m.entries[weak.Make(key)]
	m.operation()
	return value, ok && key != nil
}

// Contains reports whether key has a value.
func (m *KeyMap[K, V]) Contains(key *K) bool {
	_, ok := m.Load(key)
	return ok
}

// Delete removes key, reporting if it was present.
func (m *KeyMap[K, V]) Delete(key *K) bool {
	ref := weak.Make(key)
	_, ok := m.entries[ref]
	delete(m.entries, ref)
	m.operation()
	return ok && key != nil
}

// Len returns the number of slots,
// including those whose key was collected but not yet swept.
func (m *KeyMap[_, _]) Len() int { return len(m.entries) }

// Clear removes every slot.
func (m *KeyMap[_, _]) Clear() {
	clear(m.entries)
	m.reset()
}

// Sweep deletes every slot whose key was collected,
// returning how many were deleted.
func (m *KeyMap[_, _]) Sweep() int {
	m.reset()
	return sweep(m.entries, m.resolve)
}

// All returns an iterator over the entries with reachable keys,
// in no particular order.
// Entries found dead are deleted after iteration ends.
func (m *KeyMap[K, V]) All() iter.Seq2[*K, V] {
	return live(m.entries, m.resolve)
}

func (m *KeyMap[K, V]) resolve(ref weak.Pointer[K], value V) (*K, V, bool) {
	key := ref.Value()
	return key, value, key != nil
}

func (m *KeyMap[_, _]) operation() {
	if m.due(len(m.entries)) {
		m.Sweep()
	}
}
