// Package deque implements a key-indexed, recency ordered double ended queue.
//
// Entries live in a doubly-linked list with an index from key to node,
// so relocating, popping, and looking up entries are all O(1).
// The "top" of the deque is the most recently touched entry,
// the "bottom" is the least recently touched one.
//
// A [Deque] carries no policy (no size limits, no conversion);
// it is the ordering primitive that bounded caches are built on.
package deque

import (
	"iter"

	"github.com/djdv/go-lru/internal/ring"
)

type (
	node[Key comparable, Value any] = ring.Ring[Key, Value]
	// Deque is an ordered associative container.
	// Concurrent access must be guarded by the caller.
	// Constructed by [New].
	Deque[Key comparable, Value any] struct {
		index map[Key]*node[Key, Value]
		// root is a sentinel; root.Next() is the top
		// and root.Prev() is the bottom.
		root node[Key, Value]
	}
)

// New creates an empty [Deque].
func New[Key comparable, Value any]() *Deque[Key, Value] {
	return &Deque[Key, Value]{
		index: make(map[Key]*node[Key, Value]),
	}
}

// Len returns the number of entries.
func (d *Deque[_, _]) Len() int { return len(d.index) }

// Contains reports whether key is present.
func (d *Deque[Key, _]) Contains(key Key) bool {
	_, ok := d.index[key]
	return ok
}

// Get returns the value stored for key without changing its position.
func (d *Deque[Key, Value]) Get(key Key) (Value, bool) {
	if entry, ok := d.index[key]; ok {
		return entry.Value, true
	}
	var zero Value
	return zero, false
}

// Set replaces the value stored for an existing key,
// without changing its position.
func (d *Deque[Key, Value]) Set(key Key, value Value) error {
	entry, ok := d.index[key]
	if !ok {
		return keyError(ErrKeyNotFound, key)
	}
	entry.Value = value
	return nil
}

// AddToTop inserts a new entry as the most recent one.
func (d *Deque[Key, Value]) AddToTop(key Key, value Value) error {
	entry, err := d.newEntry(key, value)
	if err != nil {
		return err
	}
	d.root.Link(entry)
	return nil
}

// AddToBottom inserts a new entry as the least recent one.
func (d *Deque[Key, Value]) AddToBottom(key Key, value Value) error {
	entry, err := d.newEntry(key, value)
	if err != nil {
		return err
	}
	d.root.Prev().Link(entry)
	return nil
}

func (d *Deque[Key, Value]) newEntry(key Key, value Value) (*node[Key, Value], error) {
	if _, exists := d.index[key]; exists {
		return nil, keyError(ErrDuplicateKey, key)
	}
	entry := &node[Key, Value]{Key: key, Value: value}
	d.index[key] = entry
	return entry, nil
}

// MoveToTop relocates an existing entry to the top.
func (d *Deque[Key, _]) MoveToTop(key Key) error {
	entry, ok := d.index[key]
	if !ok {
		return keyError(ErrKeyNotFound, key)
	}
	if d.root.Next() != entry {
		d.root.Link(entry.Detach())
	}
	return nil
}

// MoveToBottom relocates an existing entry to the bottom.
func (d *Deque[Key, _]) MoveToBottom(key Key) error {
	entry, ok := d.index[key]
	if !ok {
		return keyError(ErrKeyNotFound, key)
	}
	if bottom := d.root.Prev(); bottom != entry {
		bottom.Link(entry.Detach())
	}
	return nil
}

// Top returns the most recent entry without removing it.
func (d *Deque[Key, Value]) Top() (Key, Value, bool) {
	return d.peek(d.root.Next())
}

// Bottom returns the least recent entry without removing it.
func (d *Deque[Key, Value]) Bottom() (Key, Value, bool) {
	return d.peek(d.root.Prev())
}

func (d *Deque[Key, Value]) peek(entry *node[Key, Value]) (Key, Value, bool) {
	if entry == &d.root {
		var (
			key   Key
			value Value
		)
		return key, value, false
	}
	return entry.Key, entry.Value, true
}

// PopTop removes and returns the most recent entry.
func (d *Deque[Key, Value]) PopTop() (Key, Value, error) {
	return d.pop(d.root.Next())
}

// PopBottom removes and returns the least recent entry.
func (d *Deque[Key, Value]) PopBottom() (Key, Value, error) {
	return d.pop(d.root.Prev())
}

func (d *Deque[Key, Value]) pop(entry *node[Key, Value]) (Key, Value, error) {
	if entry == &d.root {
		var (
			key   Key
			value Value
		)
		return key, value, ErrEmptyCollection
	}
	d.unlink(entry)
	return entry.Key, entry.Value, nil
}

// Remove deletes key, returning the value it held.
func (d *Deque[Key, Value]) Remove(key Key) (Value, bool) {
	entry, ok := d.index[key]
	if !ok {
		var zero Value
		return zero, false
	}
	d.unlink(entry)
	return entry.Value, true
}

func (d *Deque[Key, Value]) unlink(entry *node[Key, Value]) {
	delete(d.index, entry.Key)
	entry.Detach()
}

// Clear removes every entry.
func (d *Deque[Key, Value]) Clear() {
	clear(d.index)
	d.root = node[Key, Value]{}
}

// All returns an iterator over entries from top (most recent)
// to bottom (least recent).
// The deque must not be modified during iteration, except
// for removing the entry being visited.
func (d *Deque[Key, Value]) All() iter.Seq2[Key, Value] {
	return entries(d.root.Forward())
}

// Backward is like [Deque.All] but iterates from bottom to top.
func (d *Deque[Key, Value]) Backward() iter.Seq2[Key, Value] {
	return entries(d.root.Backward())
}

// Keys returns an iterator over the keys, from top to bottom.
func (d *Deque[Key, Value]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for entry := range d.root.Forward() {
			if !yield(entry.Key) {
				return
			}
		}
	}
}

func entries[Key comparable, Value any](nodes iter.Seq[*node[Key, Value]]) iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		for entry := range nodes {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}
