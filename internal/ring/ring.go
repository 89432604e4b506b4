// Package ring is a keyed adaption of `container/ring`,
// used as the storage of a recency ordered deque.
package ring

import "iter"

// A Ring is an element of a circular list, or ring.
// Rings do not have a beginning or end; a pointer to any ring element
// serves as reference to the entire ring. The zero value for a Ring
// is a one-element ring, which is how sentinels are made.
type Ring[Key comparable, Value any] struct {
	next, prev *Ring[Key, Value]
	// Key identifies the entry; it is the deque's index key.
	Key   Key
	Value Value
}

func (r *Ring[Key, Value]) init() *Ring[Key, Value] {
	r.next = r
	r.prev = r
	return r
}

// Next returns the next ring element. r must not be empty.
func (r *Ring[Key, Value]) Next() *Ring[Key, Value] {
	if r.next == nil {
		return r.init()
	}
	return r.next
}

// Prev returns the previous ring element. r must not be empty.
func (r *Ring[Key, Value]) Prev() *Ring[Key, Value] {
	if r.next == nil {
		return r.init()
	}
	return r.prev
}

// Link connects ring r with ring s such that r.Next()
// becomes s and returns the original value for r.Next().
// r must not be empty.
//
// If r and s point to different rings, linking
// them creates a single ring with the elements of s inserted
// after r. The result points to the element following the
// last element of s after insertion.
func (r *Ring[Key, Value]) Link(s *Ring[Key, Value]) *Ring[Key, Value] {
	n := r.Next()
	if s != nil {
		p := s.Prev()
		// Note: Cannot use multiple assignment because
		// evaluation order of LHS is not specified.
		r.next = s
		s.prev = r
		n.prev = p
		p.next = n
	}
	return n
}

// Detach removes r from the ring it belongs to and returns it
// as a one-element ring. Detaching a lone element is a no-op.
func (r *Ring[Key, Value]) Detach() *Ring[Key, Value] {
	if r.next == nil || r.next == r {
		return r.init()
	}
	r.prev.next = r.next
	r.next.prev = r.prev
	return r.init()
}

// Lone reports whether r is the only element of its ring.
func (r *Ring[Key, Value]) Lone() bool {
	return r.next == nil || r.next == r
}

// Len computes the number of elements in ring r.
// It executes in time proportional to the number of elements.
func (r *Ring[Key, Value]) Len() int {
	n := 0
	if r != nil {
		n = 1
		for p := r.Next(); p != r; p = p.next {
			n++
		}
	}
	return n
}

// Forward iterates every element after r, in forward order,
// stopping before r itself. With r as a sentinel
// this visits the whole list from head to tail.
func (r *Ring[Key, Value]) Forward() iter.Seq[*Ring[Key, Value]] {
	return func(yield func(*Ring[Key, Value]) bool) {
		for p := r.Next(); p != r; {
			next := p.next // p may be detached by yield.
			if !yield(p) {
				return
			}
			p = next
		}
	}
}

// Backward is like Forward, in reverse order.
func (r *Ring[Key, Value]) Backward() iter.Seq[*Ring[Key, Value]] {
	return func(yield func(*Ring[Key, Value]) bool) {
		for p := r.Prev(); p != r; {
			prev := p.prev
			if !yield(p) {
				return
			}
			p = prev
		}
	}
}
