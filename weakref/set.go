package weakref

import (
	"iter"
	"weak"
)

// Set is a set of weakly held pointers, compared by identity.
// The zero value is an empty set using the default sweep threshold.
type Set[T any] struct {
	members map[weak.Pointer[T]]struct{}
	sweeper
}

// NewSet creates an empty [Set].
func NewSet[T any](options ...Option) *Set[T] {
	return &Set[T]{
		members: make(map[weak.Pointer[T]]struct{}),
		sweeper: newSweeper(options),
	}
}

func (s *Set[T]) lazyInit() {
	if s.members == nil {
		s.members = make(map[weak.Pointer[T]]struct{})
		if s.threshold == 0 {
			s.threshold = DefaultSweepThreshold
		}
	}
}

// Add inserts member, reporting false if it
// was already present or is nil.
func (s *Set[T]) Add(member *T) bool {
	if member == nil {
		return false
	}
	s.lazyInit()
	ref := weak.Make(member)
	_, exists := s.members[ref]
	if !exists {
		s.members[ref] = struct{}{}
	}
	s.operation()
	return !exists
}

// Contains reports whether member is in the set.
func (s *Set[T]) Contains(member *T) bool {
	_, ok := s.members[weak.Make(member)]
	s.operation()
	return ok && member != nil
}

// Remove deletes member, reporting if it was present.
func (s *Set[T]) Remove(member *T) bool {
	ref := weak.Make(member)
	_, ok := s.members[ref]
	delete(s.members, ref)
	s.operation()
	return ok && member != nil
}

// Len returns the number of slots,
// including those whose member was collected but not yet swept.
func (s *Set[_]) Len() int { return len(s.members) }

// Clear removes every slot.
func (s *Set[_]) Clear() {
	clear(s.members)
	s.reset()
}

// Sweep deletes every slot whose member was collected,
// returning how many were deleted.
func (s *Set[T]) Sweep() int {
	s.reset()
	return sweep(s.members, resolveMember[T])
}

// All returns an iterator over the reachable members,
// in no particular order.
// Slots found dead are deleted after iteration ends.
func (s *Set[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for member := range live(s.members, resolveMember[T]) {
			if !yield(member) {
				return
			}
		}
	}
}

func resolveMember[T any](ref weak.Pointer[T], _ struct{}) (*T, struct{}, bool) {
	member := ref.Value()
	return member, struct{}{}, member != nil
}

func (s *Set[_]) operation() {
	if s.due(len(s.members)) {
		s.Sweep()
	}
}
