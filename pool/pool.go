// Package pool tracks a set of reusable resources
// that are checked out and returned by identity.
//
// Each resource is in exactly one [State] at a time.
// Resources become [Available] through [Pool.Add] or [Pool.Release],
// and [InUse] through [Pool.Consume] or [Pool.ConsumeOrCreate].
// When a pool with a positive capacity holds more resources
// than its capacity, a released resource is disposed
// instead of being made available again.
package pool

import (
	"errors"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/djdv/go-lru/deque"
)

type (
	// State describes a resource's relation to a [Pool].
	State int

	// Pool is a checkout/return pool keyed by resource identity.
	// Resources are compared with ==, so they are
	// typically pointers or handles.
	// Concurrent access must be guarded by the caller.
	// Constructed by [New].
	Pool[T comparable] struct {
		// available is ordered by return time,
		// most recently returned on top.
		available *deque.Deque[T, struct{}]
		inUse     map[T]struct{}
		dispose   func(T) error
		logger    log.Logger
		removed   []func(T)
		capacity  int
	}
)

// Resource states.
const (
	NotPooled State = iota
	Available
	InUse
)

func (s State) String() string {
	switch s {
	case NotPooled:
		return "not pooled"
	case Available:
		return "available"
	case InUse:
		return "in use"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// New creates an empty pool.
// A capacity of 0 leaves the pool unbounded.
func New[T comparable](capacity int, options ...Option[T]) (*Pool[T], error) {
	if capacity < 0 {
		return nil, fmt.Errorf(
			"%w: capacity must be >=0 but %d was requested",
			ErrInvalidCapacity, capacity)
	}
	p := &Pool[T]{
		available: deque.New[T, struct{}](),
		inUse:     make(map[T]struct{}),
		dispose:   closeResource[T],
		logger:    log.NewNopLogger(),
		capacity:  capacity,
	}
	for _, apply := range options {
		apply(p)
	}
	return p, nil
}

// Add registers resource as available.
// It returns false if the resource is already pooled.
func (p *Pool[T]) Add(resource T) bool {
	if p.State(resource) != NotPooled {
		return false
	}
	p.makeAvailable(resource)
	return true
}

// Consume checks out the most recently returned available resource.
func (p *Pool[T]) Consume() (T, error) {
	resource, _, err := p.available.PopTop()
	if err != nil {
		var zero T
		return zero, ErrNoAvailableItems
	}
	p.inUse[resource] = struct{}{}
	return resource, nil
}

// ConsumeOrCreate checks out an available resource,
// or if there are none, registers and checks out
// a new resource from generate.
// Generator errors are returned as-is and leave the pool unchanged.
func (p *Pool[T]) ConsumeOrCreate(generate func() (T, error)) (T, error) {
	if p.available.Len() != 0 || generate == nil {
		return p.Consume()
	}
	resource, err := generate()
	if err != nil {
		var zero T
		return zero, err
	}
	if p.State(resource) != NotPooled {
		var zero T
		return zero, resourceError(ErrAlreadyInUse, resource)
	}
	p.inUse[resource] = struct{}{}
	return resource, nil
}

// Release returns a checked out resource to the pool.
// If the pool is over capacity, resource is
// removed and disposed instead.
func (p *Pool[T]) Release(resource T) error {
	switch p.State(resource) {
	case NotPooled:
		return resourceError(ErrNotPooled, resource)
	case Available:
		return resourceError(ErrNotInUse, resource)
	}
	delete(p.inUse, resource)
	if p.capacity > 0 && p.Len()+1 > p.capacity {
		p.notifyRemoved(resource)
		p.disposeResource(resource)
		return nil
	}
	p.makeAvailable(resource)
	return nil
}

// Remove de-registers an available resource.
// The resource is not disposed; ownership returns to the caller.
func (p *Pool[T]) Remove(resource T) error {
	switch p.State(resource) {
	case NotPooled:
		return resourceError(ErrNotPooled, resource)
	case InUse:
		return resourceError(ErrInUse, resource)
	}
	p.available.Remove(resource)
	p.notifyRemoved(resource)
	return nil
}

// Execute checks out a resource, passes it to consume,
// and releases it on every exit path, panics included.
// If generate is nil, only available resources are used.
func (p *Pool[T]) Execute(generate func() (T, error), consume func(T) error) (err error) {
	resource, err := p.ConsumeOrCreate(generate)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := p.Release(resource); releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
	}()
	return consume(resource)
}

// State reports how the pool is tracking resource.
func (p *Pool[T]) State(resource T) State {
	if _, ok := p.inUse[resource]; ok {
		return InUse
	}
	if p.available.Contains(resource) {
		return Available
	}
	return NotPooled
}

// Len returns the number of pooled resources,
// available and in use.
func (p *Pool[T]) Len() int { return p.available.Len() + len(p.inUse) }

// Available returns the number of resources ready to be consumed.
func (p *Pool[T]) Available() int { return p.available.Len() }

// InUse returns the number of checked out resources.
func (p *Pool[T]) InUse() int { return len(p.inUse) }

// Capacity returns the capacity given to [New].
func (p *Pool[T]) Capacity() int { return p.capacity }

func (p *Pool[T]) makeAvailable(resource T) {
	if err := p.available.AddToTop(resource, struct{}{}); err != nil {
		panic(err) // State was checked by the caller.
	}
}

func (p *Pool[T]) notifyRemoved(resource T) {
	for _, removed := range p.removed {
		removed(resource)
	}
}

func (p *Pool[T]) disposeResource(resource T) {
	if err := p.dispose(resource); err != nil {
		level.Warn(p.logger).Log(
			"msg", "failed to dispose pooled resource",
			"resource", fmt.Sprint(resource),
			"err", err,
		)
	}
}
