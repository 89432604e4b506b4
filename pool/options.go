package pool

import (
	"io"

	"github.com/go-kit/log"
)

// Option configures a [Pool] during [New].
type Option[T comparable] func(*Pool[T])

// WithDisposer sets the function that releases a resource
// after the pool evicts it. By default, resources
// implementing [io.Closer] are closed and others are dropped.
func WithDisposer[T comparable](dispose func(T) error) Option[T] {
	return func(p *Pool[T]) {
		if dispose != nil {
			p.dispose = dispose
		}
	}
}

// WithLogger sets the logger used to report disposal failures.
func WithLogger[T comparable](logger log.Logger) Option[T] {
	return func(p *Pool[T]) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// OnRemoved registers a function that is called
// whenever a resource leaves the pool.
// It may be provided more than once.
func OnRemoved[T comparable](removed func(T)) Option[T] {
	return func(p *Pool[T]) {
		if removed != nil {
			p.removed = append(p.removed, removed)
		}
	}
}

func closeResource[T comparable](resource T) error {
	if closer, ok := any(resource).(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
