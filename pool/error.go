package pool

import "fmt"

type constError string

const (
	// ErrInvalidCapacity is returned by [New] for a negative capacity.
	ErrInvalidCapacity = constError("invalid capacity")
	// ErrNoAvailableItems is returned by [Pool.Consume]
	// when every pooled resource is checked out.
	ErrNoAvailableItems = constError("no available items")
	// ErrNotPooled is returned when releasing or removing
	// a resource that the pool does not track.
	ErrNotPooled = constError("resource is not pooled")
	// ErrNotInUse is returned when releasing a resource
	// that is already available.
	ErrNotInUse = constError("resource is not in use")
	// ErrInUse is returned when removing a resource that is checked out.
	ErrInUse = constError("resource is in use")
	// ErrAlreadyInUse is returned by [Pool.ConsumeOrCreate]
	// when the generator hands back a resource the pool already tracks.
	ErrAlreadyInUse = constError("resource is already pooled")
)

func (errStr constError) Error() string { return string(errStr) }

func resourceError[T any](err constError, resource T) error {
	return fmt.Errorf("%w: %v", err, resource)
}
