package lru

import "fmt"

type constError string

const (
	// ErrInvalidSize may be returned from cache constructors
	// when the requested maximum size is not positive.
	ErrInvalidSize = constError("invalid size")
	// ErrInvalidArgument is returned when a required
	// strategy, function, or item is nil.
	ErrInvalidArgument = constError("invalid argument")
)

func (errStr constError) Error() string { return string(errStr) }

func maxSizeError(maxSize int) error {
	return fmt.Errorf(
		"%w: maximum size must be >0 but %d was requested",
		ErrInvalidSize, maxSize)
}

func nilArgumentError(name string) error {
	return fmt.Errorf("%w: %s must not be nil", ErrInvalidArgument, name)
}
