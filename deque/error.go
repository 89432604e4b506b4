package deque

import "fmt"

type constError string

const (
	// ErrDuplicateKey is returned when adding a key that is already present.
	ErrDuplicateKey = constError("duplicate key")
	// ErrKeyNotFound is returned when relocating or updating an absent key.
	ErrKeyNotFound = constError("key not found")
	// ErrEmptyCollection is returned when popping from an empty [Deque].
	ErrEmptyCollection = constError("collection is empty")
)

func (errStr constError) Error() string { return string(errStr) }

func keyError[Key any](err constError, key Key) error {
	return fmt.Errorf("%w: %v", err, key)
}
