package deque_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djdv/go-lru/deque"
)

func TestDeque(t *testing.T) {
	t.Run("empty", empty)
	t.Run("add order", addOrder)
	t.Run("duplicate key", duplicateKey)
	t.Run("move", move)
	t.Run("move missing", moveMissing)
	t.Run("pop", pop)
	t.Run("get and set", getAndSet)
	t.Run("remove", remove)
	t.Run("clear", clearDeque)
	t.Run("remove during iteration", removeDuringIteration)
}

func empty(t *testing.T) {
	t.Parallel()
	d := deque.New[string, int]()
	assert.Zero(t, d.Len())
	assert.False(t, d.Contains("a"))
	_, _, err := d.PopTop()
	assert.ErrorIs(t, err, deque.ErrEmptyCollection)
	_, _, err = d.PopBottom()
	assert.ErrorIs(t, err, deque.ErrEmptyCollection)
	_, _, ok := d.Top()
	assert.False(t, ok)
	_, _, ok = d.Bottom()
	assert.False(t, ok)
	assert.Empty(t, slices.Collect(d.Keys()))
}

func addOrder(t *testing.T) {
	t.Parallel()
	d := deque.New[string, int]()
	require.NoError(t, d.AddToTop("b", 2))
	require.NoError(t, d.AddToTop("a", 1))
	require.NoError(t, d.AddToBottom("c", 3))
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(d.Keys()))
	assert.Equal(t, 3, d.Len())

	var backward []string
	for key := range d.Backward() {
		backward = append(backward, key)
	}
	assert.Equal(t, []string{"c", "b", "a"}, backward)
}

func duplicateKey(t *testing.T) {
	t.Parallel()
	d := deque.New[string, int]()
	require.NoError(t, d.AddToTop("a", 1))
	assert.ErrorIs(t, d.AddToTop("a", 2), deque.ErrDuplicateKey)
	assert.ErrorIs(t, d.AddToBottom("a", 3), deque.ErrDuplicateKey)
	value, ok := d.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, value, "failed insert must not overwrite")
	assert.Equal(t, 1, d.Len())
}

func move(t *testing.T) {
	t.Parallel()
	d := deque.New[string, string]()
	require.NoError(t, d.AddToTop("k1", "v1"))
	require.NoError(t, d.AddToTop("k2", "v2"))
	require.NoError(t, d.MoveToBottom("k1"))
	assert.Equal(t, []string{"k2", "k1"}, slices.Collect(d.Keys()))

	require.NoError(t, d.AddToTop("k3", "v3"))
	require.NoError(t, d.MoveToTop("k1"))
	assert.Equal(t, []string{"k1", "k3", "k2"}, slices.Collect(d.Keys()))

	// Moving the current extreme is a no-op.
	require.NoError(t, d.MoveToTop("k1"))
	require.NoError(t, d.MoveToBottom("k2"))
	assert.Equal(t, []string{"k1", "k3", "k2"}, slices.Collect(d.Keys()))
}

func moveMissing(t *testing.T) {
	t.Parallel()
	d := deque.New[int, int]()
	assert.ErrorIs(t, d.MoveToTop(1), deque.ErrKeyNotFound)
	assert.ErrorIs(t, d.MoveToBottom(1), deque.ErrKeyNotFound)
}

func pop(t *testing.T) {
	t.Parallel()
	d := deque.New[int, string]()
	for i, value := range []string{"one", "two", "three"} {
		require.NoError(t, d.AddToTop(i+1, value))
	}
	key, value, err := d.PopBottom()
	require.NoError(t, err)
	assert.Equal(t, 1, key)
	assert.Equal(t, "one", value)

	key, value, err = d.PopTop()
	require.NoError(t, err)
	assert.Equal(t, 3, key)
	assert.Equal(t, "three", value)

	key, _, ok := d.Top()
	require.True(t, ok)
	assert.Equal(t, 2, key)
	assert.Equal(t, 1, d.Len())
	assert.False(t, d.Contains(1))
	assert.False(t, d.Contains(3))
}

func getAndSet(t *testing.T) {
	t.Parallel()
	d := deque.New[string, int]()
	require.NoError(t, d.AddToTop("a", 1))
	require.NoError(t, d.AddToTop("b", 2))
	require.NoError(t, d.Set("a", 10))
	value, ok := d.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, value)
	assert.Equal(t, []string{"b", "a"}, slices.Collect(d.Keys()),
		"set must not change position")
	assert.ErrorIs(t, d.Set("missing", 0), deque.ErrKeyNotFound)
	_, ok = d.Get("missing")
	assert.False(t, ok)
}

func remove(t *testing.T) {
	t.Parallel()
	d := deque.New[string, int]()
	for i, key := range []string{"a", "b", "c"} {
		require.NoError(t, d.AddToTop(key, i))
	}
	value, ok := d.Remove("b")
	require.True(t, ok)
	assert.Equal(t, 1, value)
	_, ok = d.Remove("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"c", "a"}, slices.Collect(d.Keys()))
	// A removed key may be added again.
	require.NoError(t, d.AddToBottom("b", 4))
	assert.Equal(t, []string{"c", "a", "b"}, slices.Collect(d.Keys()))
}

func clearDeque(t *testing.T) {
	t.Parallel()
	d := deque.New[int, int]()
	for i := range 8 {
		require.NoError(t, d.AddToTop(i, i))
	}
	d.Clear()
	assert.Zero(t, d.Len())
	assert.Empty(t, slices.Collect(d.Keys()))
	require.NoError(t, d.AddToTop(1, 1))
	assert.Equal(t, []int{1}, slices.Collect(d.Keys()))
}

func removeDuringIteration(t *testing.T) {
	t.Parallel()
	d := deque.New[int, int]()
	for i := range 6 {
		require.NoError(t, d.AddToBottom(i, i))
	}
	for key := range d.All() {
		if key%2 == 0 {
			d.Remove(key)
		}
	}
	assert.Equal(t, []int{1, 3, 5}, slices.Collect(d.Keys()))
}
