package ring

import (
	"slices"
	"testing"
)

func TestRing(t *testing.T) {
	var (
		root    Ring[int, string]
		entries = make([]*Ring[int, string], 4)
	)
	for i := range entries {
		entries[i] = &Ring[int, string]{Key: i}
		root.Prev().Link(entries[i])
	}
	if got := root.Len(); got != len(entries)+1 {
		t.Fatalf("unexpected ring length\n\tgot: %d\n\twant: %d",
			got, len(entries)+1)
	}
	keysMatch(t, root.Forward(), []int{0, 1, 2, 3})
	keysMatch(t, root.Backward(), []int{3, 2, 1, 0})

	detached := entries[1].Detach()
	if !detached.Lone() {
		t.Fatal("detached element is still linked")
	}
	keysMatch(t, root.Forward(), []int{0, 2, 3})

	root.Link(detached)
	keysMatch(t, root.Forward(), []int{1, 0, 2, 3})

	for entry := range root.Forward() {
		entry.Detach()
	}
	if !root.Lone() {
		t.Fatal("sentinel should be alone after detaching every element")
	}
}

func keysMatch(t *testing.T, seq func(func(*Ring[int, string]) bool), want []int) {
	t.Helper()
	var got []int
	for entry := range seq {
		got = append(got, entry.Key)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected order\n\tgot: %v\n\twant: %v", got, want)
	}
}
