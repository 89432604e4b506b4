package lru_test

import (
	"iter"
	"slices"
	"testing"

	"go.uber.org/goleak"

	"github.com/djdv/go-lru"
)

type (
	// artifact is an item that reports its own size,
	// standing in for parsed metadata or compiled descriptors.
	artifact struct {
		name  string
		bytes int
		// Keeps the allocation out of the tiny allocator
		// (weak-backed tests depend on prompt collection).
		payload [32]byte
	}
	testCache[Key comparable, Item any] interface {
		Add(Item)
		Get(Key) (Item, bool)
		Peek(Key) (Item, bool)
		Contains(Key) bool
		Remove(Key) bool
		Clear()
		Len() int
		Size() int
		Keys() iter.Seq[Key]
	}
	artifactCache           = testCache[string, artifact]
	hookLog[Key comparable] struct {
		added, removed []Key
		clears         int
	}
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func (a artifact) Size() int { return a.bytes }

func artifactKey(a artifact) string { return a.name }

func artifactStrategy() lru.Strategy[string, artifact, artifact] {
	return lru.Strategy[string, artifact, artifact]{
		Keys:    lru.KeyFunc[artifact, string](artifactKey),
		Convert: lru.Identity[artifact](),
	}
}

func pointerStrategy() lru.Strategy[string, *artifact, *artifact] {
	return lru.Strategy[string, *artifact, *artifact]{
		Keys:    lru.KeyFunc[*artifact, string](func(a *artifact) string { return a.name }),
		Convert: lru.Identity[*artifact](),
	}
}

func (log *hookLog[Key]) hooks() lru.Hooks[Key] {
	return lru.Hooks[Key]{
		ItemAdded:   func(key Key) { log.added = append(log.added, key) },
		ItemRemoved: func(key Key) { log.removed = append(log.removed, key) },
		Cleared:     func() { log.clears++ },
	}
}

func newBoundedArtifacts(tb testing.TB, maxSize int, options ...lru.Option[string]) *lru.Bounded[string, artifact, artifact] {
	tb.Helper()
	cache, err := lru.NewBounded(maxSize, artifactStrategy(), options...)
	if err != nil {
		tb.Fatal(err)
	}
	return cache
}

func addArtifacts(cache artifactCache, size int, names ...string) {
	for _, name := range names {
		cache.Add(artifact{name: name, bytes: size})
	}
}

func mustMiss(tb testing.TB, cache artifactCache, key, why string) {
	tb.Helper()
	item, ok := cache.Peek(key)
	if !ok {
		return
	}
	tb.Fatalf(
		"expected miss due to %s but got: %v %t",
		why, item, ok)
}

func mustGet(tb testing.TB, cache artifactCache, key string) artifact {
	tb.Helper()
	if got, ok := cache.Get(key); ok {
		return got
	}
	tb.Fatalf("expected item from Get for key %v", key)
	return artifact{}
}

func checkSize(tb testing.TB, cache artifactCache, length, size int, action string) {
	tb.Helper()
	if gotLen, gotSize := cache.Len(), cache.Size(); gotLen != length || gotSize != size {
		tb.Fatalf(
			"unexpected cache dimensions %s"+
				"\n\tgot: %d entries, size %d"+
				"\n\twant: %d entries, size %d",
			action, gotLen, gotSize, length, size)
	}
}

// keysMatch compares keys in recency order, most recent first.
func keysMatch(tb testing.TB, cache artifactCache, want []string, msg string) {
	tb.Helper()
	keysEqual(tb, slices.Collect(cache.Keys()), want, msg)
}

func keysEqual[Key comparable](tb testing.TB, got, want []Key, msg string) {
	tb.Helper()
	if !slices.Equal(got, want) {
		tb.Fatalf(
			"%s"+
				"\n\twant: %v"+
				"\n\tgot: %v",
			msg, want, got)
	}
}
