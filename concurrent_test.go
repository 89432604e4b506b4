package lru_test

import (
	"errors"
	"strconv"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/djdv/go-lru"
)

func TestConcurrent(t *testing.T) {
	t.Run("invalid size", concurrentInvalidSize)
	t.Run("minimum size", minimumSize)
	t.Run("eviction order", concurrentEvictionOrder)
	t.Run("parallel access", parallelAccess)
	t.Run("iteration releases lock", iterationReleasesLock)
	t.Run("load", concurrentLoad)
}

func newConcurrentArtifacts(tb testing.TB, maxSize int, options ...lru.Option[string]) *lru.Concurrent[string, artifact, artifact] {
	tb.Helper()
	cache, err := lru.NewConcurrent(maxSize, artifactStrategy(), options...)
	if err != nil {
		tb.Fatal(err)
	}
	return cache
}

func concurrentInvalidSize(t *testing.T) {
	t.Parallel()
	if _, err := lru.NewConcurrent(0, artifactStrategy()); !errors.Is(err, lru.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got: %v", err)
	}
	if _, err := lru.NewConcurrent(1, lru.Strategy[string, artifact, artifact]{}); !errors.Is(err, lru.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got: %v", err)
	}
}

func minimumSize(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		name             string
		requested, floor int
		want             int
	}{
		{"default floor", 1, 0, lru.DefaultMinimumSize},
		{"custom floor", 3, 8, 8},
		{"above floor", 64, 8, 64},
	} {
		var options []lru.Option[string]
		if test.floor != 0 {
			options = append(options, lru.WithMinimumSize[string](test.floor))
		}
		cache := newConcurrentArtifacts(t, test.requested, options...)
		if got := cache.MaxSize(); got != test.want {
			t.Errorf("%s: max size\n\tgot: %d\n\twant: %d", test.name, got, test.want)
		}
	}
}

func concurrentEvictionOrder(t *testing.T) {
	t.Parallel()
	const itemSize = 4
	cache := newConcurrentArtifacts(t, 10, lru.WithMinimumSize[string](1))
	addArtifacts(cache, itemSize, "A", "B", "C")
	mustMiss(t, cache, "A", "least recently used")
	mustGet(t, cache, "B")
	addArtifacts(cache, itemSize, "D")
	keysMatch(t, cache, []string{"D", "B"}, "after promotion")
	checkSize(t, cache, 2, 8, "after eviction")
	if _, ok := cache.Lookup("D", false); !ok {
		t.Fatal("expected lookup hit")
	}
	if !cache.Remove("D") || cache.Contains("D") {
		t.Fatal("remove did not delete D")
	}
	cache.Clear()
	checkSize(t, cache, 0, 0, "after clear")
}

func parallelAccess(t *testing.T) {
	t.Parallel()
	const (
		maxSize    = 64
		workers    = 8
		operations = 2048
		universe   = maxSize * 2
	)
	var (
		log   hookLog[string]
		cache = newConcurrentArtifacts(t, maxSize,
			lru.WithHooks(log.hooks()), // Hooks run under the write lock.
		)
		group errgroup.Group
	)
	for worker := range workers {
		group.Go(func() error {
			for i := range operations {
				key := strconv.Itoa((worker*operations + i*7) % universe)
				switch i % 4 {
				case 0:
					cache.Add(artifact{name: key, bytes: 1 + i%3})
				case 1:
					if got, ok := cache.Get(key); ok && got.name != key {
						return errors.New("item does not match its key: " + got.name)
					}
				case 2:
					cache.Peek(key)
				case 3:
					for range cache.Keys() {
						break
					}
				}
				if size := cache.Size(); size > maxSize {
					return errors.New("size exceeded maximum: " + strconv.Itoa(size))
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		t.Fatal(err)
	}
	var total int
	for _, item := range cache.All() {
		total += item.bytes
	}
	if total != cache.Size() {
		t.Fatalf("running size %d does not match entries %d", cache.Size(), total)
	}
	if added, removed := len(log.added), len(log.removed); added-removed != cache.Len() {
		t.Fatalf("hooks out of balance: %d added, %d removed, %d cached",
			added, removed, cache.Len())
	}
}

func iterationReleasesLock(t *testing.T) {
	t.Parallel()
	cache := newConcurrentArtifacts(t, lru.DefaultMinimumSize)
	addArtifacts(cache, 1, "A", "B", "C")
	for range cache.All() {
		break
	}
	cache.Add(artifact{name: "after break", bytes: 1})

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate out of the iteration")
			}
		}()
		for key := range cache.Keys() {
			panic(key)
		}
	}()
	cache.Add(artifact{name: "after panic", bytes: 1})
	if !cache.Contains("after panic") {
		t.Fatal("write after a panicking iteration did not apply")
	}
}

func concurrentLoad(t *testing.T) {
	t.Parallel()
	var (
		cache  = newConcurrentArtifacts(t, lru.DefaultMinimumSize)
		loaded = artifact{name: "loaded", bytes: 1}
	)
	got, err := cache.Load(loaded.name, func() (artifact, error) { return loaded, nil })
	if err != nil || got.name != loaded.name {
		t.Fatalf("unexpected load result: %+v %v", got, err)
	}
	got, err = cache.Load(loaded.name, func() (artifact, error) {
		return artifact{}, errors.New("should have been cached")
	})
	if err != nil || got.name != loaded.name {
		t.Fatalf("unexpected cached load result: %+v %v", got, err)
	}
}
