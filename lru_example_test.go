package lru_test

import (
	"fmt"
	"slices"
	"strings"

	"github.com/djdv/go-lru"
)

func ExampleBounded() {
	type document struct {
		path, body string
	}
	// Documents are stored compressed to their body,
	// and measured in bytes.
	strategy := lru.NewStrategy(
		func(d document) string { return d.path },
		func(d document) string { return d.body },
		func(body string) document { return document{body: body} },
		func(body string) int { return len(body) },
	)
	cache, err := lru.NewBounded(8, strategy, lru.WithHooks(lru.Hooks[string]{
		ItemRemoved: func(path string) { fmt.Println("evicted:", path) },
	}))
	if err != nil {
		panic(err)
	}
	cache.Add(document{"a.txt", "aaaa"})
	cache.Add(document{"b.txt", "bbb"})
	cache.Add(document{"c.txt", "cc"})
	fmt.Println("keys:", strings.Join(slices.Collect(cache.Keys()), " "))
	fmt.Printf("size: %d/%d\n", cache.Size(), cache.MaxSize())
	// Output:
	// evicted: a.txt
	// keys: c.txt b.txt
	// size: 5/8
}

func ExampleBounded_Load() {
	const key = "load"
	cache, err := lru.NewBounded(1024, artifactStrategy())
	if err != nil {
		panic(err)
	}
	fetch := func() (artifact, error) {
		fmt.Println("fetched:", key)
		return artifact{name: key, bytes: 1}, nil
	}
	got, err := cache.Load(key, fetch)
	if err != nil {
		panic(err)
	}
	fmt.Println("loaded:", got.name)
	if got, err = cache.Load(key, fetch); err != nil {
		panic(err)
	}
	fmt.Println("cached:", got.name)
	// Output:
	// fetched: load
	// loaded: load
	// cached: load
}

func ExampleWeakBacked() {
	cache, err := lru.NewWeakBacked(1, pointerStrategy())
	if err != nil {
		panic(err)
	}
	var (
		first  = &artifact{name: "first", bytes: 1}
		second = &artifact{name: "second", bytes: 1}
	)
	for _, item := range []*artifact{first, second} {
		if err := cache.Add(item); err != nil {
			panic(err)
		}
	}
	// first was evicted from the hot tier,
	// but is still held by this function.
	got, ok := cache.Get(first.name)
	fmt.Println(got == first, ok, cache.Len())
	// Output:
	// true true 1
}
