package main

import (
	"github.com/hashicorp/golang-lru/arc/v2"
	hashilru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/djdv/go-lru"
	"github.com/djdv/go-lru/metrics"
)

type (
	// accessor reports whether a key was cached,
	// admitting it when it was not.
	accessor interface {
		access(key int) (hit bool)
	}
	accessFunc func(key int) bool

	candidate struct {
		name string
		// concurrent candidates are driven by every worker at once.
		concurrent bool
		// instrumented candidates feed the metrics registry.
		instrumented bool
		new          func(capacity int, instance instrumentation) (accessor, error)
	}
	instrumentation struct {
		reg     prometheus.Registerer
		name    string
		metrics *metrics.Cache
	}

	// block stands in for a loaded value;
	// the payload keeps it out of the tiny allocator.
	block struct {
		key     int
		payload [64]byte
	}
)

func (fn accessFunc) access(key int) bool { return fn(key) }

func intStrategy() lru.Strategy[int, int, int] {
	return lru.Strategy[int, int, int]{
		Keys:    lru.KeyFunc[int, int](func(i int) int { return i }),
		Convert: lru.Identity[int](),
	}
}

func blockStrategy() lru.Strategy[int, *block, *block] {
	return lru.Strategy[int, *block, *block]{
		Keys:    lru.KeyFunc[*block, int](func(b *block) int { return b.key }),
		Convert: lru.Identity[*block](),
	}
}

func (in instrumentation) options() []lru.Option[int] {
	if in.metrics == nil {
		return nil
	}
	return []lru.Option[int]{lru.WithHooks(metrics.CacheHooks[int](in.metrics))}
}

func (in instrumentation) observe(hit bool) {
	if in.metrics != nil {
		in.metrics.ObserveLookup(hit)
	}
}

func (in instrumentation) registerSize(length, size func() int) {
	if in.reg != nil {
		metrics.RegisterCacheSize(in.reg, in.name, length, size)
	}
}

func candidates() []candidate {
	return []candidate{
		{name: "Bounded", instrumented: true, new: newBoundedAccessor},
		{name: "Concurrent", instrumented: true, concurrent: true, new: newConcurrentAccessor},
		{name: "WeakBacked", instrumented: true, new: newWeakBackedAccessor},
		{name: "hashicorp/LRU", new: newLRUAccessor},
		{name: "hashicorp/ARC", new: newARCAccessor},
	}
}

func newBoundedAccessor(capacity int, in instrumentation) (accessor, error) {
	cache, err := lru.NewBounded(capacity, intStrategy(), in.options()...)
	if err != nil {
		return nil, err
	}
	in.registerSize(cache.Len, cache.Size)
	return accessFunc(func(key int) bool {
		_, hit := cache.Get(key)
		in.observe(hit)
		if !hit {
			cache.Add(key)
		}
		return hit
	}), nil
}

func newConcurrentAccessor(capacity int, in instrumentation) (accessor, error) {
	options := append(in.options(), lru.WithMinimumSize[int](1))
	cache, err := lru.NewConcurrent(capacity, intStrategy(), options...)
	if err != nil {
		return nil, err
	}
	in.registerSize(cache.Len, cache.Size)
	return accessFunc(func(key int) bool {
		_, hit := cache.Get(key)
		in.observe(hit)
		if !hit {
			cache.Add(key)
		}
		return hit
	}), nil
}

func newWeakBackedAccessor(capacity int, in instrumentation) (accessor, error) {
	cache, err := lru.NewWeakBacked(capacity, blockStrategy(), in.options()...)
	if err != nil {
		return nil, err
	}
	in.registerSize(cache.Len, cache.Size)
	return accessFunc(func(key int) bool {
		_, hit := cache.Get(key)
		in.observe(hit)
		if !hit {
			// Only fails for nil items.
			_ = cache.Add(&block{key: key})
		}
		return hit
	}), nil
}

func newLRUAccessor(capacity int, _ instrumentation) (accessor, error) {
	cache, err := hashilru.New[int, int](capacity)
	if err != nil {
		return nil, err
	}
	return accessFunc(func(key int) bool {
		_, hit := cache.Get(key)
		if !hit {
			cache.Add(key, key)
		}
		return hit
	}), nil
}

func newARCAccessor(capacity int, _ instrumentation) (accessor, error) {
	cache, err := arc.NewARC[int, int](capacity)
	if err != nil {
		return nil, err
	}
	return accessFunc(func(key int) bool {
		_, hit := cache.Get(key)
		if !hit {
			cache.Add(key, key)
		}
		return hit
	}), nil
}
