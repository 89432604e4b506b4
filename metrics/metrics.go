// Package metrics exports cache and pool activity to Prometheus.
//
// Caches report through [lru.Hooks] and pools through
// [pool.OnRemoved], so the instrumented containers
// stay free of any metrics dependency.
// Every metric carries a constant "name" label,
// allowing several caches to share one registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/djdv/go-lru"
)

const (
	namespace = "lru"
	nameLabel = "name"
)

type (
	// Cache holds the counters for one cache.
	Cache struct {
		added, removed, clears prometheus.Counter
		hits, misses           prometheus.Counter
	}
	// Pool holds the counters for one resource pool.
	Pool struct {
		removed prometheus.Counter
	}
)

func labels(name string) prometheus.Labels {
	return prometheus.Labels{nameLabel: name}
}

// NewCache registers the counters for the cache called name.
func NewCache(reg prometheus.Registerer, name string) *Cache {
	var (
		factory = promauto.With(reg)
		lookups = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "lookups_total",
			Help:        "Total number of cache lookups by result.",
			ConstLabels: labels(name),
		}, []string{"result"})
	)
	return &Cache{
		added: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "items_added_total",
			Help:        "Total number of items added to the cache.",
			ConstLabels: labels(name),
		}),
		removed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "items_removed_total",
			Help:        "Total number of items evicted, replaced, or removed from the cache.",
			ConstLabels: labels(name),
		}),
		clears: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "cache",
			Name:        "clears_total",
			Help:        "Total number of times the cache was cleared.",
			ConstLabels: labels(name),
		}),
		hits:   lookups.WithLabelValues("hit"),
		misses: lookups.WithLabelValues("miss"),
	}
}

// CacheHooks returns hooks that feed m.
// Install them with [lru.WithHooks].
func CacheHooks[Key comparable](m *Cache) lru.Hooks[Key] {
	return lru.Hooks[Key]{
		ItemAdded:   func(Key) { m.added.Inc() },
		ItemRemoved: func(Key) { m.removed.Inc() },
		Cleared:     m.clears.Inc,
	}
}

// ObserveLookup records the result of a lookup.
func (m *Cache) ObserveLookup(hit bool) {
	if hit {
		m.hits.Inc()
	} else {
		m.misses.Inc()
	}
}

// RegisterCacheSize registers gauges that report
// the entry count and size total of the cache called name.
// The functions are called on every scrape and must be
// safe to call from the scraping goroutine.
func RegisterCacheSize(reg prometheus.Registerer, name string, length, size func() int) {
	factory := promauto.With(reg)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   "cache",
		Name:        "entries",
		Help:        "Number of entries held by the cache.",
		ConstLabels: labels(name),
	}, intFunc(length))
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   "cache",
		Name:        "size_units",
		Help:        "Sum of the sizes of the entries held by the cache.",
		ConstLabels: labels(name),
	}, intFunc(size))
}

// NewPool registers the counters for the pool called name.
func NewPool(reg prometheus.Registerer, name string) *Pool {
	return &Pool{
		removed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "pool",
			Name:        "removed_total",
			Help:        "Total number of resources removed or disposed by the pool.",
			ConstLabels: labels(name),
		}),
	}
}

// PoolRemovedHook returns a function for [pool.OnRemoved] that feeds m.
func PoolRemovedHook[T comparable](m *Pool) func(T) {
	return func(T) { m.removed.Inc() }
}

// RegisterPoolState registers gauges for the available
// and in use resource counts of the pool called name.
func RegisterPoolState(reg prometheus.Registerer, name string, available, inUse func() int) {
	factory := promauto.With(reg)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   "pool",
		Name:        "available",
		Help:        "Number of pooled resources ready to be consumed.",
		ConstLabels: labels(name),
	}, intFunc(available))
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   "pool",
		Name:        "in_use",
		Help:        "Number of pooled resources currently checked out.",
		ConstLabels: labels(name),
	}, intFunc(inUse))
}

func intFunc(fn func() int) func() float64 {
	return func() float64 { return float64(fn()) }
}
