package lru

import "reflect"

type (
	// KeyExtractor derives the cache key of an item.
	// It must be pure and stable for as long as the item is cached.
	KeyExtractor[Item any, Key comparable] interface {
		Key(Item) Key
	}
	// Converter translates items to and from the representation
	// a cache stores. The round trip does not need to produce
	// an identical item, only one that is usable by the caller.
	Converter[Item, Cached any] interface {
		Encode(Item) Cached
		Decode(Cached) Item
	}
	// Sizer measures a cached representation,
	// in the same unit as a cache's maximum size.
	// Sizes must not be negative; caches treat
	// negative sizes as 0.
	Sizer[Cached any] interface {
		Size(Cached) int
	}
	// Sized may be implemented by cached representations
	// that know their own size. See [DefaultSizer].
	Sized interface {
		Size() int
	}

	// Strategy bundles the behavior a bounded cache
	// uses to key, store, and measure items.
	Strategy[Key comparable, Item, Cached any] struct {
		Keys    KeyExtractor[Item, Key]
		Convert Converter[Item, Cached]
		// Sizes is optional; [DefaultSizer] is used when nil.
		Sizes Sizer[Cached]
	}

	// KeyFunc adapts a function to a [KeyExtractor].
	KeyFunc[Item any, Key comparable] func(Item) Key
	// SizeFunc adapts a function to a [Sizer].
	SizeFunc[Cached any] func(Cached) int
	// Conversion adapts a pair of functions to a [Converter].
	Conversion[Item, Cached any] struct {
		Encoder func(Item) Cached
		Decoder func(Cached) Item
	}

	identity[T any]  struct{}
	unitSizer[T any] struct{}
	selfSizer[T any] struct{}
)

func (fn KeyFunc[I, K]) Key(item I) K { return fn(item) }

func (fn SizeFunc[C]) Size(cached C) int { return fn(cached) }

func (c Conversion[I, C]) Encode(item I) C   { return c.Encoder(item) }
func (c Conversion[I, C]) Decode(cached C) I { return c.Decoder(cached) }

// Identity returns a [Converter] that stores items as they are.
func Identity[T any]() Converter[T, T] { return identity[T]{} }

func (identity[T]) Encode(item T) T   { return item }
func (identity[T]) Decode(cached T) T { return cached }

// DefaultSizer returns a [Sizer] for Cached.
// If Cached implements [Sized], entries report their own size;
// otherwise every entry counts as 1 unit, making the
// cache's maximum size an entry count.
// The choice is made once, from the type, not per entry,
// unless Cached is an interface type; then each
// value is checked for [Sized] as it is measured.
func DefaultSizer[Cached any]() Sizer[Cached] {
	var (
		sizedType  = reflect.TypeFor[Sized]()
		cachedType = reflect.TypeFor[Cached]()
	)
	if cachedType.Kind() == reflect.Interface ||
		cachedType.Implements(sizedType) {
		return selfSizer[Cached]{}
	}
	return unitSizer[Cached]{}
}

func (unitSizer[T]) Size(T) int { return 1 }

func (selfSizer[T]) Size(cached T) int {
	if sized, ok := any(cached).(Sized); ok {
		return sized.Size()
	}
	return 1 // Nil, or a dynamic type that is not Sized.
}

// NewStrategy builds a [Strategy] from plain functions.
// sizeOf may be nil.
func NewStrategy[Key comparable, Item, Cached any](
	keyOf func(Item) Key,
	encode func(Item) Cached, decode func(Cached) Item,
	sizeOf func(Cached) int,
) Strategy[Key, Item, Cached] {
	strategy := Strategy[Key, Item, Cached]{
		Keys: KeyFunc[Item, Key](keyOf),
		Convert: Conversion[Item, Cached]{
			Encoder: encode,
			Decoder: decode,
		},
	}
	if sizeOf != nil {
		strategy.Sizes = SizeFunc[Cached](sizeOf)
	}
	return strategy
}

func (s Strategy[Key, Item, Cached]) validate() (Strategy[Key, Item, Cached], error) {
	switch {
	case isNil(s.Keys):
		return s, nilArgumentError("key extractor")
	case isNil(s.Convert):
		return s, nilArgumentError("converter")
	}
	if conversion, ok := s.Convert.(Conversion[Item, Cached]); ok &&
		(conversion.Encoder == nil || conversion.Decoder == nil) {
		return s, nilArgumentError("conversion function")
	}
	if isNil(s.Sizes) {
		s.Sizes = DefaultSizer[Cached]()
	}
	return s, nil
}

// isNil catches both nil interfaces and
// interfaces holding a nil func adapter.
func isNil(strategy any) bool {
	if strategy == nil {
		return true
	}
	value := reflect.ValueOf(strategy)
	switch value.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map,
		reflect.Interface, reflect.Slice, reflect.Chan:
		return value.IsNil()
	}
	return false
}
