package plugin

import (
	"reflect"
)

// Get returns a copy of the plugin's value, evaluating and caching it on
// first access. Failures are propagated and leave the store unchanged, so a
// later call retries the evaluation.
//
// For result types with reference semantics (maps, slices, pointers) the
// copy shares backing storage with the cached value.
func Get[H Extensible, V any](host H, p Plugin[H, V]) (V, error) {
	ref, err := Ref(host, p)
	if err != nil {
		var zero V
		return zero, err
	}
	return *ref, nil
}

// Ref returns a pointer to the plugin's cached value, evaluating and caching
// it on first access. The pointer aliases the store entry: mutations through
// it are visible to every later request for the same key, and the pointer is
// valid only until the entry is removed from the store.
func Ref[H Extensible, V any](host H, p Plugin[H, V]) (*V, error) {
	return fetch(host, KeyOf(p), p.Eval)
}

// GetOpt is Get for the optional-result strategy: it returns (zero, false)
// when the plugin has no value for this host. Absence is not cached.
func GetOpt[H Extensible, V any](host H, p OptionalPlugin[H, V]) (V, bool) {
	ref, ok := RefOpt(host, p)
	if !ok {
		var zero V
		return zero, false
	}
	return *ref, true
}

// RefOpt is Ref for the optional-result strategy.
func RefOpt[H Extensible, V any](host H, p OptionalPlugin[H, V]) (*V, bool) {
	ref, err := fetch(host, KeyOf(p), func(h H) (V, error) {
		v, ok := p.Eval(h)
		if !ok {
			var zero V
			return zero, ErrNoValue
		}
		return v, nil
	})
	if err != nil {
		// The closure only fails with ErrNoValue.
		return nil, false
	}
	return ref, true
}

// MustGet returns a copy of an infallible plugin's value, evaluating and
// caching it on first access. It panics only on the programmer errors every
// access path panics on (reentrancy, key/result mismatch).
func MustGet[H Extensible, V any](host H, p TotalPlugin[H, V]) V {
	return *MustRef(host, p)
}

// MustRef is Ref for infallible plugins.
func MustRef[H Extensible, V any](host H, p TotalPlugin[H, V]) *V {
	// The closure never fails, so fetch cannot return an error.
	ref, _ := fetch(host, KeyOf(p), func(h H) (V, error) {
		return p.Eval(h), nil
	})
	return ref
}

// Compute evaluates the plugin directly, without consulting or mutating any
// store. Every call re-evaluates. The host does not need to be Extensible.
func Compute[H, V any](host H, p Plugin[H, V]) (V, error) {
	return p.Eval(host)
}

// ComputeOpt is Compute for the optional-result strategy.
func ComputeOpt[H, V any](host H, p OptionalPlugin[H, V]) (V, bool) {
	return p.Eval(host)
}

// Remove deletes the cached entry for the plugin's key, if any. The next
// cached access re-evaluates. This is the only invalidation the package
// offers; p may be a plugin value or anything else whose type is the key.
func Remove[H Extensible](host H, p any) {
	host.Extensions().Delete(KeyOf(p))
}

// Contains reports whether the host already holds a cached value for the
// plugin's key.
func Contains[H Extensible](host H, p any) bool {
	return host.Extensions().Contains(KeyOf(p))
}

// fetch is the compute-or-fetch protocol shared by every cached access path:
// return the existing entry on a hit; on a miss, evaluate, store, and return
// the now-present entry. While the evaluation runs, the key is reserved with
// an in-flight marker so a reentrant request for the same key fails fast
// instead of racing the insert.
func fetch[H Extensible, V any](host H, key reflect.Type, eval func(H) (V, error)) (*V, error) {
	Bind(key, reflect.TypeFor[V]())

	ext := host.Extensions()
	if ref, ok := cachedRef[V](ext, key); ok {
		return ref, nil
	}

	ext.Set(key, inflight{})
	stored := false
	defer func() {
		// Failures, including panics inside eval, leave no trace.
		if !stored {
			ext.Delete(key)
		}
	}()

	v, err := eval(host)
	if err != nil {
		return nil, err
	}

	ext.Set(key, &v)
	stored = true

	ref, ok := cachedRef[V](ext, key)
	if !ok {
		// Unreachable: the entry was inserted above and nothing ran since.
		panic("plugin: cached entry vanished after insert")
	}
	return ref, nil
}
