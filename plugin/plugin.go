package plugin

import (
	"fmt"
	"reflect"

	"github.com/jonwraymond/extend/typemap"
)

// Extensible is the capability a host implements to carry extension values.
//
// Contract:
// - Extensions must return the same map for the host's whole lifetime.
// - The map is owned by the host; entries are dropped with it.
type Extensible interface {
	// Extensions returns the host's extension storage.
	Extensions() *typemap.TypeMap
}

// Plugin computes one value of type V from a host of type H.
//
// The plugin's concrete type is the key under which the result is cached,
// so each plugin must be its own defined type. Failures are propagated to
// the caller and never cached.
//
// Eval may read and mutate host state, but the result is cached, so
// mutation should be done with care. Eval must not touch the host's entry
// for its own key; inserting and fetching it is the access layer's job.
type Plugin[H, V any] interface {
	// Eval produces the plugin's value from the host, or fails.
	Eval(host H) (V, error)
}

// OptionalPlugin is a plugin under the optional-result strategy: absence of
// a value is the only failure signal, with no diagnostic attached.
type OptionalPlugin[H, V any] interface {
	// Eval produces the plugin's value, or reports that there is none.
	Eval(host H) (V, bool)
}

// TotalPlugin is a plugin whose evaluation cannot fail. The failure path is
// absent from the signature, so callers of MustGet and MustRef have no
// failure branch to handle.
type TotalPlugin[H, V any] interface {
	// Eval produces the plugin's value from the host.
	Eval(host H) V
}

// Keyed overrides the cache key a plugin value is stored under. Wrapper
// plugins (FromOptional, FromTotal, instrumentation decorators) implement it
// to preserve the wrapped plugin's key, so wrapped and unwrapped access hit
// the same cache entry.
type Keyed interface {
	// PluginKey returns the key type to cache under.
	PluginKey() reflect.Type
}

// KeyOf returns the cache key for a plugin value: the type reported by
// PluginKey if the plugin implements Keyed, otherwise the plugin's concrete
// type.
func KeyOf(p any) reflect.Type {
	if k, ok := p.(Keyed); ok {
		return k.PluginKey()
	}
	return reflect.TypeOf(p)
}

// FromOptional lifts an optional-result plugin into the explicit-error
// strategy. Absence becomes ErrNoValue. The wrapper caches under the wrapped
// plugin's key.
func FromOptional[H, V any](p OptionalPlugin[H, V]) Plugin[H, V] {
	return optionalAdapter[H, V]{p: p}
}

type optionalAdapter[H, V any] struct {
	p OptionalPlugin[H, V]
}

func (a optionalAdapter[H, V]) Eval(host H) (V, error) {
	v, ok := a.p.Eval(host)
	if !ok {
		var zero V
		return zero, ErrNoValue
	}
	return v, nil
}

func (a optionalAdapter[H, V]) PluginKey() reflect.Type {
	return KeyOf(a.p)
}

// FromTotal lifts an infallible plugin into the explicit-error strategy.
// The returned plugin never fails. The wrapper caches under the wrapped
// plugin's key.
func FromTotal[H, V any](p TotalPlugin[H, V]) Plugin[H, V] {
	return totalAdapter[H, V]{p: p}
}

type totalAdapter[H, V any] struct {
	p TotalPlugin[H, V]
}

func (a totalAdapter[H, V]) Eval(host H) (V, error) {
	return a.p.Eval(host), nil
}

func (a totalAdapter[H, V]) PluginKey() reflect.Type {
	return KeyOf(a.p)
}

// Compile-time contract assertions for the adapters.
var (
	_ Plugin[any, int] = optionalAdapter[any, int]{}
	_ Plugin[any, int] = totalAdapter[any, int]{}
	_ Keyed            = optionalAdapter[any, int]{}
	_ Keyed            = totalAdapter[any, int]{}
)

// inflight marks a key whose first evaluation is still running. A cache hit
// on a marked key means a plugin re-requested its own key mid-evaluation.
type inflight struct{}

// cachedRef resolves a store entry to its typed boxed value.
// Returns (nil, false) on miss. Panics on reentrant evaluation or on an
// identifier/payload mismatch; both are caller defects, not recoverable
// conditions.
func cachedRef[V any](ext *typemap.TypeMap, key reflect.Type) (*V, bool) {
	raw, ok := ext.Get(key)
	if !ok {
		return nil, false
	}
	if _, pending := raw.(inflight); pending {
		panic(fmt.Sprintf("plugin: reentrant evaluation of %v on the same host", key))
	}
	ref, ok := raw.(*V)
	if !ok {
		panic(fmt.Sprintf("plugin: entry for %v holds %T, want %v", key, raw, reflect.TypeFor[*V]()))
	}
	return ref, true
}
