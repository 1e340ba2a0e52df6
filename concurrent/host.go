package concurrent

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/extend/plugin"
	"github.com/jonwraymond/extend/typemap"
)

// Host wraps an Extensible host for shared use. The zero value is not
// usable; construct with NewHost.
type Host[H plugin.Extensible] struct {
	mu    sync.Mutex
	group singleflight.Group
	inner H
}

// NewHost wraps inner for concurrent access. The inner host must not be
// used directly while the wrapper is in use; every access must go through
// the wrapper.
func NewHost[H plugin.Extensible](inner H) *Host[H] {
	return &Host[H]{inner: inner}
}

// Unwrap returns the inner host. Callers own the synchronization for
// anything they do with it.
func (h *Host[H]) Unwrap() H {
	return h.inner
}

// Contains reports whether a value is cached for the given key type.
func (h *Host[H]) Contains(key reflect.Type) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inner.Extensions().Contains(key)
}

// Remove deletes the cached entry for the given key type, if any.
func (h *Host[H]) Remove(key reflect.Type) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inner.Extensions().Delete(key)
}

// Get returns a copy of the plugin's value, evaluating and caching it on
// first access. Concurrent first requests for the same key share a single
// evaluation; failures are propagated to every waiter and cache nothing.
func Get[H plugin.Extensible, V any](h *Host[H], p plugin.Plugin[H, V]) (V, error) {
	key := plugin.KeyOf(p)
	plugin.Bind(key, reflect.TypeFor[V]())

	if ref, ok := lookup[H, V](h, key); ok {
		return *ref, nil
	}

	out, err, _ := h.group.Do(flightKey(key), func() (any, error) {
		// A flight that finished between our miss and this call may have
		// filled the entry already.
		if ref, ok := lookup[H, V](h, key); ok {
			return *ref, nil
		}

		// Evaluate without the store lock so distinct keys make progress
		// in parallel.
		v, err := p.Eval(h.inner)
		if err != nil {
			return nil, err
		}

		h.mu.Lock()
		h.inner.Extensions().Set(key, &v)
		h.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return out.(V), nil
}

// GetOpt is Get for the optional-result strategy.
func GetOpt[H plugin.Extensible, V any](h *Host[H], p plugin.OptionalPlugin[H, V]) (V, bool) {
	v, err := Get(h, plugin.FromOptional(p))
	if err != nil {
		var zero V
		return zero, false
	}
	return v, true
}

// Compute evaluates the plugin directly, without consulting or mutating the
// store. Every call re-evaluates.
func Compute[H plugin.Extensible, V any](h *Host[H], p plugin.Plugin[H, V]) (V, error) {
	return p.Eval(h.inner)
}

// lookup reads the cached entry under the store lock.
func lookup[H plugin.Extensible, V any](h *Host[H], key reflect.Type) (*V, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return typemap.Value[*V](h.inner.Extensions(), key)
}

// flightKey builds the singleflight key from the type's runtime identity,
// which is unique per type within a process. String alone can collide
// across packages with the same base name, and unnamed key types (pointers,
// slices) have no package path; it is kept only for debuggability.
func flightKey(key reflect.Type) string {
	return fmt.Sprintf("%s#%x", key, reflect.ValueOf(key).Pointer())
}
