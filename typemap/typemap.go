package typemap

import (
	"fmt"
	"reflect"
	"sort"
)

// TypeMap is a container holding at most one value per key type.
//
// Contract:
//   - Concurrency: NOT safe for concurrent use; callers that share a TypeMap
//     across goroutines must synchronize externally (see the concurrent package).
//   - Keys: any reflect.Type; equality of keys is type identity.
//   - Payloads: stored as-is behind an any box; the map never type-checks them.
//
// The zero value is an empty map ready for use.
type TypeMap struct {
	entries map[reflect.Type]any
}

// New creates an empty TypeMap.
func New() *TypeMap {
	return &TypeMap{entries: make(map[reflect.Type]any)}
}

// Contains reports whether an entry exists for the given key type.
func (m *TypeMap) Contains(key reflect.Type) bool {
	_, ok := m.entries[key]
	return ok
}

// Set stores value under the given key type, overwriting any prior entry.
//
// Callers are expected to pair the key with a value of the matching type;
// the map does not verify this. See Value for the recovery side.
func (m *TypeMap) Set(key reflect.Type, value any) {
	if m.entries == nil {
		m.entries = make(map[reflect.Type]any)
	}
	m.entries[key] = value
}

// Get retrieves the boxed payload for the given key type.
// Returns (nil, false) on miss.
func (m *TypeMap) Get(key reflect.Type) (any, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Delete removes the entry for the given key type. Idempotent - no-op on miss.
func (m *TypeMap) Delete(key reflect.Type) {
	delete(m.entries, key)
}

// Len returns the number of entries.
func (m *TypeMap) Len() int {
	return len(m.entries)
}

// Keys returns the key types currently present, sorted by their string
// representation for deterministic iteration.
func (m *TypeMap) Keys() []reflect.Type {
	keys := make([]reflect.Type, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Value recovers the payload stored under key as type V.
//
// Returns (zero, false) if no entry exists. If an entry exists but its
// payload is not a V, the insertion discipline was violated; that is a
// defect in the inserting code, so Value panics rather than returning
// corrupted data.
func Value[V any](m *TypeMap, key reflect.Type) (V, bool) {
	raw, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		panic(fmt.Sprintf("typemap: entry for %v holds %T, want %v", key, raw, reflect.TypeFor[V]()))
	}
	return v, true
}
