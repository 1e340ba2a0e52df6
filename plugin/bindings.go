package plugin

import (
	"fmt"
	"reflect"
	"sync"
)

// bindings records the key type -> result type association observed on first
// cached access of each key. The table is process-global, like the
// association itself: plugin types and their result types are fixed at
// compile time, not per host.
var bindings = struct {
	mu sync.Mutex
	m  map[reflect.Type]reflect.Type
}{
	m: make(map[reflect.Type]reflect.Type),
}

// Bind records the key -> result association, panicking if key was
// previously bound to a different result type. A given key type maps to
// exactly one result type; pairing it with a second one is a defect in the
// plugin definitions, caught here before it can corrupt a store entry.
//
// The cached access paths in this package call Bind themselves. Access
// layers that reach a host's store without going through them (such as the
// concurrent package) must call it before their first lookup for a key.
func Bind(key, result reflect.Type) {
	bindings.mu.Lock()
	defer bindings.mu.Unlock()

	prev, ok := bindings.m[key]
	if !ok {
		bindings.m[key] = result
		return
	}
	if prev != result {
		panic(fmt.Sprintf("plugin: key %v already bound to result type %v, cannot rebind to %v", key, prev, result))
	}
}
