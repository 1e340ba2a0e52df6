package plugin

import "reflect"

// Func adapts an ordinary function to the Plugin contract.
//
// Every Func[H, V] value shares one concrete type, so a bare Func cannot
// serve as its own cache key: use it with the Compute bypass, or cache it
// under a caller-defined marker type with FuncFor.
type Func[H, V any] func(H) (V, error)

// Eval calls the function.
func (f Func[H, V]) Eval(host H) (V, error) { return f(host) }

// OptionalFunc adapts an ordinary function to the OptionalPlugin contract.
// The same key caveat as Func applies; see OptionalFuncFor.
type OptionalFunc[H, V any] func(H) (V, bool)

// Eval calls the function.
func (f OptionalFunc[H, V]) Eval(host H) (V, bool) { return f(host) }

// FuncFor adapts fn to a Plugin cached under the marker type K. K plays the
// role a defined plugin type plays elsewhere: it is the key, and it must
// always be paired with the same result type.
func FuncFor[K any, H, V any](fn func(H) (V, error)) Plugin[H, V] {
	return funcPlugin[H, V]{key: reflect.TypeFor[K](), fn: fn}
}

// OptionalFuncFor adapts fn to an OptionalPlugin cached under the marker
// type K.
func OptionalFuncFor[K any, H, V any](fn func(H) (V, bool)) OptionalPlugin[H, V] {
	return optionalFuncPlugin[H, V]{key: reflect.TypeFor[K](), fn: fn}
}

type funcPlugin[H, V any] struct {
	key reflect.Type
	fn  func(H) (V, error)
}

func (p funcPlugin[H, V]) Eval(host H) (V, error) { return p.fn(host) }

func (p funcPlugin[H, V]) PluginKey() reflect.Type { return p.key }

type optionalFuncPlugin[H, V any] struct {
	key reflect.Type
	fn  func(H) (V, bool)
}

func (p optionalFuncPlugin[H, V]) Eval(host H) (V, bool) { return p.fn(host) }

func (p optionalFuncPlugin[H, V]) PluginKey() reflect.Type { return p.key }

// Compile-time contract assertions.
var (
	_ Plugin[any, int]         = Func[any, int](nil)
	_ OptionalPlugin[any, int] = OptionalFunc[any, int](nil)
	_ Keyed                    = funcPlugin[any, int]{}
	_ Keyed                    = optionalFuncPlugin[any, int]{}
)
