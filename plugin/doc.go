// Package plugin provides lazily-evaluated, order-independent plugins for
// extensible types.
//
// A host opts in by implementing Extensible, exposing a typemap.TypeMap that
// holds its extension values. A plugin is a named type that computes one
// value from the host. The first request for a plugin's value evaluates it
// and caches the result in the host's map under the plugin's key type; every
// later request returns the cached value, regardless of request order.
//
// # Strategies
//
// Three plugin contracts cover the failure-signaling strategies:
//
//   - Plugin: Eval returns (V, error). Failures carry a caller-defined
//     error and are propagated verbatim; they are never cached, so a later
//     request retries the evaluation.
//
//   - OptionalPlugin: Eval returns (V, bool). Absence is the only failure
//     signal, for plugins whose failure is expected and uninteresting.
//
//   - TotalPlugin: Eval returns V. Evaluation cannot fail; MustGet and
//     MustRef have no failure branch at the call site.
//
// # Basic usage
//
//	type Request struct {
//	    RawQuery string
//	    exts     typemap.TypeMap
//	}
//
//	func (r *Request) Extensions() *typemap.TypeMap { return &r.exts }
//
//	// QueryParams lazily parses the query string, once per request.
//	type QueryParams struct{}
//
//	func (QueryParams) Eval(r *Request) (url.Values, error) {
//	    return url.ParseQuery(r.RawQuery)
//	}
//
//	params, err := plugin.Get(req, QueryParams{})
//
// # Keys and result types
//
// The cache key is the plugin's concrete type (or, for wrappers, whatever
// PluginKey reports), so each plugin must be its own defined type; the result
// type V may be the plugin type itself or any other type. A given key type
// must always be paired with the same result type; pairing one key with two
// result types is a defect and panics on first use.
//
// # Hazards
//
// Eval receives the host itself and may read or mutate host state outside
// the extension map. It must not read or write its own entry; a plugin that
// re-requests its own key during evaluation panics (reentrant evaluation).
//
// Nothing in this package is safe for concurrent use. Hosts shared across
// goroutines need external synchronization; the concurrent package provides
// a ready-made wrapper.
package plugin
