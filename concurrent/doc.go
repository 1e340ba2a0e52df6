// Package concurrent makes a plugin host safe to share across goroutines.
//
// The core plugin package is single-threaded by contract: synchronization,
// when wanted, is the host owner's job. Host is the ready-made way to add
// it. It guards the host's extension map with a mutex and deduplicates
// concurrent first evaluations of the same key with a singleflight group,
// so the at-most-once evaluation property holds under contention while
// distinct keys still evaluate in parallel.
//
//	shared := concurrent.NewHost(req)
//	params, err := concurrent.Get(shared, QueryParams{})
//
// The surface is copy-only: there is no Ref variant, because handing out
// pointers into a store that other goroutines mutate is unsound.
//
// Constraints on plugins used through Host:
//   - Eval runs without the store lock, so it must not mutate host state
//     outside the extension map.
//   - Same-key reentrant evaluation deadlocks in the flight group and is
//     forbidden, as in the core.
package concurrent
