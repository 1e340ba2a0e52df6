// Package typemap provides a heterogeneous container keyed by type identity.
//
// A TypeMap maps a reflect.Type to at most one value. It is a pure data
// structure: it never inspects payloads and performs no computation. The
// plugin package builds its lazy compute-or-fetch protocol on top of it.
//
// The map trusts its callers: insertion is expected to pair a key with a
// value of the matching type, and the checked recovery in Value treats a
// mismatch as a programmer error, not a recoverable condition.
package typemap
