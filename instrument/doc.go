// Package instrument adds OpenTelemetry instrumentation to plugin evaluation.
//
// The core packages are deliberately silent: no logging, no metrics. Evals
// wraps a plugin so each evaluation is counted, timed, and traced against
// caller-supplied providers (the global otel providers by default). The
// wrapper preserves the plugin's cache key, so instrumented and plain access
// share one cache entry.
//
// Because evaluation runs at most once per (host, key), the evaluation
// counter is a direct cache-miss counter. Hits are not observed; the store
// itself carries no instrumentation.
package instrument
