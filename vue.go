// Package vue provides the public API for the reactivity engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/bjyip/vue"
//
// Usage:
//
//	scope := vue.NewScope(nil)
//	data := vue.NewObject(map[string]any{"count": 0})
//	scope.SetData(data)
//
//	scope.Watch(func() any { return data.Get("count") },
//	    func(newVal, oldVal any) {
//	        fmt.Println("count:", oldVal, "->", newVal)
//	    }, vue.WatcherOptions{})
//
//	data.Set("count", 1)
package vue

import (
	"github.com/bjyip/vue/pkg/reactive"
)

// =============================================================================
// Reactive containers (re-export from pkg/reactive)
// =============================================================================

// Object is a reactive string-keyed container. Every access routes through
// Get/Set, which perform the dependency bookkeeping.
type Object = reactive.Object

// Array is a reactive sequence container whose in-place mutators notify.
type Array = reactive.Array

// Observer holds a container's container-level dep and root usage count.
type Observer = reactive.Observer

// Dep is the publisher for one observable unit.
type Dep = reactive.Dep

// Opaque marks values that must never be treated as model data.
type Opaque = reactive.Opaque

// NewObject creates an unobserved Object with the given initial entries.
func NewObject(initial map[string]any) *Object {
	return reactive.NewObject(initial)
}

// NewArray creates an unobserved Array with the given elements.
func NewArray(items ...any) *Array {
	return reactive.NewArray(items...)
}

// Observe idempotently attaches reactivity to an Object or Array.
var Observe = reactive.Observe

// ToggleObserving enables or disables creation of new observers globally.
var ToggleObserving = reactive.ToggleObserving

// =============================================================================
// Watchers, computed values and scopes
// =============================================================================

// Watcher evaluates a getter under a tracked context and re-runs when
// exactly the data it read last time changes.
type Watcher = reactive.Watcher

// WatcherOptions configures watcher evaluation (Deep, Lazy, Sync, User).
type WatcherOptions = reactive.WatcherOptions

// Callback receives (newVal, oldVal) when a watched value changes.
type Callback = reactive.Callback

// Scope owns watchers and a root data Object; disposing it tears everything
// down.
type Scope = reactive.Scope

// Computed is a lazily cached derived value.
type Computed = reactive.Computed

// NewScope creates a scope under parent (nil for a root scope).
func NewScope(parent *Scope) *Scope {
	return reactive.NewScope(parent)
}

// NewWatcher creates a watcher over a getter function.
//
// Example:
//
//	w := vue.NewWatcher(scope, func() any { return data.Get("x") },
//	    func(newVal, oldVal any) { render() }, vue.WatcherOptions{})
//	defer w.Teardown()
func NewWatcher(scope *Scope, getter func() any, cb Callback, opts WatcherOptions) *Watcher {
	return reactive.NewWatcher(scope, getter, cb, opts)
}

// NewPathWatcher creates a watcher over a dot-delimited path read against
// the scope's root data.
func NewPathWatcher(scope *Scope, path string, cb Callback, opts WatcherOptions) *Watcher {
	return reactive.NewPathWatcher(scope, path, cb, opts)
}

// NewComputed creates a lazily cached derived value in the given scope.
//
// Example:
//
//	total := vue.NewComputed(scope, func() any {
//	    return data.Get("price").(int) * data.Get("qty").(int)
//	})
//	_ = total.Value()
func NewComputed(scope *Scope, getter func() any) *Computed {
	return reactive.NewComputed(scope, getter)
}

// =============================================================================
// Mutation API
// =============================================================================

// Set adds or replaces a value reactively: new Object keys become tracked
// accessors and Array index writes notify, the two mutations plain container
// access cannot observe.
var Set = reactive.Set

// Del removes a key or index reactively.
var Del = reactive.Del

// =============================================================================
// Scheduling
// =============================================================================

// Batch groups multiple writes into a single deduplicated flush.
var Batch = reactive.Batch

// Flush drains the deferred watcher queue in ascending id order.
var Flush = reactive.Flush

// Untracked runs fn with dependency tracking suspended.
var Untracked = reactive.Untracked

// SetAsync switches the engine between immediate watcher runs (the
// default) and deferred runs drained by Flush.
func SetAsync(v bool) { reactive.Async = v }

// SetDevMode toggles development diagnostics such as circular-update
// warnings and deterministic notification order.
func SetDevMode(v bool) { reactive.DevMode = v }

// =============================================================================
// Diagnostics
// =============================================================================

// ParsePath compiles a dot-delimited path into a read function, or nil for
// an invalid expression.
var ParsePath = reactive.ParsePath

// SetLogger replaces the slog logger used for engine warnings.
var SetLogger = reactive.SetLogger

// ReadStats returns a snapshot of the engine counters.
var ReadStats = reactive.ReadStats

// StatsSnapshot is a point-in-time copy of the engine counters.
type StatsSnapshot = reactive.StatsSnapshot
