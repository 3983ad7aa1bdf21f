// Package reactive implements the fine-grained dependency-tracking engine:
// reactive containers whose reads are recorded automatically, watchers that
// re-run when exactly the data they read last time changes, and the explicit
// mutation API for structural changes the containers cannot intercept.
//
// The core pieces:
//
//   - Dep: a publisher for one observable unit (a property or a container).
//   - Object and Array: explicit reactive containers. Every member access
//     routes through Get/Set, which perform the depend/notify bookkeeping.
//   - Observer: attached at most once per container; walks the container's
//     fields and installs the reactive read/write path.
//   - Watcher: evaluates a getter under a tracked context and reconciles its
//     subscription set after every run, so its live subscriptions exactly
//     mirror the last read-set.
//   - Set and Del: explicit operations for adding and removing keys, and for
//     index writes on arrays, which plain container access cannot observe.
//
// Evaluation is synchronous, cooperative and re-entrant. Tracking state is
// kept per goroutine; there is no cross-goroutine sharing of the graph.
package reactive
