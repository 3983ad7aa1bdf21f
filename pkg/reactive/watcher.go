package reactive

import "fmt"

// WatcherOptions configures a watcher's evaluation behavior.
type WatcherOptions struct {
	// Deep forces an exhaustive traversal of the evaluated value after every
	// run, so the watcher subscribes to every reachable field.
	Deep bool

	// Lazy defers the first evaluation until Evaluate is called, and turns
	// notifications into a dirty mark instead of a re-run. Computed values
	// are lazy watchers.
	Lazy bool

	// Sync re-evaluates immediately inside Notify instead of going through
	// the scheduler.
	Sync bool

	// User marks a watcher whose getter and callback are user-authored.
	// Their panics are recovered and routed to ErrorHandler; non-user
	// (render) watcher getter panics propagate.
	User bool
}

// Callback receives the watcher's new and old value after a run that
// observed a change.
type Callback func(newVal, oldVal any)

// Watcher evaluates a getter under a tracked context, records exactly the
// deps read during that evaluation, and reacts when any of them notifies.
// After every completed evaluation its live subscriptions equal precisely
// the set of deps read during that pass.
type Watcher struct {
	id    uint64
	scope *Scope

	getter     func() any
	cb         Callback
	expression string

	deep bool
	lazy bool
	sync bool
	user bool

	active bool
	dirty  bool

	value any

	// Generation buffers. deps/depIDs hold the previous evaluation's
	// subscriptions; newDeps/newDepIDs accumulate the current one. After
	// reconciliation the buffers swap and the accumulators are cleared.
	deps     []*Dep
	newDeps  []*Dep
	depIDs   map[uint64]struct{}
	newDepIDs map[uint64]struct{}
}

// NewWatcher creates a watcher over a getter function, registers it with the
// owning scope, and evaluates it immediately unless lazy. scope may be nil
// for a free-standing watcher; cb may be nil for a pure tracking watcher
// (a render pass). A watcher created on an already-disposed scope is inert:
// it never evaluates, subscribes or fires.
func NewWatcher(scope *Scope, getter func() any, cb Callback, opts WatcherOptions) *Watcher {
	w := newWatcher(scope, cb, opts)
	w.getter = getter
	w.expression = "func()"
	if !w.lazy && w.active {
		w.value = w.get()
	}
	return w
}

// NewPathWatcher creates a watcher over a dot-delimited path read against
// the scope's root data. An unresolvable path degrades to a no-op getter
// with a warning, never a failure.
func NewPathWatcher(scope *Scope, path string, cb Callback, opts WatcherOptions) *Watcher {
	w := newWatcher(scope, cb, opts)
	w.expression = path
	read := ParsePath(path)
	if read == nil {
		read = func(any) any { return nil }
		warn("failed watching path %q: only dot-delimited paths are supported; use a getter function instead", path)
	}
	w.getter = func() any {
		if w.scope == nil {
			return nil
		}
		return read(w.scope.Data())
	}
	if !w.lazy && w.active {
		w.value = w.get()
	}
	return w
}

func newWatcher(scope *Scope, cb Callback, opts WatcherOptions) *Watcher {
	w := &Watcher{
		id:        nextID(),
		scope:     scope,
		cb:        cb,
		deep:      opts.Deep,
		lazy:      opts.Lazy,
		sync:      opts.Sync,
		user:      opts.User,
		active:    true,
		dirty:     opts.Lazy,
		depIDs:    make(map[uint64]struct{}),
		newDepIDs: make(map[uint64]struct{}),
	}
	if scope != nil && !scope.addWatcher(w) {
		w.active = false
	}
	return w
}

// ID returns the watcher's unique creation-ordered id.
func (w *Watcher) ID() uint64 {
	return w.id
}

// Active reports whether the watcher has not been torn down.
func (w *Watcher) Active() bool {
	return w.active
}

// Value returns the cached value from the last evaluation. No tracking.
func (w *Watcher) Value() any {
	return w.value
}

// Expression returns the path or getter description, for diagnostics.
func (w *Watcher) Expression() string {
	return w.expression
}

// DepCount returns the number of live subscriptions.
func (w *Watcher) DepCount() int {
	return len(w.deps)
}

// get evaluates the getter with this watcher installed as the current
// target, then reconciles subscriptions. The target push/pop is balanced on
// every exit path, including panics from a rethrown render getter.
func (w *Watcher) get() any {
	pushTarget(w)
	defer func() {
		popTarget()
		w.cleanupDeps()
	}()

	var value any
	if w.user {
		func() {
			defer func() {
				if r := recover(); r != nil {
					handleError(recoveredError(r), w.scope, fmt.Sprintf("getter for watcher %q", w.expression))
				}
			}()
			value = w.getter()
		}()
	} else {
		// A broken render getter must not be silently masked.
		value = w.getter()
	}

	if w.deep {
		traverse(value)
	}

	stats.watcherRuns.Add(1)
	devWatcherRun(w.id)
	if Debug.LogWatcherRuns {
		debugf("watcher %d (%s) ran", w.id, w.expression)
	}
	return value
}

// AddDep records a dep read during the current evaluation. The dep is only
// subscribed (addSub) if it was not already a subscription from the previous
// generation, so persisting deps are not re-registered every run.
func (w *Watcher) AddDep(d *Dep) {
	id := d.id
	if _, ok := w.newDepIDs[id]; ok {
		return
	}
	w.newDepIDs[id] = struct{}{}
	w.newDeps = append(w.newDeps, d)
	if _, ok := w.depIDs[id]; !ok {
		d.addSub(w)
	}
}

// cleanupDeps unsubscribes from every dep present last generation but absent
// this one, then promotes the current generation, clearing the accumulation
// buffers for reuse.
func (w *Watcher) cleanupDeps() {
	for _, d := range w.deps {
		if _, ok := w.newDepIDs[d.id]; !ok {
			d.removeSub(w)
		}
	}

	w.depIDs, w.newDepIDs = w.newDepIDs, w.depIDs
	clear(w.newDepIDs)
	w.deps, w.newDeps = w.newDeps, w.deps[:0]
}

// Update reacts to a dep notification: lazy watchers just go dirty, sync
// watchers re-run immediately, everything else is handed to the scheduler
// for deduplicated, id-ordered deferred execution.
func (w *Watcher) Update() {
	switch {
	case w.lazy:
		w.dirty = true
	case w.sync:
		w.run()
	default:
		enqueueWatcher(w)
	}
}

// run re-evaluates and invokes the callback when the value changed, when the
// value is a container (identity can be stable while contents mutate), or
// in deep mode. User callback panics are recovered and routed to
// ErrorHandler rather than propagated.
func (w *Watcher) run() {
	if !w.active {
		return
	}
	value := w.get()
	if sameValue(value, w.value) && !isContainer(value) && !w.deep {
		return
	}
	old := w.value
	w.value = value
	if w.cb == nil {
		return
	}
	if w.user {
		func() {
			defer func() {
				if r := recover(); r != nil {
					handleError(recoveredError(r), w.scope, fmt.Sprintf("callback for watcher %q", w.expression))
				}
			}()
			w.cb(value, old)
		}()
		return
	}
	w.cb(value, old)
}

// Evaluate forces evaluation of a lazy watcher, caching the value and
// clearing the dirty flag. Called when a computed value is read.
func (w *Watcher) Evaluate() {
	w.value = w.get()
	w.dirty = false
}

// Dirty reports whether a lazy watcher needs re-evaluation.
func (w *Watcher) Dirty() bool {
	return w.dirty
}

// Depend re-exposes every dep this watcher holds to the currently active
// outer watcher, so reading a computed value transitively subscribes the
// reader to the computed value's own underlying data.
func (w *Watcher) Depend() {
	for _, d := range w.deps {
		d.Depend()
	}
}

// Teardown unsubscribes from every held dep and removes the watcher from
// its owning scope's list (skipped when the scope is being discarded
// wholesale). Idempotent; after teardown the watcher never fires again.
func (w *Watcher) Teardown() {
	if !w.active {
		return
	}
	if w.scope != nil && !w.scope.discarding() {
		w.scope.removeWatcher(w)
	}
	for _, d := range w.deps {
		d.removeSub(w)
	}
	w.deps = nil
	w.newDeps = nil
	w.active = false
	stats.teardowns.Add(1)
}
