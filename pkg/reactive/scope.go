package reactive

import (
	"sync"
	"sync/atomic"
)

// Scope owns a set of watchers and optionally a root data Object. Disposing
// a scope tears down everything it owns, children first, so nothing keeps
// firing after the owner is gone.
//
// Scopes form a hierarchy mirroring the host's component tree: each
// component's scope is a child of its parent component's scope.
type Scope struct {
	id     uint64
	parent *Scope

	data *Object

	children   []*Scope
	childrenMu sync.Mutex

	watchers   []*Watcher
	watchersMu sync.Mutex

	cleanups   []func()
	cleanupsMu sync.Mutex

	// disposing is set for the whole teardown pass, letting owned watchers
	// skip the per-watcher scope-list removal.
	disposing atomic.Bool
	disposed  atomic.Bool
}

// NewScope creates a scope under parent. Pass nil for a root scope.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.addChild(s)
	}
	return s
}

// ID returns the scope's unique identifier.
func (s *Scope) ID() uint64 {
	return s.id
}

// Parent returns the parent scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// IsDisposed reports whether Dispose has run.
func (s *Scope) IsDisposed() bool {
	return s.disposed.Load()
}

// SetData installs obj as the scope's root data store, observing it as root
// data. Path watchers resolve against it.
func (s *Scope) SetData(obj *Object) {
	s.data = obj
	ObserveRoot(obj)
}

// Data returns the scope's root data Object, or nil.
func (s *Scope) Data() *Object {
	return s.data
}

// Watch creates a user watcher over getter and returns a teardown func.
// The callback fires with (new, old) whenever the watched value changes.
func (s *Scope) Watch(getter func() any, cb Callback, opts WatcherOptions) func() {
	opts.User = true
	w := NewWatcher(s, getter, cb, opts)
	return w.Teardown
}

// WatchPath creates a user watcher over a dot-delimited path read against
// the scope's root data, returning a teardown func. An invalid path warns
// and yields a watcher that never fires.
func (s *Scope) WatchPath(path string, cb Callback, opts WatcherOptions) func() {
	opts.User = true
	w := NewPathWatcher(s, path, cb, opts)
	return w.Teardown
}

// OnCleanup registers fn to run when the scope is disposed. If the scope is
// already disposed, fn runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if s.disposed.Load() {
		fn()
		return
	}
	s.cleanupsMu.Lock()
	s.cleanups = append(s.cleanups, fn)
	s.cleanupsMu.Unlock()
}

// Watchers returns a snapshot of the scope's live watchers.
func (s *Scope) Watchers() []*Watcher {
	s.watchersMu.Lock()
	defer s.watchersMu.Unlock()
	out := make([]*Watcher, len(s.watchers))
	copy(out, s.watchers)
	return out
}

// Children returns a snapshot of the scope's child scopes.
func (s *Scope) Children() []*Scope {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()
	out := make([]*Scope, len(s.children))
	copy(out, s.children)
	return out
}

func (s *Scope) addChild(child *Scope) {
	s.childrenMu.Lock()
	s.children = append(s.children, child)
	s.childrenMu.Unlock()
}

func (s *Scope) removeChild(child *Scope) {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// addWatcher registers w with the scope. Returns false when the scope is
// already disposed; the caller then creates the watcher inert rather than
// leaving it subscribed with no owner to tear it down.
func (s *Scope) addWatcher(w *Watcher) bool {
	if s.disposed.Load() {
		return false
	}
	s.watchersMu.Lock()
	s.watchers = append(s.watchers, w)
	s.watchersMu.Unlock()
	return true
}

func (s *Scope) removeWatcher(w *Watcher) {
	s.watchersMu.Lock()
	defer s.watchersMu.Unlock()
	for i, x := range s.watchers {
		if x == w {
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			return
		}
	}
}

// discarding reports whether the scope is mid-teardown, so watchers can skip
// removing themselves from the watcher list one by one.
func (s *Scope) discarding() bool {
	return s.disposing.Load()
}

// Dispose tears down the scope: children in reverse creation order, then
// every owned watcher, then cleanups in reverse registration order.
// Idempotent. The root data observer's root count is released.
func (s *Scope) Dispose() {
	if s.disposed.Swap(true) {
		return
	}
	s.disposing.Store(true)

	if s.parent != nil {
		s.parent.removeChild(s)
	}

	s.childrenMu.Lock()
	children := s.children
	s.children = nil
	s.childrenMu.Unlock()
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	s.watchersMu.Lock()
	watchers := s.watchers
	s.watchers = nil
	s.watchersMu.Unlock()
	for _, w := range watchers {
		w.Teardown()
	}

	s.cleanupsMu.Lock()
	cleanups := s.cleanups
	s.cleanups = nil
	s.cleanupsMu.Unlock()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	if s.data != nil && s.data.ob != nil && s.data.ob.rootCount > 0 {
		s.data.ob.rootCount--
	}
	s.data = nil
}
