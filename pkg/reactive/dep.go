package reactive

import (
	"sort"
	"sync"
)

// Dep is a publisher representing one observable unit: a single container
// field, or a container as a whole. Watchers subscribe to it during tracked
// evaluation and are notified when the unit changes.
type Dep struct {
	id uint64

	// subs are the watchers subscribed to this dep, in subscription order.
	// A watcher appears at most once; AddDep on the watcher side guarantees
	// no duplicate AddSub calls.
	subs []*Watcher

	mu sync.Mutex
}

// newDep creates a dep with a fresh id.
func newDep() *Dep {
	return &Dep{id: nextID()}
}

// ID returns the unique identifier for this dep.
func (d *Dep) ID() uint64 {
	return d.id
}

// addSub adds a watcher to this dep's subscribers.
func (d *Dep) addSub(w *Watcher) {
	d.mu.Lock()
	d.subs = append(d.subs, w)
	d.mu.Unlock()
}

// removeSub removes a watcher from this dep's subscribers by identity.
func (d *Dep) removeSub(w *Watcher) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, s := range d.subs {
		if s == w {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			return
		}
	}
}

// Depend records this dep on the currently evaluating watcher, if any.
// The watcher decides whether to also subscribe (it skips deps that
// persisted from its previous evaluation).
func (d *Dep) Depend() {
	if target := currentTarget(); target != nil {
		target.AddDep(d)
	}
}

// SubscriberCount returns the number of watchers currently subscribed.
func (d *Dep) SubscriberCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// hasSub reports whether the watcher is currently subscribed.
func (d *Dep) hasSub(w *Watcher) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.subs {
		if s == w {
			return true
		}
	}
	return false
}

// Notify invokes Update on every subscriber. The subscriber list is
// snapshotted first so subscribing or unsubscribing during notification is
// safe. In synchronous (non-batched) mode the snapshot is sorted by
// ascending watcher id to restore deterministic creation-order firing; in
// batched mode ordering is the scheduler's job.
func (d *Dep) Notify() {
	d.mu.Lock()
	subs := make([]*Watcher, len(d.subs))
	copy(subs, d.subs)
	d.mu.Unlock()

	stats.notifies.Add(1)
	devNotify(d.id)

	if !Async {
		sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })
	}
	for _, w := range subs {
		w.Update()
	}
}
