package reactive

import "testing"

func TestDepDependRecordsCurrentTarget(t *testing.T) {
	d := newDep()
	w := NewWatcher(nil, func() any {
		d.Depend()
		return nil
	}, nil, WatcherOptions{})

	if !d.hasSub(w) {
		t.Error("watcher should be subscribed after reading the dep")
	}
	if w.DepCount() != 1 {
		t.Errorf("expected 1 dep, got %d", w.DepCount())
	}
}

func TestDepDependOutsideEvaluationIsNoop(t *testing.T) {
	d := newDep()
	d.Depend()
	if n := d.SubscriberCount(); n != 0 {
		t.Errorf("expected 0 subscribers, got %d", n)
	}
}

func TestDepNoDuplicateSubscriptionAcrossRuns(t *testing.T) {
	obj := NewObject(map[string]any{"x": 1})
	Observe(obj)

	w := NewWatcher(nil, func() any { return obj.Get("x") }, nil, WatcherOptions{})

	// Re-evaluating twice with no intervening writes must leave every
	// subscriber list unchanged.
	w.run()
	w.run()

	f := obj.fields["x"]
	if n := f.dep.SubscriberCount(); n != 1 {
		t.Errorf("expected exactly 1 subscription after repeated evaluation, got %d", n)
	}
}

func TestDepNotifyOrderIsCreationOrder(t *testing.T) {
	obj := NewObject(map[string]any{"p": 0})
	Observe(obj)

	var order []string
	mk := func(name string) *Watcher {
		return NewWatcher(nil, func() any { return obj.Get("p") }, func(_, _ any) {
			order = append(order, name)
		}, WatcherOptions{})
	}

	c1 := mk("C1")
	c2 := mk("C2")
	c3 := mk("C3")

	// Force a subscription order that differs from creation order.
	f := obj.fields["p"]
	f.dep.removeSub(c1)
	f.dep.removeSub(c2)
	f.dep.removeSub(c3)
	f.dep.addSub(c3)
	f.dep.addSub(c1)
	f.dep.addSub(c2)

	obj.Set("p", 7)

	want := []string{"C1", "C2", "C3"}
	if len(order) != 3 {
		t.Fatalf("expected 3 callbacks, got %d", len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("callback %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestDepNotifySnapshotAllowsTeardownDuringNotify(t *testing.T) {
	obj := NewObject(map[string]any{"p": 0})
	Observe(obj)

	var second *Watcher
	fired := 0

	// The first watcher tears down the second mid-notification, mutating
	// the subscriber list while Notify iterates. The snapshot makes that
	// safe, and the torn-down watcher must not run.
	NewWatcher(nil, func() any { return obj.Get("p") }, func(_, _ any) {
		second.Teardown()
	}, WatcherOptions{})
	second = NewWatcher(nil, func() any { return obj.Get("p") }, func(_, _ any) {
		fired++
	}, WatcherOptions{})

	obj.Set("p", 1)
	obj.Set("p", 2)
	if fired != 0 {
		t.Errorf("torn-down watcher must not fire, got %d", fired)
	}
}
