package reactive

import "testing"

func TestScopeWatchReturnsTeardown(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	obj := NewObject(map[string]any{"x": 1})
	Observe(obj)

	runs := 0
	unwatch := scope.Watch(func() any { return obj.Get("x") }, func(_, _ any) {
		runs++
	}, WatcherOptions{})

	obj.Set("x", 2)
	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}

	unwatch()
	obj.Set("x", 3)
	if runs != 1 {
		t.Errorf("unwatched callback fired, runs = %d", runs)
	}
	if len(scope.Watchers()) != 0 {
		t.Errorf("torn-down watcher must leave the scope list, have %d", len(scope.Watchers()))
	}
}

func TestScopeDisposeTearsDownWatchers(t *testing.T) {
	scope := NewScope(nil)
	obj := NewObject(map[string]any{"x": 1})
	Observe(obj)

	runs := 0
	scope.Watch(func() any { return obj.Get("x") }, func(_, _ any) {
		runs++
	}, WatcherOptions{})

	scope.Dispose()
	scope.Dispose() // idempotent

	obj.Set("x", 2)
	if runs != 0 {
		t.Errorf("disposed scope's watcher fired, runs = %d", runs)
	}
	if obj.fields["x"].dep.SubscriberCount() != 0 {
		t.Error("disposed scope's watcher must leave all subscriber lists")
	}
}

func TestScopeDisposeChildrenFirst(t *testing.T) {
	root := NewScope(nil)
	child := NewScope(root)
	grandchild := NewScope(child)

	var order []string
	grandchild.OnCleanup(func() { order = append(order, "grandchild") })
	child.OnCleanup(func() { order = append(order, "child") })
	root.OnCleanup(func() { order = append(order, "root") })

	root.Dispose()

	want := []string{"grandchild", "child", "root"}
	if len(order) != 3 {
		t.Fatalf("expected 3 cleanups, got %d", len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("cleanup %d: expected %s, got %s", i, want[i], order[i])
		}
	}
	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("children must be disposed with the parent")
	}
}

func TestScopeOnCleanupAfterDisposeRunsImmediately(t *testing.T) {
	scope := NewScope(nil)
	scope.Dispose()

	ran := false
	scope.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered after dispose must run immediately")
	}
}

func TestScopeDisposeReleasesRootData(t *testing.T) {
	scope := NewScope(nil)
	root := NewObject(map[string]any{"a": 1})
	scope.SetData(root)

	if root.ob.rootCount != 1 {
		t.Fatalf("expected rootCount 1, got %d", root.ob.rootCount)
	}
	scope.Dispose()
	if root.ob.rootCount != 0 {
		t.Errorf("dispose must release the root usage, got %d", root.ob.rootCount)
	}

	// With the root usage gone, reactive key addition is allowed again.
	Set(root, "k", 1)
	if !root.Has("k") {
		t.Error("key addition must work once the scope released the root")
	}
}

func TestScopeWatchAfterDisposeIsInert(t *testing.T) {
	obj := NewObject(map[string]any{"x": 1})
	Observe(obj)

	scope := NewScope(nil)
	scope.Dispose()

	runs := 0
	w := NewWatcher(scope, func() any { return obj.Get("x") }, func(_, _ any) {
		runs++
	}, WatcherOptions{})

	if w.Active() {
		t.Error("watcher created on a disposed scope must be inert")
	}
	if w.DepCount() != 0 {
		t.Errorf("inert watcher must not subscribe, got %d deps", w.DepCount())
	}

	obj.Set("x", 2)
	if runs != 0 {
		t.Errorf("inert watcher must never fire, got %d runs", runs)
	}
}
