package reactive

import "testing"

func TestSchedulerAsyncDefersUntilFlush(t *testing.T) {
	Async = true
	defer func() { Async = false }()

	obj := NewObject(map[string]any{"x": 0})
	Observe(obj)

	runs := 0
	NewWatcher(nil, func() any { return obj.Get("x") }, func(_, _ any) {
		runs++
	}, WatcherOptions{})

	obj.Set("x", 1)
	obj.Set("x", 2)
	if runs != 0 {
		t.Fatalf("deferred watcher must not run before Flush, got %d", runs)
	}

	Flush()
	if runs != 1 {
		t.Errorf("queue must deduplicate by watcher id: expected 1 run, got %d", runs)
	}
}

func TestSchedulerFlushOrderIsAscendingID(t *testing.T) {
	Async = true
	defer func() { Async = false }()

	obj := NewObject(map[string]any{"p": 0})
	Observe(obj)

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		NewWatcher(nil, func() any { return obj.Get("p") }, func(_, _ any) {
			order = append(order, i)
		}, WatcherOptions{})
	}

	obj.Set("p", 1)
	Flush()

	if len(order) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(order))
	}
	for i, want := range []int{1, 2, 3} {
		if order[i] != want {
			t.Errorf("flush position %d: expected watcher %d, got %d", i, want, order[i])
		}
	}
}

func TestSchedulerMidFlushEnqueue(t *testing.T) {
	Async = true
	defer func() { Async = false }()

	obj := NewObject(map[string]any{"a": 0, "b": 0})
	Observe(obj)

	// First watcher writes b during its run; the second watcher (higher id)
	// watches b and must still run in the same flush.
	NewWatcher(nil, func() any { return obj.Get("a") }, func(_, _ any) {
		obj.Set("b", obj.Get("a"))
	}, WatcherOptions{})

	bRuns := 0
	NewWatcher(nil, func() any { return obj.Get("b") }, func(_, _ any) {
		bRuns++
	}, WatcherOptions{})

	obj.Set("a", 1)
	Flush()

	if bRuns != 1 {
		t.Errorf("watcher enqueued mid-flush must run in the same flush, got %d", bRuns)
	}
}

func TestBatchCoalescesWrites(t *testing.T) {
	obj := NewObject(map[string]any{"first": "", "last": ""})
	Observe(obj)

	runs := 0
	NewWatcher(nil, func() any {
		return obj.Get("first").(string) + " " + obj.Get("last").(string)
	}, func(_, _ any) {
		runs++
	}, WatcherOptions{})

	Batch(func() {
		obj.Set("first", "Ada")
		obj.Set("last", "Lovelace")
	})

	if runs != 1 {
		t.Errorf("batched writes must coalesce into one run, got %d", runs)
	}
}

func TestBatchNesting(t *testing.T) {
	obj := NewObject(map[string]any{"x": 0})
	Observe(obj)

	runs := 0
	NewWatcher(nil, func() any { return obj.Get("x") }, func(_, _ any) {
		runs++
	}, WatcherOptions{})

	Batch(func() {
		obj.Set("x", 1)
		Batch(func() {
			obj.Set("x", 2)
		})
		// Inner batch close must not flush.
		if runs != 0 {
			t.Errorf("inner batch must not flush, got %d runs", runs)
		}
	})

	if runs != 1 {
		t.Errorf("outermost batch close must flush once, got %d runs", runs)
	}
}

func TestSyncModeRunsBeforeWriteReturns(t *testing.T) {
	obj := NewObject(map[string]any{"x": 0})
	Observe(obj)

	runs := 0
	NewWatcher(nil, func() any { return obj.Get("x") }, func(_, _ any) {
		runs++
	}, WatcherOptions{})

	obj.Set("x", 1)
	if runs != 1 {
		t.Errorf("non-async mode must run watchers synchronously, got %d", runs)
	}
}
