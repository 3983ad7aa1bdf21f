package reactive

import (
	"sync"
	"testing"
)

func TestPushPopTargetBalance(t *testing.T) {
	w1 := &Watcher{id: nextID(), depIDs: map[uint64]struct{}{}, newDepIDs: map[uint64]struct{}{}}
	w2 := &Watcher{id: nextID(), depIDs: map[uint64]struct{}{}, newDepIDs: map[uint64]struct{}{}}

	pushTarget(w1)
	if currentTarget() != w1 {
		t.Error("expected w1 as current target")
	}
	pushTarget(w2)
	if currentTarget() != w2 {
		t.Error("expected w2 after nested push")
	}
	popTarget()
	if currentTarget() != w1 {
		t.Error("expected w1 restored after pop")
	}
	popTarget()
	if currentTarget() != nil {
		t.Error("expected no target after final pop")
	}
}

func TestNestedEvaluationRestoresOuterTarget(t *testing.T) {
	obj := NewObject(map[string]any{"inner": 1, "outer": 1})
	Observe(obj)

	var inner *Watcher
	outer := NewWatcher(nil, func() any {
		// Evaluating another watcher mid-getter must not corrupt tracking.
		if inner == nil {
			inner = NewWatcher(nil, func() any { return obj.Get("inner") }, nil, WatcherOptions{})
		}
		return obj.Get("outer")
	}, nil, WatcherOptions{})

	if !obj.fields["outer"].dep.hasSub(outer) {
		t.Error("outer watcher must subscribe to outer despite nested evaluation")
	}
	if obj.fields["inner"].dep.hasSub(outer) {
		t.Error("outer watcher must not inherit the nested watcher's reads")
	}
	if !obj.fields["inner"].dep.hasSub(inner) {
		t.Error("nested watcher must subscribe to its own reads")
	}
}

func TestUntrackedSuspendsTracking(t *testing.T) {
	obj := NewObject(map[string]any{"tracked": 1, "peeked": 1})
	Observe(obj)

	runs := 0
	NewWatcher(nil, func() any {
		v := obj.Get("tracked")
		Untracked(func() {
			_ = obj.Get("peeked")
		})
		return v
	}, func(_, _ any) {
		runs++
	}, WatcherOptions{})

	obj.Set("peeked", 2)
	if runs != 0 {
		t.Errorf("untracked read must not subscribe, got %d runs", runs)
	}
	obj.Set("tracked", 2)
	if runs != 1 {
		t.Errorf("tracked read must subscribe, got %d runs", runs)
	}
}

func TestTrackingIsPerGoroutine(t *testing.T) {
	obj := NewObject(map[string]any{"x": 1})
	Observe(obj)

	done := make(chan struct{})
	NewWatcher(nil, func() any {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			// A different goroutine has no current target.
			if currentTarget() != nil {
				t.Error("tracking must not leak across goroutines")
			}
			_ = obj.Get("x")
		}()
		wg.Wait()
		close(done)
		return nil
	}, nil, WatcherOptions{})
	<-done

	if obj.fields["x"].dep.SubscriberCount() != 0 {
		t.Error("reads on an untracked goroutine must not subscribe")
	}
}
