package reactive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Integration tests for the engine as a whole: containers, watchers,
// computed values and the mutation API working together.

func TestIntegrationViewModel(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	todos := NewArray(
		NewObject(map[string]any{"title": "write tests", "done": false}),
		NewObject(map[string]any{"title": "ship", "done": false}),
	)
	data := NewObject(map[string]any{"todos": todos, "filter": "all"})
	scope.SetData(data)

	remaining := NewComputed(scope, func() any {
		n := 0
		list := data.Get("todos").(*Array)
		for i := 0; i < list.Len(); i++ {
			if !list.Get(i).(*Object).Get("done").(bool) {
				n++
			}
		}
		return n
	})

	var rendered []any
	render := NewWatcher(scope, func() any {
		return []any{data.Get("filter"), remaining.Value()}
	}, func(newVal, _ any) {
		rendered = newVal.([]any)
	}, WatcherOptions{})
	rendered = render.Value().([]any)

	if diff := cmp.Diff([]any{"all", 2}, rendered); diff != "" {
		t.Fatalf("initial render mismatch (-want +got):\n%s", diff)
	}

	// Completing a todo flows through array element -> computed -> render.
	todos.Get(0).(*Object).Set("done", true)
	if diff := cmp.Diff([]any{"all", 1}, rendered); diff != "" {
		t.Errorf("after completion (-want +got):\n%s", diff)
	}

	// Adding a todo notifies through the array's container dep.
	todos.Push(NewObject(map[string]any{"title": "relax", "done": false}))
	if diff := cmp.Diff([]any{"all", 2}, rendered); diff != "" {
		t.Errorf("after push (-want +got):\n%s", diff)
	}

	todos.Get(2).(*Object).Set("done", true)
	if diff := cmp.Diff([]any{"all", 1}, rendered); diff != "" {
		t.Errorf("pushed element must be reactive (-want +got):\n%s", diff)
	}
}

func TestIntegrationDiamond(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	obj := NewObject(map[string]any{"a": 1})
	Observe(obj)

	double := NewComputed(scope, func() any { return obj.Get("a").(int) * 2 })
	triple := NewComputed(scope, func() any { return obj.Get("a").(int) * 3 })

	runs := 0
	var sum int
	NewWatcher(scope, func() any {
		return double.Value().(int) + triple.Value().(int)
	}, func(newVal, _ any) {
		runs++
		sum = newVal.(int)
	}, WatcherOptions{})

	obj.Set("a", 2)
	if runs != 1 {
		t.Errorf("diamond update must run the watcher once, got %d", runs)
	}
	if sum != 10 {
		t.Errorf("expected 10, got %d", sum)
	}
}

func TestIntegrationWriteDuringEvaluation(t *testing.T) {
	// A write inside one watcher's getter synchronously notifying another
	// watcher mid-evaluation must leave both consistent: generation
	// buffers are private and the target stack is strictly balanced.
	obj := NewObject(map[string]any{"src": 0, "mirror": 0, "out": 0})
	Observe(obj)

	mirrorRuns := 0
	NewWatcher(nil, func() any { return obj.Get("mirror") }, func(_, _ any) {
		mirrorRuns++
	}, WatcherOptions{Sync: true})

	NewWatcher(nil, func() any {
		v := obj.Get("src")
		obj.Set("mirror", v) // re-entrant notify during evaluation
		return v
	}, nil, WatcherOptions{})

	obj.Set("src", 5)

	if mirrorRuns != 1 {
		t.Errorf("expected mirror watcher to run once, got %d", mirrorRuns)
	}
	if currentTarget() != nil {
		t.Error("target stack must be balanced after re-entrant evaluation")
	}
	if obj.Get("mirror") != 5 {
		t.Errorf("expected mirror 5, got %v", obj.Get("mirror"))
	}
}

func TestIntegrationStatsAdvance(t *testing.T) {
	before := ReadStats()

	obj := NewObject(map[string]any{"x": 0})
	Observe(obj)
	w := NewWatcher(nil, func() any { return obj.Get("x") }, nil, WatcherOptions{})
	obj.Set("x", 1)
	w.Teardown()

	after := ReadStats()
	if after.WatcherRuns <= before.WatcherRuns {
		t.Error("watcher run counter must advance")
	}
	if after.Notifies <= before.Notifies {
		t.Error("notify counter must advance")
	}
	if after.Teardowns <= before.Teardowns {
		t.Error("teardown counter must advance")
	}
}
