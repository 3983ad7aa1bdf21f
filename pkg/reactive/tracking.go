package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for a goroutine. Each goroutine
// has its own context, so concurrent evaluation on separate goroutines never
// corrupts another goroutine's tracking.
type trackingContext struct {
	// target is the watcher currently being evaluated.
	// nil means no tracking (reads don't create subscriptions).
	target *Watcher

	// stack holds the targets saved by nested pushTarget calls.
	// The stack, not the single slot, is authoritative: evaluation of one
	// watcher may itself trigger evaluation of another.
	stack []*Watcher

	// batch tracks nested Batch calls on this goroutine.
	batch batchState
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine,
// parsed from the runtime stack header ("goroutine <id> ...").
// This is an implementation detail and must not leak outside the package.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating one if needed.
func getTrackingContext() *trackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}

	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// currentTarget returns the watcher currently being evaluated on this
// goroutine, or nil if no tracking is active.
func currentTarget() *Watcher {
	return getTrackingContext().target
}

// pushTarget saves the current target and installs w as the new one.
// Passing nil explicitly suspends tracking for the pushed span.
// Every pushTarget must be balanced by popTarget on all exit paths,
// including panics; callers defer the pop.
func pushTarget(w *Watcher) {
	ctx := getTrackingContext()
	ctx.stack = append(ctx.stack, ctx.target)
	ctx.target = w
}

// popTarget restores the target saved by the matching pushTarget.
func popTarget() {
	ctx := getTrackingContext()
	n := len(ctx.stack)
	if n == 0 {
		// Unbalanced pop is a programming error in this package.
		ctx.target = nil
		return
	}
	ctx.target = ctx.stack[n-1]
	ctx.stack = ctx.stack[:n-1]
}

// Untracked runs fn with tracking suspended: container reads inside fn do
// not subscribe the currently evaluating watcher.
//
// Example:
//
//	reactive.Untracked(func() {
//	    // Reading obj here won't subscribe the current watcher.
//	    v := obj.Get("count")
//	    _ = v
//	})
func Untracked(fn func()) {
	pushTarget(nil)
	defer popTarget()
	fn()
}
