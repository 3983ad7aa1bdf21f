package reactive

// Computed is a lazily cached derived value backed by a lazy watcher.
// Reading Value recomputes only when a dependency changed since the last
// read, and re-exposes the underlying deps to any outer watcher currently
// evaluating, so dependents of the computed value transitively subscribe to
// its inputs.
//
// Example:
//
//	total := reactive.NewComputed(scope, func() any {
//	    return cart.Get("price").(int) * cart.Get("qty").(int)
//	})
//	_ = total.Value()
type Computed struct {
	w *Watcher
}

// NewComputed creates a computed value in the given scope. The getter is
// user-authored: panics are recovered and routed to ErrorHandler.
func NewComputed(scope *Scope, getter func() any) *Computed {
	return &Computed{
		w: NewWatcher(scope, getter, nil, WatcherOptions{Lazy: true, User: true}),
	}
}

// Value returns the computed value, recomputing if dirty, and registers the
// computed value's own dependencies on the currently evaluating watcher.
func (c *Computed) Value() any {
	if !c.w.active {
		return c.w.value
	}
	if c.w.dirty {
		c.w.Evaluate()
	}
	if currentTarget() != nil {
		c.w.Depend()
	}
	return c.w.value
}

// Peek returns the cached value without recomputing or tracking.
func (c *Computed) Peek() any {
	return c.w.value
}

// Teardown releases the underlying watcher. Idempotent.
func (c *Computed) Teardown() {
	c.w.Teardown()
}
