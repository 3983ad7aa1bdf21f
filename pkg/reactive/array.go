package reactive

import "sort"

// Array is a reactive sequence container. The in-place mutators — Push, Pop,
// Shift, Unshift, Splice, Sort, Reverse — perform the real mutation, observe
// any freshly inserted elements, and then notify the array's container dep.
//
// Get and Set deliberately do neither: index-level reads are compensated for
// by the owning field's getter (which registers every element container's
// dep), and a direct index write is the one mutation the engine does not
// observe. Use the package-level Set to replace an element observably.
type Array struct {
	ob    *Observer
	items []any
}

// NewArray creates an unobserved Array with the given elements.
func NewArray(items ...any) *Array {
	a := &Array{items: make([]any, len(items))}
	copy(a.items, items)
	return a
}

// Len returns the number of elements. No tracking.
func (a *Array) Len() int {
	return len(a.items)
}

// Get returns the element at index i, or nil when out of bounds.
// Index reads are not tracked; see the type comment.
func (a *Array) Get(i int) any {
	if i < 0 || i >= len(a.items) {
		return nil
	}
	return a.items[i]
}

// Set replaces the element at index i without observing the new value and
// without notifying — the documented interception gap. Out-of-bounds writes
// are dropped. Use the package-level Set for an observable replacement.
func (a *Array) Set(i int, value any) {
	if i < 0 || i >= len(a.items) {
		return
	}
	a.items[i] = value
}

// Values returns a copy of the underlying elements. No tracking.
func (a *Array) Values() []any {
	out := make([]any, len(a.items))
	copy(out, a.items)
	return out
}

// Push appends elements to the end.
func (a *Array) Push(items ...any) {
	a.items = append(a.items, items...)
	a.mutated(items)
}

// Pop removes and returns the last element, or nil when empty.
func (a *Array) Pop() any {
	n := len(a.items)
	if n == 0 {
		return nil
	}
	v := a.items[n-1]
	a.items[n-1] = nil
	a.items = a.items[:n-1]
	a.mutated(nil)
	return v
}

// Shift removes and returns the first element, or nil when empty.
func (a *Array) Shift() any {
	if len(a.items) == 0 {
		return nil
	}
	v := a.items[0]
	a.items = append(a.items[:0], a.items[1:]...)
	a.mutated(nil)
	return v
}

// Unshift prepends elements to the front.
func (a *Array) Unshift(items ...any) {
	a.items = append(append(make([]any, 0, len(items)+len(a.items)), items...), a.items...)
	a.mutated(items)
}

// Splice removes deleteCount elements starting at start, inserts items in
// their place, and returns the removed elements. start is clamped to the
// valid range; a negative start counts from the end.
func (a *Array) Splice(start, deleteCount int, items ...any) []any {
	n := len(a.items)
	if start < 0 {
		start += n
	}
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > n-start {
		deleteCount = n - start
	}

	removed := make([]any, deleteCount)
	copy(removed, a.items[start:start+deleteCount])

	rest := make([]any, n-start-deleteCount)
	copy(rest, a.items[start+deleteCount:])
	a.items = append(append(a.items[:start], items...), rest...)

	a.mutated(items)
	return removed
}

// Sort sorts the elements in place with the given less function.
func (a *Array) Sort(less func(a, b any) bool) {
	sort.SliceStable(a.items, func(i, j int) bool { return less(a.items[i], a.items[j]) })
	a.mutated(nil)
}

// Reverse reverses the elements in place.
func (a *Array) Reverse() {
	for i, j := 0, len(a.items)-1; i < j; i, j = i+1, j-1 {
		a.items[i], a.items[j] = a.items[j], a.items[i]
	}
	a.mutated(nil)
}

// mutated observes freshly inserted elements and notifies the container dep.
// Unobserved arrays skip both: observation starts at attach time.
func (a *Array) mutated(inserted []any) {
	if a.ob == nil {
		return
	}
	for _, item := range inserted {
		observe(item)
	}
	a.ob.dep.Notify()
}

// dependArray registers the container dep of every element (and sub-element)
// that is itself an observed container on the current watcher. Necessary
// because index-level reads cannot be separately intercepted.
func dependArray(a *Array) {
	for _, item := range a.items {
		switch v := item.(type) {
		case *Array:
			if v.ob != nil {
				v.ob.dep.Depend()
			}
			dependArray(v)
		case *Object:
			if v.ob != nil {
				v.ob.dep.Depend()
			}
		}
	}
}
