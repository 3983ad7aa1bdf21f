package reactive

import "sync/atomic"

// Opaque marks values that must never be treated as model data. Observe
// skips them even when they are stored inside reactive containers.
type Opaque interface {
	OpaqueValue()
}

// observing is the global observation toggle. When disabled, Observe and the
// recursive child observation of writes become no-ops.
var observing atomic.Bool

func init() {
	observing.Store(true)
}

// ToggleObserving enables or disables creation of new observers globally.
// Existing observers keep working; the toggle only gates attachment.
func ToggleObserving(on bool) {
	observing.Store(on)
}

// Observer is attached at most once per container. It holds the container's
// own dep — the "container as a whole changed" publisher fired by array
// mutation and reactive key addition/removal — and a counter of scopes using
// the container as their root data store.
type Observer struct {
	// value is the observed container (*Object or *Array).
	value any

	// dep publishes container-level changes.
	dep *Dep

	// rootCount counts scopes holding this container as root data.
	// Root-tracked containers reject runtime reactive key addition.
	rootCount int
}

// Dep returns the container-level dep.
func (ob *Observer) Dep() *Dep {
	return ob.dep
}

// Observe idempotently attaches an Observer to value and returns it.
// Returns nil when value is not a reactive container, when observation is
// globally disabled, or when value is marked Opaque.
//
// For an Object, every current own key becomes reactive and container-typed
// values are attached recursively. For an Array, every element is attached;
// the array's mutators handle elements inserted later.
func Observe(value any) *Observer {
	return observe(value)
}

// ObserveRoot attaches an Observer and marks the container as a scope's root
// data store.
func ObserveRoot(value any) *Observer {
	ob := observe(value)
	if ob != nil {
		ob.rootCount++
	}
	return ob
}

func observe(value any) *Observer {
	if _, ok := value.(Opaque); ok {
		return nil
	}
	switch v := value.(type) {
	case *Object:
		if v.ob != nil {
			return v.ob
		}
		if !observing.Load() {
			return nil
		}
		ob := &Observer{value: v, dep: newDep()}
		v.ob = ob
		ob.walk(v)
		return ob
	case *Array:
		if v.ob != nil {
			return v.ob
		}
		if !observing.Load() {
			return nil
		}
		ob := &Observer{value: v, dep: newDep()}
		v.ob = ob
		ob.observeElements(v)
		return ob
	}
	return nil
}

// walk installs the reactive read/write path for every current own key.
func (ob *Observer) walk(o *Object) {
	for _, key := range o.order {
		defineReactive(o, key, false)
	}
}

// observeElements recursively attaches observers to array elements.
func (ob *Observer) observeElements(a *Array) {
	for _, item := range a.items {
		observe(item)
	}
}

// defineReactive converts one Object field into a tracked accessor: it gives
// the field its own dep and observes the field's current value. A field
// that already has a dep keeps it. Preserved custom accessors stay in place;
// the reactive path delegates through them.
func defineReactive(o *Object, key string, shallow bool) *Dep {
	f := o.fields[key]
	if f == nil {
		f = &field{}
		o.fields[key] = f
		o.order = append(o.order, key)
	}
	if f.dep == nil {
		f.dep = newDep()
	}
	f.shallow = shallow
	if !shallow {
		// A getter-only accessor is not invoked at observe time; its value
		// is only observed after a successful write re-derives childOb.
		if f.get != nil && f.set == nil {
			f.childOb = nil
		} else {
			f.childOb = observe(f.read())
		}
	}
	return f.dep
}
