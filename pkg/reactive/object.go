package reactive

import "math"

// field is one key of an Object. A field is reactive once the Observer walk
// (or the explicit Set mutation API) has given it a dep; until then it is a
// plain slot whose reads and writes track and notify nothing.
type field struct {
	// dep publishes changes to this field. nil for plain fields.
	dep *Dep

	// value is the stored value, unused when a custom getter is installed.
	value any

	// get/set are a preserved custom accessor pair. The reactive read/write
	// path delegates through them instead of discarding them.
	get func() any
	set func(any)

	// childOb observes the field's current value when it is a container.
	// Re-derived after every successful write.
	childOb *Observer

	// shallow suppresses child observation for this field.
	shallow bool
}

// Object is a reactive string-keyed container. Reading a key during a
// tracked evaluation subscribes the evaluating watcher to that key; writing
// a key notifies its subscribers.
//
// Keys present when the Object is observed become reactive. A key added
// later through plain Set is deliberately NOT observable; use the package
// level Set to add a key reactively.
type Object struct {
	ob     *Observer
	fields map[string]*field
	order  []string
}

// NewObject creates an unobserved Object with the given initial entries.
// Keys are installed in sorted order so observation and traversal are
// deterministic. Pass nil for an empty object.
func NewObject(initial map[string]any) *Object {
	o := &Object{fields: make(map[string]*field, len(initial))}
	for _, k := range sortedKeys(initial) {
		o.fields[k] = &field{value: initial[k]}
		o.order = append(o.order, k)
	}
	return o
}

// Has reports whether key is an own key of the object. No tracking.
func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Keys returns the object's own keys in definition order. No tracking.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.order))
	copy(keys, o.order)
	return keys
}

// Len returns the number of own keys. No tracking.
func (o *Object) Len() int {
	return len(o.fields)
}

// Get returns the value stored at key, delegating through a preserved custom
// getter if one exists. If the field is reactive and a watcher is currently
// evaluating, the watcher is subscribed to the field's dep; if the value is
// an observed container, also to the container's own dep; and if the value
// is an array, recursively to the dep of every element that is itself an
// observed container, since index-level reads cannot be separately tracked.
//
// Reading an absent key returns nil.
func (o *Object) Get(key string) any {
	f := o.fields[key]
	if f == nil {
		return nil
	}
	value := f.read()
	if f.dep != nil && currentTarget() != nil {
		f.dep.Depend()
		if f.childOb != nil {
			f.childOb.dep.Depend()
			if arr, ok := value.(*Array); ok {
				dependArray(arr)
			}
		}
	}
	return value
}

// Set writes value at key.
//
// For a reactive field: the write is skipped when the new value is identical
// to the current one (NaN counting as equal to itself for this comparison
// only); otherwise the value is stored through the preserved custom setter
// if present, the new value is re-observed unless the field is shallow, and
// the field's dep notifies.
//
// For a plain field, or a key the object does not have yet, nothing is
// observed and nothing notifies; the write still goes through a preserved
// custom setter if one exists. Adding a key reactively requires the
// package-level Set.
func (o *Object) Set(key string, value any) {
	f := o.fields[key]
	if f == nil {
		o.fields[key] = &field{value: value}
		o.order = append(o.order, key)
		return
	}
	if f.dep == nil {
		// Not yet reactive: no observation, no notification. The write still
		// delegates through a preserved custom accessor, and a getter without
		// a setter stays read-only.
		if f.get != nil && f.set == nil {
			return
		}
		f.write(value)
		return
	}
	old := f.read()
	if sameValue(old, value) {
		return
	}
	// A custom getter without a setter makes the field read-only.
	if f.get != nil && f.set == nil {
		return
	}
	f.write(value)
	if !f.shallow {
		f.childOb = observe(value)
	}
	f.dep.Notify()
}

// DefineAccessor installs a custom accessor pair for key. get must be
// non-nil; set may be nil for a read-only accessor. If the object is already
// observed the accessor becomes reactive immediately, with the reactive path
// delegating through it.
func (o *Object) DefineAccessor(key string, get func() any, set func(any)) {
	if get == nil {
		warn("DefineAccessor(%q): nil getter", key)
		return
	}
	f := o.fields[key]
	if f == nil {
		f = &field{}
		o.fields[key] = f
		o.order = append(o.order, key)
	}
	f.get = get
	f.set = set
	f.value = nil
	if o.ob != nil {
		defineReactive(o, key, false)
	}
}

// delete removes key. Returns false if the key was absent.
func (o *Object) delete(key string) bool {
	if _, ok := o.fields[key]; !ok {
		return false
	}
	delete(o.fields, key)
	for i, k := range o.order {
		if k == key {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true
}

// read computes the field's current value.
func (f *field) read() any {
	if f.get != nil {
		return f.get()
	}
	return f.value
}

// write stores a new value through the preserved setter if present.
func (f *field) write(value any) {
	if f.set != nil {
		f.set(value)
		return
	}
	f.value = value
}

// sameValue reports identity equality between two stored values, with one
// deviation: NaN is equal to itself, so writing NaN over NaN is a skip, not
// a change. Containers compare by pointer; values of non-comparable types
// always count as changed.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		if !ok {
			return false
		}
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	}
	if !isComparable(a) || !isComparable(b) {
		return false
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	return 0, false
}

// isComparable reports whether == is safe for the dynamic type of v.
func isComparable(v any) bool {
	switch v.(type) {
	case *Object, *Array:
		return true
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return true
	}
	return reflectComparable(v)
}
