package reactive

// Set adds or replaces a value on a reactive container through the one code
// path the containers cannot observe on their own: new Object keys and Array
// index writes.
//
// For an Array with an int key, the array grows as needed and the element is
// replaced through Splice, so the new value is observed and the array's
// watchers notify. For an existing Object key, this is a plain accessor
// write (the field already notifies). For a new key on an observed Object,
// a reactive field is installed and the object's container dep notifies; on
// an unobserved Object the key is plain-assigned with no notification.
//
// Set warns and no-ops (never panics) on nil or non-container targets and on
// root data objects.
func Set(target any, key any, value any) any {
	if target == nil {
		warn("cannot set reactive property on nil target (key %v)", key)
		return value
	}
	switch t := target.(type) {
	case *Array:
		idx, ok := key.(int)
		if !ok || idx < 0 {
			warn("invalid array index %v in Set", key)
			return value
		}
		for t.Len() <= idx {
			t.items = append(t.items, nil)
		}
		t.Splice(idx, 1, value)
		return value
	case *Object:
		k, ok := key.(string)
		if !ok {
			warn("invalid object key %v in Set", key)
			return value
		}
		if t.Has(k) {
			t.Set(k, value)
			return value
		}
		ob := t.ob
		if ob != nil && ob.rootCount > 0 {
			warn("avoid adding reactive properties to a root data object at runtime; declare key %q up front", k)
			return value
		}
		if ob == nil {
			t.Set(k, value)
			return value
		}
		t.Set(k, value) // plain store for the new key
		defineReactive(t, k, false)
		ob.dep.Notify()
		return value
	}
	warn("cannot set reactive property on non-container target %T (key %v)", target, key)
	return value
}

// Del removes a key or index from a reactive container and notifies the
// container's watchers. Array indices delegate to Splice; Object keys are
// deleted and the object's container dep notifies if it is observed.
// Warns and no-ops on nil, non-container or root data targets.
func Del(target any, key any) {
	if target == nil {
		warn("cannot delete reactive property on nil target (key %v)", key)
		return
	}
	switch t := target.(type) {
	case *Array:
		idx, ok := key.(int)
		if !ok || idx < 0 || idx >= t.Len() {
			warn("invalid array index %v in Del", key)
			return
		}
		t.Splice(idx, 1)
		return
	case *Object:
		k, ok := key.(string)
		if !ok {
			warn("invalid object key %v in Del", key)
			return
		}
		ob := t.ob
		if ob != nil && ob.rootCount > 0 {
			warn("avoid deleting properties on a root data object; set key %q to nil instead", k)
			return
		}
		if !t.delete(k) {
			return
		}
		if ob != nil {
			ob.dep.Notify()
		}
		return
	}
	warn("cannot delete reactive property on non-container target %T (key %v)", target, key)
}
