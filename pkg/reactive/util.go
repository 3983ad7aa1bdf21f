package reactive

import (
	"reflect"
	"sort"
)

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// reflectComparable reports whether == is safe for v's dynamic type.
// Slices, maps and funcs are not; everything else defers to reflect.
func reflectComparable(v any) bool {
	t := reflect.TypeOf(v)
	if t == nil {
		return false
	}
	return t.Comparable()
}

// isContainer reports whether v is one of the reactive container types.
func isContainer(v any) bool {
	switch v.(type) {
	case *Object, *Array:
		return true
	}
	return false
}
