package reactive

// traverse exhaustively visits every container reachable from val, purely to
// force reactive reads so the current watcher subscribes to every nested
// field. Cycle-safe: each container is visited at most once per traversal,
// keyed by identity, so cycles through unobserved containers terminate as
// well.
func traverse(val any) {
	seen := make(map[any]struct{})
	traverseValue(val, seen)
}

func traverseValue(val any, seen map[any]struct{}) {
	switch v := val.(type) {
	case *Object:
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		// Get fires each field's tracked read.
		for _, key := range v.Keys() {
			traverseValue(v.Get(key), seen)
		}
	case *Array:
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		for i := 0; i < v.Len(); i++ {
			traverseValue(v.Get(i), seen)
		}
	}
}
