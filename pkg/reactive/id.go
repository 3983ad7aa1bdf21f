package reactive

import "sync/atomic"

// globalIDCounter is the source of unique IDs for deps, watchers and scopes.
// Using atomic operations ensures thread-safe ID generation without locks.
var globalIDCounter uint64

// nextID returns the next unique ID.
// IDs are monotonically increasing and never reused; they double as a stable
// creation-order sort key for deterministic notification.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
