package reactive

import "sync/atomic"

// DevHooks receives low-level engine events for development tooling, such as
// the live inspector stream. Hooks must be fast and must not write reactive
// state.
type DevHooks struct {
	// OnNotify fires when a dep notifies its subscribers.
	OnNotify func(depID uint64)

	// OnFlush fires after a scheduler flush, with the number of watchers run.
	OnFlush func(ran int)

	// OnWatcherRun fires after a watcher evaluation completes.
	OnWatcherRun func(watcherID uint64)
}

var devHooks atomic.Pointer[DevHooks]

// SetDevHooks installs engine event hooks. Passing nil removes them.
func SetDevHooks(h *DevHooks) {
	devHooks.Store(h)
}

func devNotify(depID uint64) {
	if h := devHooks.Load(); h != nil && h.OnNotify != nil {
		h.OnNotify(depID)
	}
}

func devFlush(ran int) {
	if h := devHooks.Load(); h != nil && h.OnFlush != nil {
		h.OnFlush(ran)
	}
}

func devWatcherRun(id uint64) {
	if h := devHooks.Load(); h != nil && h.OnWatcherRun != nil {
		h.OnWatcherRun(id)
	}
}
