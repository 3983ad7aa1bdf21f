package reactive

import (
	"sync/atomic"
)

// engineStats holds cheap atomic counters the inspector exports as metrics.
type engineStats struct {
	watcherRuns atomic.Uint64
	notifies    atomic.Uint64
	flushes     atomic.Uint64
	teardowns   atomic.Uint64
}

var stats engineStats

// StatsSnapshot is a point-in-time copy of the engine counters.
type StatsSnapshot struct {
	// WatcherRuns counts completed watcher evaluations.
	WatcherRuns uint64
	// Notifies counts Dep.Notify calls.
	Notifies uint64
	// Flushes counts scheduler queue flushes.
	Flushes uint64
	// Teardowns counts watcher teardowns.
	Teardowns uint64
	// QueueDepth is the number of watchers currently queued.
	QueueDepth int
}

// ReadStats returns a snapshot of the engine counters.
func ReadStats() StatsSnapshot {
	return StatsSnapshot{
		WatcherRuns: stats.watcherRuns.Load(),
		Notifies:    stats.notifies.Load(),
		Flushes:     stats.flushes.Load(),
		Teardowns:   stats.teardowns.Load(),
		QueueDepth:  defaultScheduler.depth(),
	}
}
