package reactive

// DevMode enables development-time warnings and checks.
// When true:
//   - Invalid watch paths, bad mutation targets and root-data key additions
//     log warnings.
//   - The scheduler detects circular update loops and warns.
//
// When false (production), warnings are suppressed. The toggle gates
// diagnostics only, never tracking correctness.
//
// Set this at application startup:
//
//	func main() {
//	    reactive.DevMode = os.Getenv("ENV") != "production"
//	    // ...
//	}
var DevMode = false

// Async selects deferred, scheduler-mediated watcher execution.
//
// When false (the default), a write runs affected watchers synchronously
// before the write returns, and Dep.Notify fires subscribers in ascending
// creation-id order. This is the deterministic mode used by tests.
//
// When true, Update hands watchers to the scheduler queue; the host drains
// it with Flush (or wraps writes in Batch). The queue deduplicates by
// watcher id and flushes in ascending id order.
var Async = false

// maxUpdateCount is the limit on how many times a single watcher may be
// re-queued during one flush before the scheduler assumes a circular update
// and stops it.
const maxUpdateCount = 100

// DebugConfig controls debugging features for development.
type DebugConfig struct {
	// LogWatcherRuns logs each watcher run.
	LogWatcherRuns bool

	// LogFlushes logs scheduler flushes with queue sizes.
	LogFlushes bool
}

// Debug is the global debug configuration.
// Modify this at application startup to enable debugging features.
var Debug DebugConfig
