package inspect

import "github.com/bjyip/vue/pkg/reactive"

// GraphSnapshot is the JSON shape served by /graph.
type GraphSnapshot struct {
	Stats StatsJSON  `json:"stats"`
	Root  *ScopeNode `json:"root,omitempty"`
}

// StatsJSON mirrors the engine counters.
type StatsJSON struct {
	WatcherRuns uint64 `json:"watcher_runs"`
	Notifies    uint64 `json:"notifies"`
	Flushes     uint64 `json:"flushes"`
	Teardowns   uint64 `json:"teardowns"`
	QueueDepth  int    `json:"queue_depth"`
}

// ScopeNode is one scope in the graph snapshot.
type ScopeNode struct {
	ID       uint64        `json:"id"`
	Disposed bool          `json:"disposed,omitempty"`
	Watchers []WatcherNode `json:"watchers,omitempty"`
	Children []*ScopeNode  `json:"children,omitempty"`
}

// WatcherNode is one watcher in the graph snapshot.
type WatcherNode struct {
	ID         uint64 `json:"id"`
	Expression string `json:"expression"`
	Deps       int    `json:"deps"`
	Active     bool   `json:"active"`
}

// Snapshot serializes the engine counters and, when root is non-nil, the
// scope tree beneath it.
func Snapshot(root *reactive.Scope) GraphSnapshot {
	stats := reactive.ReadStats()
	snap := GraphSnapshot{
		Stats: StatsJSON{
			WatcherRuns: stats.WatcherRuns,
			Notifies:    stats.Notifies,
			Flushes:     stats.Flushes,
			Teardowns:   stats.Teardowns,
			QueueDepth:  stats.QueueDepth,
		},
	}
	if root != nil {
		snap.Root = scopeNode(root)
	}
	return snap
}

func scopeNode(s *reactive.Scope) *ScopeNode {
	node := &ScopeNode{
		ID:       s.ID(),
		Disposed: s.IsDisposed(),
	}
	for _, w := range s.Watchers() {
		node.Watchers = append(node.Watchers, WatcherNode{
			ID:         w.ID(),
			Expression: w.Expression(),
			Deps:       w.DepCount(),
			Active:     w.Active(),
		})
	}
	for _, child := range s.Children() {
		node.Children = append(node.Children, scopeNode(child))
	}
	return node
}
