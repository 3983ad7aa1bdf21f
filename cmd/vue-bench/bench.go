package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bjyip/vue"
)

// asyncMode mirrors the --async flag for the workload helpers.
var asyncMode bool

type benchResult struct {
	Name       string        `json:"name"`
	Iterations int           `json:"iterations"`
	Total      time.Duration `json:"total_ns"`
	PerOp      time.Duration `json:"per_op_ns"`
}

func benchCmd() *cobra.Command {
	var (
		watchers int
		writes   int
		depth    int
		async    bool
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run synthetic reactivity workloads",
		Long: `Runs a fixed set of workloads against the engine: fan-out
(one field, many watchers), write storms (many fields, one deep
watcher), and nested-object traversal. Reports wall time per
operation for each.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			asyncMode = async
			vue.SetAsync(async)
			results := []benchResult{
				benchFanOut(watchers, writes),
				benchWriteStorm(writes),
				benchDeepNesting(depth, writes),
				benchComputedChain(writes),
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			for _, r := range results {
				fmt.Printf("%-16s %8d ops  %12s total  %10s/op\n",
					r.Name, r.Iterations, r.Total, r.PerOp)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&watchers, "watchers", "w", 100, "watchers per field in fan-out workload")
	cmd.Flags().IntVarP(&writes, "writes", "n", 10000, "writes per workload")
	cmd.Flags().IntVarP(&depth, "depth", "d", 8, "nesting depth for the traversal workload")
	cmd.Flags().BoolVar(&async, "async", false, "defer watcher runs to explicit flushes")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit results as JSON")

	return cmd
}

// benchFanOut measures notify cost when one field has many subscribers.
func benchFanOut(watchers, writes int) benchResult {
	scope := vue.NewScope(nil)
	defer scope.Dispose()

	obj := vue.NewObject(map[string]any{"counter": 0})
	scope.SetData(obj)

	for i := 0; i < watchers; i++ {
		scope.Watch(func() any { return obj.Get("counter") }, func(_, _ any) {}, vue.WatcherOptions{})
	}

	start := time.Now()
	for i := 0; i < writes; i++ {
		obj.Set("counter", i)
		if asyncMode {
			vue.Flush()
		}
	}
	total := time.Since(start)
	return result("fan-out", writes, total)
}

// benchWriteStorm measures batched writes across many fields observed
// by a single deep watcher.
func benchWriteStorm(writes int) benchResult {
	scope := vue.NewScope(nil)
	defer scope.Dispose()

	fields := make(map[string]any, 64)
	for i := 0; i < 64; i++ {
		fields[fmt.Sprintf("f%02d", i)] = 0
	}
	obj := vue.NewObject(fields)
	scope.SetData(obj)

	scope.Watch(func() any { return obj }, func(_, _ any) {}, vue.WatcherOptions{Deep: true})

	start := time.Now()
	vue.Batch(func() {
		for i := 0; i < writes; i++ {
			obj.Set(fmt.Sprintf("f%02d", i%64), i)
		}
	})
	if asyncMode {
		vue.Flush()
	}
	total := time.Since(start)
	return result("write-storm", writes, total)
}

// benchDeepNesting measures reads through a chain of nested objects.
func benchDeepNesting(depth, writes int) benchResult {
	scope := vue.NewScope(nil)
	defer scope.Dispose()

	leaf := vue.NewObject(map[string]any{"value": 0})
	root := leaf
	for i := 0; i < depth; i++ {
		root = vue.NewObject(map[string]any{"child": root})
	}
	scope.SetData(root)

	scope.Watch(func() any {
		cur := root
		for i := 0; i < depth; i++ {
			cur = cur.Get("child").(*vue.Object)
		}
		return cur.Get("value")
	}, func(_, _ any) {}, vue.WatcherOptions{})

	start := time.Now()
	for i := 0; i < writes; i++ {
		leaf.Set("value", i)
		if asyncMode {
			vue.Flush()
		}
	}
	total := time.Since(start)
	return result("deep-nesting", writes, total)
}

// benchComputedChain measures lazy re-evaluation through a chain of
// computed values.
func benchComputedChain(writes int) benchResult {
	scope := vue.NewScope(nil)
	defer scope.Dispose()

	obj := vue.NewObject(map[string]any{"base": 1})
	scope.SetData(obj)

	double := vue.NewComputed(scope, func() any { return obj.Get("base").(int) * 2 })
	quad := vue.NewComputed(scope, func() any { return double.Value().(int) * 2 })

	scope.Watch(func() any { return quad.Value() }, func(_, _ any) {}, vue.WatcherOptions{})

	start := time.Now()
	for i := 0; i < writes; i++ {
		obj.Set("base", i)
		if asyncMode {
			vue.Flush()
		}
	}
	total := time.Since(start)
	return result("computed-chain", writes, total)
}

func result(name string, n int, total time.Duration) benchResult {
	per := time.Duration(0)
	if n > 0 {
		per = total / time.Duration(n)
	}
	return benchResult{Name: name, Iterations: n, Total: total, PerOp: per}
}
