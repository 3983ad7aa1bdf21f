// Command vue-bench benchmarks the reactivity engine and serves the
// development-time graph inspector.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vue-bench",
		Short: "Benchmark and inspect the reactivity engine",
		Long: `vue-bench exercises the dependency-tracking engine with synthetic
workloads and reports timing, and can serve the live graph inspector
(JSON graph snapshots, Prometheus metrics, WebSocket event stream).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		benchCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vue-bench %s (%s)\n", version, commit)
		},
	}
}
