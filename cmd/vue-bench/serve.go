package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bjyip/vue"
	"github.com/bjyip/vue/pkg/inspect"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		tracing bool
		demo    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph inspector over HTTP",
		Long: `Starts the inspector: /graph for JSON scope snapshots, /metrics
for Prometheus counters, /live for the WebSocket event stream. With
--demo a background workload keeps the graph moving so there is
something to look at.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			root := vue.NewScope(nil)
			defer root.Dispose()

			srv := inspect.New(
				inspect.WithRoot(root),
				inspect.WithLogger(logger),
				inspect.WithTracing(tracing),
			)
			defer srv.Close()

			ctx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()

			if demo {
				go runDemoWorkload(ctx, root)
			}

			httpSrv := &http.Server{
				Addr:    fmt.Sprintf(":%d", port),
				Handler: srv,
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				httpSrv.Shutdown(shutdownCtx)
			}()

			logger.Info("inspector listening", "port", port, "demo", demo)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8222, "port to listen on")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "enable OpenTelemetry request spans")
	cmd.Flags().BoolVar(&demo, "demo", true, "run a background demo workload")

	return cmd
}

// runDemoWorkload mutates a small state tree on a ticker so the
// inspector's graph and event stream show live activity.
func runDemoWorkload(ctx context.Context, root *vue.Scope) {
	scope := vue.NewScope(root)
	defer scope.Dispose()

	state := vue.NewObject(map[string]any{
		"ticks": 0,
		"log":   vue.NewArray(),
	})
	scope.SetData(state)

	scope.Watch(func() any { return state.Get("ticks") },
		func(_, _ any) {}, vue.WatcherOptions{})
	scope.Watch(func() any { return state },
		func(_, _ any) {}, vue.WatcherOptions{Deep: true})

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state.Set("ticks", i)
			log := state.Get("log").(*vue.Array)
			log.Push(time.Now().Format(time.RFC3339))
			if log.Len() > 20 {
				log.Splice(0, 1)
			}
		}
	}
}
