package inspect

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjyip/vue/pkg/reactive"
)

// registerOnce guards default-registry registration: creating more than one
// inspector against the default registry must not panic on duplicates.
var registerOnce sync.Once

// registerCollectors registers read-only collectors over the engine's atomic
// counters. With a nil registry the collectors go to the default registerer,
// once per process.
func registerCollectors(reg *prometheus.Registry, namespace string) {
	if reg == nil {
		registerOnce.Do(func() {
			register(prometheus.DefaultRegisterer, namespace)
		})
		return
	}
	register(reg, namespace)
}

func register(reg prometheus.Registerer, namespace string) {
	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watcher_runs_total",
			Help:      "Total number of completed watcher evaluations",
		}, func() float64 {
			return float64(reactive.ReadStats().WatcherRuns)
		}),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifies_total",
			Help:      "Total number of dependency notifications",
		}, func() float64 {
			return float64(reactive.ReadStats().Notifies)
		}),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_flushes_total",
			Help:      "Total number of scheduler queue flushes",
		}, func() float64 {
			return float64(reactive.ReadStats().Flushes)
		}),

		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "watcher_teardowns_total",
			Help:      "Total number of watcher teardowns",
		}, func() float64 {
			return float64(reactive.ReadStats().Teardowns)
		}),

		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scheduler_queue_depth",
			Help:      "Number of watchers currently queued for deferred execution",
		}, func() float64 {
			return float64(reactive.ReadStats().QueueDepth)
		}),
	)
}
