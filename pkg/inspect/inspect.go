// Package inspect provides a development-time HTTP inspector for the
// reactivity engine: a JSON snapshot of the scope/watcher graph, Prometheus
// metrics over the engine counters, and a WebSocket stream of live engine
// events for devtools clients.
//
// The inspector is an outer diagnostic surface; it reads engine state and
// never writes it.
package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bjyip/vue/pkg/reactive"
)

// Config configures the inspector server.
type Config struct {
	// Root is the scope whose graph /graph serializes. Optional; without it
	// /graph serves only the engine counters.
	Root *reactive.Scope

	// Registry is the Prometheus registry to register collectors on.
	// Default: prometheus.DefaultRegisterer (with DefaultGatherer serving
	// /metrics).
	Registry *prometheus.Registry

	// Namespace is the metrics namespace (default: "vue").
	Namespace string

	// Logger is used for server-side logging. Default: slog.Default.
	Logger *slog.Logger

	// Tracing enables OpenTelemetry spans around inspector requests.
	Tracing bool
}

// Option configures the inspector server.
type Option func(*Config)

// WithRoot sets the root scope serialized by /graph.
func WithRoot(root *reactive.Scope) Option {
	return func(c *Config) { c.Root = root }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Config) { c.Registry = reg }
}

// WithNamespace sets the metrics namespace.
func WithNamespace(ns string) Option {
	return func(c *Config) { c.Namespace = ns }
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithTracing enables OpenTelemetry tracing of inspector requests.
func WithTracing(on bool) Option {
	return func(c *Config) { c.Tracing = on }
}

// Server is the inspector HTTP handler.
type Server struct {
	cfg    Config
	router chi.Router
	hub    *hub
	logger *slog.Logger
}

// New creates an inspector server and installs the engine dev hooks that
// feed the live event stream.
func New(opts ...Option) *Server {
	cfg := Config{Namespace: "vue"}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		hub:    newHub(logger),
	}
	s.hub.install()

	registerCollectors(cfg.Registry, cfg.Namespace)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	if cfg.Tracing {
		r.Use(tracing("vue-inspect"))
	}

	r.Get("/healthz", s.handleHealthz)
	r.Get("/graph", s.handleGraph)
	r.Get("/live", s.hub.handleWS)
	if cfg.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the live event hub and removes the engine dev hooks.
func (s *Server) Close() {
	s.hub.close()
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	snap := Snapshot(s.cfg.Root)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.logger.Error("inspect: encoding graph snapshot", slog.Any("err", err))
	}
}
