// Package metrics exposes Prometheus counters for the bar and an optional
// HTTP endpoint serving them.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	blocksSpawned *prometheus.CounterVec
	updates       prometheus.Counter
	fatalErrors   *prometheus.CounterVec
	restarts      *prometheus.CounterVec
	blockingCalls prometheus.Histogram
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		blocksSpawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statusbar_blocks_spawned_total",
			Help: "Blocks spawned, by kind.",
		}, []string{"kind"}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statusbar_protocol_updates_total",
			Help: "Update elements written to the bar protocol.",
		}),
		fatalErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statusbar_fatal_errors_total",
			Help: "Fatal errors handed to crash recovery, by kind.",
		}, []string{"kind"}),
		restarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statusbar_restarts_total",
			Help: "In-place restarts attempted, by trigger.",
		}, []string{"trigger"}),
		blockingCalls: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statusbar_blocking_call_duration_seconds",
			Help:    "Duration of calls run on the blocking pool.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.blocksSpawned, m.updates, m.fatalErrors, m.restarts, m.blockingCalls)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) BlockSpawned(kind string) {
	if m != nil {
		m.blocksSpawned.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) UpdateWritten() {
	if m != nil {
		m.updates.Inc()
	}
}

func (m *Metrics) FatalError(kind string) {
	if m != nil {
		m.fatalErrors.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) Restart(trigger string) {
	if m != nil {
		m.restarts.WithLabelValues(trigger).Inc()
	}
}

// ObserveBlockingCall matches async.Observer.
func (m *Metrics) ObserveBlockingCall(d time.Duration) {
	if m != nil {
		m.blockingCalls.Observe(d.Seconds())
	}
}

// Handler serves /metrics and /healthz.
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return r
}

// Serve listens on addr until ctx ends. Listener sockets are close-on-exec,
// so an in-place restart releases the port for the next image.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Debug("metrics endpoint listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics endpoint stopped", "error", err)
		}
	}()
	return nil
}
