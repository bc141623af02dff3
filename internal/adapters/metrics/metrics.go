package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"focusly/internal/domain"
)

const namespace = "focusly"

// Collector holds the Prometheus metrics for one process.
// Each collector has its own registry so tests never share state.
type Collector struct {
	registry *prometheus.Registry

	ProviderRequests *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec
	ProviderRetries  *prometheus.CounterVec

	NodesMastered     prometheus.Counter
	SessionsCompleted prometheus.Counter
	BreaksFinished    prometheus.Counter
}

// New creates a collector with its own registry
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ProviderRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "requests_total",
				Help:      "Content provider calls by operation and outcome",
			},
			[]string{"op", "status"},
		),
		ProviderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "request_duration_seconds",
				Help:      "Content provider call duration including retries",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"op"},
		),
		ProviderRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "retries_total",
				Help:      "Retries after a rate limited provider call",
			},
			[]string{"op"},
		),
		NodesMastered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_mastered_total",
			Help:      "Transitions of a node into mastered",
		}),
		SessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "focus_sessions_completed_total",
			Help:      "Completed focus work intervals",
		}),
		BreaksFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breaks_finished_total",
			Help:      "Break intervals that ran out",
		}),
	}

	c.registry.MustRegister(
		c.ProviderRequests,
		c.ProviderDuration,
		c.ProviderRetries,
		c.NodesMastered,
		c.SessionsCompleted,
		c.BreaksFinished,
	)
	return c
}

// Registry returns the collector's registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveProvider records one decorated provider call
func (c *Collector) ObserveProvider(op string, status string, elapsed time.Duration) {
	c.ProviderRequests.WithLabelValues(op, status).Inc()
	c.ProviderDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveRetry records one backoff retry
func (c *Collector) ObserveRetry(op string) {
	c.ProviderRetries.WithLabelValues(op).Inc()
}

// Observe counts engine events. Pass it to Engine.Subscribe.
func (c *Collector) Observe(ev domain.Event) {
	switch ev.Kind {
	case domain.EventNodeMastered:
		c.NodesMastered.Inc()
	case domain.EventSessionCompleted:
		c.SessionsCompleted.Inc()
	case domain.EventBreakFinished:
		c.BreaksFinished.Inc()
	}
}

// Handler exposes the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (c *Collector) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
