// Package metrics exports bindable propagation statistics to Prometheus.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	obs := metrics.New(metrics.WithRegistry(reg))
//
//	volume := bindable.New(1.0).WithObserver(obs)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gamekit-dev/gamekit/pkg/bindable"
)

// Config configures the Prometheus observer.
type Config struct {
	// Namespace is the metrics namespace (default: "gamekit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "bindable").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for closure sizes.
	// Default: 1, 2, 4, ... 256
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the closure size histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "gamekit",
		Subsystem: "bindable",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 9),
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Observer implements bindable.Observer with Prometheus collectors.
type Observer struct {
	propagations        *prometheus.CounterVec
	listenerInvocations *prometheus.CounterVec
	closureSize         *prometheus.HistogramVec
	rejected            prometheus.Counter
}

var _ bindable.Observer = (*Observer)(nil)

// New registers the collectors and returns the observer. Registering twice
// with the same registry panics, like promauto.
func New(opts ...Option) *Observer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Observer{
		propagations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "propagations_total",
			Help:        "Total number of value or disabled changes propagated through a binding graph",
			ConstLabels: config.ConstLabels,
		}, []string{"field"}),

		listenerInvocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listener_invocations_total",
			Help:        "Total number of change listeners invoked",
			ConstLabels: config.ConstLabels,
		}, []string{"field"}),

		closureSize: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "closure_size",
			Help:        "Number of bindables updated by one propagation",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"field"}),

		rejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rejected_total",
			Help:        "Total number of value writes rejected because the bindable was disabled",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Propagated records one propagation.
func (o *Observer) Propagated(field bindable.Field, cells, listeners int) {
	label := string(field)
	o.propagations.WithLabelValues(label).Inc()
	o.closureSize.WithLabelValues(label).Observe(float64(cells))
	o.listenerInvocations.WithLabelValues(label).Add(float64(listeners))
}

// Rejected records a write rejected by a disabled bindable.
func (o *Observer) Rejected() {
	o.rejected.Inc()
}

