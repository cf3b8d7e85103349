package debounce

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/asyncfn/pkg/metrics"
)

// MetricsDebouncer wraps a Debouncer with Prometheus metrics collection.
type MetricsDebouncer[A any] struct {
	debouncer *Debouncer[A]
	name      string
	registry  *metrics.Registry
	enabled   bool
}

// NewWithMetrics creates a trailing-edge debouncer with metrics enabled.
func NewWithMetrics[A any](fn func(A), delay time.Duration, name string) (*MetricsDebouncer[A], error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(fn, Config{Delay: delay}, name, config)
}

// NewWithConfigAndMetrics creates a debouncer with custom config and metrics.
func NewWithConfigAndMetrics[A any](fn func(A), config Config, name string, metricsConfig metrics.Config) (*MetricsDebouncer[A], error) {
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	wrapped := fn
	if metricsConfig.Enabled {
		// Count invocations inside the callback so trailing fires from
		// the timer goroutine are observed too.
		wrapped = func(arg A) {
			registry.DebounceInvocations.WithLabelValues("debouncer", name).Inc()
			fn(arg)
		}
	}

	debouncer, err := NewWithConfigSafe(wrapped, config)
	if err != nil {
		return nil, err
	}

	return &MetricsDebouncer[A]{
		debouncer: debouncer,
		name:      name,
		registry:  registry,
		enabled:   metricsConfig.Enabled,
	}, nil
}

// Trigger registers one call and records trigger and coalescing counts.
func (md *MetricsDebouncer[A]) Trigger(arg A) bool {
	if md.enabled {
		md.registry.DebounceTriggers.WithLabelValues("debouncer", md.name).Inc()
		if md.debouncer.Pending() {
			md.registry.DebounceCoalesced.WithLabelValues("debouncer", md.name).Inc()
		}
	}

	ran := md.debouncer.Trigger(arg)

	if md.enabled {
		md.updatePendingGauge()
	}
	return ran
}

// Cancel discards any pending invocation.
func (md *MetricsDebouncer[A]) Cancel() {
	if md.enabled && md.debouncer.Pending() {
		md.registry.DebounceCancels.WithLabelValues("debouncer", md.name).Inc()
	}

	md.debouncer.Cancel()

	if md.enabled {
		md.updatePendingGauge()
	}
}

// Flush fires a pending trailing invocation immediately.
func (md *MetricsDebouncer[A]) Flush() {
	md.debouncer.Flush()

	if md.enabled {
		md.updatePendingGauge()
	}
}

// Pending reports whether a coalescing window is currently open.
func (md *MetricsDebouncer[A]) Pending() bool {
	return md.debouncer.Pending()
}

// MetricsEnabled returns true if metrics are currently enabled.
func (md *MetricsDebouncer[A]) MetricsEnabled() bool {
	return md.enabled
}

func (md *MetricsDebouncer[A]) updatePendingGauge() {
	pending := 0.0
	if md.debouncer.Pending() {
		pending = 1.0
	}
	md.registry.DebouncePending.WithLabelValues("debouncer", md.name).Set(pending)
}
