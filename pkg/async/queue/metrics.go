package queue

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/asyncfn/pkg/async/future"
	"github.com/vnykmshr/asyncfn/pkg/metrics"
)

// MetricsChain wraps a Chain with Prometheus metrics collection.
type MetricsChain struct {
	chain    *Chain
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a chain with metrics enabled.
func NewWithMetrics(name string, steps ...Step) (*MetricsChain, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(name, config, steps...)
}

// NewWithConfigAndMetrics creates a chain with custom metrics configuration.
func NewWithConfigAndMetrics(name string, metricsConfig metrics.Config, steps ...Step) (*MetricsChain, error) {
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	instrumented := steps
	if metricsConfig.Enabled {
		instrumented = make([]Step, len(steps))
		for i, step := range steps {
			instrumented[i] = instrumentStep(step, name, registry)
		}
	}

	chain, err := NewSafe(instrumented...)
	if err != nil {
		return nil, err
	}

	return &MetricsChain{
		chain:    chain,
		name:     name,
		registry: registry,
		enabled:  metricsConfig.Enabled,
	}, nil
}

// Run executes the chain synchronously.
func (mc *MetricsChain) Run(ctx context.Context, in any) (any, error) {
	return mc.chain.Run(ctx, in)
}

// Go executes the chain on its own goroutine and returns a future.
func (mc *MetricsChain) Go(ctx context.Context, in any) *future.Future[any] {
	return mc.chain.Go(ctx, in)
}

// Step adapts the instrumented chain into a step of an outer chain.
func (mc *MetricsChain) Step() Step {
	return mc.chain.Step()
}

// Len returns the number of steps in the chain.
func (mc *MetricsChain) Len() int {
	return mc.chain.Len()
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mc *MetricsChain) MetricsEnabled() bool {
	return mc.enabled
}

func instrumentStep(step Step, name string, registry *metrics.Registry) Step {
	return func(ctx context.Context, in any) (any, error) {
		registry.QueueSteps.WithLabelValues(name).Inc()

		out, err := step(ctx, in)
		if err != nil {
			registry.QueueStepErrors.WithLabelValues(name).Inc()
		}
		return out, err
	}
}
