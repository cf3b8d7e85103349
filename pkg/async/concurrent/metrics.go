package concurrent

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/asyncfn/pkg/async/future"
	"github.com/vnykmshr/asyncfn/pkg/metrics"
)

// MetricsRunner wraps a Runner with Prometheus metrics collection.
type MetricsRunner[A, R any] struct {
	runner   *Runner[A, R]
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a runner with metrics enabled.
func NewWithMetrics[A, R any](limit int, name string, tasks ...Task[A, R]) (*MetricsRunner[A, R], error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(limit, name, config, tasks...)
}

// NewWithConfigAndMetrics creates a runner with custom metrics configuration.
func NewWithConfigAndMetrics[A, R any](limit int, name string, metricsConfig metrics.Config, tasks ...Task[A, R]) (*MetricsRunner[A, R], error) {
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	instrumented := tasks
	if metricsConfig.Enabled {
		instrumented = make([]Task[A, R], len(tasks))
		for i, task := range tasks {
			instrumented[i] = instrumentTask(task, name, registry)
		}
	}

	runner, err := NewSafe(limit, instrumented...)
	if err != nil {
		return nil, err
	}

	return &MetricsRunner[A, R]{
		runner:   runner,
		name:     name,
		registry: registry,
		enabled:  metricsConfig.Enabled,
	}, nil
}

// Run executes the batch and blocks until it settles or ctx is done.
func (mr *MetricsRunner[A, R]) Run(ctx context.Context, arg A) ([]R, error) {
	return mr.runner.Run(ctx, arg)
}

// Go starts the batch and returns a future for its outcome.
func (mr *MetricsRunner[A, R]) Go(ctx context.Context, arg A) *future.Future[[]R] {
	return mr.runner.Go(ctx, arg)
}

// Limit returns the maximum number of tasks in flight.
func (mr *MetricsRunner[A, R]) Limit() int {
	return mr.runner.Limit()
}

// Len returns the number of tasks in the batch.
func (mr *MetricsRunner[A, R]) Len() int {
	return mr.runner.Len()
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mr *MetricsRunner[A, R]) MetricsEnabled() bool {
	return mr.enabled
}

func instrumentTask[A, R any](task Task[A, R], name string, registry *metrics.Registry) Task[A, R] {
	return func(ctx context.Context, arg A) (R, error) {
		registry.RunnerTasksStarted.WithLabelValues(name).Inc()
		registry.RunnerActive.WithLabelValues(name).Inc()
		start := time.Now()

		defer func() {
			registry.RunnerActive.WithLabelValues(name).Dec()
			registry.RunnerTaskDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			if r := recover(); r != nil {
				registry.RunnerTasksFailed.WithLabelValues(name).Inc()
				// Re-panic so the runner converts it to an error.
				panic(r)
			}
		}()

		result, err := task(ctx, arg)
		if err != nil {
			registry.RunnerTasksFailed.WithLabelValues(name).Inc()
		} else {
			registry.RunnerTasksCompleted.WithLabelValues(name).Inc()
		}
		return result, err
	}
}
