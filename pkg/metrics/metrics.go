// Package metrics provides Prometheus instrumentation for asyncfn components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for asyncfn components.
type Registry struct {
	// Debounce / Throttle Metrics
	DebounceTriggers    *prometheus.CounterVec
	DebounceInvocations *prometheus.CounterVec
	DebounceCoalesced   *prometheus.CounterVec
	DebounceCancels     *prometheus.CounterVec
	DebouncePending     *prometheus.GaugeVec

	// Concurrent Runner Metrics
	RunnerTasksStarted   *prometheus.CounterVec
	RunnerTasksCompleted *prometheus.CounterVec
	RunnerTasksFailed    *prometheus.CounterVec
	RunnerTaskDuration   *prometheus.HistogramVec
	RunnerActive         *prometheus.GaugeVec

	// Timeout Racer Metrics
	TimeoutsElapsed *prometheus.CounterVec
	TimeoutsBeaten  *prometheus.CounterVec

	// Queue Metrics
	QueueSteps      *prometheus.CounterVec
	QueueStepErrors *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by asyncfn components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		DebounceTriggers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "debounce",
				Name:      "triggers_total",
				Help:      "Total number of calls to a debounced or throttled wrapper",
			},
			[]string{"controller_type", "controller_name"},
		),

		DebounceInvocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "debounce",
				Name:      "invocations_total",
				Help:      "Total number of times the wrapped function actually ran",
			},
			[]string{"controller_type", "controller_name"},
		),

		DebounceCoalesced: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "debounce",
				Name:      "coalesced_total",
				Help:      "Total number of calls merged into an already-open window",
			},
			[]string{"controller_type", "controller_name"},
		),

		DebounceCancels: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "debounce",
				Name:      "cancels_total",
				Help:      "Total number of Cancel calls that cleared a pending window",
			},
			[]string{"controller_type", "controller_name"},
		),

		DebouncePending: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "asyncfn",
				Subsystem: "debounce",
				Name:      "pending",
				Help:      "Whether a coalescing window is currently open (0 or 1)",
			},
			[]string{"controller_type", "controller_name"},
		),

		RunnerTasksStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "concurrent",
				Name:      "tasks_started_total",
				Help:      "Total number of tasks started by concurrency-limited runners",
			},
			[]string{"runner_name"},
		),

		RunnerTasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "concurrent",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks that completed successfully",
			},
			[]string{"runner_name"},
		),

		RunnerTasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "concurrent",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that returned an error or panicked",
			},
			[]string{"runner_name"},
		),

		RunnerTaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "asyncfn",
				Subsystem: "concurrent",
				Name:      "task_duration_seconds",
				Help:      "Task execution duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"runner_name"},
		),

		RunnerActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "asyncfn",
				Subsystem: "concurrent",
				Name:      "active",
				Help:      "Number of tasks currently in flight",
			},
			[]string{"runner_name"},
		),

		TimeoutsElapsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "timeout",
				Name:      "elapsed_total",
				Help:      "Total number of races lost to the deadline",
			},
			[]string{"name"},
		),

		TimeoutsBeaten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "timeout",
				Name:      "beaten_total",
				Help:      "Total number of races where the operation settled first",
			},
			[]string{"name"},
		),

		QueueSteps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "queue",
				Name:      "steps_total",
				Help:      "Total number of chain steps executed",
			},
			[]string{"chain_name"},
		),

		QueueStepErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "asyncfn",
				Subsystem: "queue",
				Name:      "step_errors_total",
				Help:      "Total number of chain steps that failed",
			},
			[]string{"chain_name"},
		),
	}
}
