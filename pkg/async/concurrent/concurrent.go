package concurrent

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/vnykmshr/asyncfn/pkg/async/future"
	"github.com/vnykmshr/asyncfn/pkg/common/errors"
	"github.com/vnykmshr/asyncfn/pkg/common/validation"
)

// Task is one unit of work run by a Runner. Every task of a batch
// receives the same argument.
type Task[A, R any] func(ctx context.Context, arg A) (R, error)

// Runner executes a fixed set of tasks with at most limit of them in
// flight at once. Results are ordered by task position regardless of
// completion order. The first failure rejects the whole batch; tasks
// already in flight finish in the background and their outcomes are
// discarded, and no new tasks start afterwards.
type Runner[A, R any] struct {
	limit int
	tasks []Task[A, R]
}

// NewSafe creates a runner with validation that returns an error
// instead of panicking.
func NewSafe[A, R any](limit int, tasks ...Task[A, R]) (*Runner[A, R], error) {
	if err := validation.ValidatePositive("concurrent", "limit", limit); err != nil {
		return nil, err
	}
	for i, task := range tasks {
		if task == nil {
			return nil, errors.NewValidationError("concurrent", fmt.Sprintf("tasks[%d]", i), nil, "task cannot be nil")
		}
	}

	return &Runner[A, R]{
		limit: limit,
		tasks: tasks,
	}, nil
}

// Limit returns the maximum number of tasks in flight.
func (r *Runner[A, R]) Limit() int {
	return r.limit
}

// Len returns the number of tasks in the batch.
func (r *Runner[A, R]) Len() int {
	return len(r.tasks)
}

// Run executes the batch and blocks until it settles or ctx is done.
// On success the returned slice holds one result per task, in task
// order. On the first task failure Run returns that error immediately.
func (r *Runner[A, R]) Run(ctx context.Context, arg A) ([]R, error) {
	return r.Go(ctx, arg).Get(ctx)
}

// Go starts the batch and returns a future for its outcome. The future
// is rejected as soon as any task fails, before the remaining in-flight
// tasks have drained.
func (r *Runner[A, R]) Go(ctx context.Context, arg A) *future.Future[[]R] {
	f, complete := future.NewPending[[]R]()

	if err := ctx.Err(); err != nil {
		complete(nil, err)
		return f
	}

	results := make([]R, len(r.tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	go func() {
		for i, task := range r.tasks {
			if gctx.Err() != nil {
				// A task already failed; start nothing new.
				break
			}
			i, task := i, task
			g.Go(func() error {
				result, err := runTask(gctx, task, arg)
				if err != nil {
					complete(nil, err)
					return err
				}
				results[i] = result
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			complete(nil, err)
			return
		}
		complete(results, nil)
	}()

	return f
}

// runTask converts a synchronous panic into that task's error.
func runTask[A, R any](ctx context.Context, task Task[A, R], arg A) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}
	}()
	return task(ctx, arg)
}
