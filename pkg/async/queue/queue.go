package queue

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/vnykmshr/asyncfn/pkg/async/future"
	commonctx "github.com/vnykmshr/asyncfn/pkg/common/context"
	"github.com/vnykmshr/asyncfn/pkg/common/errors"
)

// Step is one stage of a chain. It receives the previous stage's
// resolved value and returns the next one. A step that wants to work
// asynchronously returns a *future.Future[any]; the chain awaits it
// before feeding the next step.
type Step func(ctx context.Context, in any) (any, error)

// Chain runs steps strictly in order, feeding each step the previous
// step's resolved value. The first error stops the chain.
type Chain struct {
	steps []Step
}

// NewSafe creates a chain with validation that returns an error
// instead of panicking.
func NewSafe(steps ...Step) (*Chain, error) {
	if len(steps) == 0 {
		return nil, errors.NewValidationError("queue", "steps", len(steps), "chain needs at least one step").
			WithHint("pass one or more Step functions")
	}
	for i, step := range steps {
		if step == nil {
			return nil, errors.NewValidationError("queue", fmt.Sprintf("steps[%d]", i), nil, "step cannot be nil")
		}
	}

	return &Chain{steps: steps}, nil
}

// Len returns the number of steps in the chain.
func (c *Chain) Len() int {
	return len(c.steps)
}

// Run executes the chain synchronously. in feeds the first step; the
// last step's resolved value is returned. Future-returning steps are
// awaited in place, a step error stops the chain, and a panicking step
// is reported as that step's error.
func (c *Chain) Run(ctx context.Context, in any) (any, error) {
	value := in

	for _, step := range c.steps {
		if commonctx.IsCanceled(ctx) {
			return nil, ctx.Err()
		}

		out, err := runStep(ctx, step, value)
		if err != nil {
			// Step errors propagate unmodified so callers can match
			// their own sentinels.
			return nil, err
		}

		// Asynchronous steps hand back a future; resolve it before
		// moving on so the next step sees a plain value.
		if f, ok := out.(*future.Future[any]); ok {
			out, err = f.Get(ctx)
			if err != nil {
				return nil, err
			}
		}

		value = out
	}

	return value, nil
}

// Go executes the chain on its own goroutine and returns a future for
// the final value.
func (c *Chain) Go(ctx context.Context, in any) *future.Future[any] {
	return future.Go(func() (any, error) {
		return c.Run(ctx, in)
	})
}

// Step adapts the whole chain into a single step of an outer chain.
func (c *Chain) Step() Step {
	return func(ctx context.Context, in any) (any, error) {
		return c.Run(ctx, in)
	}
}

func runStep(ctx context.Context, step Step, in any) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}
	}()
	return step(ctx, in)
}
