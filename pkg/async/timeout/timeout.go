package timeout

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/vnykmshr/asyncfn/pkg/async/future"
	"github.com/vnykmshr/asyncfn/pkg/common/errors"
	"github.com/vnykmshr/asyncfn/pkg/metrics"
)

// DefaultMessage is the rejection message used when none is supplied.
const DefaultMessage = "Timeout error"

// Error reports that a raced operation did not settle before its
// deadline. It unwraps to errors.ErrTimeout.
type Error struct {
	Message  string
	Duration time.Duration
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return errors.ErrTimeout
}

// WithTimeout races f against a deadline of d. The returned future
// settles exactly as f does if f settles first; otherwise it is
// rejected with *Error. f itself is never cancelled and may settle
// later; its late outcome is discarded.
func WithTimeout[T any](f *future.Future[T], d time.Duration) *future.Future[T] {
	return WithTimeoutMessage(f, d, DefaultMessage)
}

// WithTimeoutMessage is WithTimeout with a custom rejection message.
func WithTimeoutMessage[T any](f *future.Future[T], d time.Duration, msg string) *future.Future[T] {
	out, complete := future.NewPending[T]()

	timer := time.AfterFunc(d, func() {
		// On a tie the operation wins over the deadline.
		if value, err, settled := f.TryGet(); settled {
			complete(value, err)
			return
		}
		var zero T
		complete(zero, &Error{Message: msg, Duration: d})
	})

	go func() {
		<-f.Done()
		timer.Stop()
		value, err, _ := f.TryGet()
		complete(value, err)
	}()

	return out
}

// WithTimeoutInstrumented is WithTimeout with Prometheus counters: the
// race outcome is recorded under the given name in registry. A nil
// registry falls back to metrics.DefaultRegistry.
func WithTimeoutInstrumented[T any](f *future.Future[T], d time.Duration, name string, registry *metrics.Registry) *future.Future[T] {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}

	out := WithTimeout(f, d)
	go func() {
		<-out.Done()
		_, err, _ := out.TryGet()
		if stderrors.Is(err, errors.ErrTimeout) {
			registry.TimeoutsElapsed.WithLabelValues(name).Inc()
		} else {
			registry.TimeoutsBeaten.WithLabelValues(name).Inc()
		}
	}()
	return out
}

// Do runs fn under a context that expires after d and races the call
// against the same deadline. Unlike WithTimeout's raced future, fn is
// told to stop via its context when the deadline passes.
func Do[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	runCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	f := future.Go(func() (T, error) {
		return fn(runCtx)
	})

	return WithTimeout(f, d).Get(ctx)
}
