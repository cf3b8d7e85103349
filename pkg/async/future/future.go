package future

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
)

// Future is a single-assignment asynchronous result. It starts pending
// and settles exactly once, either with a value or with an error; later
// completion attempts are ignored.
type Future[T any] struct {
	done chan struct{}
	once sync.Once

	// value and err are written once, before done is closed, and are
	// read-only afterwards.
	value T
	err   error
}

// CompleteFunc settles the future it was created with. Passing a nil
// error resolves the future with value; a non-nil error rejects it.
type CompleteFunc[T any] func(value T, err error)

// NewPending creates an unsettled future along with the function that
// settles it. The complete function is safe to call from any goroutine
// and is idempotent; only the first call takes effect.
func NewPending[T any]() (*Future[T], CompleteFunc[T]) {
	f := &Future[T]{done: make(chan struct{})}
	return f, f.complete
}

// Resolved returns a future that is already settled with value.
func Resolved[T any](value T) *Future[T] {
	f, complete := NewPending[T]()
	complete(value, nil)
	return f
}

// Rejected returns a future that is already settled with err.
func Rejected[T any](err error) *Future[T] {
	f, complete := NewPending[T]()
	var zero T
	complete(zero, err)
	return f
}

// Go runs fn in a new goroutine and returns a future for its outcome.
// A panic in fn rejects the future instead of crashing the process.
func Go[T any](fn func() (T, error)) *Future[T] {
	f, complete := NewPending[T]()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				complete(zero, fmt.Errorf("function panicked: %v\nStack trace:\n%s", r, debug.Stack()))
			}
		}()

		value, err := fn()
		complete(value, err)
	}()

	return f
}

// Done returns a channel that is closed when the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get blocks until the future settles or ctx is canceled. It returns
// the settled value and error, or the context error if ctx wins.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryGet returns the outcome without blocking. The bool reports whether
// the future has settled; value and err are meaningful only when true.
func (f *Future[T]) TryGet() (value T, err error, settled bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

func (f *Future[T]) complete(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}
