package debounce

import (
	"sync"
	"time"

	"github.com/vnykmshr/asyncfn/pkg/common/errors"
	"github.com/vnykmshr/asyncfn/pkg/common/validation"
)

// Throttler rate-limits calls to the wrapped function to at most one
// per window. Unlike a debouncer, calls during an open window are
// dropped rather than pushing the window out.
//
// In leading mode (the NewThrottlerSafe default) the first call fires
// immediately and opens the window. In trailing mode the first call of
// a window opens it and its argument is replayed when the window
// closes; later calls in the same window are dropped entirely.
type Throttler[A any] struct {
	mu sync.Mutex

	fn      func(A)
	delay   time.Duration
	leading bool

	timer *time.Timer
	seq   uint64
	open  bool

	arg    A
	hasArg bool
}

// NewThrottlerSafe creates a leading-edge throttler with validation.
func NewThrottlerSafe[A any](fn func(A), delay time.Duration) (*Throttler[A], error) {
	return NewThrottlerWithConfigSafe(fn, Config{Delay: delay, Leading: true})
}

// NewThrottlerWithConfigSafe creates a throttler with custom config and
// validation that returns an error instead of panicking.
func NewThrottlerWithConfigSafe[A any](fn func(A), config Config) (*Throttler[A], error) {
	if fn == nil {
		return nil, errors.NewValidationError("throttle", "fn", fn, "function cannot be nil")
	}
	if err := validation.ValidatePositiveDuration("throttle", "delay", config.Delay); err != nil {
		return nil, err
	}

	return &Throttler[A]{
		fn:      fn,
		delay:   config.Delay,
		leading: config.Leading,
	}, nil
}

// Trigger registers one call. It returns true iff the wrapped function
// ran synchronously on this call. Calls during an open window are
// dropped; in trailing mode the argument replayed at window close is
// the one that opened the window, not the latest.
func (t *Throttler[A]) Trigger(arg A) bool {
	t.mu.Lock()

	if t.open {
		t.mu.Unlock()
		return false
	}

	t.open = true
	t.startTimerLocked()

	if t.leading {
		t.mu.Unlock()
		t.fn(arg)
		return true
	}

	t.arg = arg
	t.hasArg = true
	t.mu.Unlock()
	return false
}

// Cancel closes the window and discards any pending trailing
// invocation. It is idempotent.
func (t *Throttler[A]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
	t.open = false
	t.hasArg = false
	var zero A
	t.arg = zero
}

// Pending reports whether a window is currently open.
func (t *Throttler[A]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *Throttler[A]) startTimerLocked() {
	t.seq++
	s := t.seq
	t.timer = time.AfterFunc(t.delay, func() {
		t.fire(s)
	})
}

func (t *Throttler[A]) fire(s uint64) {
	t.mu.Lock()
	if s != t.seq || !t.open {
		t.mu.Unlock()
		return
	}
	run := t.hasArg
	arg := t.arg
	t.timer = nil
	t.open = false
	t.hasArg = false
	var zero A
	t.arg = zero
	t.mu.Unlock()

	if run {
		t.fn(arg)
	}
}
