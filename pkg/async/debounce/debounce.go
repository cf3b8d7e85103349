package debounce

import (
	"sync"
	"time"

	"github.com/vnykmshr/asyncfn/pkg/common/errors"
	"github.com/vnykmshr/asyncfn/pkg/common/validation"
)

// Config holds configuration for debouncers and throttlers.
type Config struct {
	// Delay is the length of the coalescing window.
	Delay time.Duration

	// Leading fires the function on the first call of a fresh window
	// instead of the trailing edge.
	Leading bool
}

// Debouncer collapses bursts of calls into a single invocation of the
// wrapped function. In trailing mode (the default) the function runs
// once with the last call's argument after Delay has passed with no
// further calls. In leading mode it runs on the first call of a fresh
// window and later calls only push the window out.
//
// Each instance holds at most one pending timer. User callbacks run
// outside the internal mutex, so the wrapped function may call back
// into the debouncer.
type Debouncer[A any] struct {
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

// NewSafe creates a trailing-edge debouncer with validation.
func NewSafe[A any](fn func(A), delay time.Duration) (*Debouncer[A], error) {
	return NewWithConfigSafe(fn, Config{Delay: delay})
}

// NewWithConfigSafe creates a debouncer with custom config and
// validation that returns an error instead of panicking.
func NewWithConfigSafe[A any](fn func(A), config Config) (*Debouncer[A], error) {
	if fn == nil {
		return nil, errors.NewValidationError("debounce", "fn", fn, "function cannot be nil")
	}
	if err := validation.ValidatePositiveDuration("debounce", "delay", config.Delay); err != nil {
		return nil, err
	}

	return &Debouncer[A]{
		fn:      fn,
		delay:   config.Delay,
		leading: config.Leading,
	}, nil
}

// Trigger registers one call. It returns true iff the wrapped function
// ran synchronously on this call's leading edge.
func (d *Debouncer[A]) Trigger(arg A) bool {
	d.mu.Lock()

	if d.leading {
		if d.open {
			d.restartTimerLocked()
			d.mu.Unlock()
			return false
		}
		d.open = true
		d.restartTimerLocked()
		d.mu.Unlock()
		d.fn(arg)
		return true
	}

	d.arg = arg
	d.hasArg = true
	d.open = true
	d.restartTimerLocked()
	d.mu.Unlock()
	return false
}

// Cancel discards any pending invocation and closes the window. It is
// idempotent and safe to call at any time.
func (d *Debouncer[A]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearLocked()
}

// Pending reports whether a coalescing window is currently open.
func (d *Debouncer[A]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Flush fires a pending trailing invocation immediately instead of
// waiting for the window to close. In leading mode, or when nothing is
// pending, it behaves like Cancel.
func (d *Debouncer[A]) Flush() {
	d.mu.Lock()
	run := d.hasArg
	arg := d.arg
	d.clearLocked()
	d.mu.Unlock()

	if run {
		d.fn(arg)
	}
}

// restartTimerLocked advances the generation so any in-flight timer
// callback becomes stale, then arms a fresh timer.
func (d *Debouncer[A]) restartTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	s := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(s)
	})
}

func (d *Debouncer[A]) clearLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.open = false
	d.hasArg = false
	var zero A
	d.arg = zero
}

func (d *Debouncer[A]) fire(s uint64) {
	d.mu.Lock()
	if s != d.seq || !d.open {
		// Stale timer; a Trigger, Cancel or Flush superseded it.
		d.mu.Unlock()
		return
	}
	run := d.hasArg
	arg := d.arg
	d.timer = nil
	d.open = false
	d.hasArg = false
	var zero A
	d.arg = zero
	d.mu.Unlock()

	if run {
		d.fn(arg)
	}
}
