package debounce

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/vnykmshr/asyncfn/pkg/async/future"
	"github.com/vnykmshr/asyncfn/pkg/common/errors"
	"github.com/vnykmshr/asyncfn/pkg/common/validation"
)

// Coalescer is a promise-mode debouncer: every Trigger returns a future
// and all callers within one window share a single invocation's result.
//
// In trailing mode each call enqueues a waiter and pushes the window
// out; when it closes the function runs once with the last argument and
// its result (or error) settles every waiter in enqueue order. In
// leading mode the first call of a fresh window runs the function
// synchronously; later calls in the window wait and are settled at
// window close with that same result, without running the function
// again.
type Coalescer[A, R any] struct {
	mu sync.Mutex

	fn      func(A) (R, error)
	delay   time.Duration
	leading bool

	timer *time.Timer
	seq   uint64
	open  bool

	arg     A
	waiters []future.CompleteFunc[R]

	// Leading-mode state. running covers the span of the synchronous
	// invocation; deferred is set when the window closes during it.
	running   bool
	deferred  bool
	result    R
	resultErr error
}

// NewCoalescerSafe creates a trailing-edge coalescer with validation.
func NewCoalescerSafe[A, R any](fn func(A) (R, error), delay time.Duration) (*Coalescer[A, R], error) {
	return NewCoalescerWithConfigSafe(fn, Config{Delay: delay})
}

// NewCoalescerWithConfigSafe creates a coalescer with custom config and
// validation that returns an error instead of panicking.
func NewCoalescerWithConfigSafe[A, R any](fn func(A) (R, error), config Config) (*Coalescer[A, R], error) {
	if fn == nil {
		return nil, errors.NewValidationError("debounce", "fn", fn, "function cannot be nil")
	}
	if err := validation.ValidatePositiveDuration("debounce", "delay", config.Delay); err != nil {
		return nil, err
	}

	return &Coalescer[A, R]{
		fn:      fn,
		delay:   config.Delay,
		leading: config.Leading,
	}, nil
}

// Trigger registers one call and returns a future for the shared
// result of the window this call lands in.
func (c *Coalescer[A, R]) Trigger(arg A) *future.Future[R] {
	f, complete := future.NewPending[R]()

	c.mu.Lock()

	if c.leading {
		if c.open {
			c.waiters = append(c.waiters, complete)
			c.mu.Unlock()
			return f
		}

		c.open = true
		c.running = true
		c.restartTimerLocked()
		c.mu.Unlock()

		result, err := c.invoke(arg)

		c.mu.Lock()
		c.result = result
		c.resultErr = err
		c.running = false
		if c.deferred {
			// The window elapsed while the function was running.
			batch := c.closeWindowLocked()
			c.mu.Unlock()
			settleAll(batch, result, err)
		} else {
			c.mu.Unlock()
		}

		complete(result, err)
		return f
	}

	c.arg = arg
	c.waiters = append(c.waiters, complete)
	c.open = true
	c.restartTimerLocked()
	c.mu.Unlock()
	return f
}

// Cancel stops the window and rejects every queued waiter with
// errors.ErrCanceled. It is idempotent. A leading invocation already in
// flight still settles its own caller's future normally.
func (c *Coalescer[A, R]) Cancel() {
	c.mu.Lock()
	batch := c.closeWindowLocked()
	c.mu.Unlock()

	var zero R
	settleAll(batch, zero, errors.ErrCanceled)
}

// Pending reports whether a coalescing window is currently open.
func (c *Coalescer[A, R]) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *Coalescer[A, R]) restartTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.seq++
	s := c.seq
	c.timer = time.AfterFunc(c.delay, func() {
		c.fire(s)
	})
}

// closeWindowLocked clears all window state, bumps the generation so
// in-flight timer callbacks become stale, and returns the waiter batch
// for the caller to settle outside the lock.
func (c *Coalescer[A, R]) closeWindowLocked() []future.CompleteFunc[R] {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.seq++
	c.open = false
	c.deferred = false

	batch := c.waiters
	c.waiters = nil
	var zeroA A
	c.arg = zeroA
	return batch
}

func (c *Coalescer[A, R]) fire(s uint64) {
	c.mu.Lock()
	if s != c.seq || !c.open {
		c.mu.Unlock()
		return
	}

	if c.leading {
		if c.running {
			// Settle the batch once the invocation returns.
			c.deferred = true
			c.mu.Unlock()
			return
		}
		result, err := c.result, c.resultErr
		batch := c.closeWindowLocked()
		c.mu.Unlock()
		settleAll(batch, result, err)
		return
	}

	arg := c.arg
	batch := c.closeWindowLocked()
	c.mu.Unlock()

	// Calls arriving from here on start a fresh window.
	result, err := c.invoke(arg)
	settleAll(batch, result, err)
}

func (c *Coalescer[A, R]) invoke(arg A) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("coalesced function panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}
	}()
	return c.fn(arg)
}

func settleAll[R any](batch []future.CompleteFunc[R], result R, err error) {
	for _, complete := range batch {
		complete(result, err)
	}
}
