package testutil

import (
	"sync"
	"time"
)

// MockClock implements a controllable time source for tests that want to
// avoid actual delays.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a new MockClock starting at the given time.
// If zero time is provided, uses current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{now: start}
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock clock forward by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set sets the mock clock to a specific time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// CallRecorder records invocations of a wrapped callback so tests can
// assert how many times a debounced or throttled function actually ran
// and with which arguments.
type CallRecorder[A any] struct {
	mu    sync.Mutex
	calls []A
}

// NewCallRecorder creates an empty CallRecorder.
func NewCallRecorder[A any]() *CallRecorder[A] {
	return &CallRecorder[A]{}
}

// Record stores one invocation argument.
func (r *CallRecorder[A]) Record(arg A) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, arg)
}

// Fn returns a callback that records its argument.
func (r *CallRecorder[A]) Fn() func(A) {
	return r.Record
}

// Count returns the number of recorded invocations.
func (r *CallRecorder[A]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Calls returns a copy of the recorded arguments in invocation order.
func (r *CallRecorder[A]) Calls() []A {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]A, len(r.calls))
	copy(out, r.calls)
	return out
}

// Last returns the most recent argument and true, or zero value and
// false if nothing was recorded.
func (r *CallRecorder[A]) Last() (A, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		var zero A
		return zero, false
	}
	return r.calls[len(r.calls)-1], true
}
