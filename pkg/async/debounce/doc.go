/*
Package debounce collapses bursts of calls into controlled invocations.

Three controllers share one Config shape:

  - Debouncer runs the wrapped function once per burst. Trailing mode
    waits for a quiet gap and uses the last argument; leading mode
    fires on the first call of a fresh window.
  - Throttler allows at most one invocation per window and drops calls
    while the window is open.
  - Coalescer is the promise form: every Trigger returns a future and
    all callers in a window share one invocation's result.

Basic debouncing:

	d, err := debounce.NewSafe(func(query string) {
		search(query)
	}, 200*time.Millisecond)
	if err != nil {
		log.Fatal(err)
	}

	d.Trigger("g")
	d.Trigger("go")
	d.Trigger("gop")
	// search runs once with "gop" after 200ms of quiet.

Sharing one result across a burst:

	c, err := debounce.NewCoalescerSafe(func(id string) (*User, error) {
		return fetchUser(id)
	}, 50*time.Millisecond)
	if err != nil {
		log.Fatal(err)
	}

	f1 := c.Trigger("alice")
	f2 := c.Trigger("alice")
	// f1 and f2 settle with the same fetchUser result.

All controllers hold at most one pending timer, discard stale timer
fires after Cancel, and run user callbacks outside their internal
mutex. For Prometheus instrumentation use NewWithMetrics or
NewWithConfigAndMetrics.
*/
package debounce
