/*
Package asyncfn provides composable control-flow utilities for
asynchronous function invocation: debouncing, throttling, result
coalescing, concurrency-limited fan-out, timeout racing, and sequential
composition.

Timing control (pkg/async):
  - future: single-assignment asynchronous results and delay primitives
  - debounce: debounce/throttle controllers and a coalescing variant
    that fans one shared result out to every caller in a window
  - concurrent: run a fixed task list with a concurrency limit,
    collecting results in task order
  - timeout: race any future against a deadline
  - queue: chain functions so each result feeds the next, awaiting
    futures between steps
  - distributed: Redis-coordinated coalescing windows across instances

Example usage:

	import (
		"github.com/vnykmshr/asyncfn/pkg/async/debounce"
		"github.com/vnykmshr/asyncfn/pkg/async/concurrent"
	)

	d, _ := debounce.NewSafe(saveDraft, 250*time.Millisecond)
	d.Trigger(doc) // repeated calls collapse into one save

	r, _ := concurrent.NewSafe(2, fetchA, fetchB, fetchC)
	results, err := r.Run(ctx, query) // at most 2 in flight, ordered results
*/
package asyncfn
