/*
Package future provides a single-assignment asynchronous result type
and delay primitives built on it.

A Future settles exactly once, with a value or an error, and every
reader observes the same outcome:

	f, complete := future.NewPending[int]()

	go func() {
		n, err := compute()
		complete(n, err)
	}()

	n, err := f.Get(ctx)

For producer goroutines the Go helper spawns the function and recovers
panics into rejections:

	f := future.Go(func() (string, error) {
		return fetch(url)
	})

Delays are futures too:

	fired, _ := future.Sleep(100 * time.Millisecond).Get(ctx)

SleepTimer additionally hands the raw *time.Timer to the caller for
external cancellation.

Futures are the currency of the other asyncfn packages: the debounce
coalescer hands one to every caller in a window, the concurrent runner
exposes its batch result as one, and the timeout package races any
future against a deadline.
*/
package future
